//nolint:whitespace //can't make both the linter and editor happy :(
package instruction

import (
	"context"
	"fmt"

	"github.com/gofrs/uuid/v5"
	"github.com/jackc/pgx/v5"

	"github.com/mpapenbr/trackday-instructions/pkg/model"
	"github.com/mpapenbr/trackday-instructions/pkg/repository"
)

func Create(
	ctx context.Context,
	conn repository.Querier,
	instr *model.DbInstruction,
) error {
	if instr.ID.IsNil() {
		instr.ID = uuid.Must(uuid.NewV4())
	}
	_, err := conn.Exec(ctx,
		"insert into instruction (id, data) values ($1,$2)",
		instr.ID, instr.Data)
	if err != nil {
		return err
	}
	return nil
}

// deletes an entry from the database, returns number of rows deleted.
func DeleteByID(ctx context.Context, conn repository.Querier, id uuid.UUID) (
	int, error,
) {
	cmdTag, err := conn.Exec(ctx, "delete from instruction where id=$1", id)
	if err != nil {
		return 0, err
	}
	return int(cmdTag.RowsAffected()), nil
}

func LoadByID(
	ctx context.Context,
	conn repository.Querier,
	id uuid.UUID,
) (*model.DbInstruction, error) {
	row := conn.QueryRow(ctx,
		fmt.Sprintf("%s where id=$1", selector), id)
	var item model.DbInstruction
	if err := scan(&item, row); err != nil {
		return nil, err
	}
	return &item, nil
}

// LoadAll returns all instructions ordered by name.
func LoadAll(ctx context.Context, conn repository.Querier) (
	[]*model.DbInstruction, error,
) {
	rows, err := conn.Query(ctx,
		fmt.Sprintf("%s order by data->>'instructionName'", selector))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collect(rows)
}

// LoadByTrackID returns the instructions referencing the given track.
func LoadByTrackID(
	ctx context.Context,
	conn repository.Querier,
	trackID string,
) ([]*model.DbInstruction, error) {
	rows, err := conn.Query(ctx,
		fmt.Sprintf("%s where data->>'trackId'=$1 order by data->>'instructionName'",
			selector),
		trackID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collect(rows)
}

func Update(
	ctx context.Context,
	conn repository.Querier,
	instr *model.DbInstruction,
) (int, error) {
	cmdTag, err := conn.Exec(ctx,
		"update instruction set data=$1 where id=$2", instr.Data, instr.ID)
	if err != nil {
		return 0, err
	}
	return int(cmdTag.RowsAffected()), nil
}

// little helper
const selector = string(`select id,data from instruction`)

func scan(e *model.DbInstruction, row pgx.Row) error {
	return row.Scan(&e.ID, &e.Data)
}

func collect(rows pgx.Rows) ([]*model.DbInstruction, error) {
	ret := make([]*model.DbInstruction, 0)
	for rows.Next() {
		var item model.DbInstruction
		if err := scan(&item, rows); err != nil {
			return nil, err
		}
		ret = append(ret, &item)
	}
	return ret, rows.Err()
}
