//nolint:whitespace //can't make both the linter and editor happy :(
package service

import (
	"context"
	"errors"

	"github.com/gofrs/uuid/v5"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/samber/lo"

	"github.com/mpapenbr/trackday-instructions/pkg/document"
	"github.com/mpapenbr/trackday-instructions/pkg/model"
	instrrepos "github.com/mpapenbr/trackday-instructions/pkg/repository/instruction"
)

type InstructionService struct {
	pool     *pgxpool.Pool
	tracks   *TrackService
	renderer *document.Renderer
}

func NewInstructionService(
	pool *pgxpool.Pool,
	tracks *TrackService,
	renderer *document.Renderer,
) *InstructionService {
	return &InstructionService{pool: pool, tracks: tracks, renderer: renderer}
}

func (s *InstructionService) GetAll(ctx context.Context) (
	[]*model.DbInstruction, error,
) {
	return instrrepos.LoadAll(ctx, s.pool)
}

func (s *InstructionService) GetByTrack(ctx context.Context, trackID string) (
	[]*model.DbInstruction, error,
) {
	return instrrepos.LoadByTrackID(ctx, s.pool, trackID)
}

func (s *InstructionService) Get(ctx context.Context, id uuid.UUID) (
	*model.DbInstruction, error,
) {
	item, err := instrrepos.LoadByID(ctx, s.pool, id)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return item, err
}

func (s *InstructionService) Create(ctx context.Context, data *model.Instruction) (
	*model.DbInstruction, error,
) {
	s.sanitize(ctx, data)
	item := &model.DbInstruction{Data: *data}
	if err := pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		return instrrepos.Create(ctx, tx, item)
	}); err != nil {
		return nil, err
	}
	return item, nil
}

// Patch merges the given partial JSON document into the stored instruction.
// Only top level attributes present in the patch are replaced.
func (s *InstructionService) Patch(ctx context.Context, id uuid.UUID, patch []byte) (
	*model.DbInstruction, error,
) {
	item, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	merged, err := mergePatch(item.Data, patch)
	if err != nil {
		return nil, err
	}
	item.Data = merged
	s.sanitize(ctx, &item.Data)
	if err := pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		num, err := instrrepos.Update(ctx, tx, item)
		if err == nil && num == 0 {
			return ErrNotFound
		}
		return err
	}); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *InstructionService) Delete(ctx context.Context, id uuid.UUID) error {
	return pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		num, err := instrrepos.DeleteByID(ctx, tx, id)
		if err != nil {
			return err
		}
		if num == 0 {
			return ErrNotFound
		}
		return nil
	})
}

// Duplicate stores a copy of the given instruction under a new id. The copy
// gets the source name with a " (Copy)" suffix.
func (s *InstructionService) Duplicate(ctx context.Context, id uuid.UUID) (
	*model.DbInstruction, error,
) {
	source, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	dup := source.Data
	dup.InstructionName += CopySuffix
	return s.Create(ctx, &dup)
}

// Document builds the renderable page tree for an instruction. A dangling
// track reference degrades to a track-less document.
func (s *InstructionService) Document(ctx context.Context, id uuid.UUID) (
	*document.Document, error,
) {
	item, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	track := s.tracks.Resolve(ctx, item.Data.TrackID)
	return s.renderer.Render(&item.Data, track), nil
}

// sanitize enforces the store invariants: a closed overtaking rule value,
// unique dates and a track name snapshot taken from the referenced track.
func (s *InstructionService) sanitize(ctx context.Context, data *model.Instruction) {
	data.OvertakingRules = data.OvertakingRules.Normalize()
	data.Dates = lo.Uniq(data.Dates)
	if track := s.tracks.Resolve(ctx, data.TrackID); track != nil {
		data.TrackName = track.Name
	}
}
