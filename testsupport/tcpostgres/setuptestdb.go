//nolint:errcheck // testsetup
package tcpostgres

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/mpapenbr/trackday-instructions/pkg/db/migrate"
	database "github.com/mpapenbr/trackday-instructions/pkg/db/postgres"
)

// create a pg connection pool for the trackday testdatabase
func SetupTestDb() *pgxpool.Pool {
	ctx := context.Background()
	port, err := nat.NewPort("tcp", "5432")
	if err != nil {
		log.Fatal(err)
	}
	container, err := SetupPostgres(ctx,
		WithPort(port.Port()),
		WithInitialDatabase("postgres", "password", "postgres"),
		WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(5*time.Second)),
		WithName("trackday-instructions-test"),
	)
	if err != nil {
		log.Fatal(err)
	}
	containerPort, _ := container.MappedPort(ctx, port)
	host, _ := container.Host(ctx)
	dbUrl := fmt.Sprintf("postgresql://postgres:password@%s:%s/postgres",
		host, containerPort.Port())

	if err = migrate.MigrateDb(dbUrl); err != nil {
		log.Fatal(err)
	}

	pool := database.InitWithURL(dbUrl)
	return pool
}

// connects to the database referenced by TESTDB_URL and migrates it
func SetupExternalTestDb() *pgxpool.Pool {
	dbUrl := os.Getenv("TESTDB_URL")
	if err := migrate.MigrateDb(dbUrl); err != nil {
		log.Fatal(err)
	}
	return database.InitWithURL(dbUrl)
}

func ClearTrackTable(pool *pgxpool.Pool) {
	pool.Exec(context.Background(), "delete from track")
}

func ClearInstructionTable(pool *pgxpool.Pool) {
	pool.Exec(context.Background(), "delete from instruction")
}

func ClearAllTables(pool *pgxpool.Pool) {
	ClearInstructionTable(pool)
	ClearTrackTable(pool)
}
