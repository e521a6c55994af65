package migrations

import (
	"database/sql"
	"embed"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/kwaksj329/web30-stop-troublepainter-sub000/logger"
)

//go:embed *.sql
var embedMigrations embed.FS

func Migrate(pgurl string) {
	migrationDB, err := sql.Open("pgx", pgurl)
	if err != nil {
		logger.Fatalf("opening db for migrations: %v", err)
	}

	goose.SetBaseFS(embedMigrations)

	if err := goose.SetDialect("postgres"); err != nil {
		logger.Fatalf("setting goose dialect: %v", err)
	}

	if err := goose.Up(migrationDB, "."); err != nil {
		logger.Fatalf("running up migrations: %v", err)
	}

	if err := migrationDB.Close(); err != nil {
		logger.Fatalf("closing migration db connection: %v", err)
	}
	logger.Infof("migrations applied")
}
