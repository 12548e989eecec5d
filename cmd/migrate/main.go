package main

import (
	"database/sql"
	"fmt"
	"log"
	"os"

	"github.com/pressly/goose/v3"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/formatix/erp/modules"
	"github.com/formatix/erp/pkg/application"
	"github.com/formatix/erp/pkg/configuration"
	"github.com/formatix/erp/pkg/eventbus"
)

const schemaDir = "infrastructure/persistence/schema"

func main() {
	command := "up"
	if len(os.Args) > 1 {
		command = os.Args[1]
	}

	conf := configuration.Use()
	defer conf.Unload()
	logger := conf.Logger()

	db, err := sql.Open("pgx", conf.Database.Opts)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer func() { _ = db.Close() }()

	// modules contribute their schemas through the migration registry
	app := application.New(&application.ApplicationOptions{
		EventBus: eventbus.NewEventPublisher(logger),
		Logger:   logger,
	})
	if err := modules.Load(app); err != nil {
		log.Fatalf("failed to load modules: %v", err)
	}

	if err := goose.SetDialect("postgres"); err != nil {
		log.Fatalf("failed to set goose dialect: %v", err)
	}

	if err := run(command, db, app); err != nil {
		log.Fatalf("migrate %s: %v", command, err)
	}
	logger.Infof("migrate %s completed", command)
}

func run(command string, db *sql.DB, app application.Application) error {
	schemas := app.Migrations().Schemas()
	if len(schemas) == 0 {
		return fmt.Errorf("no module registered a schema")
	}
	for _, schema := range schemas {
		goose.SetBaseFS(schema)
		var err error
		switch command {
		case "up":
			err = goose.Up(db, schemaDir)
		case "down":
			err = goose.Down(db, schemaDir)
		case "status":
			err = goose.Status(db, schemaDir)
		default:
			return fmt.Errorf("unknown command %q", command)
		}
		if err != nil {
			return err
		}
	}
	return nil
}
