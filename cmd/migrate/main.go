package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/golang-migrate/migrate/v4"
	"github.com/google/subcommands"

	"kasatakip/internal/config"
	"kasatakip/internal/database"
	"kasatakip/internal/logger"
)

func main() {
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	commander := subcommands.NewCommander(flag.CommandLine, "migrate")
	commander.Register(commander.HelpCommand(), "")
	commander.Register(&upCmd{}, "schema")
	commander.Register(&downCmd{}, "schema")
	commander.Register(&versionCmd{}, "schema")
	commander.Register(&seedCmd{}, "data")
	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}

func loadDBConfig() (*database.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return database.NewConfig(cfg), nil
}

// withMigrator opens a migrator, runs fn and reports the outcome.
func withMigrator(fn func(m *migrate.Migrate) error) subcommands.ExitStatus {
	dbConfig, err := loadDBConfig()
	if err != nil {
		logger.Get().Errorf("Migration error: %v", err)
		return subcommands.ExitFailure
	}
	m, err := database.NewMigrator(dbConfig)
	if err != nil {
		logger.Get().Errorf("Migration error: %v", err)
		return subcommands.ExitFailure
	}
	defer database.CloseMigrator(m)

	if err := fn(m); err != nil {
		logger.Get().Errorf("Migration error: %v", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

type upCmd struct{}

func (*upCmd) Name() string           { return "up" }
func (*upCmd) Synopsis() string       { return "apply all pending migrations" }
func (*upCmd) Usage() string          { return "up\n" }
func (*upCmd) SetFlags(*flag.FlagSet) {}
func (*upCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return withMigrator(func(m *migrate.Migrate) error {
		if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return fmt.Errorf("migration up failed: %w", err)
		}
		logger.Get().Info("Migrations applied successfully")
		return nil
	})
}

type downCmd struct {
	steps int
}

func (*downCmd) Name() string     { return "down" }
func (*downCmd) Synopsis() string { return "roll back migrations" }
func (*downCmd) Usage() string    { return "down [-steps N]\n" }
func (c *downCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.steps, "steps", 1, "number of migrations to roll back")
}

func (c *downCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.steps < 1 {
		fmt.Fprintln(os.Stderr, "Error: -steps must be at least 1.")
		return subcommands.ExitUsageError
	}
	return withMigrator(func(m *migrate.Migrate) error {
		if err := m.Steps(-c.steps); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return fmt.Errorf("migration down failed: %w", err)
		}
		logger.Get().Infof("Rolled back %d migration(s)", c.steps)
		return nil
	})
}

type versionCmd struct{}

func (*versionCmd) Name() string           { return "version" }
func (*versionCmd) Synopsis() string       { return "print the current schema version" }
func (*versionCmd) Usage() string          { return "version\n" }
func (*versionCmd) SetFlags(*flag.FlagSet) {}
func (*versionCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return withMigrator(func(m *migrate.Migrate) error {
		version, dirty, err := m.Version()
		if err != nil {
			return fmt.Errorf("failed to get version: %w", err)
		}
		logger.Get().Infof("Version: %d, Dirty: %v", version, dirty)
		return nil
	})
}

type seedCmd struct {
	file string
}

func (*seedCmd) Name() string     { return "seed" }
func (*seedCmd) Synopsis() string { return "insert reference currencies and banks" }
func (*seedCmd) Usage() string {
	return `seed [-file seed.yaml]

Inserts the reference currencies and banks that are missing. Without -file the
built-in list is used.
`
}
func (c *seedCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.file, "file", "", "YAML file with currencies and banks")
}

func (c *seedCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	log := logger.Get()

	var raw []byte
	if c.file != "" {
		var err error
		if raw, err = os.ReadFile(c.file); err != nil {
			log.Errorf("Seed error: %v", err)
			return subcommands.ExitFailure
		}
	}
	data, err := database.LoadSeedData(raw)
	if err != nil {
		log.Errorf("Seed error: %v", err)
		return subcommands.ExitFailure
	}

	dbConfig, err := loadDBConfig()
	if err != nil {
		log.Errorf("Seed error: %v", err)
		return subcommands.ExitFailure
	}
	manager, err := database.NewManager(dbConfig)
	if err != nil {
		log.Errorf("Seed error: %v", err)
		return subcommands.ExitFailure
	}
	defer manager.Close()

	if err := database.Seed(manager.DB(), data); err != nil {
		log.Errorf("Seed error: %v", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
