// Command migrate applies or rolls back the database schema.
//
//	migrate up          apply all pending migrations
//	migrate down        roll back the last migration
//	migrate goto <N>    migrate to version N
//	migrate version     print the current version
package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/users-generator-api/internal/config"
	"github.com/users-generator-api/internal/database"
	"github.com/users-generator-api/pkg/logger"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	cfg, err := config.LoadForMigrations()
	if err != nil {
		log := logger.New("info", "json")
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	log := logger.New(cfg.Log.Level, cfg.Log.Format)

	db, err := database.New(&cfg.Database, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer db.Close()

	path := cfg.MigrationsPath

	switch os.Args[1] {
	case "up":
		err = db.RunMigrations(path)
	case "down":
		err = db.MigrateDown(path)
	case "goto":
		if len(os.Args) < 3 {
			usage()
			os.Exit(2)
		}
		var v uint64
		v, err = strconv.ParseUint(os.Args[2], 10, 32)
		if err == nil {
			err = db.MigrateToVersion(path, uint(v))
		}
	case "version":
		var (
			v     uint
			dirty bool
		)
		v, dirty, err = db.MigrationVersion(path)
		if err == nil {
			fmt.Printf("version=%d dirty=%t\n", v, dirty)
		}
	default:
		usage()
		os.Exit(2)
	}

	if err != nil {
		log.Fatal().Err(err).Str("command", os.Args[1]).Msg("Migration failed")
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: migrate up|down|goto <version>|version")
}
