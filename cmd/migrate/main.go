// Package main applies, rolls back or reports the results store schema.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/golang-migrate/migrate/v4"

	"github.com/cory-johannsen/monbattle/internal/config"
	"github.com/cory-johannsen/monbattle/migrations"
)

func main() {
	configPath := flag.String("config", "configs/battlesim.yaml", "path to configuration file")
	direction := flag.String("direction", "up", "up, down or status")
	steps := flag.Int("steps", 0, "number of steps (0 = all)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}
	m, err := migrations.NewMigrator(cfg.Database.DSN())
	if err != nil {
		log.Fatal(err)
	}
	defer m.Close()

	if err := run(os.Stdout, m, *direction, *steps); err != nil {
		log.Fatalf("migrate %s: %v", *direction, err)
	}
}

// migrator is the subset of *migrate.Migrate used by run.
type migrator interface {
	Up() error
	Down() error
	Steps(n int) error
	Version() (uint, bool, error)
}

// run moves the schema in direction by steps (0 = all the way) and reports the resulting version.
func run(w io.Writer, m migrator, direction string, steps int) error {
	start := time.Now()
	var err error
	switch direction {
	case "up":
		if steps > 0 {
			err = m.Steps(steps)
		} else {
			err = m.Up()
		}
	case "down":
		if steps > 0 {
			err = m.Steps(-steps)
		} else {
			err = m.Down()
		}
	case "status":
	default:
		return fmt.Errorf("unknown direction %q", direction)
	}
	unchanged := errors.Is(err, migrate.ErrNoChange)
	if err != nil && !unchanged {
		return err
	}

	version, dirty, verr := m.Version()
	switch {
	case errors.Is(verr, migrate.ErrNilVersion):
		fmt.Fprintf(w, "schema empty [%s]\n", time.Since(start))
	case verr != nil:
		return fmt.Errorf("reading version: %w", verr)
	case direction == "status" || unchanged:
		fmt.Fprintf(w, "schema at version %d dirty=%v [%s]\n", version, dirty, time.Since(start))
	default:
		fmt.Fprintf(w, "migrated %s to version %d dirty=%v [%s]\n", direction, version, dirty, time.Since(start))
	}
	return nil
}
