package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/spf13/cobra"

	"glosaguard/internal/config"
)

// migrator is the part of *migrate.Migrate the commands drive.
type migrator interface {
	Up() error
	Down() error
	Steps(n int) error
	Version() (version uint, dirty bool, err error)
	Close() (source error, database error)
}

// openFunc opens a migrator over the given migrations path. An empty path
// falls back to the configured one.
type openFunc func(path string) (migrator, error)

func main() {
	if err := newRootCmd(openPostgres).Execute(); err != nil {
		os.Exit(1)
	}
}

func openPostgres(path string) (migrator, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if path == "" {
		path = cfg.DB.MigrationsPath
	}
	m, err := migrate.New(sourceURL(path), cfg.DB.DSN())
	if err != nil {
		return nil, fmt.Errorf("creating migrate instance for %s: %w", path, err)
	}
	return m, nil
}

// sourceURL turns a plain directory into a file:// source URL. Anything that
// already names a source driver is returned unchanged.
func sourceURL(path string) string {
	if strings.Contains(path, "://") {
		return path
	}
	return "file://" + path
}

func newRootCmd(open openFunc) *cobra.Command {
	var path string

	rootCmd := &cobra.Command{
		Use:          "migrate",
		Short:        "Apply or roll back the glosaguard database schema",
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVarP(&path, "path", "p", "",
		"Migrations directory or source URL (default from GLOSA_DB_MIGRATIONS_PATH)")

	run := func(fn func(cmd *cobra.Command, m migrator, args []string) error) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, args []string) error {
			m, err := open(path)
			if err != nil {
				return err
			}
			defer func() {
				if srcErr, dbErr := m.Close(); srcErr != nil || dbErr != nil {
					log.Printf("migrate: closing: source=%v database=%v", srcErr, dbErr)
				}
			}()
			return fn(cmd, m, args)
		}
	}

	rootCmd.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply all pending migrations",
			Args:  cobra.NoArgs,
			RunE: run(func(cmd *cobra.Command, m migrator, _ []string) error {
				if err := ignoreNoChange(m.Up()); err != nil {
					return fmt.Errorf("migration up failed: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), "migrations applied successfully")
				return nil
			}),
		},
		&cobra.Command{
			Use:   "down",
			Short: "Revert all applied migrations",
			Args:  cobra.NoArgs,
			RunE: run(func(cmd *cobra.Command, m migrator, _ []string) error {
				if err := ignoreNoChange(m.Down()); err != nil {
					return fmt.Errorf("migration down failed: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), "migrations reverted successfully")
				return nil
			}),
		},
		&cobra.Command{
			Use:   "steps N",
			Short: "Apply N migrations, or revert them when N is negative (steps -- -1)",
			Args:  cobra.ExactArgs(1),
			RunE: run(func(cmd *cobra.Command, m migrator, args []string) error {
				n, err := strconv.Atoi(args[0])
				if err != nil {
					return fmt.Errorf("invalid steps argument %q: %w", args[0], err)
				}
				if err := ignoreNoChange(m.Steps(n)); err != nil {
					return fmt.Errorf("migration steps failed: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "applied %d migration steps\n", n)
				return nil
			}),
		},
		&cobra.Command{
			Use:   "version",
			Short: "Print the current schema version",
			Args:  cobra.NoArgs,
			RunE: run(func(cmd *cobra.Command, m migrator, _ []string) error {
				version, dirty, err := m.Version()
				if errors.Is(err, migrate.ErrNilVersion) {
					fmt.Fprintln(cmd.OutOrStdout(), "version: none")
					return nil
				}
				if err != nil {
					return fmt.Errorf("failed to get version: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "version: %d, dirty: %v\n", version, dirty)
				return nil
			}),
		},
	)

	return rootCmd
}

func ignoreNoChange(err error) error {
	if errors.Is(err, migrate.ErrNoChange) {
		return nil
	}
	return err
}
