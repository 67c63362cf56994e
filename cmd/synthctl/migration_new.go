package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
)

const defaultMigrationsDir = "internal/migrations/postgres/sql"

func newMigrationCmd() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "new <name>",
		Short: "Create the next numbered Postgres migration file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := os.ReadDir(dir)
			if err != nil {
				return fmt.Errorf("failed to read migrations directory: %w", err)
			}

			filename := filepath.Join(dir, fmt.Sprintf("%04d_%s.sql", nextMigrationNum(entries), args[0]))
			if _, err := os.Stat(filename); err == nil {
				return fmt.Errorf("migration file already exists: %s", filename)
			}

			content := fmt.Sprintf("-- Migration: %s\n\n", args[0])
			if err := os.WriteFile(filename, []byte(content), 0o600); err != nil {
				return fmt.Errorf("failed to create migration file: %w", err)
			}

			fmt.Printf("Created migration: %s\n", filename)
			return nil
		},
	}
	cmd.Flags().StringVar(&dir, "dir", defaultMigrationsDir, "migrations directory")
	return cmd
}

// nextMigrationNum is one past the highest numeric prefix among the .sql
// files in entries.
func nextMigrationNum(entries []os.DirEntry) int {
	var highest int
	for _, entry := range entries {
		if !strings.HasSuffix(entry.Name(), ".sql") {
			continue
		}
		prefix, _, _ := strings.Cut(entry.Name(), "_")
		var num int
		if _, err := fmt.Sscanf(prefix, "%d", &num); err != nil {
			continue
		}
		highest = max(highest, num)
	}
	return highest + 1
}
