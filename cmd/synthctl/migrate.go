package main

import (
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/garrettladley/synthonia/internal/config"
	"github.com/garrettladley/synthonia/internal/migrations/postgres"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"
)

func migrateCmd() *cobra.Command {
	var list bool

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending Postgres migrations to $DATABASE_URL",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if list {
				names, err := postgres.Names()
				if err != nil {
					return err
				}
				for _, name := range names {
					fmt.Println(name)
				}
				return nil
			}

			cfg, err := config.Read()
			if err != nil {
				return fmt.Errorf("failed to read config: %w", err)
			}
			if cfg.DatabaseURL == "" {
				return errors.New("DATABASE_URL is not set")
			}

			pool, err := pgxpool.New(cmd.Context(), cfg.DatabaseURL)
			if err != nil {
				return fmt.Errorf("connect: %w", err)
			}
			defer pool.Close()

			applied, err := postgres.Apply(cmd.Context(), pool)
			if err != nil {
				return err
			}
			if len(applied) == 0 {
				fmt.Println("Database is up to date")
				return nil
			}
			for _, name := range applied {
				color.Green("✓ Applied %s", name)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&list, "list", false, "list embedded migrations without connecting")
	cmd.AddCommand(newMigrationCmd())
	return cmd
}
