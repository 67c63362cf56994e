package main

import (
	"context"
	"os"
	"syscall"

	"github.com/charmbracelet/fang"
	"github.com/garrettladley/synthonia/internal/version"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func main() {
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:     "synthctl",
		Short:   "Training, wellness and Spravato calculations from your terminal",
		Version: version.Get(),
	}

	rootCmd.AddCommand(calcCmd())
	rootCmd.AddCommand(journalCmd())
	rootCmd.AddCommand(migrateCmd())

	if err := fang.Execute(context.Background(), rootCmd, fang.WithNotifySignal(os.Interrupt, syscall.SIGTERM)); err != nil {
		os.Exit(1)
	}
}
