package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/garrettladley/synthonia/internal/config"
	"github.com/garrettladley/synthonia/internal/formula"
	"github.com/garrettladley/synthonia/internal/journal"
	"github.com/garrettladley/synthonia/internal/paths"
	"github.com/spf13/cobra"
)

func journalCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "journal",
		Aliases: []string{"j"},
		Short:   "Offline training and wellness log",
		Long: `The journal lives in a local SQLite database at
~/.config/synthonia/synthonia.db, or $SYNTHONIA_DB when set.`,
	}
	cmd.AddCommand(
		journalAddLoadCmd(),
		journalAddDayCmd(),
		journalListCmd(),
		journalReadinessCmd(),
	)
	return cmd
}

func openJournal(ctx context.Context) (*journal.Journal, error) {
	cfg, err := config.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	path, err := paths.Journal(cfg.JournalPath)
	if err != nil {
		return nil, err
	}
	return journal.Open(ctx, path)
}

func journalAddLoadCmd() *cobra.Command {
	var (
		rpe, duration float64
		date, note    string
	)

	cmd := &cobra.Command{
		Use:   "add-load",
		Short: "Log a training session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			d, err := parseDate(date)
			if err != nil {
				return err
			}

			j, err := openJournal(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = j.Close() }()

			l, err := j.AddLoad(cmd.Context(), d, rpe, duration, note)
			if err != nil {
				return err
			}

			color.Green("✓ Logged %s AU on %s", humanize.Commaf(l.Load), l.Date.Format(time.DateOnly))
			return nil
		},
	}
	cmd.Flags().Float64VarP(&rpe, "rpe", "r", 0, "session RPE (0-10)")
	cmd.Flags().Float64VarP(&duration, "duration", "d", 0, "duration in minutes")
	cmd.Flags().StringVar(&date, "date", "", "session date (YYYY-MM-DD, default today)")
	cmd.Flags().StringVarP(&note, "note", "n", "", "free text note")
	_ = cmd.MarkFlagRequired("rpe")
	_ = cmd.MarkFlagRequired("duration")
	return cmd
}

func journalAddDayCmd() *cobra.Command {
	var (
		day  journal.Day
		date string
	)

	cmd := &cobra.Command{
		Use:   "add-day",
		Short: "Log today's wellness check-in",
		RunE: func(cmd *cobra.Command, _ []string) error {
			d, err := parseDate(date)
			if err != nil {
				return err
			}
			day.Date = d

			j, err := openJournal(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = j.Close() }()

			saved, err := j.AddDay(cmd.Context(), day)
			if errors.Is(err, journal.ErrDuplicateDay) {
				color.Yellow("⚠ A check-in is already logged for that date")
				return err
			}
			if err != nil {
				return err
			}

			color.Green("✓ Logged check-in for %s", saved.Date.Format(time.DateOnly))
			return nil
		},
	}
	cmd.Flags().Float64Var(&day.Sleep, "sleep", 0, "sleep quality (0-10)")
	cmd.Flags().Float64Var(&day.Energy, "energy", 0, "energy (0-10)")
	cmd.Flags().Float64Var(&day.Stress, "stress", 0, "stress (0-10)")
	cmd.Flags().Float64Var(&day.Mood, "mood", 0, "mood (0-10)")
	cmd.Flags().Float64Var(&day.Pain, "pain", 0, "pain (0-10)")
	cmd.Flags().StringVar(&date, "date", "", "check-in date (YYYY-MM-DD, default today)")
	return cmd
}

func journalListCmd() *cobra.Command {
	var days int

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List recent sessions and check-ins",
		RunE: func(cmd *cobra.Command, _ []string) error {
			j, err := openJournal(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = j.Close() }()

			loads, err := j.Loads(cmd.Context(), days)
			if err != nil {
				return err
			}
			entries, err := j.Days(cmd.Context(), days)
			if err != nil {
				return err
			}

			if len(loads) == 0 && len(entries) == 0 {
				fmt.Printf("Nothing logged in the last %d days.\n", days)
				return nil
			}

			if len(loads) > 0 {
				fmt.Println(bold.Sprint("Sessions"))
				for _, l := range loads {
					note := ""
					if l.Note != "" {
						note = faint.Sprintf(" (%s)", l.Note)
					}
					fmt.Printf("  %s  %8s AU  RPE %-4.1f %5.0f min%s  %s\n",
						l.Date.Format(time.DateOnly),
						humanize.Commaf(l.Load),
						l.RPE,
						l.DurationMinutes,
						note,
						faint.Sprint(humanize.Time(l.CreatedAt)))
				}
			}

			if len(entries) > 0 {
				fmt.Println(bold.Sprint("Check-ins"))
				for _, d := range entries {
					fmt.Printf("  %s  sleep %.0f  energy %.0f  stress %.0f  mood %.0f  pain %.0f\n",
						d.Date.Format(time.DateOnly), d.Sleep, d.Energy, d.Stress, d.Mood, d.Pain)
				}
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&days, "days", 14, "how many days back to list")
	return cmd
}

func journalReadinessCmd() *cobra.Command {
	var days int

	cmd := &cobra.Command{
		Use:   "readiness",
		Short: "ACWR, form and monotony over logged sessions",
		RunE: func(cmd *cobra.Command, _ []string) error {
			j, err := openJournal(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = j.Close() }()

			r, err := j.Readiness(cmd.Context(), days)
			if errors.Is(err, formula.ErrNoData) {
				fmt.Printf("No sessions logged in the last %d days.\n", days)
				return nil
			}
			if err != nil {
				return err
			}

			atl, ctl, tsb := r.Trend.Latest()
			row("days", "%d", r.Days)
			if r.ACWR != nil {
				row("acwr", "%s", riskColor(r.ACWR.Risk).Sprintf("%.2f %s", r.ACWR.Ratio, r.ACWR.Risk))
			} else {
				row("acwr", "%s", faint.Sprintf("needs %d days", formula.ChronicWindow))
			}
			row("fatigue (ATL)", "%.1f", atl)
			row("fitness (CTL)", "%.1f", ctl)
			row("form (TSB)", "%.1f %s", tsb, faint.Sprint(formula.FormDescription(tsb)))
			row("weekly load", "%s AU", humanize.Commaf(r.WeeklyLoad))
			row("monotony", "%.2f", r.Monotony)
			row("strain", "%s", humanize.Commaf(formula.Round(r.Strain, 0)))
			if r.InjuryRisk {
				color.Red("  ⚠ elevated injury risk")
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&days, "days", 42, "window in days")
	return cmd
}
