package main

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/garrettladley/synthonia/internal/analytics"
	"github.com/garrettladley/synthonia/internal/formula"
	"github.com/spf13/cobra"
)

func calcCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "calc",
		Short: "Evaluate a single formula without storing anything",
	}
	cmd.AddCommand(
		calcRecoveryCmd(),
		calcEmotionalCmd(),
		calcLoadCmd(),
		calcACWRCmd(),
		calcJumpCmd(),
		calcEfficacyCmd(),
		calcDoseCmd(),
	)
	return cmd
}

func calcRecoveryCmd() *cobra.Command {
	var muscular, mental, sleep float64

	cmd := &cobra.Command{
		Use:   "recovery",
		Short: "Recovery score from muscular, mental and sleep ratings (0-10)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			score := formula.RecoveryScore(muscular, mental, sleep)
			if err := formula.Finite(score, formula.RecoveryPercent(score)); err != nil {
				return err
			}
			row("score", "%.2f", score)
			row("percent", "%.1f%%", formula.RecoveryPercent(score))
			return nil
		},
	}
	cmd.Flags().Float64Var(&muscular, "muscular", 0, "muscular recovery (0-10)")
	cmd.Flags().Float64Var(&mental, "mental", 0, "mental recovery (0-10)")
	cmd.Flags().Float64Var(&sleep, "sleep", 0, "sleep quality (0-10)")
	return cmd
}

func calcEmotionalCmd() *cobra.Command {
	var wellbeing, motivation, focus, stress, anxiety float64

	cmd := &cobra.Command{
		Use:   "emotional",
		Short: "Emotional score centred on 5",
		RunE: func(cmd *cobra.Command, _ []string) error {
			score := formula.EmotionalScore(wellbeing, motivation, focus, stress, anxiety)
			if err := formula.Finite(score); err != nil {
				return err
			}
			row("score", "%.2f", score)
			return nil
		},
	}
	cmd.Flags().Float64Var(&wellbeing, "wellbeing", 0, "wellbeing (0-10)")
	cmd.Flags().Float64Var(&motivation, "motivation", 0, "motivation (0-10)")
	cmd.Flags().Float64Var(&focus, "focus", 0, "focus (0-10)")
	cmd.Flags().Float64Var(&stress, "stress", 0, "stress (0-10)")
	cmd.Flags().Float64Var(&anxiety, "anxiety", 0, "anxiety (0-10)")
	return cmd
}

func calcLoadCmd() *cobra.Command {
	var duration, rpe float64

	cmd := &cobra.Command{
		Use:   "load",
		Short: "Session internal load (RPE x minutes)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			l := analytics.CalculateLoad(analytics.Session{DurationMinutes: duration, RPE: rpe})
			row("internal load", "%s AU", humanize.Commaf(l.InternalLoad))
			row("classification", "%s (%s)", bold.Sprint(l.Classification), l.Classification.Description())
			return nil
		},
	}
	cmd.Flags().Float64VarP(&duration, "duration", "d", 0, "duration in minutes")
	cmd.Flags().Float64VarP(&rpe, "rpe", "r", 0, "session RPE (0-10)")
	return cmd
}

func calcACWRCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "acwr <loads...>",
		Short: "Acute:chronic workload ratio over at least 28 daily loads, oldest first",
		Example: `  synthctl calc acwr 300 0 450 ...
  synthctl calc acwr 300,0,450,...`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			loads, err := parseLoads(args)
			if err != nil {
				return err
			}
			a, err := formula.ACWR(loads)
			if err != nil {
				return err
			}
			row("acute", "%.1f", a.Acute)
			row("chronic", "%.1f", a.Chronic)
			row("ratio", "%s", riskColor(a.Risk).Sprintf("%.2f %s", a.Ratio, a.Risk))
			fmt.Println(faint.Sprint("  " + a.Risk.Description()))
			return nil
		},
	}
}

func calcJumpCmd() *cobra.Command {
	var height, weight, baseline float64

	cmd := &cobra.Command{
		Use:   "jump",
		Short: "Counter-movement jump readiness against a baseline",
		RunE: func(cmd *cobra.Command, _ []string) error {
			r, err := analytics.JumpTestAnalyzer{BaselineCm: baseline}.Analyze(height, weight)
			if err != nil {
				return err
			}
			printJump(r)
			return nil
		},
	}
	cmd.Flags().Float64Var(&height, "height", 0, "jump height in cm")
	cmd.Flags().Float64Var(&weight, "weight", 0, "body mass in kg")
	cmd.Flags().Float64Var(&baseline, "baseline", analytics.DefaultBaselineCm, "baseline jump height in cm")
	_ = cmd.MarkFlagRequired("height")
	_ = cmd.MarkFlagRequired("weight")
	return cmd
}

func printJump(r formula.JumpReadiness) {
	row("status", "%s", statusColor(r.Status).Sprint(r.Status))
	row("change", "%+.1f%%", r.PercentChange)
	row("load", "%d%%", r.LoadPercent)
	row("advice", "%s", r.Recommendation)
	row("peak power", "%s W", humanize.Commaf(formula.Round(r.EstimatedPeakPower, 1)))
}

func calcEfficacyCmd() *cobra.Command {
	var dose, dissociation, mood float64

	cmd := &cobra.Command{
		Use:   "efficacy",
		Short: "Efficacy score of a Spravato session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := analytics.AnalyzeSession(formula.SpravatoSession{
				DoseMg:       dose,
				Dissociation: dissociation,
				MoodAfter:    mood,
			})
			if err != nil {
				return err
			}
			row("efficacy", "%.2f", a.Efficacy)
			row("advice", "%s", bold.Sprint(a.Recommendation))
			return nil
		},
	}
	cmd.Flags().Float64Var(&dose, "dose", formula.DefaultStartingDose, "dose in mg")
	cmd.Flags().Float64Var(&dissociation, "dissociation", 0, "dissociation level (0-10)")
	cmd.Flags().Float64Var(&mood, "mood", 0, "mood change 24h after (-10 to 10)")
	return cmd
}

func calcDoseCmd() *cobra.Command {
	var lastDose, lastMood float64

	cmd := &cobra.Command{
		Use:   "dose",
		Short: "Suggested next Spravato dose from the previous session",
		Long: `Suggests the next dose from the previous session. Without --last-dose
the default starting dose is returned.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var history analytics.SpravatoHistory
			if cmd.Flags().Changed("last-dose") {
				history = append(history, formula.SpravatoSession{DoseMg: lastDose, MoodAfter: lastMood})
			}
			p := history.NextDose()
			row("next dose", "%s mg", bold.Sprint(p.Dose))
			row("reason", "%s", p.Reason)
			return nil
		},
	}
	cmd.Flags().Float64Var(&lastDose, "last-dose", 0, "previous dose in mg")
	cmd.Flags().Float64Var(&lastMood, "last-mood", 0, "mood change 24h after the previous session")
	return cmd
}
