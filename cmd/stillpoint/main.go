package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"stillpoint/internal/bootstrap"
	settingsdto "stillpoint/internal/modules/settings/dto"
	timerdto "stillpoint/internal/modules/timer/dto"
	"stillpoint/internal/platform/config"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var basePath, notifierBinary string

	root := &cobra.Command{
		Use:           "stillpoint",
		Short:         "Meditation session timer",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&basePath, "base", defaultBasePath(), "stillpoint data directory")
	root.PersistentFlags().StringVar(&notifierBinary, "notifier", "", "notifier plugin binary (empty for in-process log notifier)")

	root.AddCommand(newTUICmd(&basePath, &notifierBinary))
	root.AddCommand(newStartCmd(&basePath, &notifierBinary))
	root.AddCommand(newPauseCmd(&basePath, &notifierBinary))
	root.AddCommand(newResumeCmd(&basePath, &notifierBinary))
	root.AddCommand(newStopCmd(&basePath, &notifierBinary))
	root.AddCommand(newStatusCmd(&basePath, &notifierBinary))
	root.AddCommand(newHistoryCmd(&basePath, &notifierBinary))
	root.AddCommand(newStreakCmd(&basePath, &notifierBinary))
	root.AddCommand(newPrefsCmd(&basePath, &notifierBinary))
	root.AddCommand(newMoodCmd(&basePath, &notifierBinary))
	return root
}

func defaultBasePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".stillpoint"
	}
	return filepath.Join(home, ".stillpoint")
}

func loadApp(basePath, notifierBinary string) (*bootstrap.App, error) {
	cfg, err := config.New(basePath, notifierBinary)
	if err != nil {
		return nil, err
	}
	return bootstrap.New(cfg)
}

func printSnapshot(cmd *cobra.Command, snap timerdto.Snapshot) {
	if snap.Phase == "idle" && snap.SessionID == "" {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no active session")
		return
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "phase=%s elapsed=%s remaining=%s progress=%.0f%%\n",
		snap.Phase, snap.Elapsed.Round(time.Second), snap.Remaining.Round(time.Second), snap.Progress*100)
	if snap.SavedSessionID != "" {
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "saved %s streak=%d", snap.SavedSessionID, snap.Streak)
		if snap.NotePath != "" {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), " note=%s", snap.NotePath)
		}
		_, _ = fmt.Fprintln(cmd.OutOrStdout())
	}
}

func newTUICmd(basePath, notifierBinary *string) *cobra.Command {
	var duration time.Duration
	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Run the stillpoint terminal UI",
		RunE: func(_ *cobra.Command, _ []string) error {
			app, err := loadApp(*basePath, *notifierBinary)
			if err != nil {
				return err
			}
			return bootstrap.RunTUI(app, duration)
		},
	}
	cmd.Flags().DurationVar(&duration, "duration", 10*time.Minute, "session length used by the start key")
	return cmd
}

func newStartCmd(basePath, notifierBinary *string) *cobra.Command {
	var duration time.Duration
	cmd := &cobra.Command{
		Use:   "start --duration <length>",
		Short: "Start a meditation session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*basePath, *notifierBinary)
			if err != nil {
				return err
			}
			snap, err := app.TimerCLI.Start(context.Background(), duration)
			if err != nil {
				return err
			}
			if !snap.Applied {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "a session is already running")
			}
			printSnapshot(cmd, snap)
			return nil
		},
	}
	cmd.Flags().DurationVar(&duration, "duration", 10*time.Minute, "session length (minimum 1m)")
	return cmd
}

func newPauseCmd(basePath, notifierBinary *string) *cobra.Command {
	return &cobra.Command{
		Use:   "pause",
		Short: "Pause the running session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*basePath, *notifierBinary)
			if err != nil {
				return err
			}
			snap, err := app.TimerCLI.Pause(context.Background())
			if err != nil {
				return err
			}
			printSnapshot(cmd, snap)
			return nil
		},
	}
}

func newResumeCmd(basePath, notifierBinary *string) *cobra.Command {
	return &cobra.Command{
		Use:   "resume",
		Short: "Resume the paused session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*basePath, *notifierBinary)
			if err != nil {
				return err
			}
			snap, err := app.TimerCLI.Resume(context.Background())
			if err != nil {
				return err
			}
			printSnapshot(cmd, snap)
			return nil
		},
	}
}

func newStopCmd(basePath, notifierBinary *string) *cobra.Command {
	return &cobra.Command{
		Use:   "stop",
		Short: "End the session early and record it",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*basePath, *notifierBinary)
			if err != nil {
				return err
			}
			snap, err := app.TimerCLI.Stop(context.Background())
			if err != nil {
				return err
			}
			printSnapshot(cmd, snap)
			return nil
		},
	}
}

func newStatusCmd(basePath, notifierBinary *string) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the session clock, finalizing an elapsed session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*basePath, *notifierBinary)
			if err != nil {
				return err
			}
			snap, err := app.TimerCLI.Status(context.Background())
			if err != nil {
				return err
			}
			if snap.CompletedNow {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "session complete")
			}
			printSnapshot(cmd, snap)
			return nil
		},
	}
}

func newHistoryCmd(basePath, notifierBinary *string) *cobra.Command {
	history := &cobra.Command{Use: "history", Short: "Session history"}

	history.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List recorded sessions, newest first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*basePath, *notifierBinary)
			if err != nil {
				return err
			}
			records, err := app.HistoryCLI.List(context.Background())
			if err != nil {
				return err
			}
			if len(records) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no sessions recorded")
				return nil
			}
			for _, r := range records {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\tplanned=%s actual=%s completed=%t\n",
					r.ID, r.StartedAt.Format("2006-01-02 15:04"),
					r.PlannedDuration.Round(time.Second), r.ActualDuration.Round(time.Second), r.Completed)
			}
			return nil
		},
	})

	var deleteID string
	deleteCmd := &cobra.Command{
		Use:   "delete --id <id>",
		Short: "Delete one session record",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(deleteID) == "" {
				return fmt.Errorf("--id is required")
			}
			app, err := loadApp(*basePath, *notifierBinary)
			if err != nil {
				return err
			}
			if err := app.HistoryCLI.Delete(context.Background(), deleteID); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", deleteID)
			return nil
		},
	}
	deleteCmd.Flags().StringVar(&deleteID, "id", "", "session id")
	history.AddCommand(deleteCmd)

	history.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Delete all session records",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*basePath, *notifierBinary)
			if err != nil {
				return err
			}
			n, err := app.HistoryCLI.DeleteAll(context.Background())
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "deleted %d session(s)\n", n)
			return nil
		},
	})
	return history
}

func newStreakCmd(basePath, notifierBinary *string) *cobra.Command {
	return &cobra.Command{
		Use:   "streak",
		Short: "Show consecutive practice days",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*basePath, *notifierBinary)
			if err != nil {
				return err
			}
			streak, err := app.HistoryCLI.Streak(context.Background())
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "streak: %d day(s)\n", streak)
			return nil
		},
	}
}

func newPrefsCmd(basePath, notifierBinary *string) *cobra.Command {
	prefs := &cobra.Command{Use: "prefs", Short: "Notification preferences"}

	prefs.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current preferences",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*basePath, *notifierBinary)
			if err != nil {
				return err
			}
			out, err := app.SettingsCLI.Show(context.Background())
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "enabled=%t interval=%s markers=%s\n",
				out.Enabled, out.Interval, strings.Join(out.Markers, ","))
			return nil
		},
	})

	var interval string
	var markers []string
	var enabled, disabled bool
	set := &cobra.Command{
		Use:   "set",
		Short: "Update preferences (only the flags given change)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if enabled && disabled {
				return fmt.Errorf("--enable and --disable are mutually exclusive")
			}
			input := settingsdto.SetInput{}
			if enabled {
				v := true
				input.Enabled = &v
			}
			if disabled {
				v := false
				input.Enabled = &v
			}
			if cmd.Flags().Changed("interval") {
				input.Interval = &interval
			}
			if cmd.Flags().Changed("markers") {
				input.Markers = markers
			}
			app, err := loadApp(*basePath, *notifierBinary)
			if err != nil {
				return err
			}
			out, err := app.SettingsCLI.Set(context.Background(), input)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "enabled=%t interval=%s markers=%s\n",
				out.Enabled, out.Interval, strings.Join(out.Markers, ","))
			return nil
		},
	}
	set.Flags().BoolVar(&enabled, "enable", false, "enable interval and marker alerts")
	set.Flags().BoolVar(&disabled, "disable", false, "disable interval and marker alerts")
	set.Flags().StringVar(&interval, "interval", "none", "check-in interval: none|1m|2m|5m|10m")
	set.Flags().StringSliceVar(&markers, "markers", nil, "progress markers: 25pct|50pct|75pct|2min-left|1min-left")
	prefs.AddCommand(set)
	return prefs
}

func newMoodCmd(basePath, notifierBinary *string) *cobra.Command {
	var rating int
	var note string
	cmd := &cobra.Command{
		Use:   "mood --rating <1-5>",
		Short: "Log a post-session mood entry",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*basePath, *notifierBinary)
			if err != nil {
				return err
			}
			if err := app.HealthCLI.LogMood(context.Background(), rating, note); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "mood logged")
			return nil
		},
	}
	cmd.Flags().IntVar(&rating, "rating", 0, "mood rating 1-5")
	cmd.Flags().StringVar(&note, "note", "", "optional note")
	return cmd
}
