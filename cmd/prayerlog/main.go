package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"prayerlog/internal/bootstrap"
	capturedto "prayerlog/internal/modules/capture/dto"
	"prayerlog/internal/platform/config"
	"prayerlog/internal/platform/duration"
	apperrors "prayerlog/internal/platform/errors"
)

func main() {
	// A missing .env is normal; PRAYERLOG_* variables may come from the shell.
	_ = godotenv.Load()
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var vaultPath string

	root := &cobra.Command{
		Use:           "prayerlog",
		Short:         "Prayer time tracker with levels",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&vaultPath, "vault", ".", "vault directory holding session notes")

	root.AddCommand(newTUICmd(&vaultPath))
	root.AddCommand(newSessionCmd(&vaultPath))
	root.AddCommand(newProgressCmd(&vaultPath))
	root.AddCommand(newLevelsCmd(&vaultPath))
	root.AddCommand(newLevelUpCmd(&vaultPath))
	root.AddCommand(newJournalCmd(&vaultPath))
	root.AddCommand(newReindexCmd(&vaultPath))
	return root
}

func loadApp(vaultPath string, logOut io.Writer) (*bootstrap.App, error) {
	cfg, err := config.Load(vaultPath)
	if err != nil {
		return nil, err
	}
	return bootstrap.New(context.Background(), cfg, logOut)
}

// withApp loads the app, runs fn and closes the app again.
func withApp(vaultPath string, fn func(ctx context.Context, app *bootstrap.App) error) error {
	app, err := loadApp(vaultPath, os.Stderr)
	if err != nil {
		return err
	}
	defer func() { _ = app.Close() }()
	return fn(context.Background(), app)
}

func requireUser(app *bootstrap.App) (string, error) {
	userID := strings.TrimSpace(app.UserID)
	if userID == "" {
		return "", fmt.Errorf("%w: set user_id in config.yaml or PRAYERLOG_USER_ID", apperrors.ErrNotSignedIn)
	}
	return userID, nil
}

func newTUICmd(vaultPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Run the stopwatch terminal UI",
		RunE: func(_ *cobra.Command, _ []string) error {
			if err := os.MkdirAll(config.Dir(*vaultPath), 0o755); err != nil {
				return err
			}
			logFile, err := os.OpenFile(filepath.Join(config.Dir(*vaultPath), "prayerlog.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
			if err != nil {
				return fmt.Errorf("open log file: %w", err)
			}
			defer func() { _ = logFile.Close() }()

			app, err := loadApp(*vaultPath, logFile)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()
			return bootstrap.RunTUI(app)
		},
	}
}

func newSessionCmd(vaultPath *string) *cobra.Command {
	session := &cobra.Command{Use: "session", Short: "Prayer session records"}

	var date, length string
	add := &cobra.Command{
		Use:   "add --duration <d>",
		Short: "Record a session manually",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(length) == "" {
				return fmt.Errorf("--duration is required")
			}
			total, err := duration.Parse(length)
			if err != nil {
				return err
			}
			h, m, s := duration.Split(total)
			return withApp(*vaultPath, func(ctx context.Context, app *bootstrap.App) error {
				out, err := app.CaptureCLI.AddManual(ctx, capturedto.ManualInput{Date: date, Hours: h, Minutes: m, Seconds: s})
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "saved %s on %s id=%s note=%s\n", out.DurationFormatted, out.Date, out.RecordID, out.NotePath)
				printPending(cmd.OutOrStdout(), app)
				return nil
			})
		},
	}
	add.Flags().StringVar(&date, "date", "", "session date YYYY-MM-DD (default today)")
	add.Flags().StringVar(&length, "duration", "", "duration as H:MM:SS, M:SS or 1h20m")

	session.AddCommand(add)

	session.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List all sessions, newest first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(*vaultPath, func(ctx context.Context, app *bootstrap.App) error {
				userID, err := requireUser(app)
				if err != nil {
					return err
				}
				records, err := app.SessionCLI.List(ctx, userID)
				if err != nil {
					return err
				}
				if len(records) == 0 {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no sessions")
					return nil
				}
				for _, r := range records {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\t%s\n", r.ID, r.Date, r.DurationFormatted, r.PrayerType)
				}
				return nil
			})
		},
	})

	session.AddCommand(&cobra.Command{
		Use:   "month [YYYY-MM]",
		Short: "Show one month's sessions and total",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			month := time.Now()
			if len(args) == 1 {
				parsed, err := time.Parse("2006-01", args[0])
				if err != nil {
					return fmt.Errorf("month %q must be YYYY-MM", args[0])
				}
				month = parsed
			}
			return withApp(*vaultPath, func(ctx context.Context, app *bootstrap.App) error {
				userID, err := requireUser(app)
				if err != nil {
					return err
				}
				out, err := app.SessionCLI.Month(ctx, userID, month)
				if err != nil {
					return err
				}
				for _, r := range out.Records {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n", r.Date, r.DurationFormatted, r.PrayerType)
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%04d-%02d total %s (%d sessions)\n", out.Year, out.Month, out.TotalDurationFormatted, len(out.Records))
				return nil
			})
		},
	})

	session.AddCommand(&cobra.Command{
		Use:   "tag <id> <prayer-type>",
		Short: "Set the prayer type of a session",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(*vaultPath, func(ctx context.Context, app *bootstrap.App) error {
				userID, err := requireUser(app)
				if err != nil {
					return err
				}
				out, err := app.SessionCLI.Tag(ctx, userID, args[0], args[1])
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "tagged %s as %s\n", out.ID, out.PrayerType)
				return nil
			})
		},
	})

	session.AddCommand(&cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(*vaultPath, func(ctx context.Context, app *bootstrap.App) error {
				userID, err := requireUser(app)
				if err != nil {
					return err
				}
				if err := app.SessionCLI.Delete(ctx, userID, args[0]); err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", args[0])
				return nil
			})
		},
	})
	return session
}

func newProgressCmd(vaultPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "progress",
		Short: "Show total time, points and level",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(*vaultPath, func(ctx context.Context, app *bootstrap.App) error {
				if _, err := requireUser(app); err != nil {
					return err
				}
				s := app.Rewards.Status(ctx)
				w := cmd.OutOrStdout()
				_, _ = fmt.Fprintf(w, "total: %s\npoints: %d\nlevel: %d %s\n", s.TotalDurationFormatted, s.TotalPoints, s.CurrentLevel, s.CurrentTitle)
				if s.NextLevel > 0 {
					_, _ = fmt.Fprintf(w, "next: level %d %s %d/%d (%.1f%%)\n", s.NextLevel, s.NextTitle, s.NextProgress.Current, s.NextProgress.Required, s.NextProgress.Percentage)
				} else {
					_, _ = fmt.Fprintln(w, "next: top level reached")
				}
				printPending(w, app)
				return nil
			})
		},
	}
}

func newLevelsCmd(vaultPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "levels",
		Short: "List the level table with unlock state",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(*vaultPath, func(ctx context.Context, app *bootstrap.App) error {
				for _, l := range app.Rewards.Levels(ctx) {
					mark := " "
					if l.Unlocked {
						mark = "*"
					}
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s %d\t%d pts\t%s\t%s\t%.0f%%\n", mark, l.Level, l.TotalPoints, l.TimeEquivalent, l.Title, l.Progress.Percentage)
				}
				return nil
			})
		},
	}
}

func newLevelUpCmd(vaultPath *string) *cobra.Command {
	levelUp := &cobra.Command{Use: "levelup", Short: "Level-up notifications"}
	levelUp.AddCommand(&cobra.Command{
		Use:   "ack",
		Short: "Dismiss the pending level-up notification",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(*vaultPath, func(ctx context.Context, app *bootstrap.App) error {
				out, err := app.Rewards.Acknowledge(ctx)
				if err != nil {
					return err
				}
				if !out.Cleared {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no pending level-up")
					return nil
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "acknowledged level %d %s\n", out.Level, out.Title)
				return nil
			})
		},
	})
	return levelUp
}

func newJournalCmd(vaultPath *string) *cobra.Command {
	journal := &cobra.Command{Use: "journal", Short: "Prayer journal notes"}

	var title, text string
	add := &cobra.Command{
		Use:   "add --title <t> --text <body>",
		Short: "Write a journal note",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(*vaultPath, func(ctx context.Context, app *bootstrap.App) error {
				out, err := app.JournalCLI.Add(ctx, app.UserID, title, text)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "note %s saved to %s\n", out.ID, out.NotePath)
				return nil
			})
		},
	}
	add.Flags().StringVar(&title, "title", "", "note title")
	add.Flags().StringVar(&text, "text", "", "note text")

	var editTitle, editText string
	edit := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change a note's title or text",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(*vaultPath, func(ctx context.Context, app *bootstrap.App) error {
				out, err := app.JournalCLI.Edit(ctx, app.UserID, args[0], editTitle, editText)
				if err != nil {
					return err
				}
				if !out.Changed {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no changes")
					return nil
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "note %s updated at %s\n", out.Note.ID, out.Note.NotePath)
				return nil
			})
		},
	}
	edit.Flags().StringVar(&editTitle, "title", "", "new title (empty keeps current)")
	edit.Flags().StringVar(&editText, "text", "", "new text (empty keeps current)")

	var query string
	list := &cobra.Command{
		Use:   "list",
		Short: "List notes, newest first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(*vaultPath, func(ctx context.Context, app *bootstrap.App) error {
				notes, err := app.JournalCLI.List(ctx, app.UserID, query)
				if err != nil {
					return err
				}
				if len(notes) == 0 {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no notes")
					return nil
				}
				for _, n := range notes {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n", n.ID, n.UpdatedAt.Format(time.DateTime), n.Title)
				}
				return nil
			})
		},
	}
	list.Flags().StringVar(&query, "query", "", "case-insensitive search in title and text")

	del := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a note",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(*vaultPath, func(ctx context.Context, app *bootstrap.App) error {
				if err := app.JournalCLI.Delete(ctx, app.UserID, args[0]); err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", args[0])
				return nil
			})
		},
	}

	journal.AddCommand(add, edit, list, del)
	return journal
}

func newReindexCmd(vaultPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "reindex",
		Short: "Rebuild the SQLite session index from vault markdown",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(*vaultPath, func(ctx context.Context, app *bootstrap.App) error {
				if err := app.SessionCLI.Reindex(ctx); err != nil {
					return err
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "reindex completed")
				return nil
			})
		},
	}
}

func printPending(w io.Writer, app *bootstrap.App) {
	s := app.Rewards.Status(context.Background())
	if s.HasPendingLevelUp {
		_, _ = fmt.Fprintf(w, "level up! reached level %d %s (run `prayerlog levelup ack` to dismiss)\n", s.PendingLevel, s.PendingTitle)
	}
}
