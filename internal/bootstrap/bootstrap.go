package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	captureinadapter "prayerlog/internal/modules/capture/adapter/in"
	captureoutadapter "prayerlog/internal/modules/capture/adapter/out"
	captureservice "prayerlog/internal/modules/capture/service"
	captureusecase "prayerlog/internal/modules/capture/usecase"
	journalinadapter "prayerlog/internal/modules/journal/adapter/in"
	journaloutadapter "prayerlog/internal/modules/journal/adapter/out"
	journalservice "prayerlog/internal/modules/journal/service"
	journalusecase "prayerlog/internal/modules/journal/usecase"
	rewardinadapter "prayerlog/internal/modules/reward/adapter/in"
	rewardoutadapter "prayerlog/internal/modules/reward/adapter/out"
	rewarddomain "prayerlog/internal/modules/reward/domain"
	rewardout "prayerlog/internal/modules/reward/port/out"
	rewardservice "prayerlog/internal/modules/reward/service"
	rewardusecase "prayerlog/internal/modules/reward/usecase"
	sessioninadapter "prayerlog/internal/modules/session/adapter/in"
	sessionoutadapter "prayerlog/internal/modules/session/adapter/out"
	sessionservice "prayerlog/internal/modules/session/service"
	sessionusecase "prayerlog/internal/modules/session/usecase"
	"prayerlog/internal/platform/clock"
	"prayerlog/internal/platform/config"
	"prayerlog/internal/platform/id"
	"prayerlog/internal/platform/identity"
	"prayerlog/internal/platform/logging"
	uiapp "prayerlog/internal/ui/app"
)

type App struct {
	UserID string
	Logger *slog.Logger

	SessionCLI sessioninadapter.CLIHandler
	SessionTUI sessioninadapter.TUIHandler
	CaptureCLI captureinadapter.CLIHandler
	CaptureTUI captureinadapter.TUIHandler
	Rewards    rewardinadapter.Handler
	JournalCLI journalinadapter.CLIHandler

	closers []func() error
}

// New wires every module against the vault described by cfg. Log output goes
// to logOut. The reward tracker is started before New returns.
func New(ctx context.Context, cfg config.Config, logOut io.Writer) (*App, error) {
	if err := os.MkdirAll(config.Dir(cfg.VaultPath), 0o755); err != nil {
		return nil, fmt.Errorf("create state dir: %w", err)
	}
	logger := logging.New(logOut, cfg.LogLevel)
	clk := clock.SystemClock{}
	ids := id.UUIDv7{}
	who := identity.Static(cfg.UserID)
	app := &App{UserID: cfg.UserID, Logger: logger}

	recordIndex, err := sessionoutadapter.NewSQLiteRecordIndex(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("new record index: %w", err)
	}
	app.closers = append(app.closers, recordIndex.Close)
	sessionUC := sessionusecase.NewInteractor(sessionservice.NewRecordService(
		ids,
		sessionoutadapter.NewVaultRecordStore(cfg.VaultPath),
		recordIndex,
		cfg.StoreTimeout,
		logger.With("module", "session"),
	))

	table, err := levelTable(cfg.Reward.Levels)
	if err != nil {
		_ = app.Close()
		return nil, err
	}
	ackStore, err := app.ackStore(ctx, cfg)
	if err != nil {
		_ = app.Close()
		return nil, err
	}
	progress := rewardservice.NewProgressService(table, cfg.Reward.SecondsPerPoint)
	rewardLog := logger.With("module", "reward")
	tracker := rewardservice.NewTracker(
		who,
		rewardoutadapter.NewSessionFeed(sessionUC),
		progress,
		rewardservice.NewNotifier(ackStore, cfg.StoreTimeout, rewardLog),
		rewardLog,
	)
	rewardUC := rewardusecase.NewInteractor(tracker, progress)
	app.closers = append(app.closers, rewardUC.Close)

	stopwatch := captureservice.NewStopwatch(
		clk,
		clock.NewSystemTicker,
		captureoutadapter.NewSessionSink(sessionUC),
		captureservice.Options{AllowFutureDates: cfg.Capture.AllowFutureDates},
		logger.With("module", "capture"),
	)
	captureUC := captureusecase.NewInteractor(stopwatch, who)
	app.closers = append(app.closers, captureUC.Close)

	journalUC := journalusecase.NewInteractor(journalservice.NewNoteService(
		clk,
		ids,
		journaloutadapter.NewVaultNoteStore(cfg.VaultPath),
		cfg.StoreTimeout,
		logger.With("module", "journal"),
	))

	// A vault that cannot be listed still allows reindex and journal commands.
	if err := rewardUC.Start(ctx); err != nil {
		rewardLog.Warn("reward tracker not started", "error", err)
	}

	app.SessionCLI = sessioninadapter.NewCLIHandler(sessionUC)
	app.SessionTUI = sessioninadapter.NewTUIHandler(sessionUC, who)
	app.CaptureCLI = captureinadapter.NewCLIHandler(captureUC)
	app.CaptureTUI = captureinadapter.NewTUIHandler(captureUC)
	app.Rewards = rewardinadapter.NewHandler(rewardUC)
	app.JournalCLI = journalinadapter.NewCLIHandler(journalUC)
	return app, nil
}

// Close releases the stopwatch ticker, the session subscription, the SQLite
// handles and any Redis connection held by the acknowledgement store.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}

func (a *App) ackStore(ctx context.Context, cfg config.Config) (rewardout.KeyValueStore, error) {
	switch cfg.AckStore.Backend {
	case config.AckBackendFile:
		return rewardoutadapter.NewFileKeyValueStore(filepath.Join(config.Dir(cfg.VaultPath), "levelup.json")), nil
	case config.AckBackendRedis:
		store, closeFn, err := rewardoutadapter.NewRedisKeyValueStore(ctx, rewardoutadapter.RedisOptions{
			Address:  cfg.AckStore.Redis.Address,
			Password: cfg.AckStore.Redis.Password,
			DB:       cfg.AckStore.Redis.DB,
		})
		if err != nil {
			return nil, fmt.Errorf("connect ack store: %w", err)
		}
		a.closers = append(a.closers, closeFn)
		return store, nil
	default:
		store, err := rewardoutadapter.NewSQLiteKeyValueStore(cfg.DBPath)
		if err != nil {
			return nil, fmt.Errorf("new ack store: %w", err)
		}
		a.closers = append(a.closers, store.Close)
		return store, nil
	}
}

func levelTable(entries []config.LevelEntry) (rewarddomain.LevelTable, error) {
	if len(entries) == 0 {
		return rewarddomain.DefaultTable(), nil
	}
	levels := make([]rewarddomain.Level, 0, len(entries))
	for _, entry := range entries {
		levels = append(levels, rewarddomain.Level{
			Level:          entry.Level,
			TotalPoints:    entry.TotalPoints,
			TimeEquivalent: entry.TimeEquivalent,
			Title:          entry.Title,
		})
	}
	table, err := rewarddomain.NewLevelTable(levels)
	if err != nil {
		return rewarddomain.LevelTable{}, fmt.Errorf("reward.levels: %w", err)
	}
	return table, nil
}

func RunTUI(app *App) error {
	model := uiapp.NewModel(app.CaptureTUI, app.Rewards, app.SessionTUI, nil)
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err := program.Run()
	return err
}
