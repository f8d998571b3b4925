package bootstrap

import (
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	hclog "github.com/hashicorp/go-hclog"

	alertsoutadapter "stillpoint/internal/modules/alerts/adapter/out"
	alertsout "stillpoint/internal/modules/alerts/port/out"
	alertsservice "stillpoint/internal/modules/alerts/service"
	companionoutadapter "stillpoint/internal/modules/companion/adapter/out"
	healthinadapter "stillpoint/internal/modules/health/adapter/in"
	healthoutadapter "stillpoint/internal/modules/health/adapter/out"
	healthusecase "stillpoint/internal/modules/health/usecase"
	historyinadapter "stillpoint/internal/modules/history/adapter/in"
	historyoutadapter "stillpoint/internal/modules/history/adapter/out"
	historyservice "stillpoint/internal/modules/history/service"
	historyusecase "stillpoint/internal/modules/history/usecase"
	livestatusoutadapter "stillpoint/internal/modules/livestatus/adapter/out"
	livestatusservice "stillpoint/internal/modules/livestatus/service"
	settingsinadapter "stillpoint/internal/modules/settings/adapter/in"
	settingsoutadapter "stillpoint/internal/modules/settings/adapter/out"
	settingsusecase "stillpoint/internal/modules/settings/usecase"
	timerinadapter "stillpoint/internal/modules/timer/adapter/in"
	timeroutadapter "stillpoint/internal/modules/timer/adapter/out"
	timerin "stillpoint/internal/modules/timer/port/in"
	timerservice "stillpoint/internal/modules/timer/service"
	timerusecase "stillpoint/internal/modules/timer/usecase"
	"stillpoint/internal/platform/clock"
	"stillpoint/internal/platform/config"
	"stillpoint/internal/platform/id"
	"stillpoint/internal/platform/wakelock"
	uiapp "stillpoint/internal/ui/app"
)

type App struct {
	TimerCLI    timerinadapter.CLIHandler
	HistoryCLI  historyinadapter.CLIHandler
	SettingsCLI settingsinadapter.CLIHandler
	HealthCLI   healthinadapter.CLIHandler

	timer timerin.Usecase
}

func New(cfg config.Config) (*App, error) {
	logger := hclog.New(&hclog.LoggerOptions{
		Name:   "stillpoint",
		Output: os.Stderr,
		Level:  hclog.LevelFromString(os.Getenv("STILLPOINT_LOG_LEVEL")),
	})
	clk := clock.SystemClock{}
	ids := id.UUID{}

	settingsUC := settingsusecase.NewInteractor(settingsoutadapter.NewYAMLStore(cfg.PrefsPath))

	projector, err := historyoutadapter.NewSQLiteRecordStore(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("new session projector: %w", err)
	}
	historyUC := historyusecase.NewInteractor(historyservice.NewHistoryService(
		clk,
		historyoutadapter.NewMarkdownNoteStore(cfg.BasePath),
		projector,
		logger.Named("history"),
	))

	var notifier alertsout.Service
	if cfg.NotifierBinary != "" {
		notifier = alertsoutadapter.NewPluginNotifier(cfg.NotifierBinary)
	} else {
		notifier = alertsoutadapter.NewLogNotifier(logger.Named("notifier"))
	}
	alerts := alertsservice.NewFacade(
		notifier,
		alertsoutadapter.NewSettingsPreferencesSource(settingsUC),
		logger.Named("alerts"),
	)

	livestatus := livestatusservice.NewPublisher(
		livestatusoutadapter.NewFileSurface(cfg.StatusPath),
		logger.Named("livestatus"),
	)
	healthSink := healthoutadapter.NewJSONLSink(cfg.HealthLogPath)

	timerUC := timerusecase.NewInteractor(
		timerservice.NewTimerService(clk, ids),
		timeroutadapter.NewFileActiveStore(cfg.ActivePath),
		historyUC,
		alerts,
		livestatus,
		timeroutadapter.NewConsoleCue(os.Stdout),
		healthSink,
		companionoutadapter.NewJSONLChannel(cfg.TelemetryPath),
		wakelock.Noop{},
		logger.Named("timer"),
	)

	return &App{
		TimerCLI:    timerinadapter.NewCLIHandler(timerUC),
		HistoryCLI:  historyinadapter.NewCLIHandler(historyUC),
		SettingsCLI: settingsinadapter.NewCLIHandler(settingsUC),
		HealthCLI:   healthinadapter.NewCLIHandler(healthusecase.NewInteractor(clk, healthSink)),
		timer:       timerUC,
	}, nil
}

func RunTUI(app *App, duration time.Duration) error {
	model := uiapp.NewModel(app.timer, duration)
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err := program.Run()
	return err
}
