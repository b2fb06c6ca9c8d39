package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/go-logr/logr"
	"github.com/spf13/cobra"

	"backoffice/internal/api"
	"backoffice/internal/config"
	"backoffice/internal/entities"
	"backoffice/internal/eventbus"
	"backoffice/internal/logger"
	"backoffice/internal/ui"
)

var (
	configPath string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "backoffice",
	Short: "Terminal admin console for members, orders, posts and documents",
	Long: `backoffice manages the admin REST backend from the terminal.

Without a subcommand it starts the interactive console. Use "backoffice list"
for scripts and "backoffice mock-api" to run a local backend with sample data.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runTUI(cmd.Context())
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default $XDG_CONFIG_HOME/backoffice/config.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "write debug entries to the log file")

	rootCmd.AddCommand(listCmd, mockAPICmd, configCmd, versionCmd)
}

// Execute runs the root command until it finishes or the process is
// interrupted
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

// app is what every backend command builds from the config
type app struct {
	cfg      *config.Config
	log      logr.Logger
	bus      eventbus.EventBus
	client   *api.Client
	registry *entities.Registry
}

func logLevel(cfg *config.Config) string {
	if verbose || cfg.LogLevel > 0 {
		return "debug"
	}
	return "info"
}

func setup() (*app, error) {
	cfg, err := config.NewConfigService(configPath).Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	log, err := logger.Setup(logger.Options{Path: cfg.LogFile, Level: logLevel(cfg)})
	if err != nil {
		return nil, err
	}

	bus := eventbus.New(logger.Named("eventbus"))
	client := api.New(api.Options{
		BaseURL:  cfg.APIURL,
		Token:    cfg.Token,
		Timeout:  cfg.RequestTimeout(),
		RetryMax: cfg.RetryMax,
		Logger:   logger.Named("api"),
	})

	registry, err := entities.NewRegistry(entities.Deps{
		API:       client,
		Config:    cfg,
		Publisher: bus,
		Logger:    logger.Named("entities"),
	})
	if err != nil {
		bus.Close()
		return nil, err
	}

	log.Info("backoffice started", "api", cfg.APIURL, "config", configPath)
	return &app{cfg: cfg, log: *log, bus: bus, client: client, registry: registry}, nil
}

func (a *app) close() {
	a.bus.Close()
	logger.Sync()
}

// uiEvents are forwarded from the bus to the Bubble Tea program
var uiEvents = []eventbus.EventType{
	eventbus.EventListLoaded,
	eventbus.EventBulkActionCompleted,
	eventbus.EventDetailSaved,
	eventbus.EventDetailDeleted,
	eventbus.EventAdminCreated,
	eventbus.EventError,
}

func runTUI(ctx context.Context) error {
	a, err := setup()
	if err != nil {
		return err
	}

	model := ui.NewModel(a.bus, a.cfg, a.registry, logger.Named("ui"))
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	model.SetProgram(p)

	// Set up event forwarding to UI
	eventChan := make(chan eventbus.DomainEvent, 100)
	unsubscribe := make([]func(), 0, len(uiEvents))
	for _, t := range uiEvents {
		unsubscribe = append(unsubscribe, a.bus.Subscribe(t, func(e eventbus.DomainEvent) {
			select {
			case eventChan <- e:
			default:
				// Channel full, drop event
				a.log.Info("event channel full, dropping event", "type", e.Type())
			}
		}))
	}

	// Start forwarding events to UI in background
	go func() {
		for event := range eventChan {
			p.Send(ui.EventMsg{Event: event})
		}
	}()

	_, runErr := p.Run()

	// Cleanup
	for _, u := range unsubscribe {
		u()
	}
	a.close()
	close(eventChan)

	if runErr != nil && ctx.Err() == nil {
		return fmt.Errorf("run console: %w", runErr)
	}
	return nil
}
