package cmd

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"backoffice/internal/config"
	"backoffice/internal/eventbus"
	"backoffice/internal/logger"
)

var configForce bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the config file",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a config file with default values",
	RunE: func(cmd *cobra.Command, _ []string) error {
		path := configPath
		if path == "" {
			path = config.DefaultPath()
		}
		if _, err := os.Stat(path); err == nil && !configForce {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		} else if err != nil && !errors.Is(err, os.ErrNotExist) {
			return err
		}

		bus := eventbus.New(logger.Named("eventbus"))
		defer bus.Close()

		saved := make(chan string, 1)
		bus.Subscribe(eventbus.EventConfigSaved, func(e eventbus.DomainEvent) {
			saved <- e.(eventbus.ConfigSavedEvent).Path
		})

		if err := config.NewConfigServiceWithBus(path, bus).Save(config.DefaultConfig()); err != nil {
			return err
		}
		select {
		case p := <-saved:
			cmd.Printf("wrote %s\n", p)
		case <-time.After(time.Second):
			cmd.Printf("wrote %s\n", path)
		}
		return nil
	},
}

func init() {
	configInitCmd.Flags().BoolVar(&configForce, "force", false, "overwrite an existing file")
	configCmd.AddCommand(configInitCmd)
}
