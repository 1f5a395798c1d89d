// Package cli exposes the offer browser and the shopping list as commands.
package cli

import (
	"fmt"
	"os"

	"comparador/client/internal/config"
	"comparador/client/internal/container"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

type rootFlags struct {
	ConfigPath string
	Verbose    bool
}

// app is filled in before any subcommand runs.
type app struct {
	container *container.Container
}

// NewRootCommand builds the command tree. opts are passed to the container.
func NewRootCommand(opts ...container.Option) *cobra.Command {
	var flags rootFlags
	a := &app{}

	root := &cobra.Command{
		Use:           "comparador",
		Short:         "Compare grocery offers across supermarkets.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(flags.ConfigPath)
			if err != nil {
				return err
			}
			if err := setupLogging(cfg.Log, flags.Verbose); err != nil {
				return err
			}
			log.Debugf("Using price API at %s", cfg.API.BaseURL)

			c, err := container.New(cmd.Context(), cfg, opts...)
			if err != nil {
				return fmt.Errorf("failed to initialize container: %w", err)
			}
			a.container = c
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if a.container == nil {
				return nil
			}
			return a.container.Close()
		},
	}

	root.PersistentFlags().StringVar(&flags.ConfigPath, "config", "", "Path to a YAML config file (default ./config.yaml)")
	root.PersistentFlags().BoolVarP(&flags.Verbose, "verbose", "v", false, "Enable debug logging")

	root.AddCommand(newFiltersCommand(a))
	root.AddCommand(newOffersCommand(a))
	root.AddCommand(newHistoryCommand(a))
	root.AddCommand(newSuggestCommand(a))
	root.AddCommand(newListCommand(a))
	return root
}

func setupLogging(cfg config.LogConfig, verbose bool) error {
	level, err := log.ParseLevel(cfg.Level)
	if err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}
	if verbose {
		level = log.DebugLevel
	}
	log.SetLevel(level)
	log.SetOutput(os.Stderr)
	if cfg.Format == "json" {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}
	return nil
}

func validateFormat(format string) error {
	switch format {
	case "text", "html":
		return nil
	default:
		return fmt.Errorf("format must be text or html, got %q", format)
	}
}
