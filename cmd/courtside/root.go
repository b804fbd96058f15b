package main

import (
	"strings"
	"sync"

	"github.com/genricoloni/courtside/internal/config"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	settings   config.Settings
	configErr  error
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (config.Settings, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		c.settings, c.configErr = config.Load(path)
	})
	return c.settings, c.configErr
}

// cliLogger stays silent unless debug logging is enabled, so log lines do not
// interleave with progress bars and tables
func (c *commandContext) cliLogger() *zap.Logger {
	if !c.settings.Debug {
		return zap.NewNop()
	}
	logger, err := zap.NewDevelopment()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

func newRootCommand() *cobra.Command {
	var configFlag string

	ctx := newCommandContext(&configFlag)

	rootCmd := &cobra.Command{
		Use:           "courtside",
		Short:         "Cricket match playback with synchronized events and commentary",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Name() == "split" {
				return nil
			}
			_, err := ctx.ensureConfig()
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path")

	rootCmd.AddCommand(newRunCommand(ctx))
	rootCmd.AddCommand(newProcessCommand(ctx))
	rootCmd.AddCommand(newEventsCommand(ctx))
	rootCmd.AddCommand(newSplitCommand())

	return rootCmd
}
