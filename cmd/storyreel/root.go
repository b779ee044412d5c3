package main

import (
	"fmt"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"storyreel/internal/config"
)

// commandContext lazily resolves the configuration and API client shared by
// subcommands.
type commandContext struct {
	serverFlag *string
	configFlag *string

	once   sync.Once
	cfg    *config.Config
	path   string
	cfgErr error
}

func newCommandContext(serverFlag, configFlag *string) *commandContext {
	return &commandContext{serverFlag: serverFlag, configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.once.Do(func() {
		c.cfg, c.path, c.cfgErr = config.Load(strings.TrimSpace(*c.configFlag))
	})
	return c.cfg, c.cfgErr
}

// serverAddress prefers the --server flag, falling back to the configured
// daemon bind address.
func (c *commandContext) serverAddress() (string, error) {
	if addr := strings.TrimSpace(*c.serverFlag); addr != "" {
		return addr, nil
	}
	cfg, err := c.ensureConfig()
	if err != nil {
		return "", err
	}
	return cfg.Paths.Bind, nil
}

func (c *commandContext) client() (*apiClient, error) {
	addr, err := c.serverAddress()
	if err != nil {
		return nil, err
	}
	client, err := newAPIClient(addr)
	if err != nil {
		return nil, fmt.Errorf("resolve daemon address %q: %w", addr, err)
	}
	return client, nil
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for current := cmd; current != nil; current = current.Parent() {
		if current.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

func newRootCommand() *cobra.Command {
	var serverFlag string
	var configFlag string

	ctx := newCommandContext(&serverFlag, &configFlag)

	rootCmd := &cobra.Command{
		Use:           "storyreel",
		Short:         "Storyreel narrated-video CLI",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if shouldSkipConfig(cmd) {
				return nil
			}
			_, err := ctx.ensureConfig()
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&serverFlag, "server", "s", "", "Daemon address (host:port or URL)")
	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path")

	rootCmd.AddCommand(newSubmitCommand(ctx))
	rootCmd.AddCommand(newStatusCommand(ctx))
	rootCmd.AddCommand(newJobsCommand(ctx))
	rootCmd.AddCommand(newPingCommand(ctx))
	rootCmd.AddCommand(newConfigCommand())

	return rootCmd
}
