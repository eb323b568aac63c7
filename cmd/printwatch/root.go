// cmd/printwatch/root.go
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tamzrod/printwatch/internal/config"
)

func newRootCommand() *cobra.Command {
	var configFlag string

	rootCmd := &cobra.Command{
		Use:           "printwatch",
		Short:         "Watch a 3D printer and assemble print timelapses",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path")

	rootCmd.AddCommand(newRunCommand(&configFlag))
	rootCmd.AddCommand(newCheckCommand(&configFlag))

	return rootCmd
}

// loadConfig resolves the full Load -> Validate -> Normalize sequence.
// An absent config file is fatal by contract.
func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return nil, fmt.Errorf("a configuration file is required (--config)")
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if err := config.Validate(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	config.Normalize(cfg)

	return cfg, nil
}
