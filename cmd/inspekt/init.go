package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/aretw0/inspekt"
	"github.com/aretw0/inspekt/pkg/config"
)

func newInitCmd() *cobra.Command {
	var writeConfig bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create the storage directory",
		Long: `Create the storage directory (and any missing parents). Running it again
is harmless. With --write-config a default inspekt.yaml is written to the
current directory, unless one exists.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if writeConfig {
				if err := writeDefaultConfig(cmd); err != nil {
					return err
				}
			}

			cfg, err := loadConfig(cmd.Context())
			if err != nil {
				return err
			}
			if _, err := inspekt.Init(cfg.Root,
				inspekt.WithConfig(cfg),
				inspekt.WithLogger(slog.Default()),
			); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Initialized storage directory", cfg.Root)
			return nil
		},
	}

	cmd.Flags().BoolVar(&writeConfig, "write-config", false, "Also write a default inspekt.yaml")
	return cmd
}

func writeDefaultConfig(cmd *cobra.Command) error {
	data, err := yaml.Marshal(config.Default())
	if err != nil {
		return err
	}

	path := filepath.Join(".", config.FileName)
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		if os.IsExist(err) {
			slog.Info("config already exists, left untouched", "path", path)
			return nil
		}
		return err
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), "Wrote", path)
	return nil
}
