package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"pulpit/internal/config"
)

func newConfigCommand(ctx *commandContext) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration utilities",
	}

	configCmd.AddCommand(newConfigShowCommand(ctx))
	configCmd.AddCommand(newConfigInitCommand())

	return configCmd
}

func newConfigShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the resolved configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			var path string
			if ctx.configFlag != nil {
				path = strings.TrimSpace(*ctx.configFlag)
			}
			cfg, resolved, exists, err := config.Load(path)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if exists {
				fmt.Fprintf(out, "Config file: %s\n", resolved)
			} else {
				fmt.Fprintf(out, "Config file: %s (not found, using defaults)\n", resolved)
			}
			fmt.Fprintf(out, "Catalog dir:      %s\n", cfg.Paths.CatalogDir)
			fmt.Fprintf(out, "Image dir:        %s\n", cfg.Paths.ImageDir)
			fmt.Fprintf(out, "Backup dir:       %s\n", cfg.Paths.BackupDir)
			fmt.Fprintf(out, "Autosave quiet:   %d ms\n", cfg.Catalog.AutosaveQuietMillis)
			fmt.Fprintf(out, "Backup timeout:   %d s\n", cfg.Catalog.BackupTimeoutSeconds)
			fmt.Fprintf(out, "Backup on close:  %s\n", yesNo(cfg.Catalog.AutoBackupOnClose))
			fmt.Fprintf(out, "Max auto backups: %d\n", cfg.Catalog.MaxAutoBackups)
			fmt.Fprintf(out, "Max image bytes:  %d\n", cfg.Catalog.MaxImageBytes)
			fmt.Fprintf(out, "Log format:       %s\n", cfg.Logging.Format)
			fmt.Fprintf(out, "Log level:        %s\n", cfg.Logging.Level)
			return nil
		},
	}
}

func newConfigInitCommand() *cobra.Command {
	var targetPath string
	var overwrite bool

	cmd := &cobra.Command{
		Use:         "init",
		Short:       "Create a sample configuration file",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			target := strings.TrimSpace(targetPath)
			if target == "" {
				defaultPath, err := config.DefaultConfigPath()
				if err != nil {
					return fmt.Errorf("determine default config path: %w", err)
				}
				target = defaultPath
			} else {
				expanded, err := config.ExpandPath(target)
				if err != nil {
					return fmt.Errorf("resolve config path: %w", err)
				}
				target = expanded
			}

			if !overwrite {
				if _, err := os.Stat(target); err == nil {
					return fmt.Errorf("config file already exists at %s (use --force to overwrite)", target)
				}
			}

			if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
				return fmt.Errorf("create config directory: %w", err)
			}
			if err := config.CreateSample(target); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote sample configuration to %s\n", target)
			return nil
		},
	}

	cmd.Flags().StringVar(&targetPath, "path", "", "Destination for the sample config")
	cmd.Flags().BoolVar(&overwrite, "force", false, "Overwrite an existing file")

	return cmd
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
