package main

import (
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"vj-go/internal/app"
	"vj-go/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		paths, err := app.ResolvePaths()
		if err != nil {
			return fmt.Errorf("failed to resolve paths: %w", err)
		}

		journalID := uuid.New().String()
		cfg := paths.NewConfig(journalID)

		if err := config.Init(paths.ConfigFile, cfg); err != nil {
			return fmt.Errorf("failed to initialize config: %w", err)
		}

		fmt.Printf("Configuration initialized at %s\n", paths.ConfigFile)
		fmt.Printf("Journal ID: %s\n", journalID)
		fmt.Printf("Base Dir:   %s\n", paths.Home)
		return nil
	},
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "View configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		paths, err := app.ResolvePaths()
		if err != nil {
			return fmt.Errorf("failed to resolve paths: %w", err)
		}
		cfg, err := config.ReadFromFile(paths.ConfigFile)
		if err != nil {
			return fmt.Errorf("failed to read config: %w", err)
		}

		fmt.Printf("Configuration from %s:\n\n", paths.ConfigFile)
		fmt.Printf("Journal ID:       %s\n", cfg.JournalID)
		fmt.Printf("Base Dir:         %s\n", cfg.BaseDir)
		dataFile, err := app.JournalFile(cfg)
		if err != nil {
			return err
		}
		if dataFile == "" {
			dataFile = "(in memory)"
		}
		fmt.Printf("Storage:          %s %s\n", cfg.Storage.Type, dataFile)
		fmt.Printf("Log File:         %s\n", app.LogFile(cfg))
		fmt.Printf("Archive:          %s %s\n", cfg.Archive.Type, cfg.Archive.Root)
		fmt.Printf("Encryption:       %s\n", cfg.Encryption.Type)
		fmt.Printf("Default Currency: %s\n", cfg.Settings.DefaultCurrency)
		fmt.Printf("Auto Save:        %t\n", cfg.Settings.AutoSave)

		keys := make([]string, 0, len(cfg.Settings.Custom))
		for k := range cfg.Settings.Custom {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Printf("%s = %s\n", k, cfg.Settings.Custom[k])
		}
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set KEY VALUE",
	Short: "Change a setting (default_currency, auto_save, or any custom key)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		paths, err := app.ResolvePaths()
		if err != nil {
			return fmt.Errorf("failed to resolve paths: %w", err)
		}
		cfg, err := config.ReadFromFile(paths.ConfigFile)
		if err != nil {
			return fmt.Errorf("failed to read config: %w", err)
		}
		if err := cfg.Settings.Update(args[0], args[1]); err != nil {
			return err
		}
		if err := config.Save(paths.ConfigFile, cfg); err != nil {
			return err
		}
		fmt.Printf("Set %s = %s\n", args[0], args[1])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd, configListCmd, configSetCmd)
}
