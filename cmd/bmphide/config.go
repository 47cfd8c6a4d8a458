package main

import (
	"os"

	"github.com/andresmejia3/bmphide/internal/config"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the defaults file",
}

var configInitCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write a defaults file with the built-in values",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		path := args[0]
		if _, err := os.Stat(path); err == nil {
			log.Fatal().Str("path", path).Msg("Config file already exists")
		}
		if err := config.Save(path, config.Default()); err != nil {
			log.Fatal().Err(err).Msg("Failed to write config")
		}
		log.Info().Str("path", path).Msg("Config written")
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd)
}
