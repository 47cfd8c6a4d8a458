package main

import (
	"os"

	"github.com/andresmejia3/bmphide/internal/config"
	"github.com/andresmejia3/bmphide/pkg/stego"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// Global flags
var (
	verbose    bool
	configPath string
)

// conf holds the defaults loaded from --config.
var conf = config.Default()

var rootCmd = &cobra.Command{
	Use:   "bmphide",
	Short: "Hide data in the pixel bytes of BMP images",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

		loaded, err := config.Load(configPath)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to load config")
		}
		conf = loaded

		if verbose || (conf.Verbose && !cmd.Flags().Changed("verbose")) {
			zerolog.SetGlobalLevel(zerolog.DebugLevel)
		} else {
			zerolog.SetGlobalLevel(zerolog.InfoLevel)
		}
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a YAML file with default flag values")
}

// boolOption returns the flag value when it was given on the command line,
// otherwise the config default.
func boolOption(cmd *cobra.Command, name string, value, fallback bool) bool {
	if cmd.Flags().Changed(name) {
		return value
	}
	return fallback
}

// resolveSeed turns the --seed-value / --seed-string flags into the form the
// stego file surface expects, falling back to the config passphrase.
func resolveSeed(value, text string) (*uint64, string, error) {
	if value != "" {
		seed, err := stego.ParseSeed(value)
		if err != nil {
			return nil, "", err
		}
		return &seed, "", nil
	}
	if text != "" {
		return nil, text, nil
	}
	return nil, conf.Seed, nil
}

func addSeedFlags(cmd *cobra.Command, value, text *string) {
	cmd.Flags().StringVar(value, "seed-value", "", "Numeric seed (signed or unsigned 64-bit)")
	cmd.Flags().StringVar(text, "seed-string", "", "Passphrase the seed is derived from")
	cmd.MarkFlagsMutuallyExclusive("seed-value", "seed-string")
}
