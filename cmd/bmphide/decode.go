package main

import (
	"os"

	"github.com/andresmejia3/bmphide/pkg/stego"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	decodeFlags struct {
		Image      string
		Out        string
		SeedValue  string
		SeedString string
		Overwrite  bool
		ECC        bool
		Progress   bool
	}
)

var decodeCmd = &cobra.Command{
	Use:   "decode",
	Short: "Extract hidden data from a BMP image",
	Run: func(cmd *cobra.Command, args []string) {
		seed, seedString, err := resolveSeed(decodeFlags.SeedValue, decodeFlags.SeedString)
		if err != nil {
			log.Fatal().Err(err).Msg("Invalid seed")
		}

		payload, err := stego.Reveal(&stego.RevealArgs{
			ImagePath:  decodeFlags.Image,
			Seed:       seed,
			SeedString: seedString,
			ECC:        boolOption(cmd, "ecc", decodeFlags.ECC, conf.ECC),
			Progress:   decodeFlags.Progress,
			Output:     decodeFlags.Out,
			Overwrite:  boolOption(cmd, "overwrite", decodeFlags.Overwrite, conf.Overwrite),
			Writer:     os.Stdout,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to decode data")
		}

		if decodeFlags.Out != "" {
			log.Info().Str("output", decodeFlags.Out).Int("bytes", len(payload)).Msg("Data extracted")
		}
	},
}

func init() {
	rootCmd.AddCommand(decodeCmd)

	decodeCmd.Flags().StringVarP(&decodeFlags.Image, "image-in", "i", "", "Path to the encoded BMP image (required)")
	decodeCmd.MarkFlagRequired("image-in")
	decodeCmd.Flags().StringVarP(&decodeFlags.Out, "data-out", "o", "", "Output path for the extracted data (default: stdout)")
	addSeedFlags(decodeCmd, &decodeFlags.SeedValue, &decodeFlags.SeedString)
	decodeCmd.Flags().BoolVar(&decodeFlags.Overwrite, "overwrite", false, "Replace the output file if it exists")
	decodeCmd.Flags().BoolVar(&decodeFlags.ECC, "ecc", false, "Payload was encoded with --ecc")
	decodeCmd.Flags().BoolVar(&decodeFlags.Progress, "progress", false, "Show a progress bar")
}
