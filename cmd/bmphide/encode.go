package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/andresmejia3/bmphide/pkg/stego"
	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	encodeFlags struct {
		Image      string
		Out        string
		Msg        string
		File       string
		SeedValue  string
		SeedString string
		Force      bool
		Overwrite  bool
		ECC        bool
		Progress   bool
	}
)

var encodeCmd = &cobra.Command{
	Use:   "encode",
	Short: "Hide a message or file in a BMP image",
	Run: func(cmd *cobra.Command, args []string) {
		if encodeFlags.Msg != "" && encodeFlags.File != "" {
			log.Fatal().Msg("message and data-in flags cannot both be provided")
		}

		seed, seedString, err := resolveSeed(encodeFlags.SeedValue, encodeFlags.SeedString)
		if err != nil {
			log.Fatal().Err(err).Msg("Invalid seed")
		}

		if err := os.MkdirAll(filepath.Dir(encodeFlags.Out), 0755); err != nil {
			log.Fatal().Err(err).Msg("Failed to create output directory")
		}

		result, err := stego.Conceal(&stego.ConcealArgs{
			ImagePath:  encodeFlags.Image,
			Output:     encodeFlags.Out,
			Message:    encodeFlags.Msg,
			File:       encodeFlags.File,
			Stdin:      os.Stdin,
			Seed:       seed,
			SeedString: seedString,
			Force:      boolOption(cmd, "force", encodeFlags.Force, conf.Force),
			Overwrite:  boolOption(cmd, "overwrite", encodeFlags.Overwrite, conf.Overwrite),
			ECC:        boolOption(cmd, "ecc", encodeFlags.ECC, conf.ECC),
			Progress:   encodeFlags.Progress,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to encode data")
		}

		log.Info().
			Str("output", encodeFlags.Out).
			Str("payload", humanize.Bytes(uint64(result.PayloadSize))).
			Str("embedded", humanize.Bytes(uint64(result.EmbeddedSize))).
			Msg("Data encoded")

		if result.SeedGenerated {
			fmt.Printf("Data inserted with %d seed\n", result.Seed)
		}
	},
}

func init() {
	rootCmd.AddCommand(encodeCmd)

	encodeCmd.Flags().StringVarP(&encodeFlags.Image, "image-in", "i", "", "Path to the carrier BMP image (required)")
	encodeCmd.MarkFlagRequired("image-in")
	encodeCmd.Flags().StringVarP(&encodeFlags.Out, "image-out", "o", "", "Output path for the encoded image (required)")
	encodeCmd.MarkFlagRequired("image-out")
	encodeCmd.Flags().StringVarP(&encodeFlags.Msg, "message", "m", "", "Message to hide")
	encodeCmd.Flags().StringVarP(&encodeFlags.File, "data-in", "f", "", "Path to a file to hide (overrides message). Use '-' for stdin.")
	addSeedFlags(encodeCmd, &encodeFlags.SeedValue, &encodeFlags.SeedString)
	encodeCmd.Flags().BoolVar(&encodeFlags.Force, "force", false, "Encode even if the image already carries data")
	encodeCmd.Flags().BoolVar(&encodeFlags.Overwrite, "overwrite", false, "Replace the output file if it exists")
	encodeCmd.Flags().BoolVar(&encodeFlags.ECC, "ecc", false, "Wrap the payload in a Reed-Solomon envelope")
	encodeCmd.Flags().BoolVar(&encodeFlags.Progress, "progress", false, "Show a progress bar")
}
