package main

import (
	"fmt"
	"os"

	"github.com/andresmejia3/bmphide/pkg/stego"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	analyzeFlags struct {
		Original string
		Stego    string
		Heatmap  string
	}
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze the difference between an original and an encoded image",
	Long:  `Calculates PSNR (Peak Signal-to-Noise Ratio) and generates a heatmap image highlighting modified pixels.`,
	Run: func(cmd *cobra.Command, args []string) {
		original, err := os.ReadFile(analyzeFlags.Original)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to read original image")
		}
		encoded, err := os.ReadFile(analyzeFlags.Stego)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to read encoded image")
		}

		heatmap, err := os.Create(analyzeFlags.Heatmap)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to create heatmap file")
		}
		defer heatmap.Close()

		result, err := stego.Analyze(&stego.AnalyzeArgs{
			Original: original,
			Stego:    encoded,
			Heatmap:  heatmap,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("Analysis failed")
		}

		fmt.Printf("Analysis Complete:\n")
		fmt.Printf("------------------\n")
		fmt.Printf("MSE (Mean Squared Error):       %.4f\n", result.MSE)
		fmt.Printf("PSNR (Peak Signal-to-Noise):    %.2f dB\n", result.PSNR)
		fmt.Printf("Modified Pixels:                %d\n", result.ModifiedPixels)
		fmt.Printf("Modified Bytes:                 %d\n", result.ModifiedBytes)
		fmt.Printf("Heatmap saved to:               %s\n", analyzeFlags.Heatmap)
		fmt.Printf("\nInterpretation:\n")
		fmt.Printf(" > 30dB: Good quality (hard to detect visually)\n")
		fmt.Printf(" > 40dB: Excellent quality\n")
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().StringVarP(&analyzeFlags.Original, "original", "o", "", "Path to original image (required)")
	analyzeCmd.MarkFlagRequired("original")
	analyzeCmd.Flags().StringVarP(&analyzeFlags.Stego, "stego", "s", "", "Path to encoded image (required)")
	analyzeCmd.MarkFlagRequired("stego")
	analyzeCmd.Flags().StringVarP(&analyzeFlags.Heatmap, "heatmap", "d", "heatmap.png", "Output path for the difference heatmap image")
}
