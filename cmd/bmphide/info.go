package main

import (
	"fmt"
	"os"

	"github.com/andresmejia3/bmphide/pkg/stego"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

var infoCmd = &cobra.Command{
	Use:   "info [image_path]",
	Short: "Inspect a BMP image and display its hidden-data header",
	Long:  `Reads the bitmap headers and the metadata region without a seed. The stored offset is shown as-is; only decoding with the right seed confirms it.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		imagePath := args[0]

		carrier, err := os.ReadFile(imagePath)
		if err != nil {
			return err
		}
		info, err := stego.Inspect(carrier)
		if err != nil {
			return fmt.Errorf("failed to get info from %s: %w", imagePath, err)
		}

		fmt.Println("Bitmap Header Information:")
		fmt.Println("--------------------------")
		if info.Width > 0 {
			fmt.Printf("Dimensions:       %dx%d\n", info.Width, info.Height)
		}
		fmt.Printf("File Size:        %s\n", humanize.Bytes(uint64(info.Size)))
		fmt.Printf("DIB Header Size:  %d\n", info.DIBHeaderSize)
		fmt.Printf("Header Base:      %d\n", info.HeaderBase)
		fmt.Printf("Capacity:         %s bytes\n", humanize.Comma(int64(info.Capacity)))
		fmt.Printf("Carries Data:     %t\n", info.Signed)
		if info.Signed {
			fmt.Printf("Payload Size:     %s bytes\n", humanize.Comma(int64(info.PayloadLength)))
			fmt.Printf("Payload Offset:   %d\n", info.PayloadOffset)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(infoCmd)
}
