package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/andresmejia3/bmphide/pkg/stego"
	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var capacityCmd = &cobra.Command{
	Use:   "capacity [image-path...]",
	Short: "Calculate how many bytes each image can hide",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		wtr := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(wtr, "Image\tSize\tCapacity\tCapacity (Bytes)")
		fmt.Fprintln(wtr, "-----\t----\t--------\t----------------")

		for _, path := range args {
			carrier, err := os.ReadFile(path)
			if err != nil {
				log.Fatal().Err(err).Msg("Failed to read image")
			}
			capacity, err := stego.CarrierCapacity(carrier)
			if err != nil {
				log.Fatal().Err(err).Str("image", path).Msg("Failed to compute capacity")
			}
			fmt.Fprintf(wtr, "%s\t%s\t%s\t%s\n", path,
				humanize.Bytes(uint64(len(carrier))),
				humanize.Bytes(uint64(capacity)),
				humanize.Comma(int64(capacity)))
		}

		wtr.Flush()
	},
}

func init() {
	rootCmd.AddCommand(capacityCmd)
}
