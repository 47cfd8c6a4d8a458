package main

import (
	"fmt"

	"github.com/andresmejia3/bmphide/pkg/stego"
	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed [text]",
	Short: "Print the numeric seed derived from a passphrase",
	Long:  `Prints the seed that --seed-string would use, so it can be passed later with --seed-value.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(stego.SeedFromString(args[0]))
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
}
