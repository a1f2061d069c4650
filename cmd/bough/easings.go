package main

import (
	"fmt"
	"io"

	"github.com/phanxgames/bough"
	"github.com/spf13/cobra"
)

var easingsCmd = &cobra.Command{
	Use:   "easings",
	Short: "List the easing catalog",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		samples, _ := cmd.Flags().GetInt("samples")
		return printEasings(cmd.OutOrStdout(), samples)
	},
}

func init() {
	easingsCmd.Flags().Int("samples", 0, "Print the eased value at this many evenly spaced points")
	rootCmd.AddCommand(easingsCmd)
}

func printEasings(w io.Writer, samples int) error {
	for _, name := range bough.EasingNames() {
		if samples < 2 {
			fmt.Fprintln(w, name)
			continue
		}
		e, err := bough.LookupEasing(name)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%-14s", name)
		for i := 0; i < samples; i++ {
			fmt.Fprintf(w, " %6.3f", e(float64(i)/float64(samples-1)))
		}
		fmt.Fprintln(w)
	}
	return nil
}
