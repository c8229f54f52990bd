package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/storefront/backend/internal/domain/catalogsheet"
)

func newClassifyCmd() *cobra.Command {
	var strength string

	cmd := &cobra.Command{
		Use:   "classify LABEL...",
		Short: "Show the palette colour chosen for variant labels",
		Example: `  catalogsheet classify "Grape Ice" "Watermelon" "Clear"
  catalogsheet classify --strength strong "Blue Razz"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := catalogsheet.ParseStrength(strength)
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "LABEL\tPALETTE\tRGB\tCLASSES")
			for _, label := range args {
				key := catalogsheet.Classify(label)
				rgb := catalogsheet.RGB(key)
				fmt.Fprintf(w, "%s\t%s\t%d,%d,%d\t%s\n", label, key, rgb.R, rgb.G, rgb.B, catalogsheet.Badge(key, s))
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&strength, "strength", "subtle", "Badge strength (subtle or strong)")
	return cmd
}
