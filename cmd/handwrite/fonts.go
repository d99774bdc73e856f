package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var fontsCmd = &cobra.Command{
	Use:   "fonts",
	Short: "List the configured fonts and whether they loaded",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		lib := newSession(cmd.Context(), cfg, noHooks).lib
		def := lib.Default()

		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "\tNAME\tLABEL\tFAMILY\tSTATUS")
		for _, st := range lib.Statuses() {
			mark, status := "", "ok"
			if st.Name == def {
				mark = "*"
			}
			if !st.Loaded() {
				status = st.Err.Error()
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", mark, st.Name, st.Label, st.Family, status)
		}
		return tw.Flush()
	},
}
