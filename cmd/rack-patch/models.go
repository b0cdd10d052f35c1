package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newModelsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "models",
		Short: "List the built-in module models",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := registry()
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "#\tMODEL\tNAME\tHP\tPARAMS\tINPUTS\tOUTPUTS")
			i := 0
			for m := range reg.Models() {
				i++
				fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%d\t%d\t%d\n", i, m, m.Name, m.Panel.Width, len(m.Panel.Params), len(m.Panel.Inputs), len(m.Panel.Outputs))
			}
			return w.Flush()
		},
	}
}
