package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/vsariola/rack/editor"
)

func newInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info <patch>",
		Short: "Print a summary of a patch",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := readPatch(args[0])
			if err != nil {
				return err
			}
			reg, err := registry()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "version:     %s\n", p.Version)
			if p.Application != "" {
				fmt.Fprintf(out, "application: %s\n", p.Application)
			}
			fmt.Fprintf(out, "modules:     %d\n", len(p.Modules))
			fmt.Fprintf(out, "wires:       %d\n", len(p.Wires))
			for _, m := range p.Modules {
				known := ""
				if _, ok := reg.Find(m.Plugin, m.Model); !ok {
					known = " (unknown)"
				}
				fmt.Fprintf(out, "  %d %s/%s at (%g, %g)%s\n", m.ID, m.Plugin, m.Model, m.X, m.Y, known)
			}
			if _, warnings, err := editor.Deserialize(p, reg, editor.DefaultConfig()); err == nil {
				for _, w := range warnings {
					fmt.Fprintf(out, "warning: %v\n", w)
				}
			}
			return nil
		},
	}
}
