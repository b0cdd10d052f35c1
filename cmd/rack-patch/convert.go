package main

import (
	"github.com/spf13/cobra"
	"github.com/vsariola/rack/editor"
)

func newConvertCmd() *cobra.Command {
	var to, output string
	cmd := &cobra.Command{
		Use:   "convert <patch>",
		Short: "Convert a patch between YAML and JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := readPatch(args[0])
			if err != nil {
				return err
			}
			format := editor.FormatOf(output)
			if to != "" {
				if format, err = editor.ParseFormat(to); err != nil {
					return err
				}
			}
			b, err := editor.Encode(p, format)
			if err != nil {
				return err
			}
			if output == "" {
				_, err = cmd.OutOrStdout().Write(b)
				return err
			}
			return editor.WriteFileAtomic(output, b)
		},
	}
	cmd.Flags().StringVar(&to, "to", "", "output format: yaml or json (default: from the output file extension, else yaml)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write to `file` instead of standard output")
	return cmd
}
