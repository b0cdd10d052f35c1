package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/vsariola/rack/editor"
)

func newValidateCmd() *cobra.Command {
	var strict bool
	cmd := &cobra.Command{
		Use:   "validate <patch>...",
		Short: "Check that patches can be loaded",
		Long: `Decodes each patch and builds its graph with the built-in models.
Malformed documents fail the validation; unknown models and invalid wires are
reported as warnings, which fail the validation only with --strict.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := registry()
			if err != nil {
				return err
			}
			failed := 0
			for _, path := range args {
				p, err := readPatch(path)
				if err != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "%v\n", err)
					failed++
					continue
				}
				_, warnings, err := editor.Deserialize(p, reg, editor.DefaultConfig())
				if err != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", path, err)
					failed++
					continue
				}
				for _, w := range warnings {
					fmt.Fprintf(cmd.ErrOrStderr(), "%s: warning: %v\n", path, w)
				}
				if strict && len(warnings) > 0 {
					failed++
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s: ok\n", path)
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d patches failed validation", failed, len(args))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&strict, "strict", false, "treat warnings as errors")
	return cmd
}
