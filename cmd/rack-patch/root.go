package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/vsariola/rack"
	"github.com/vsariola/rack/core"
	"github.com/vsariola/rack/editor"
	"github.com/vsariola/rack/version"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "rack-patch",
		Short:         "Inspect, validate, convert and render rack patch files",
		Version:       version.VersionOrHash,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(
		newInfoCmd(),
		newValidateCmd(),
		newConvertCmd(),
		newModelsCmd(),
		newRenderCmd(),
	)
	return root
}

func registry() (*rack.Registry, error) {
	r := rack.NewRegistry()
	if err := core.Register(r); err != nil {
		return nil, fmt.Errorf("could not register the core plugin: %w", err)
	}
	return r, nil
}

func readPatch(path string) (*rack.Patch, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, &editor.FileIOError{Op: "load", Path: path, Err: err}
	}
	p, err := editor.Decode(b)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}
