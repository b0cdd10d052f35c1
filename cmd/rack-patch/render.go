package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/vsariola/rack"
	"github.com/vsariola/rack/editor"
)

const renderChunk = 256

func newRenderCmd() *cobra.Command {
	var seconds float64
	var pcm16, raw bool
	var output string
	cmd := &cobra.Command{
		Use:   "render <patch>",
		Short: "Render the audio output of a patch to a .wav file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if seconds <= 0 {
				return fmt.Errorf("--seconds must be positive, got %g", seconds)
			}
			p, err := readPatch(args[0])
			if err != nil {
				return err
			}
			reg, err := registry()
			if err != nil {
				return err
			}
			buffer, err := render(p, reg, int(seconds*rack.SampleRate))
			if err != nil {
				return err
			}
			var b []byte
			ext := ".wav"
			if raw {
				b, err = buffer.Raw(pcm16)
				ext = ".raw"
			} else {
				b, err = buffer.Wav(pcm16)
			}
			if err != nil {
				return err
			}
			if output == "" {
				output = strings.TrimSuffix(args[0], filepath.Ext(args[0])) + ext
			}
			if err := editor.WriteFileAtomic(output, b); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "rendered %d frames to %s\n", len(buffer), output)
			return nil
		},
	}
	cmd.Flags().Float64VarP(&seconds, "seconds", "s", 10, "length of the rendering")
	cmd.Flags().BoolVarP(&pcm16, "pcm", "c", false, "convert audio to 16-bit signed PCM")
	cmd.Flags().BoolVarP(&raw, "raw", "r", false, "output raw samples without a .wav header")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write to `file` (default: the patch name with the .wav or .raw extension)")
	return cmd
}

// render runs the patch on a player without an audio device.
func render(p *rack.Patch, reg *rack.Registry, frames int) (rack.AudioBuffer, error) {
	broker := editor.NewBroker()
	app := editor.NewApp(reg, broker)
	defer app.Close()
	if err := app.LoadDocument(p); err != nil {
		return nil, err
	}
	player := editor.NewPlayer(broker)
	return player.Source().Fill(frames, renderChunk), nil
}
