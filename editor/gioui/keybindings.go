package gioui

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"

	"gioui.org/io/key"
	"gopkg.in/yaml.v3"
)

type KeyBinding struct {
	Key                                        string
	Shortcut, Ctrl, Command, Shift, Alt, Super bool
	Action                                     string
}

var keyBindingMap = map[key.Event]string{}

//go:embed keybindings.yml
var defaultKeyBindings []byte

func init() {
	keyBindings, err := decodeKeyBindings(defaultKeyBindings)
	if err != nil {
		panic(fmt.Errorf("failed to unmarshal default keybindings: %w", err))
	}
	if configDir, err := os.UserConfigDir(); err == nil {
		if b, err := os.ReadFile(filepath.Join(configDir, "rack", "keybindings.yml")); err == nil {
			if user, err := decodeKeyBindings(b); err == nil {
				keyBindings = append(keyBindings, user...)
			}
		}
	}
	for _, kb := range keyBindings {
		keyEvent := kb.event()
		if kb.Action == "" { // unbind
			delete(keyBindingMap, keyEvent)
		} else {
			keyBindingMap[keyEvent] = kb.Action
		}
	}
}

func decodeKeyBindings(b []byte) ([]KeyBinding, error) {
	var ret []KeyBinding
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(&ret); err != nil {
		return nil, err
	}
	return ret, nil
}

func (kb KeyBinding) event() key.Event {
	var mods key.Modifiers
	if kb.Shortcut {
		mods |= key.ModShortcut
	}
	if kb.Ctrl {
		mods |= key.ModCtrl
	}
	if kb.Command {
		mods |= key.ModCommand
	}
	if kb.Shift {
		mods |= key.ModShift
	}
	if kb.Alt {
		mods |= key.ModAlt
	}
	if kb.Super {
		mods |= key.ModSuper
	}
	return key.Event{Name: key.Name(kb.Key), Modifiers: mods, State: key.Press}
}
