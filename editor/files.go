package editor

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/vsariola/rack"
)

// SavePatch writes the patch to path, in the format given by the extension.
// The data goes to a temporary file in the same directory which is then
// renamed over path, so a failed save leaves the previous file, if any, in
// place.
func (a *App) SavePatch(path string) error {
	b, err := Encode(Serialize(a.graph), FormatOf(path))
	if err == nil {
		err = WriteFileAtomic(path, b)
	}
	if err != nil {
		a.alerts.AddNamed("SavePatch", err.Error(), Error)
		return err
	}
	a.filePath = path
	a.log.Info("saved patch", "path", path, "modules", a.graph.NumModules(), "wires", a.graph.NumWires())
	return nil
}

// LoadPatch replaces the patch with the one in path. On any error, the current
// patch is kept.
func (a *App) LoadPatch(path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		err = &FileIOError{Op: "load", Path: path, Err: err}
		a.alerts.AddNamed("LoadPatch", err.Error(), Error)
		return err
	}
	if err := a.loadBytes(b); err != nil {
		return err
	}
	a.filePath = path
	a.log.Info("loaded patch", "path", path, "modules", a.graph.NumModules(), "wires", a.graph.NumWires())
	return nil
}

// ReadPatch is like LoadPatch, but reads from r. If r is a file, its name
// becomes the path of the patch.
func (a *App) ReadPatch(r io.Reader) error {
	name := ""
	if f, ok := r.(*os.File); ok {
		name = f.Name()
	}
	b, err := io.ReadAll(r)
	if err != nil {
		err = &FileIOError{Op: "read", Path: name, Err: err}
		a.alerts.AddNamed("LoadPatch", err.Error(), Error)
		return err
	}
	if err := a.loadBytes(b); err != nil {
		return err
	}
	a.filePath = name
	return nil
}

// WritePatch writes the patch to w. If w is a file, its name becomes the
// path of the patch.
func (a *App) WritePatch(w io.Writer, f Format) error {
	b, err := Encode(Serialize(a.graph), f)
	if err != nil {
		return err
	}
	if _, err := w.Write(b); err != nil {
		return &FileIOError{Op: "write", Path: a.filePath, Err: err}
	}
	if file, ok := w.(*os.File); ok {
		a.filePath = file.Name()
	}
	return nil
}

// NewPatch replaces the patch with an empty one.
func (a *App) NewPatch() {
	a.setGraph(NewGraph(a.cfg))
	a.filePath = ""
}

// LoadDocument replaces the patch with one built from p. Modules of unknown
// models are skipped and reported as a warning alert.
func (a *App) LoadDocument(p *rack.Patch) error {
	g, warnings, err := Deserialize(p, a.registry, a.cfg)
	if err != nil {
		a.alerts.AddNamed("LoadPatch", err.Error(), Error)
		return err
	}
	var unknown []string
	for _, w := range warnings {
		a.log.Warn("patch loaded partially", "err", w)
		var u *UnknownModelError
		if errors.As(w, &u) {
			unknown = append(unknown, u.Plugin+"/"+u.Model)
		}
	}
	if len(unknown) > 0 {
		a.alerts.AddNamed("UnknownModel", "Skipped modules of unknown models: "+strings.Join(unknown, ", "), Warning)
	}
	a.setGraph(g)
	return nil
}

func (a *App) loadBytes(b []byte) error {
	p, err := Decode(b)
	if err != nil {
		a.alerts.AddNamed("LoadPatch", err.Error(), Error)
		return err
	}
	return a.LoadDocument(p)
}

// WriteFileAtomic writes b to a temporary file next to path and renames it
// to path. Errors are *FileIOError.
func WriteFileAtomic(path string, b []byte) error {
	f, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return &FileIOError{Op: "save", Path: path, Err: err}
	}
	tmp := f.Name()
	_, err = f.Write(b)
	if err == nil {
		err = f.Sync()
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err == nil {
		err = os.Rename(tmp, path)
	}
	if err != nil {
		os.Remove(tmp)
		return &FileIOError{Op: "save", Path: path, Err: err}
	}
	return nil
}

// DefaultRecoveryFile returns the path of the recovery file in the user
// config directory, or "" if there is no such directory.
func DefaultRecoveryFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "rack", "recovery.yml")
}

// SaveRecovery saves the patch to the recovery file, if it has changed since
// the last recovery save.
func (a *App) SaveRecovery() error {
	if a.recoveryPath == "" {
		return errors.New("no recovery file path")
	}
	b, err := Encode(Serialize(a.graph), YAML)
	if err != nil {
		return fmt.Errorf("could not marshal recovery data: %w", err)
	}
	if bytes.Equal(b, a.lastRecovery) {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(a.recoveryPath), 0o755); err != nil {
		return &FileIOError{Op: "save", Path: a.recoveryPath, Err: err}
	}
	if err := WriteFileAtomic(a.recoveryPath, b); err != nil {
		return err
	}
	a.lastRecovery = b
	return nil
}

// LoadRecovery loads the recovery file, if there is one. A missing file is
// not an error.
func (a *App) LoadRecovery() error {
	if a.recoveryPath == "" {
		return nil
	}
	b, err := os.ReadFile(a.recoveryPath)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return &FileIOError{Op: "load", Path: a.recoveryPath, Err: err}
	}
	if err := a.loadBytes(b); err != nil {
		return err
	}
	a.lastRecovery = b
	return nil
}
