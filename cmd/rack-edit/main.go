package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"runtime/pprof"

	"gioui.org/app"
	"github.com/vsariola/rack"
	"github.com/vsariola/rack/core"
	"github.com/vsariola/rack/editor"
	"github.com/vsariola/rack/editor/gioui"
	"github.com/vsariola/rack/oto"
	"github.com/vsariola/rack/version"
)

var cpuprofile = flag.String("cpuprofile", "", "write cpu profile to `file`")
var memprofile = flag.String("memprofile", "", "write memory profile to `file`")
var configFile = flag.String("config", "", "read the editor configuration from `file` (default: rack/config.yml in the user config dir)")
var recoverFlag = flag.Bool("recover", false, "start from the recovery file of the previous session")
var verbose = flag.Bool("v", false, "log debug messages")
var versionFlag = flag.Bool("version", false, "print version")

func main() {
	flag.Parse()
	if *versionFlag {
		fmt.Println(version.VersionOrHash)
		os.Exit(0)
	}
	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	var f *os.File
	if *cpuprofile != "" {
		var err error
		f, err = os.Create(*cpuprofile)
		if err != nil {
			logger.Error("could not create CPU profile", "err", err)
			os.Exit(1)
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			logger.Error("could not start CPU profile", "err", err)
			os.Exit(1)
		}
	}
	cfgPath := *configFile
	if cfgPath == "" {
		if configDir, err := os.UserConfigDir(); err == nil {
			cfgPath = filepath.Join(configDir, "rack", "config.yml")
		}
	}
	cfg := editor.DefaultConfig()
	if cfgPath != "" {
		var err error
		if cfg, err = editor.LoadConfig(cfgPath); err != nil {
			logger.Warn("using the default configuration", "path", cfgPath, "err", err)
			cfg = editor.DefaultConfig()
		}
	}
	registry := rack.NewRegistry()
	if err := core.Register(registry); err != nil {
		logger.Error("could not register the core plugin", "err", err)
		os.Exit(1)
	}
	audioContext, err := oto.NewContext()
	if err != nil {
		logger.Error("could not acquire audio output", "err", err)
		os.Exit(1)
	}
	broker := editor.NewBroker()
	model := editor.NewApp(registry, broker,
		editor.WithConfig(cfg),
		editor.WithLogger(logger),
		editor.WithRecoveryFile(editor.DefaultRecoveryFile()),
	)
	player := editor.NewPlayer(broker)
	if *recoverFlag {
		if err := model.LoadRecovery(); err != nil {
			logger.Warn("could not load the recovery file", "err", err)
		}
	}
	if a := flag.Args(); len(a) > 0 {
		if err := model.LoadPatch(a[0]); err != nil {
			logger.Error("could not load patch", "path", a[0], "err", err)
		}
	}
	window := gioui.NewWindow(model)
	audioCloser := audioContext.Play(player.Source())
	go func() {
		window.Main()
		audioCloser.Close()
		audioContext.Close()
		model.Close()
		if *cpuprofile != "" {
			pprof.StopCPUProfile()
			f.Close()
		}
		if *memprofile != "" {
			f, err := os.Create(*memprofile)
			if err != nil {
				logger.Error("could not create memory profile", "err", err)
				os.Exit(1)
			}
			runtime.GC() // get up-to-date statistics
			if err := pprof.WriteHeapProfile(f); err != nil {
				logger.Error("could not write memory profile", "err", err)
			}
			f.Close()
		}
		os.Exit(0)
	}()
	app.Main()
}
