package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/PvttJebus/OhMyGord/config"
	"github.com/PvttJebus/OhMyGord/editor"
	"github.com/PvttJebus/OhMyGord/levels"
	"github.com/PvttJebus/OhMyGord/objects"
	"github.com/PvttJebus/OhMyGord/prefabs"
	"github.com/PvttJebus/OhMyGord/script"
	"github.com/PvttJebus/OhMyGord/tilemap"
)

func main() {
	configPath := flag.String("config", config.DefaultFile, "Editor settings file (YAML)")
	levelName := flag.String("level", "", "Level name to open on startup")
	levelDir := flag.String("dir", "", "Directory holding saved levels (overrides save_dir)")
	storage := flag.String("storage", "", "Level storage driver: dir, sqlite3 or postgres")
	dsn := flag.String("dsn", "", "Data source name for sql storage")
	windowed := flag.Bool("windowed", false, "Run in a window instead of fullscreen")
	flag.Parse()

	log.Println("Editor starting...")
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Printf("Failed to load config: %v", err)
	}
	if *levelDir != "" {
		cfg.SaveDir = *levelDir
	}
	if *storage != "" {
		cfg.Storage.Driver = *storage
	}
	if *dsn != "" {
		cfg.Storage.DSN = *dsn
	}

	palette, err := prefabs.LoadPalette()
	if err != nil {
		log.Fatalf("Failed to load palette: %v", err)
	}
	store, err := levels.OpenStore(cfg.Storage.Driver, cfg.Storage.DSN, cfg.SaveDir, cfg.Preview.Format)
	if err != nil {
		log.Fatalf("Failed to open level store: %v", err)
	}

	reg := objects.NewRegistry(palette)
	runtime := script.NewRuntime(reg)
	ed, err := editor.New(cfg, editor.Deps{
		Palette:   palette,
		Tiles:     tilemap.NewLayer(),
		Objects:   reg,
		Store:     store,
		Toggler:   runtime,
		Clipboard: newSystemClipboard(),
	})
	if err != nil {
		log.Fatalf("Failed to create editor: %v", err)
	}

	if *levelName != "" {
		if err := ed.Load(*levelName); err != nil {
			log.Printf("Failed to load level %s: %v", *levelName, err)
		}
	}

	game := NewEditorGame(ed, runtime, cfg)
	defer game.Close()

	if *windowed {
		ebiten.SetWindowSize(1280, 720)
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	} else {
		ebiten.SetFullscreen(true)
	}
	ebiten.SetWindowTitle("Level Editor")

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
