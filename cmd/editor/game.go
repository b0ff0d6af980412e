package main

import (
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	ebuiinput "github.com/ebitenui/ebitenui/input"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/PvttJebus/OhMyGord/config"
	"github.com/PvttJebus/OhMyGord/editor"
	"github.com/PvttJebus/OhMyGord/levels"
	"github.com/PvttJebus/OhMyGord/prefabs"
	"github.com/PvttJebus/OhMyGord/script"
)

// EditorGame adapts an editor session to ebiten's game loop.
type EditorGame struct {
	ed      *editor.Editor
	ui      *editorUI
	runtime *script.Runtime
	cfg     config.Config
	colors  drawColors
	start   time.Time

	prefabWatch *prefabs.Watcher
	levelWatch  *prefabs.Watcher

	preview     *ebiten.Image
	previewName string
}

func NewEditorGame(ed *editor.Editor, runtime *script.Runtime, cfg config.Config) *EditorGame {
	g := &EditorGame{
		ed:      ed,
		runtime: runtime,
		cfg:     cfg,
		colors:  newDrawColors(cfg),
		start:   time.Now(),
	}
	g.ui = newEditorUI(ed)
	g.ui.onLevelSelected = g.showPreview

	w, err := prefabs.NewWatcher(prefabs.Dir, filepath.Join(prefabs.Dir, "scripts"))
	if err != nil {
		log.Printf("Prefab hot reload disabled: %v", err)
	} else {
		g.prefabWatch = w
	}

	if cfg.Storage.Driver == "" || cfg.Storage.Driver == "dir" {
		if err := os.MkdirAll(cfg.SaveDir, 0o755); err != nil {
			log.Printf("Failed to create %s: %v", cfg.SaveDir, err)
		}
		w, err := prefabs.NewMatchWatcher(levels.IsLevelFile, cfg.SaveDir)
		if err != nil {
			log.Printf("Level list watching disabled: %v", err)
		} else {
			g.levelWatch = w
		}
	}
	return g
}

func (g *EditorGame) Close() {
	if err := g.prefabWatch.Close(); err != nil {
		log.Printf("Failed to close prefab watcher: %v", err)
	}
	if err := g.levelWatch.Close(); err != nil {
		log.Printf("Failed to close level watcher: %v", err)
	}
}

func (g *EditorGame) Update() error {
	g.drainWatchers()

	g.ui.ui.Update()
	in := sampleInput(g.start, ebuiinput.UIHovered, g.ui.Typing())
	g.ed.Update(in)
	g.ui.Refresh()
	return nil
}

func (g *EditorGame) drainWatchers() {
	reloadPalette, reloadScripts := false, false
	for _, path := range g.prefabWatch.Drain() {
		switch strings.ToLower(filepath.Ext(path)) {
		case ".tengo":
			reloadScripts = true
		default:
			reloadPalette = true
		}
	}
	if reloadPalette {
		p, err := prefabs.LoadPalette()
		if err != nil {
			log.Printf("Palette reload failed: %v", err)
		} else {
			g.ed.SetPalette(p)
			g.ui.refreshPalette()
			log.Printf("Palette reloaded: %d templates, %d tiles", p.Len(), len(p.Tiles()))
		}
	}
	if reloadPalette || reloadScripts {
		g.runtime.Reset()
	}

	if len(g.levelWatch.Drain()) > 0 {
		g.ui.MarkLevelsDirty()
	}
}

func (g *EditorGame) showPreview(name string) {
	g.preview, g.previewName = nil, name
	img, err := g.ed.LevelPreview(name)
	if err != nil {
		return
	}
	g.preview = ebiten.NewImageFromImage(img)
}

func (g *EditorGame) Draw(screen *ebiten.Image) {
	screen.Fill(g.colors.background)
	g.drawTiles(screen)
	g.drawObjects(screen)
	g.drawOverlay(screen)
	g.drawGrid(screen)
	g.drawStatus(screen)
	g.drawPreview(screen)
	g.ui.ui.Draw(screen)
}

func (g *EditorGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.ed.Camera().Resize(float64(outsideWidth), float64(outsideHeight))
	return outsideWidth, outsideHeight
}
