package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/PvttJebus/OhMyGord/grid"
	"github.com/PvttJebus/OhMyGord/levels"
	"github.com/PvttJebus/OhMyGord/prefabs"
)

var listCmd = &cobra.Command{
	Use:   "list [filter]",
	Short: "List saved levels, oldest first",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, _, err := openStore()
		if err != nil {
			return err
		}
		defer closeStore(store)

		entries, err := store.List()
		if err != nil {
			return err
		}
		if len(args) == 1 {
			entries = levels.Find(entries, args[0])
		}
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, headerStyle.Render(fmt.Sprintf("%-24s %s", "NAME", "SAVED")))
		for _, e := range entries {
			saved := dimStyle.Render("never")
			if e.Timestamp != 0 {
				saved = time.Unix(e.Timestamp, 0).Format(time.DateTime)
			}
			fmt.Fprintf(out, "%s %s\n", nameStyle.Render(fmt.Sprintf("%-24s", e.Name)), saved)
		}
		fmt.Fprintln(out, dimStyle.Render(fmt.Sprintf("%d levels", len(entries))))
		return nil
	},
}

var showCmd = &cobra.Command{
	Use:   "show {level-name}",
	Short: "Summarise the contents of a level",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, _, err := openStore()
		if err != nil {
			return err
		}
		defer closeStore(store)

		doc, err := store.Load(args[0])
		if err != nil {
			return err
		}
		palette, err := prefabs.LoadPalette()
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), describe(doc, palette))
		return nil
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete {level-name}...",
	Short: "Delete saved levels and their previews",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, _, err := openStore()
		if err != nil {
			return err
		}
		defer closeStore(store)

		for _, name := range args {
			if err := store.Delete(name); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), okStyle.Render("deleted "+name))
		}
		return nil
	},
}

var nextFree bool

var nextCmd = &cobra.Command{
	Use:   "next [current]",
	Short: "Print the level that follows current, or the next free name",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, _, err := openStore()
		if err != nil {
			return err
		}
		defer closeStore(store)

		var name string
		if nextFree {
			name, err = levels.NextName(store)
		} else {
			current := ""
			if len(args) == 1 {
				current = args[0]
			}
			name, err = levels.Next(store, current)
		}
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), name)
		return nil
	},
}

var (
	previewOut    string
	previewSize   int
	previewFormat string
)

var previewCmd = &cobra.Command{
	Use:   "preview {level-name}",
	Short: "Render a level preview image",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, cfg, err := openStore()
		if err != nil {
			return err
		}
		defer closeStore(store)

		doc, err := store.Load(args[0])
		if err != nil {
			return err
		}
		palette, err := prefabs.LoadPalette()
		if err != nil {
			return err
		}
		format := previewFormat
		if format == "" {
			format = cfg.Preview.Format
		}
		size := previewSize
		if size <= 0 {
			size = cfg.Preview.Size
		}
		data, err := levels.PreviewBytes(doc, grid.New(cfg.CellSize), palette, size, format)
		if err != nil {
			return err
		}
		out := previewOut
		if out == "" {
			out = args[0] + "." + format
		}
		if err := os.WriteFile(out, data, 0o644); err != nil {
			return fmt.Errorf("write preview: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), okStyle.Render("wrote "+out))
		return nil
	},
}

var importCmd = &cobra.Command{
	Use:   "import {file.json}...",
	Short: "Copy level files into the configured store",
	Long: `Reads level JSON files and saves them, with a fresh preview, into the
store selected by --storage. Useful for moving a level directory into a
database.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, cfg, err := openStore()
		if err != nil {
			return err
		}
		defer closeStore(store)

		palette, err := prefabs.LoadPalette()
		if err != nil {
			return err
		}
		g := grid.New(cfg.CellSize)
		for _, path := range args {
			name, err := importLevel(store, palette, g, cfg.Preview.Size, cfg.Preview.Format, path)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), okStyle.Render("imported "+name))
		}
		return nil
	},
}

func importLevel(store levels.Store, colors levels.Colors, g grid.Grid, size int, format, path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	doc, err := levels.Unmarshal(data)
	if err != nil {
		return "", fmt.Errorf("%s: %w", path, err)
	}
	name := doc.Name
	if name == "" {
		name = filepath.Base(path)
	}
	name, err = levels.CleanName(name)
	if err != nil {
		return "", err
	}
	doc.Name = name
	if doc.Timestamp == 0 {
		doc.Timestamp = time.Now().Unix()
	}
	preview, err := levels.PreviewBytes(doc, g, colors, size, format)
	if err != nil {
		return "", err
	}
	if err := store.Save(name, doc, preview); err != nil {
		return "", err
	}
	return name, nil
}

// describe renders a short report of what a level contains.
func describe(doc *levels.Document, palette *prefabs.Palette) string {
	var b strings.Builder
	fmt.Fprintln(&b, headerStyle.Render(doc.Name))
	if doc.Timestamp != 0 {
		fmt.Fprintf(&b, "saved    %s\n", time.Unix(doc.Timestamp, 0).Format(time.DateTime))
	}

	tiles := make(map[string]int)
	for _, t := range doc.Tiles {
		tiles[t.TileName]++
	}
	fmt.Fprintf(&b, "tiles    %d\n", len(doc.Tiles))
	for _, name := range sortedKeys(tiles) {
		fmt.Fprintf(&b, "  %-20s %d\n", name, tiles[name])
	}

	objs := make(map[string]int)
	for _, o := range doc.Objects {
		name := dimStyle.Render(fmt.Sprintf("#%d (unknown)", o.PrefabIndex))
		if tpl, ok := palette.Template(o.PrefabIndex); ok {
			name = tpl.Name
		}
		objs[name]++
	}
	fmt.Fprintf(&b, "objects  %d\n", len(doc.Objects))
	for _, name := range sortedKeys(objs) {
		fmt.Fprintf(&b, "  %-20s %d\n", name, objs[name])
	}

	fmt.Fprintf(&b, "groups   %d\n", len(doc.Groups))
	for _, g := range doc.Groups {
		fmt.Fprintf(&b, "  %-20s %d members\n", g.Name, len(g.Members))
	}
	return b.String()
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func init() {
	nextCmd.Flags().BoolVar(&nextFree, "free", false, "print the first unused L<n> name instead")
	previewCmd.Flags().StringVarP(&previewOut, "out", "o", "", "output file (default <level>.<format>)")
	previewCmd.Flags().IntVar(&previewSize, "size", 0, "image size in pixels (default from config)")
	previewCmd.Flags().StringVar(&previewFormat, "format", "", "png or qoi (default from config)")

	rootCmd.AddCommand(listCmd, showCmd, deleteCmd, nextCmd, previewCmd, importCmd)
}
