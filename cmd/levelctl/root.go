package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/PvttJebus/OhMyGord/config"
	"github.com/PvttJebus/OhMyGord/levels"
)

var (
	configPath string
	levelDir   string
	storage    string
	dsn        string
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15")).Background(lipgloss.Color("236")).Padding(0, 1)
	nameStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("4")).Bold(true)
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	okStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
)

var rootCmd = &cobra.Command{
	Use:   "levelctl",
	Short: "Manage saved editor levels",
	Long: `levelctl lists, inspects, renders and deletes levels saved by the
level editor, in a level directory or a SQL database.`,
	SilenceUsage:      true,
	DisableAutoGenTag: true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configPath, "config", config.DefaultFile, "editor settings file")
	flags.StringVar(&levelDir, "dir", "", "level directory (overrides save_dir)")
	flags.StringVar(&storage, "storage", "", "storage driver: dir, sqlite3 or postgres")
	flags.StringVar(&dsn, "dsn", "", "data source name for sql storage")
}

// loadConfig applies the command line overrides to the settings file.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return cfg, err
	}
	if levelDir != "" {
		cfg.SaveDir = levelDir
	}
	if storage != "" {
		cfg.Storage.Driver = storage
	}
	if dsn != "" {
		cfg.Storage.DSN = dsn
	}
	return cfg, nil
}

func openStore() (levels.Store, config.Config, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, cfg, err
	}
	store, err := levels.OpenStore(cfg.Storage.Driver, cfg.Storage.DSN, cfg.SaveDir, cfg.Preview.Format)
	if err != nil {
		return nil, cfg, err
	}
	return store, cfg, nil
}

func closeStore(store levels.Store) {
	if c, ok := store.(interface{ Close() error }); ok {
		_ = c.Close()
	}
}
