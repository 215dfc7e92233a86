package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/LFroesch/odyssey/internal/config"
	"github.com/LFroesch/odyssey/internal/logger"
)

var (
	version = "dev"

	cfgFile    string
	showHidden bool
	debug      bool
)

var rootCmd = &cobra.Command{
	Use:          "odyssey [dir]",
	Short:        "A keyboard driven terminal file browser",
	Version:      version,
	Args:         cobra.MaximumNArgs(1),
	SilenceUsage: true,
	RunE:         runApp,
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the default configuration as YAML",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return config.WriteDefaults(cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: ~/.config/odyssey/config.yaml)")
	rootCmd.Flags().BoolVarP(&showHidden, "hidden", "a", false, "show hidden files")
	rootCmd.Flags().BoolVar(&debug, "debug", false, "write debug lines to the log file")
	rootCmd.AddCommand(configCmd)
}

func runApp(cmd *cobra.Command, args []string) error {
	if err := checkColorSupport(); err != nil {
		return err
	}

	if err := logger.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "warning: logging disabled: %v\n", err)
	}
	defer logger.Close()

	path := cfgFile
	if path == "" {
		if p, err := config.DefaultPath(); err == nil {
			path = p
		}
	}
	cfg := config.Load(path)
	if cmd.Flags().Changed("hidden") {
		cfg.ShowHidden = showHidden
	}
	logger.SetDebug(debug || cfg.Debug)

	dir := cfg.StartDir
	if len(args) == 1 {
		dir = args[0]
	}
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("getting current directory: %w", err)
		}
		dir = wd
	}

	// Query the background color before the program owns stdin.
	_ = lipgloss.HasDarkBackground()

	m, err := newModel(cfg, dir)
	if err != nil {
		return err
	}
	logger.Info("starting in %s", m.session.Dir())

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		logger.Error("program exited: %v", err)
		return err
	}
	if m.farewell != "" {
		fmt.Println(m.farewell)
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
