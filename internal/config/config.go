package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/LFroesch/odyssey/internal/keymap"
	"github.com/LFroesch/odyssey/internal/logger"
	"github.com/LFroesch/odyssey/internal/utils"
)

// KeyBinding is one keymap override, e.g. {keys: "g g", command: "top"}
type KeyBinding struct {
	Keys    string `mapstructure:"keys" yaml:"keys"`
	Command string `mapstructure:"command" yaml:"command"`
}

// Config holds all odyssey configuration
type Config struct {
	StartDir     string            `mapstructure:"start_dir" yaml:"start_dir"`
	ShowHidden   bool              `mapstructure:"show_hidden" yaml:"show_hidden"`
	Editor       string            `mapstructure:"editor" yaml:"editor"`
	Shell        string            `mapstructure:"shell" yaml:"shell"`
	ChordTimeout int               `mapstructure:"chord_timeout" yaml:"chord_timeout"` // milliseconds
	PreviewLines int               `mapstructure:"preview_lines" yaml:"preview_lines"`
	Highlight    bool              `mapstructure:"highlight" yaml:"highlight"`
	Debug        bool              `mapstructure:"debug" yaml:"debug"`
	Keymap       []KeyBinding      `mapstructure:"keymap" yaml:"keymap"`
	Openers      map[string]string `mapstructure:"openers" yaml:"openers"`
	Colors       map[string]string `mapstructure:"colors" yaml:"colors"`
}

const (
	minChordTimeout = 50
	maxChordTimeout = 5000
	maxPreviewLines = 10000
)

// Defaults returns the configuration used when no file overrides it
func Defaults() Config {
	editor := os.Getenv("EDITOR")
	if editor == "" {
		editor = "vim"
	}
	return Config{
		Editor:       editor,
		Shell:        "sh",
		ChordTimeout: int(keymap.DefaultTimeout / time.Millisecond),
		PreviewLines: 200,
		Highlight:    true,
		Openers:      utils.DefaultOpeners(),
		Colors:       utils.DefaultColors(),
	}
}

// DefaultPath returns ~/.config/odyssey/config.yaml
func DefaultPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "odyssey", "config.yaml"), nil
}

// Load reads the config file at path, or the default location when path is
// empty. A missing file is not an error; unreadable or invalid files are
// logged and the defaults are used.
func Load(path string) *Config {
	defaults := Defaults()

	// Extensions such as ".jpg" are map keys, so "." cannot be the key
	// delimiter.
	v := viper.NewWithOptions(viper.KeyDelimiter("::"))
	v.SetConfigType("yaml")
	v.SetDefault("show_hidden", defaults.ShowHidden)
	v.SetDefault("editor", defaults.Editor)
	v.SetDefault("shell", defaults.Shell)
	v.SetDefault("chord_timeout", defaults.ChordTimeout)
	v.SetDefault("preview_lines", defaults.PreviewLines)
	v.SetDefault("highlight", defaults.Highlight)
	v.SetDefault("debug", defaults.Debug)

	if path == "" {
		var err error
		if path, err = DefaultPath(); err != nil {
			logger.Error("Failed to resolve config path: %v", err)
		}
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			if _, statErr := os.Stat(path); statErr == nil {
				logger.Warn("Failed to parse config file %s: %v, using defaults", path, err)
			}
			return &defaults
		}
	}

	config := &Config{}
	if err := v.Unmarshal(config); err != nil {
		logger.Warn("Failed to decode config file %s: %v, using defaults", path, err)
		return &defaults
	}

	config.Openers = mergeTable(defaults.Openers, config.Openers)
	config.Colors = mergeTable(defaults.Colors, config.Colors)
	config.validate()
	return config
}

func (c *Config) validate() {
	if c.ChordTimeout <= 0 {
		c.ChordTimeout = int(keymap.DefaultTimeout / time.Millisecond)
	} else if c.ChordTimeout < minChordTimeout {
		logger.Warn("ChordTimeout too low (%d), using minimum of %d", c.ChordTimeout, minChordTimeout)
		c.ChordTimeout = minChordTimeout
	} else if c.ChordTimeout > maxChordTimeout {
		logger.Warn("ChordTimeout too high (%d), using maximum of %d", c.ChordTimeout, maxChordTimeout)
		c.ChordTimeout = maxChordTimeout
	}

	if c.PreviewLines <= 0 {
		c.PreviewLines = 200
	} else if c.PreviewLines > maxPreviewLines {
		logger.Warn("PreviewLines too high (%d), using maximum of %d", c.PreviewLines, maxPreviewLines)
		c.PreviewLines = maxPreviewLines
	}

	if strings.TrimSpace(c.Editor) == "" {
		c.Editor = "vim"
	}
	if strings.TrimSpace(c.Shell) == "" {
		c.Shell = "sh"
	}
}

// mergeTable overlays user entries on the defaults. Keys are lower-cased
// and given a leading dot where one is missing, except for the special
// "dir" and "" color keys.
func mergeTable(defaults, overrides map[string]string) map[string]string {
	merged := make(map[string]string, len(defaults)+len(overrides))
	for k, v := range defaults {
		merged[k] = v
	}
	for k, v := range overrides {
		k = strings.ToLower(k)
		if k != "" && k != "dir" && !strings.HasPrefix(k, ".") {
			k = "." + k
		}
		merged[k] = v
	}
	return merged
}

// ChordDuration is the chord window as a time.Duration
func (c *Config) ChordDuration() time.Duration {
	return time.Duration(c.ChordTimeout) * time.Millisecond
}

// Bindings returns the default keymap with the configured overrides
// applied. Invalid entries are logged and skipped.
func (c *Config) Bindings() []keymap.Binding {
	overrides := make([]keymap.Binding, 0, len(c.Keymap))
	for _, kb := range c.Keymap {
		b, err := keymap.Parse(kb.Keys, kb.Command)
		if err != nil {
			logger.Warn("Ignoring keymap entry %q: %v", kb.Keys, err)
			continue
		}
		overrides = append(overrides, b)
	}
	return keymap.Merge(keymap.Default(), overrides)
}

// WriteDefaults prints the default configuration as YAML
func WriteDefaults(w io.Writer) error {
	defaults := Defaults()
	for _, b := range keymap.Default() {
		defaults.Keymap = append(defaults.Keymap, KeyBinding{Keys: b.Keys(), Command: b.Command})
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(defaults); err != nil {
		return fmt.Errorf("cannot encode config: %w", err)
	}
	return enc.Close()
}
