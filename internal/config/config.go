package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

type RoundOptions struct {
	Words           int    `toml:"words"`
	Dictionary      string `toml:"dictionary"`
	MaxLineWidth    int    `toml:"max-line-width"`
	WindowHeight    int    `toml:"window-height"`
	MinDisplayWidth int    `toml:"min-display-width"`
	RefreshRate     int    `toml:"refresh-rate"`
	SpaceGlyph      string `toml:"space-glyph"`
	InsertKey       string `toml:"insert-key"`
}

type Theme struct {
	Theme       string `toml:"theme"`
	Foreground  string `toml:"foreground"`
	Background  string `toml:"background"`
	Correct     string `toml:"correct"`
	Incorrect   string `toml:"incorrect"`
	ModalBorder string `toml:"modal-border"`
}

type Config struct {
	Round RoundOptions `toml:"round"`
	Theme Theme        `toml:"theme"`
}

func Default() Config {
	return Config{
		Round: RoundOptions{
			Words:           50,
			Dictionary:      "",
			MaxLineWidth:    66,
			WindowHeight:    3,
			MinDisplayWidth: 24,
			RefreshRate:     60,
			SpaceGlyph:      "_",
			InsertKey:       "",
		},
		Theme: Theme{
			Theme:       "",
			Foreground:  "#B3B1AD",
			Background:  "default",
			Correct:     "#BAE67E",
			Incorrect:   "#FF3333",
			ModalBorder: "#3E4B59",
		},
	}
}

func Load() (Config, error) {
	cfg := Default()
	path, err := ConfigPath()
	if err != nil {
		return cfg, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}

	var userCfg Config
	if _, err := toml.Decode(string(data), &userCfg); err != nil {
		return cfg, err
	}

	if userCfg.Round.Words > 0 {
		cfg.Round.Words = userCfg.Round.Words
	}
	if userCfg.Round.Dictionary != "" {
		cfg.Round.Dictionary = userCfg.Round.Dictionary
	}
	if userCfg.Round.MaxLineWidth > 0 {
		cfg.Round.MaxLineWidth = userCfg.Round.MaxLineWidth
	}
	if userCfg.Round.WindowHeight > 0 {
		cfg.Round.WindowHeight = userCfg.Round.WindowHeight
	}
	if userCfg.Round.MinDisplayWidth > 0 {
		cfg.Round.MinDisplayWidth = userCfg.Round.MinDisplayWidth
	}
	if userCfg.Round.RefreshRate > 0 {
		cfg.Round.RefreshRate = userCfg.Round.RefreshRate
	}
	if userCfg.Round.SpaceGlyph != "" {
		cfg.Round.SpaceGlyph = userCfg.Round.SpaceGlyph
	}
	if userCfg.Round.InsertKey != "" {
		cfg.Round.InsertKey = userCfg.Round.InsertKey
	}
	if userCfg.Theme.Theme != "" {
		cfg.Theme.Theme = userCfg.Theme.Theme
	}
	if cfg.Theme.Theme != "" {
		theme, err := LoadTheme(cfg.Theme.Theme)
		if err != nil {
			return cfg, err
		}
		mergeTheme(&cfg.Theme, theme)
	}
	mergeTheme(&cfg.Theme, userCfg.Theme)

	return cfg, nil
}

func mergeTheme(dst *Theme, src Theme) {
	if src.Foreground != "" {
		dst.Foreground = src.Foreground
	}
	if src.Background != "" {
		dst.Background = src.Background
	}
	if src.Correct != "" {
		dst.Correct = src.Correct
	}
	if src.Incorrect != "" {
		dst.Incorrect = src.Incorrect
	}
	if src.ModalBorder != "" {
		dst.ModalBorder = src.ModalBorder
	}
}

func ThemePath(name string) (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "theme", name+".toml"), nil
}

// LoadTheme reads a theme file. Both a bare table and one wrapped in [theme]
// are accepted.
func LoadTheme(name string) (Theme, error) {
	path, err := ThemePath(name)
	if err != nil {
		return Theme{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Theme{}, err
	}
	var wrap struct {
		Theme Theme `toml:"theme"`
	}
	md, err := toml.Decode(string(data), &wrap)
	if err != nil {
		return Theme{}, err
	}
	if md.IsDefined("theme") {
		return wrap.Theme, nil
	}
	var t Theme
	if _, err := toml.Decode(string(data), &t); err != nil {
		return Theme{}, err
	}
	return t, nil
}

func ConfigDir() (string, error) {
	if v := os.Getenv("JANKEY_CONFIG_HOME"); v != "" {
		return v, nil
	}
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return filepath.Join(v, "jankey"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "jankey"), nil
}

func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}
