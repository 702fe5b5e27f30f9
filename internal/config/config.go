package config

import (
	"errors"
	"os"
	"path/filepath"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

const (
	DefaultConfigFileName = "config.toml"
	DefaultDBName         = "tasklist.db"
	DefaultLogName        = "tasklist.log"
	DefaultStorageKey     = "tasks"
	DefaultErrorTimeout   = 3 * time.Second

	appDirName = "tasklist"
	envConfig  = "TASKLIST_CONFIG"
)

type Keymap struct {
	Quit      string `toml:"quit"`
	Add       string `toml:"add"`
	Up        string `toml:"up"`
	Down      string `toml:"down"`
	Toggle    string `toml:"toggle"`
	Delete    string `toml:"delete"`
	Edit      string `toml:"edit"`
	ClearDone string `toml:"clear_done"`
	Confirm   string `toml:"confirm"`
	Cancel    string `toml:"cancel"`
}

type Config struct {
	DBPath        string `toml:"db_path"`
	StorageKey    string `toml:"storage_key"`
	LogPath       string `toml:"log_path"`
	ErrorTimeout  string `toml:"error_timeout"`
	ConfirmDelete bool   `toml:"confirm_delete"`
	Keys          Keymap `toml:"keys"`
}

// ResolveConfigPath picks the config file location: $TASKLIST_CONFIG if set,
// otherwise config.toml under the user config directory.
func ResolveConfigPath() string {
	if p := os.Getenv(envConfig); p != "" {
		return p
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return DefaultConfigFileName
	}
	return filepath.Join(dir, appDirName, DefaultConfigFileName)
}

// LoadOrCreate reads the config at path, writing the defaults there first if
// the file does not exist. Relative default paths sit next to the config.
func LoadOrCreate(path string) (Config, error) {
	cfg := Default(filepath.Dir(path))
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := write(path, cfg); err != nil {
			return cfg, err
		}
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	cfg.fillDefaults(filepath.Dir(path))
	return cfg, nil
}

// ErrorTimeoutDuration is how long a transient error stays on screen.
func (c Config) ErrorTimeoutDuration() time.Duration {
	d, err := time.ParseDuration(c.ErrorTimeout)
	if err != nil || d <= 0 {
		return DefaultErrorTimeout
	}
	return d
}

func (c *Config) fillDefaults(dir string) {
	def := Default(dir)
	if c.DBPath == "" {
		c.DBPath = def.DBPath
	}
	if c.StorageKey == "" {
		c.StorageKey = def.StorageKey
	}
	if c.LogPath == "" {
		c.LogPath = def.LogPath
	}
	if c.ErrorTimeout == "" {
		c.ErrorTimeout = def.ErrorTimeout
	}
	k, d := &c.Keys, def.Keys
	orDefault(&k.Quit, d.Quit)
	orDefault(&k.Add, d.Add)
	orDefault(&k.Up, d.Up)
	orDefault(&k.Down, d.Down)
	orDefault(&k.Toggle, d.Toggle)
	orDefault(&k.Delete, d.Delete)
	orDefault(&k.Edit, d.Edit)
	orDefault(&k.ClearDone, d.ClearDone)
	orDefault(&k.Confirm, d.Confirm)
	orDefault(&k.Cancel, d.Cancel)
}

func orDefault(dst *string, def string) {
	if *dst == "" {
		*dst = def
	}
}

func write(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Default returns the built-in configuration with file paths under dir.
func Default(dir string) Config {
	return Config{
		DBPath:        filepath.Join(dir, DefaultDBName),
		StorageKey:    DefaultStorageKey,
		LogPath:       filepath.Join(dir, DefaultLogName),
		ErrorTimeout:  DefaultErrorTimeout.String(),
		ConfirmDelete: false,
		Keys: Keymap{
			Quit:      "q",
			Add:       "a",
			Up:        "k",
			Down:      "j",
			Toggle:    " ",
			Delete:    "d",
			Edit:      "e",
			ClearDone: "x",
			Confirm:   "enter",
			Cancel:    "esc",
		},
	}
}
