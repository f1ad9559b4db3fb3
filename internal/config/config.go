// Package config handles application configuration, on-disk paths, and the
// GlobalConfig value threaded through the artifact graph (spec §9's "Global
// configuration passing" design note).
package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/wrenfield/pickaxe/internal/layout"
	"github.com/wrenfield/pickaxe/internal/rules"
)

// DefaultAssetsOrigin is the default asset-object origin (spec §6).
const DefaultAssetsOrigin = "http://resources.download.minecraft.net"

// DefaultVersionManifestURL is the root pointer spec §6 names.
const DefaultVersionManifestURL = "https://piston-meta.mojang.com/mc/game/version_manifest_v2.json"

// GlobalConfig is the single configuration value passed to every Artifact's
// Provide method, rather than threading five parameters everywhere. Callers
// project the subset they need (AssetsOrigin, Features, OsSelector, ...).
type GlobalConfig struct {
	Dirs                layout.Dirs     `json:"dirs"`
	AssetsOrigin        string          `json:"assetsOrigin"`
	Features            map[string]bool `json:"features"`
	OsSelector          rules.OsSelector `json:"osSelector"`
	PreferCompressedJvm bool            `json:"preferCompressedJvm"`
	ConcurrencyLimit    int             `json:"concurrencyLimit"`
}

// Config is the on-disk application configuration this binary loads and
// saves; it is converted to a GlobalConfig by ToGlobalConfig.
type Config struct {
	DataDir string `json:"dataDir"`

	AssetsOrigin        string          `json:"assetsOrigin"`
	Features            map[string]bool `json:"features"`
	OsSelector          rules.OsSelector `json:"osSelector"`
	PreferCompressedJvm bool            `json:"preferCompressedJvm"`
	ConcurrencyLimit    int             `json:"concurrencyLimit"`
}

// DefaultConfig returns a config with sensible defaults; OsSelector is
// taken from HostOsSelector below.
func DefaultConfig() *Config {
	return &Config{
		DataDir:             getDefaultDataDir(),
		AssetsOrigin:        DefaultAssetsOrigin,
		Features:            map[string]bool{},
		OsSelector:          HostOsSelector(),
		PreferCompressedJvm: true,
		ConcurrencyLimit:    8,
	}
}

// HostOsSelector maps the running process's GOOS/GOARCH to the nearest
// OsSelector bit. Only used as a convenience default; callers may always
// override it directly on GlobalConfig.
func HostOsSelector() rules.OsSelector {
	switch os.Getenv("PICKAXE_OS_OVERRIDE") {
	case "linux32":
		return rules.Linux32
	case "linux64":
		return rules.Linux64
	case "windows32":
		return rules.Windows10_32
	case "windows64":
		return rules.Windows10_64
	case "osx32":
		return rules.MacOS32
	case "osx64":
		return rules.MacOS64
	}
	return hostOsSelectorFromRuntime()
}

// Load reads config from disk, falling back to defaults if absent.
func Load() (*Config, error) {
	cfg := DefaultConfig()

	configPath := filepath.Join(cfg.DataDir, "config.json")
	data, err := os.ReadFile(configPath)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if cfg.AssetsOrigin == "" {
		cfg.AssetsOrigin = DefaultAssetsOrigin
	}
	return cfg, nil
}

// Save writes config to disk.
func (c *Config) Save() error {
	if err := os.MkdirAll(c.DataDir, 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	configPath := filepath.Join(c.DataDir, "config.json")
	return os.WriteFile(configPath, data, 0644)
}

// EnsureDirs creates the five base directories under DataDir.
func (c *Config) EnsureDirs() (layout.Dirs, error) {
	dirs := layout.Dirs{
		Root:      c.DataDir,
		Assets:    filepath.Join(c.DataDir, "assets"),
		Libraries: filepath.Join(c.DataDir, "libraries"),
		Versions:  filepath.Join(c.DataDir, "versions"),
		Runtime:   filepath.Join(c.DataDir, "runtime"),
	}
	for _, dir := range []string{dirs.Root, dirs.Assets, dirs.Libraries, dirs.Versions, dirs.Runtime} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return dirs, err
		}
	}
	return dirs, nil
}

// ToGlobalConfig builds the GlobalConfig passed to the resolver/artifact
// layer, ensuring the base directories exist first.
func (c *Config) ToGlobalConfig() (GlobalConfig, error) {
	dirs, err := c.EnsureDirs()
	if err != nil {
		return GlobalConfig{}, err
	}
	return GlobalConfig{
		Dirs:                dirs,
		AssetsOrigin:        c.AssetsOrigin,
		Features:            c.Features,
		OsSelector:          c.OsSelector,
		PreferCompressedJvm: c.PreferCompressedJvm,
		ConcurrencyLimit:    c.ConcurrencyLimit,
	}, nil
}

func getDefaultDataDir() string {
	exe, _ := os.Executable()
	portablePath := filepath.Join(filepath.Dir(exe), "data")
	if _, err := os.Stat(portablePath); err == nil {
		return portablePath
	}

	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "pickaxe")
	}

	home, _ := os.UserHomeDir()
	if appdata := os.Getenv("APPDATA"); appdata != "" {
		return filepath.Join(appdata, "pickaxe")
	}
	if home == "" {
		return ".minecraft"
	}
	return filepath.Join(home, ".local", "share", "pickaxe")
}
