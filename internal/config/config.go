package config

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"

	"github.com/ORBICITY-SYSTEM/orbi-city-hub-sub008/internal/calculator"
)

// AppConfig is the application configuration, loaded from config.toml next
// to the executable.
type AppConfig struct {
	Server   ServerConfig   `toml:"server"`
	Data     DataConfig     `toml:"data"`
	Business BusinessConfig `toml:"business"`
}

// ServerConfig HTTP server settings.
type ServerConfig struct {
	Port    int  `toml:"port"`
	DevMode bool `toml:"dev_mode"`
}

// DataConfig local data directory settings.
type DataConfig struct {
	DataDir string `toml:"data_dir"`
}

// BusinessConfig carries the allocation engine's business rules: the default
// channel bucket, building prefixes, the combined-listing table and the
// calendar periods excluded from reporting. All of it is data so rule changes
// never require a rebuild.
type BusinessConfig struct {
	DefaultChannel   string                  `toml:"default_channel" json:"defaultChannel"`
	BuildingPrefixes []string                `toml:"building_prefixes" json:"buildingPrefixes"`
	CombinedUnits    map[string][]string     `toml:"combined_units" json:"combinedUnits"`
	ExcludedPeriods  []calculator.MonthRange `toml:"excluded_periods" json:"excludedPeriods"`
}

// DefaultConfig returns the configuration used when no config.toml exists.
func DefaultConfig() *AppConfig {
	return &AppConfig{
		Server: ServerConfig{
			Port:    20418,
			DevMode: false,
		},
		Data: DataConfig{
			DataDir: "data",
		},
		Business: BusinessConfig{
			DefaultChannel:   "Social Media",
			BuildingPrefixes: calculator.DefaultBuildingPrefixes(),
			CombinedUnits:    calculator.DefaultCombinedUnits(),
			ExcludedPeriods: []calculator.MonthRange{
				// Pre-migration 2024 history and the not-yet-closed months
				// from October 2025 onward are dropped from reporting.
				{From: "2024-01", To: "2024-12"},
				{From: "2025-10"},
			},
		},
	}
}

// GetExeDir returns the directory of the running executable.
func GetExeDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}
	return filepath.Dir(exe), nil
}

// LoadConfig loads config.toml, falling back to defaults when the file is
// absent. A .env file and environment variables override individual values.
func LoadConfig() (*AppConfig, error) {
	config := DefaultConfig()

	exeDir, err := GetExeDir()
	if err != nil {
		exeDir = "."
	}

	configPath := filepath.Join(exeDir, "config.toml")

	data, err := os.ReadFile(configPath)
	if err == nil {
		if err := toml.Unmarshal(data, config); err != nil {
			return nil, err
		}
	} else if !os.IsNotExist(err) {
		return nil, err
	}

	// .env support for local runs and E2E
	_ = godotenv.Load(filepath.Join(exeDir, ".env"))

	if v := os.Getenv("ORBIHUB_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil && port > 0 {
			config.Server.Port = port
		}
	}
	if v := os.Getenv("ORBIHUB_DATA_DIR"); v != "" {
		config.Data.DataDir = v
	}

	return config, nil
}

// SaveConfig writes the configuration back to config.toml.
func SaveConfig(config *AppConfig) error {
	exeDir, err := GetExeDir()
	if err != nil {
		exeDir = "."
	}

	configPath := filepath.Join(exeDir, "config.toml")

	data, err := toml.Marshal(config)
	if err != nil {
		return err
	}

	return os.WriteFile(configPath, data, 0644)
}

// EnsureDataDir creates the data directory and its subdirectories.
func EnsureDataDir(config *AppConfig) (string, error) {
	exeDir, err := GetExeDir()
	if err != nil {
		exeDir = "."
	}

	dataDir := config.Data.DataDir
	if !filepath.IsAbs(dataDir) {
		dataDir = filepath.Join(exeDir, dataDir)
	}

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return "", err
	}

	subdirs := []string{"uploads", "exports", "backups"}
	for _, subdir := range subdirs {
		path := filepath.Join(dataDir, subdir)
		if err := os.MkdirAll(path, 0755); err != nil {
			return "", err
		}
	}

	return dataDir, nil
}

// PipelineConfig maps the business section onto the engine's configuration.
func (c *AppConfig) PipelineConfig() calculator.PipelineConfig {
	return calculator.PipelineConfig{
		CombinedUnits:    c.Business.CombinedUnits,
		ExcludedPeriods:  calculator.ExclusionPolicy(c.Business.ExcludedPeriods),
		BuildingPrefixes: c.Business.BuildingPrefixes,
		DefaultChannel:   c.Business.DefaultChannel,
	}
}
