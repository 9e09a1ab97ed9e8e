package colocate

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

var DefaultConfigFilePath = filepath.Join(getUserHomeDir(), ".config/colocate/config.yaml")

// Config is the persisted CLI default-run configuration: a saved area,
// POI type list, and species list so a repeat run doesn't need to
// re-specify them on the command line.
type Config struct {
	Area     string   `yaml:"area"`
	POITypes []string `yaml:"poi_types"`
	Species  []string `yaml:"species"`
}

// NewConfig reads a Config from a YAML file.
func NewConfig(filePath string) (*Config, error) {
	bin, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(bin, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// GenerateSample writes a sample config.yaml with placeholder values.
func GenerateSample(filePath string) error {
	cfg := Config{
		Area:     "40.700,-74.020,40.730,-73.990",
		POITypes: []string{"restaurant", "cafe", "bar"},
		Species:  []string{"Panthera leo"},
	}
	bin, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(filePath, bin, 0644)
}

func getUserHomeDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		panic(err)
	}
	return homeDir
}
