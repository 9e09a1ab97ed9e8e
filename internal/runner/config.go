package runner

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/goccy/go-yaml"
	"github.com/projectdiscovery/gologger"
	fileutil "github.com/projectdiscovery/utils/file"
)

// MiningDefaults holds the persisted mining-parameter defaults applied
// when the corresponding CLI flag is left unset.
type MiningDefaults struct {
	Radius        float64 `yaml:"radius"`
	MinPrevalence float64 `yaml:"min_prevalence"`
	CoarsePrune   bool    `yaml:"coarse_prune"`
	Workers       int     `yaml:"workers"`
}

// DefaultMiningDefaults mirrors the values original_source/main.py's
// argparse defaults used (radius=0.005, min_prevalence=0.5).
var DefaultMiningDefaults = MiningDefaults{
	Radius:        0.005,
	MinPrevalence: 0.5,
	CoarsePrune:   true,
	Workers:       0,
}

func getUserHomeDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		panic(err)
	}
	return homeDir
}

func defaultMiningConfigPath() string {
	return filepath.Join(getUserHomeDir(), fmt.Sprintf(".config/colocate/mining_%v.yaml", version))
}

func init() {
	path := defaultMiningConfigPath()
	if fileutil.FileExists(path) {
		if bin, err := os.ReadFile(path); err == nil {
			var cfg MiningDefaults
			if errx := yaml.Unmarshal(bin, &cfg); errx == nil {
				DefaultMiningDefaults = cfg
				return
			}
			gologger.Error().Msgf("colocate mining config syntax error.\n %v\n.", yaml.FormatError(errx, true, true))
			return
		}
	}
	if err := validateDir(filepath.Join(getUserHomeDir(), ".config/colocate")); err != nil {
		gologger.Error().Msgf("colocate config dir not found and failed to create got: %v", err)
		return
	}
	bin, err := yaml.Marshal(DefaultMiningDefaults)
	if err != nil {
		gologger.Error().Msgf("failed to marshal default mining config got: %v", err)
		return
	}
	if err := os.WriteFile(path, bin, 0600); err != nil {
		gologger.Error().Msgf("failed to save default mining config to %v got: %v", path, err)
	}
}

// validateDir checks if dir exists; if not, creates it.
func validateDir(dirPath string) error {
	if fileutil.FolderExists(dirPath) {
		return nil
	}
	return fileutil.CreateFolder(dirPath)
}
