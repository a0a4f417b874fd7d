package cli

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/voidpetal/python-inspector/client"
	"github.com/voidpetal/python-inspector/internal/core"
	"github.com/voidpetal/python-inspector/internal/pypi"
)

// Config holds resolution defaults loaded from a TOML file. Command-line
// flags override file values.
type Config struct {
	IndexURLs       []string `toml:"index_urls"`
	PythonVersion   string   `toml:"python_version"`
	OperatingSystem string   `toml:"operating_system"`
	PreferSource    bool     `toml:"prefer_source"`
}

// defaultConfig mirrors the resolver defaults: public PyPI, Python 3.8 on
// linux, source distributions preferred.
func defaultConfig() Config {
	env := core.DefaultEnvironment()
	return Config{
		PythonVersion:   env.PythonVersion,
		OperatingSystem: env.OperatingSystem,
		PreferSource:    true,
	}
}

// loadConfig reads a TOML config file over the defaults. An empty path
// returns the defaults unchanged.
func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config: %w", err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}

// environment converts the config's interpreter target to an Environment.
func (c Config) environment() core.Environment {
	return core.Environment{
		PythonVersion:   c.PythonVersion,
		OperatingSystem: c.OperatingSystem,
	}
}

// repositories builds the simple-index repositories for the configured
// index URLs, falling back to the public PyPI index when none are set.
func (c Config) repositories(hc *client.Client) []pypi.Repository {
	var repos []pypi.Repository
	for _, indexURL := range c.IndexURLs {
		repos = append(repos, pypi.NewSimpleRepository(indexURL, hc))
	}
	if len(repos) == 0 {
		repos = append(repos, pypi.NewSimpleRepository("", hc))
	}
	return repos
}

// resolutionFlags are the flags shared by the commands that resolve purls.
type resolutionFlags struct {
	configPath   string
	indexURLs    []string
	pyVersion    string
	osName       string
	preferSource bool
}

func (rf *resolutionFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&rf.configPath, "config", "", "TOML config file with resolution defaults")
	cmd.Flags().StringArrayVar(&rf.indexURLs, "index-url", nil, "simple index URL (repeatable, overrides config)")
	cmd.Flags().StringVar(&rf.pyVersion, "python-version", "38", "target Python version tag (e.g. 38, 311)")
	cmd.Flags().StringVar(&rf.osName, "operating-system", "linux", "target operating system (linux, macos, windows)")
	cmd.Flags().BoolVar(&rf.preferSource, "prefer-source", true, "prefer source distributions over wheels")
}

// config loads the TOML config and applies any flags changed on cmd over it.
func (rf *resolutionFlags) config(cmd *cobra.Command) (Config, error) {
	cfg, err := loadConfig(rf.configPath)
	if err != nil {
		return cfg, err
	}
	if len(rf.indexURLs) > 0 {
		cfg.IndexURLs = rf.indexURLs
	}
	if cmd.Flags().Changed("python-version") {
		cfg.PythonVersion = rf.pyVersion
	}
	if cmd.Flags().Changed("operating-system") {
		cfg.OperatingSystem = rf.osName
	}
	if cmd.Flags().Changed("prefer-source") {
		cfg.PreferSource = rf.preferSource
	}
	return cfg, nil
}
