package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/daedaleanai/nbt/log"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v2"
)

// Config is the per-user configuration file.
type Config struct {
	// Settings are configuration key overrides applied to every build.
	Settings map[string]string `yaml:"settings"`
}

var config *Config

const configFileName string = "config.yaml"

// envPrefix is prepended to configuration keys to form environment variable names.
const envPrefix = "NBT"

func getNbtConfigDir() (string, error) {
	if nbtConfigDir, ok := os.LookupEnv("NBT_CONFIG_DIR"); ok {
		return nbtConfigDir, nil
	}

	if xdgConfigHome, ok := os.LookupEnv("XDG_CONFIG_HOME"); ok {
		return filepath.Join(xdgConfigHome, "nbt"), nil
	}

	homeDir, err := homedir.Dir()
	if err != nil {
		return "", fmt.Errorf("Unable to locate the configuration directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "nbt"), nil
}

func loadConfiguration() Config {
	var config Config

	configDir, err := getNbtConfigDir()
	if err != nil {
		log.Debug("Unable to find nbt config directory. Using default configuration\n")
		return config
	}

	configFilePath := filepath.Join(configDir, configFileName)
	data, err := os.ReadFile(configFilePath)
	if err != nil {
		log.Debug("No configuration file at `%s`. Using default configuration\n", configFilePath)
		return config
	}
	if err := yaml.Unmarshal(data, &config); err != nil {
		log.Warning("Error reading configuration file at `%s`: `%s`. Using default configuration\n", configFilePath, err)
		return Config{}
	}

	log.Debug("Loaded configuration from `%s`\n", configFilePath)
	log.Debug("Running with configuration: %+v\n", config)
	return config
}

// GetConfig returns the per-user configuration, loading it on first use.
func GetConfig() Config {
	if config == nil {
		loadedConfig := loadConfiguration()
		config = &loadedConfig
	}

	return *config
}

// Sources holds configuration values by origin. Later sources override earlier ones.
type Sources struct {
	User        map[string]string
	Project     map[string]string
	CommandLine map[string]string
}

// Load resolves the settings from defaults, the given sources and `NBT_*`
// environment variables. Precedence, highest first: command line,
// environment, project, user, defaults.
func Load(sources Sources) (Settings, error) {
	return load(runtime.GOOS, runtime.GOARCH, sources)
}

func load(goos, goarch string, sources Sources) (Settings, error) {
	v := viper.New()
	for _, key := range Keys {
		v.SetDefault(key.Name, key.Default(goos, goarch))
	}
	for _, layer := range []map[string]string{sources.User, sources.Project} {
		if err := v.MergeConfigMap(toInterfaceMap(layer)); err != nil {
			return Settings{}, err
		}
	}
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	for key, value := range sources.CommandLine {
		v.Set(key, value)
	}

	values := map[string]string{}
	for _, key := range Keys {
		values[key.Name] = v.GetString(key.Name)
	}
	settings, err := FromMap(goos, goarch, values)
	if err != nil {
		return Settings{}, err
	}
	log.Debug("Running with settings: %+v\n", settings)
	return settings, nil
}

// Environment returns the settings given as `NBT_*` environment variables.
// Callers layering project settings over a loaded base apply these again
// to keep the environment above the project.
func Environment() map[string]string {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	values := map[string]string{}
	for _, key := range Keys {
		if v.IsSet(key.Name) {
			values[key.Name] = v.GetString(key.Name)
		}
	}
	return values
}

func toInterfaceMap(m map[string]string) map[string]interface{} {
	result := make(map[string]interface{}, len(m))
	for k, v := range m {
		result[k] = v
	}
	return result
}
