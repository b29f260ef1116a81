package server

import (
	"io/ioutil"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/iov-one/bazaar/errors"
)

// ConfigFile is the name of the optional node configuration file in the
// home directory.
const ConfigFile = "bazaard.yaml"

// Config is the node configuration. All values can be given in the YAML
// file, where ${VAR} references are expanded from the environment.
type Config struct {
	// Bind is the address the ABCI server listens on.
	Bind string `yaml:"bind"`
	// Debug returns full error details, including stack traces.
	Debug bool `yaml:"debug"`
	// LogLevel is one of debug, info, error or none.
	LogLevel string       `yaml:"log_level"`
	Events   EventsConfig `yaml:"events"`
}

// EventsConfig configures the committed events bus.
type EventsConfig struct {
	// Log writes every committed event to the node log.
	Log bool `yaml:"log"`
	// Buffer is the number of events queued for publication.
	Buffer int `yaml:"buffer"`
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() Config {
	return Config{
		Bind:     "tcp://localhost:26658",
		LogLevel: "info",
		Events: EventsConfig{
			Log:    true,
			Buffer: 100,
		},
	}
}

// LoadConfig reads the YAML file on top of the defaults. A missing file is
// not an error.
func LoadConfig(path string) (Config, error) {
	conf := DefaultConfig()
	data, err := ioutil.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		return conf, nil
	case err != nil:
		return conf, errors.Wrapf(errors.ErrInput, "read config file: %s", err)
	}

	expanded := os.ExpandEnv(string(data))
	if err := yaml.Unmarshal([]byte(expanded), &conf); err != nil {
		return conf, errors.Wrapf(errors.ErrInput, "parse config yaml: %s", err)
	}
	return conf, conf.Validate()
}

// Validate returns an error for unusable values.
func (c Config) Validate() error {
	var errs error
	if c.Bind == "" {
		errs = errors.AppendField(errs, "Bind", errors.ErrEmpty)
	}
	switch c.LogLevel {
	case "debug", "info", "error", "none":
	default:
		errs = errors.AppendField(errs, "LogLevel", errors.Wrapf(errors.ErrInput, "unknown level %q", c.LogLevel))
	}
	if c.Events.Buffer < 0 {
		errs = errors.AppendField(errs, "Events.Buffer", errors.Wrap(errors.ErrInput, "negative"))
	}
	return errs
}
