package vlsm

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"io/fs"
	"os"

	"github.com/Lucop1911/vlsm/internal/print/human"
	"gopkg.in/yaml.v3"
)

// DefaultConfigPath is where the configuration lives unless the VLSMCONFIG
// environment variable or the -c option say otherwise.
const DefaultConfigPath human.Path = "~/.vlsm/config.yaml"

// ConfigPath is the path to the vlsm configuration.
var ConfigPath = DefaultConfigPath

// LoadConfig opens and reads the configuration file.
func LoadConfig() (*Config, error) {
	r, _, err := OpenConfig()
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return ReadConfig(r)
}

// OpenConfig opens the configuration file.
func OpenConfig() (io.ReadCloser, string, error) {
	path, err := ConfigPath.Resolve()
	if err != nil {
		return nil, path, err
	}
	f, err := os.Open(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, path, err
		}
		c := DefaultConfig()
		b, _ := yaml.Marshal(c)
		return io.NopCloser(bytes.NewReader(b)), path, nil
	}
	return f, path, nil
}

// ReadConfig reads and parses configuration. An empty file carries the
// default configuration.
func ReadConfig(r io.Reader) (*Config, error) {
	c := DefaultConfig()
	d := yaml.NewDecoder(r)
	d.KnownFields(true)
	if err := d.Decode(c); err != nil {
		if errors.Is(err, io.EOF) {
			return c, nil
		}
		return nil, err
	}
	return c, nil
}

// DefaultConfig is the default configuration.
func DefaultConfig() *Config {
	c := new(Config)
	c.Output = NullableValue("text")
	c.Shell.Prompt = NullableValue("vlsm> ")
	return c
}

// Config is vlsm configuration.
type Config struct {
	Output Nullable[string] `json:"output"`
	Shell  struct {
		Prompt Nullable[string] `json:"prompt"`
	} `json:"shell"`
}

// OutputFormat returns the output format used by commands when the -o
// option is not given.
func (c *Config) OutputFormat() string {
	if format, ok := c.Output.Value(); ok {
		return format
	}
	return "text"
}

// ShellPrompt returns the prompt string printed by the interactive shell.
func (c *Config) ShellPrompt() string {
	if prompt, ok := c.Shell.Prompt.Value(); ok {
		return prompt
	}
	return "vlsm> "
}

type Nullable[T any] struct {
	value T
	exist bool
}

func NullableValue[T any](v T) Nullable[T] {
	return Nullable[T]{value: v, exist: true}
}

func (v Nullable[T]) Value() (T, bool) {
	return v.value, v.exist
}

func (v Nullable[T]) MarshalJSON() ([]byte, error) {
	if !v.exist {
		return []byte("null"), nil
	}
	return json.Marshal(v.value)
}

func (v Nullable[T]) MarshalYAML() (any, error) {
	if !v.exist {
		return nil, nil
	}
	return v.value, nil
}

func (v *Nullable[T]) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		v.exist = false
		return nil
	} else if err := json.Unmarshal(b, &v.value); err != nil {
		v.exist = false
		return err
	} else {
		v.exist = true
		return nil
	}
}

func (v *Nullable[T]) UnmarshalYAML(node *yaml.Node) error {
	if node.Value == "" || node.Value == "~" || node.Value == "null" {
		v.exist = false
		return nil
	} else if err := node.Decode(&v.value); err != nil {
		v.exist = false
		return err
	} else {
		v.exist = true
		return nil
	}
}
