package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Lucop1911/vlsm/internal/assert"
)

// The suite runner marshals the test configuration with a 4 space indent.
const configFile = "output: text\nshell:\n    prompt: 'vlsm> '\n"

var configTests = tests{
	"show the config command help with the short option": func(t *testing.T) {
		stdout, stderr, exitCode := run(t, "config", "-h")
		assert.Equal(t, exitCode, 0)
		assert.HasPrefix(t, stdout, "Usage:\tvlsm config ")
		assert.Equal(t, stderr, "")
	},

	"show the config command help with the long option": func(t *testing.T) {
		stdout, stderr, exitCode := run(t, "config", "--help")
		assert.Equal(t, exitCode, 0)
		assert.HasPrefix(t, stdout, "Usage:\tvlsm config ")
		assert.Equal(t, stderr, "")
	},

	"print the configuration file as-is by default": func(t *testing.T) {
		stdout, stderr, exitCode := run(t, "config")
		assert.Equal(t, exitCode, 0)
		assert.Equal(t, stdout, configFile)
		assert.Equal(t, stderr, "")
	},

	"print the defaults when the configuration file does not exist": func(t *testing.T) {
		t.Setenv("VLSMCONFIG", filepath.Join(t.TempDir(), "missing.yaml"))
		stdout, stderr, exitCode := run(t, "config")
		assert.Equal(t, exitCode, 0)
		assert.Equal(t, stdout, configFile)
		assert.Equal(t, stderr, "")
	},

	"json output": func(t *testing.T) {
		stdout, stderr, exitCode := run(t, "config", "-o", "json")
		assert.Equal(t, exitCode, 0)
		assert.Equal(t, stdout, `{
  "output": "text",
  "shell": {
    "prompt": "vlsm> "
  }
}
`)
		assert.Equal(t, stderr, "")
	},

	"yaml output": func(t *testing.T) {
		stdout, stderr, exitCode := run(t, "config", "-o", "yaml")
		assert.Equal(t, exitCode, 0)
		assert.Equal(t, stdout, "output: text\nshell:\n  prompt: 'vlsm> '\n")
		assert.Equal(t, stderr, "")
	},

	"the config option reads an alternate file": func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "alt.yaml")
		if err := os.WriteFile(path, []byte("output: yaml\n"), 0666); err != nil {
			t.Fatal(err)
		}
		stdout, stderr, exitCode := run(t, "config", "-c", path)
		assert.Equal(t, exitCode, 0)
		assert.Equal(t, stdout, "output: yaml\n")
		assert.Equal(t, stderr, "")
	},

	"report a configuration file that does not parse": func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		if err := os.WriteFile(path, []byte("output: [broken\n"), 0666); err != nil {
			t.Fatal(err)
		}
		t.Setenv("VLSMCONFIG", path)
		_, stderr, exitCode := run(t, "config")
		assert.Equal(t, exitCode, 1)
		assert.HasPrefix(t, stderr, "ERR: vlsm config: ")
	},

	"report unknown configuration keys": func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		if err := os.WriteFile(path, []byte("color: auto\n"), 0666); err != nil {
			t.Fatal(err)
		}
		t.Setenv("VLSMCONFIG", path)
		_, stderr, exitCode := run(t, "config")
		assert.Equal(t, exitCode, 1)
		assert.HasPrefix(t, stderr, "ERR: vlsm config: ")
	},

	"the edit option requires EDITOR to be set": func(t *testing.T) {
		t.Setenv("EDITOR", "")
		stdout, stderr, exitCode := run(t, "config", "--edit")
		assert.Equal(t, exitCode, 1)
		assert.Equal(t, stdout, "")
		assert.Equal(t, stderr, "ERR: vlsm config: $EDITOR is not set\n")
	},

	"the edit option validates and applies the edited file": func(t *testing.T) {
		// true leaves the file untouched, the command then re-reads and
		// applies it.
		t.Setenv("EDITOR", "true")
		stdout, stderr, exitCode := run(t, "config", "--edit")
		assert.Equal(t, exitCode, 0)
		assert.Equal(t, stdout, configFile)
		assert.Equal(t, stderr, "")
	},

	"passing an unsupported flag to the command causes an error": func(t *testing.T) {
		_, _, exitCode := run(t, "config", "-_")
		assert.Equal(t, exitCode, 2)
	},
}
