package config

import (
	"os"

	"github.com/go-yaml/yaml"
	"github.com/pkg/errors"
)

// DefaultPath is where the generator looks for a config file when no
// --config flag is given. The file is optional; the built-in defaults
// describe the YTAudioBar release setup.
const DefaultPath = "config/appcast.yaml"

// Channel holds the fixed metadata of the appcast channel element.
type Channel struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Language    string `yaml:"language"`
	Link        string `yaml:"link"`
}

// Config describes one appcast generation run.
type Config struct {
	Owner string `yaml:"owner"`
	Repo  string `yaml:"repo"`

	Channel Channel `yaml:"channel"`

	// AssetExtension selects the update package among the release assets.
	AssetExtension string `yaml:"asset_extension"`

	MinimumSystemVersion string `yaml:"minimum_system_version"`

	// Output is the appcast file path, relative to the working directory.
	Output string `yaml:"output"`

	// SignTool is the path to Sparkle's sign_update executable.
	SignTool string `yaml:"sign_tool"`
}

// Default returns the built-in configuration.
func Default() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

// Load reads the YAML file at path. Fields left empty in the file fall
// back to the built-in defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "reading config")
	}

	c := &Config{}
	if err := yaml.Unmarshal(data, c); err != nil {
		return nil, errors.Wrapf(err, "parsing config %s", path)
	}
	c.applyDefaults()
	return c, nil
}

// LoadOrDefault behaves like Load, except that a missing file yields the
// built-in defaults instead of an error.
func LoadOrDefault(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Default(), nil
	}
	return Load(path)
}

// Slug returns the owner/repo pair as used in GitHub URLs.
func (c *Config) Slug() string {
	return c.Owner + "/" + c.Repo
}

func (c *Config) applyDefaults() {
	if c.Owner == "" {
		c.Owner = "ilyassan"
	}
	if c.Repo == "" {
		c.Repo = "YTAudioBar-macos"
	}
	if c.Channel.Title == "" {
		c.Channel.Title = "YTAudioBar Updates"
	}
	if c.Channel.Description == "" {
		c.Channel.Description = "Updates for YTAudioBar - YouTube Audio Player for macOS"
	}
	if c.Channel.Language == "" {
		c.Channel.Language = "en"
	}
	if c.Channel.Link == "" {
		c.Channel.Link = "https://github.com/" + c.Slug()
	}
	if c.AssetExtension == "" {
		c.AssetExtension = ".dmg"
	}
	if c.MinimumSystemVersion == "" {
		c.MinimumSystemVersion = "14.0"
	}
	if c.Output == "" {
		c.Output = "appcast.xml"
	}
	if c.SignTool == "" {
		c.SignTool = "./sign_update"
	}
}
