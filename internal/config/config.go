// Package config loads release pipeline settings from layergen.yaml,
// applying defaults for anything the file omits.
package config

// FileName is the config file looked up at the repository root.
const FileName = "layergen.yaml"

// Config holds the release pipeline settings.
type Config struct {
	Package  Package  `yaml:"package"`
	Trunk    string   `yaml:"trunk"`
	Dist     string   `yaml:"dist"`
	Registry Registry `yaml:"registry"`
}

// Package identifies the published artifact.
type Package struct {
	Name string `yaml:"name"`
}

// Registry identifies the release registry (GitHub Releases).
type Registry struct {
	Owner   string `yaml:"owner"`
	Repo    string `yaml:"repo"`
	APIBase string `yaml:"api_base"`
}

// Default returns a Config with every field populated.
func Default() *Config {
	return &Config{
		Package: Package{Name: "layergen"},
		Trunk:   "main",
		Dist:    "dist",
		Registry: Registry{
			Owner:   "layergen",
			Repo:    "layergen",
			APIBase: "https://api.github.com",
		},
	}
}

// applyDefaults fills empty fields from Default.
func (c *Config) applyDefaults() {
	def := Default()
	if c.Package.Name == "" {
		c.Package.Name = def.Package.Name
	}
	if c.Trunk == "" {
		c.Trunk = def.Trunk
	}
	if c.Dist == "" {
		c.Dist = def.Dist
	}
	if c.Registry.Owner == "" {
		c.Registry.Owner = def.Registry.Owner
	}
	if c.Registry.Repo == "" {
		c.Registry.Repo = def.Registry.Repo
	}
	if c.Registry.APIBase == "" {
		c.Registry.APIBase = def.Registry.APIBase
	}
}
