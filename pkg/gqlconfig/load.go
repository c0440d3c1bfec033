package gqlconfig

import (
	"path/filepath"

	"github.com/mitchellh/go-homedir"
	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"github.com/tidwall/gjson"
	yaml "gopkg.in/yaml.v2"
)

const (
	// ConfigFileYML is the default configuration file name.
	ConfigFileYML = "graphql-codegen.yml"
	// ConfigFileYAML is the long-extension spelling of ConfigFileYML.
	ConfigFileYAML = "graphql-codegen.yaml"
	// PackageJSON can embed the configuration under PackageJSONKey.
	PackageJSON = "package.json"
	// PackageJSONKey is the package.json key holding the configuration.
	PackageJSONKey = "graphqlCodegen"
)

// Load reads, validates and decodes the configuration at path. A path
// ending in package.json is read from its "graphqlCodegen" key, anything
// else is parsed as YAML.
func Load(fsys afero.Fs, path string) (*Config, error) {
	content, err := afero.ReadFile(fsys, path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read config %s", path)
	}

	raw := content
	if filepath.Base(path) == PackageJSON {
		embedded := gjson.GetBytes(content, PackageJSONKey)
		if !embedded.Exists() {
			return nil, errors.Errorf("%s has no %q key", path, PackageJSONKey)
		}
		raw = []byte(embedded.Raw)
	}

	if err := validateRaw(raw); err != nil {
		return nil, errors.Wrapf(err, "invalid config %s", path)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return nil, errors.Wrapf(err, "failed to decode config %s", path)
	}
	cfg.normalize()
	if err := cfg.expandPaths(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrapf(err, "invalid config %s", path)
	}
	return cfg, nil
}

// DiscoverConfig finds the configuration file in dir, preferring
// graphql-codegen.yml over graphql-codegen.yaml over a package.json with
// a "graphqlCodegen" key.
func DiscoverConfig(fsys afero.Fs, dir string) (string, error) {
	for _, name := range []string{ConfigFileYML, ConfigFileYAML} {
		candidate := filepath.Join(dir, name)
		if exists, _ := afero.Exists(fsys, candidate); exists {
			return candidate, nil
		}
	}

	candidate := filepath.Join(dir, PackageJSON)
	if exists, _ := afero.Exists(fsys, candidate); exists {
		content, err := afero.ReadFile(fsys, candidate)
		if err == nil && gjson.GetBytes(content, PackageJSONKey).Exists() {
			return candidate, nil
		}
	}

	return "", errors.Errorf("no %s, %s or %s with a %q key found in %s",
		ConfigFileYML, ConfigFileYAML, PackageJSON, PackageJSONKey, dir)
}

// expandPaths resolves "~" prefixes in schema and document globs.
func (c *Config) expandPaths() error {
	for _, list := range []StringList{c.Schema, c.Documents} {
		for i, pattern := range list {
			expanded, err := homedir.Expand(pattern)
			if err != nil {
				return errors.Wrapf(err, "failed to expand path %s", pattern)
			}
			list[i] = expanded
		}
	}
	return nil
}
