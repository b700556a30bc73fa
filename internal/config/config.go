// Package config loads and verifies the inventory plugin configuration
// file (openstack.yml / clouds.yml). Every recognized option is optional
// except the plugin discriminator; type mismatches and a missing or wrong
// discriminator are fatal before any cloud is contacted.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"openstack-inventory/internal/inventory"
)

// PluginName is the discriminator a plugin config file must carry.
const PluginName = "openstack-inventory"

// DefaultCacheTimeout is the TTL for cached enumeration results.
const DefaultCacheTimeout = time.Hour

type Error struct {
	Path   string
	Reason string
}

func (e *Error) Error() string {
	if e.Path == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Path, e.Reason)
}

type Config struct {
	ShowAll           bool
	InventoryHostname string
	ExpandHostvars    bool
	Private           bool
	OnlyClouds        []string
	FailOnErrors      bool
	CloudsYAMLPath    []string
	Debug             bool
	Cache             bool
	CacheTimeout      time.Duration
	Compose           map[string]string
	Groups            map[string]string
	KeyedGroups       []inventory.KeyedGroup

	// CloudsFile is set when the file was a clouds.yaml rather than a
	// plugin config; everything above then holds defaults.
	CloudsFile bool
}

// UseServerID reports whether hosts should always be keyed by server ID.
func (c Config) UseServerID() bool {
	return c.InventoryHostname != "name"
}

// VerifyFile accepts only the recognized plugin config file names; anything
// else is rejected without being parsed.
func VerifyFile(path string) bool {
	for _, fn := range []string{"openstack", "clouds"} {
		for _, suffix := range []string{"yaml", "yml"} {
			if strings.HasSuffix(path, fn+"."+suffix) {
				return true
			}
		}
	}
	return false
}

// Load reads and verifies a plugin config file.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, &Error{Path: path, Reason: err.Error()}
	}
	return Parse(path, raw)
}

// Parse verifies config bytes. Kept separate from Load for tests.
func Parse(path string, raw []byte) (*Config, error) {
	data := map[string]any{}
	if err := yaml.Unmarshal(raw, &data); err != nil {
		return nil, &Error{Path: path, Reason: fmt.Sprintf("invalid YAML: %v", err)}
	}

	if err := verify(path, data); err != nil {
		return nil, err
	}

	cfg := &Config{
		InventoryHostname: "name",
		CacheTimeout:      DefaultCacheTimeout,
	}

	if _, ok := data["clouds"]; ok {
		// A clouds.yaml was handed over instead of a plugin config; run
		// with defaults.
		cfg.CloudsFile = true
		return cfg, nil
	}

	var err error
	if cfg.ShowAll, err = optBool(path, data, "show_all", false); err != nil {
		return nil, err
	}
	if cfg.ExpandHostvars, err = optBool(path, data, "expand_hostvars", false); err != nil {
		return nil, err
	}
	if cfg.Private, err = optBool(path, data, "private", false); err != nil {
		return nil, err
	}
	if cfg.FailOnErrors, err = optBool(path, data, "fail_on_errors", false); err != nil {
		return nil, err
	}
	if cfg.Debug, err = optBool(path, data, "debug", false); err != nil {
		return nil, err
	}
	if cfg.Cache, err = optBool(path, data, "cache", false); err != nil {
		return nil, err
	}
	if cfg.OnlyClouds, err = optStringList(path, data, "only_clouds"); err != nil {
		return nil, err
	}
	if cfg.CloudsYAMLPath, err = optStringList(path, data, "clouds_yaml_path"); err != nil {
		return nil, err
	}
	if cfg.InventoryHostname, err = optString(path, data, "inventory_hostname", "name"); err != nil {
		return nil, err
	}
	if cfg.InventoryHostname != "name" && cfg.InventoryHostname != "uuid" {
		return nil, &Error{Path: path, Reason: "inventory_hostname must be 'name' or 'uuid'"}
	}
	if cfg.Compose, err = optStringMap(path, data, "compose"); err != nil {
		return nil, err
	}
	if cfg.Groups, err = optStringMap(path, data, "groups"); err != nil {
		return nil, err
	}
	if cfg.KeyedGroups, err = optKeyedGroups(path, data); err != nil {
		return nil, err
	}
	if timeout, err := optInt(path, data, "cache_timeout", int(DefaultCacheTimeout/time.Second)); err != nil {
		return nil, err
	} else {
		cfg.CacheTimeout = time.Duration(timeout) * time.Second
	}

	return cfg, nil
}

func verify(path string, data map[string]any) error {
	if len(data) == 0 {
		return &Error{Path: path, Reason: "config file is empty"}
	}
	plugin, hasPlugin := data["plugin"]
	_, hasClouds := data["clouds"]
	if hasPlugin && plugin != PluginName {
		return &Error{Path: path, Reason: fmt.Sprintf("incorrect plugin config found: %v", plugin)}
	}
	if !hasPlugin && !hasClouds {
		return &Error{Path: path, Reason: "missing plugin and clouds configuration"}
	}
	return nil
}

// CloudConfigFiles resolves the clouds.yaml search path: the
// clouds_yaml_path option first, the OS_CLIENT_CONFIG_FILE environment
// variable as its fallback, then the standard locations.
func (c Config) CloudConfigFiles() []string {
	paths := append([]string{}, c.CloudsYAMLPath...)
	if len(paths) == 0 {
		if env := os.Getenv("OS_CLIENT_CONFIG_FILE"); env != "" {
			for _, path := range filepath.SplitList(env) {
				if path != "" {
					paths = append(paths, path)
				}
			}
		}
	}
	return append(paths, DefaultCloudConfigFiles()...)
}

// DefaultCloudConfigFiles lists the standard clouds.yaml locations, plus
// the /etc/ansible additions this inventory has always searched.
func DefaultCloudConfigFiles() []string {
	dirs := []string{"."}
	if home, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs, filepath.Join(home, ".config", "openstack"))
	}
	dirs = append(dirs, "/etc/openstack")

	files := []string{}
	for _, dir := range dirs {
		files = append(files,
			filepath.Join(dir, "clouds.yaml"),
			filepath.Join(dir, "clouds.yml"),
		)
	}
	files = append(files,
		"/etc/ansible/openstack.yaml",
		"/etc/ansible/openstack.yml",
	)
	return files
}

func optBool(path string, data map[string]any, key string, def bool) (bool, error) {
	raw, ok := data[key]
	if !ok || raw == nil {
		return def, nil
	}
	value, ok := raw.(bool)
	if !ok {
		return def, &Error{Path: path, Reason: key + " must be a valid YAML boolean"}
	}
	return value, nil
}

func optString(path string, data map[string]any, key, def string) (string, error) {
	raw, ok := data[key]
	if !ok || raw == nil {
		return def, nil
	}
	value, ok := raw.(string)
	if !ok {
		return def, &Error{Path: path, Reason: key + " must be a valid YAML string"}
	}
	return value, nil
}

func optInt(path string, data map[string]any, key string, def int) (int, error) {
	raw, ok := data[key]
	if !ok || raw == nil {
		return def, nil
	}
	value, ok := raw.(int)
	if !ok {
		return def, &Error{Path: path, Reason: key + " must be a valid YAML integer"}
	}
	return value, nil
}

func optStringList(path string, data map[string]any, key string) ([]string, error) {
	raw, ok := data[key]
	if !ok || raw == nil {
		return nil, nil
	}
	list, ok := raw.([]any)
	if !ok {
		return nil, &Error{Path: path, Reason: key + " must be a valid YAML list"}
	}
	out := make([]string, 0, len(list))
	for _, item := range list {
		value, ok := item.(string)
		if !ok {
			return nil, &Error{Path: path, Reason: key + " must be a list of strings"}
		}
		out = append(out, value)
	}
	return out, nil
}

func optStringMap(path string, data map[string]any, key string) (map[string]string, error) {
	raw, ok := data[key]
	if !ok || raw == nil {
		return nil, nil
	}
	mapping, ok := raw.(map[string]any)
	if !ok {
		return nil, &Error{Path: path, Reason: key + " must be a valid YAML dictionary"}
	}
	out := make(map[string]string, len(mapping))
	for name, item := range mapping {
		value, ok := item.(string)
		if !ok {
			return nil, &Error{Path: path, Reason: key + " values must be expression strings"}
		}
		out[name] = value
	}
	return out, nil
}

func optKeyedGroups(path string, data map[string]any) ([]inventory.KeyedGroup, error) {
	raw, ok := data["keyed_groups"]
	if !ok || raw == nil {
		return nil, nil
	}
	list, ok := raw.([]any)
	if !ok {
		return nil, &Error{Path: path, Reason: "keyed_groups must be a valid YAML list"}
	}
	out := make([]inventory.KeyedGroup, 0, len(list))
	for _, item := range list {
		entry, ok := item.(map[string]any)
		if !ok {
			return nil, &Error{Path: path, Reason: "keyed_groups entries must be dictionaries"}
		}
		spec := inventory.KeyedGroup{}
		var err error
		if spec.Key, err = optString(path, entry, "key", ""); err != nil {
			return nil, err
		}
		if spec.Prefix, err = optString(path, entry, "prefix", ""); err != nil {
			return nil, err
		}
		if spec.Separator, err = optString(path, entry, "separator", ""); err != nil {
			return nil, err
		}
		if spec.DefaultValue, err = optString(path, entry, "default_value", ""); err != nil {
			return nil, err
		}
		if spec.Key == "" {
			return nil, &Error{Path: path, Reason: "keyed_groups entries require a key expression"}
		}
		out = append(out, spec)
	}
	return out, nil
}
