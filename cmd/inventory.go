package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"openstack-inventory/internal/cache"
	"openstack-inventory/internal/config"
	"openstack-inventory/internal/construct"
	"openstack-inventory/internal/display"
	"openstack-inventory/internal/exit"
	"openstack-inventory/internal/inventory"
	"openstack-inventory/internal/openstack"
	"openstack-inventory/internal/output"
	"openstack-inventory/internal/types"
)

// resolveConfig locates and loads the plugin config file: the --config flag
// when given, else the first recognized file name in the working directory.
func resolveConfig() (string, *config.Config, error) {
	path := configPath
	if path == "" {
		for _, candidate := range []string{"openstack.yml", "openstack.yaml", "clouds.yml", "clouds.yaml"} {
			if _, err := os.Stat(candidate); err == nil {
				path = candidate
				break
			}
		}
	}
	if path == "" {
		return "", nil, errors.New("no inventory config file found, pass --config")
	}
	if !config.VerifyFile(path) {
		return "", nil, fmt.Errorf("unrecognized inventory config file name: %s", path)
	}
	cfg, err := config.Load(path)
	if err != nil {
		return "", nil, err
	}
	return path, cfg, nil
}

func newDisplay(cfg *config.Config) *display.Display {
	level := verbosity
	if cfg.Debug && level < 2 {
		level = 2
	}
	return display.New(level)
}

// fetchServers returns the host records for one pass, from cache when
// enabled and fresh, otherwise by enumerating the clouds (and refreshing
// the cache afterwards).
func fetchServers(ctx context.Context, path string, cfg *config.Config, disp *display.Display, refresh bool) ([]types.Server, error) {
	key := cache.Key(path)
	if cfg.Cache && !refresh {
		servers, age, ok, err := cache.Load(key, cfg.CacheTimeout)
		switch {
		case err != nil:
			disp.Warning("cache read failed: %v", err)
		case ok:
			disp.V("Using cached inventory data (age %s)", age.Round(time.Second))
			return servers, nil
		default:
			disp.V("Inventory data cache not found")
		}
	}

	disp.V("Getting hosts from OpenStack clouds")
	enum, err := openstack.NewEnumerator(cfg.CloudConfigFiles(), cfg.Private, disp)
	if err != nil {
		return nil, err
	}
	enum.Select(cfg.OnlyClouds)

	servers, err := enum.ListHosts(ctx, cfg.ExpandHostvars, cfg.FailOnErrors)
	if err != nil {
		return nil, err
	}
	disp.VV("Found %d host(s)", len(servers))

	if cfg.Cache {
		if err := cache.Save(key, servers); err != nil {
			disp.Warning("cache write failed: %v", err)
		}
	}
	return servers, nil
}

func buildSink(servers []types.Server, cfg *config.Config, disp *display.Display) (*inventory.Memory, error) {
	sink := inventory.NewMemory()
	opts := inventory.Options{
		ShowAll:     cfg.ShowAll,
		UseServerID: cfg.UseServerID(),
		Compose:     cfg.Compose,
		Groups:      cfg.Groups,
		KeyedGroups: cfg.KeyedGroups,
	}
	if _, err := inventory.Build(servers, opts, construct.NewEvaluator(disp.Warning), sink); err != nil {
		return nil, err
	}
	return sink, nil
}

func runList(ctx context.Context, refresh bool) error {
	path, cfg, err := resolveConfig()
	if err != nil {
		return exit.New(1, err)
	}
	disp := newDisplay(cfg)
	if cfg.CloudsFile {
		disp.V("Found clouds config file instead of plugin config. Using default configuration.")
	}

	servers, err := fetchServers(ctx, path, cfg, disp, refresh)
	if err != nil {
		return exit.New(2, err)
	}
	sink, err := buildSink(servers, cfg, disp)
	if err != nil {
		return exit.New(1, err)
	}
	return output.EmitJSON(sink.Render())
}

func runHost(ctx context.Context, name string, refresh bool) error {
	path, cfg, err := resolveConfig()
	if err != nil {
		return exit.New(1, err)
	}
	disp := newDisplay(cfg)

	servers, err := fetchServers(ctx, path, cfg, disp, refresh)
	if err != nil {
		return exit.New(2, err)
	}
	sink, err := buildSink(servers, cfg, disp)
	if err != nil {
		return exit.New(1, err)
	}

	vars := sink.HostVars(name)
	if vars == nil {
		// Unknown hosts get an empty object per the script protocol.
		vars = map[string]any{}
	}
	return output.EmitJSON(vars)
}
