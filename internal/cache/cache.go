// Package cache stores enumerated host records on disk between inventory
// passes, keyed by the plugin config file they were built for.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"openstack-inventory/internal/types"
)

// Key derives the cache key for a plugin config file. Two invocations with
// the same config file share one cache entry regardless of working
// directory.
func Key(configPath string) string {
	abs, err := filepath.Abs(configPath)
	if err != nil {
		return configPath
	}
	return abs
}

// Load returns the cached host records for key, their age, and whether the
// entry was usable. A missing or expired entry is a miss, not an error.
func Load(key string, ttl time.Duration) ([]types.Server, time.Duration, bool, error) {
	path, err := hostsCachePath(key)
	if err != nil {
		return nil, 0, false, err
	}
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, 0, false, nil
		}
		return nil, 0, false, err
	}
	age := time.Since(info.ModTime())
	if ttl > 0 && age > ttl {
		return nil, age, false, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, 0, false, err
	}
	servers := []types.Server{}
	if err := json.Unmarshal(raw, &servers); err != nil {
		// A corrupt entry is treated as a miss so the pass can re-enumerate.
		return nil, age, false, nil
	}
	return servers, age, true, nil
}

// Save writes the host records for key.
func Save(key string, servers []types.Server) error {
	path, err := hostsCachePath(key)
	if err != nil {
		return err
	}
	raw, err := json.Marshal(servers)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}
	return os.WriteFile(path, raw, 0600)
}

func hostsCachePath(key string) (string, error) {
	base, err := os.UserCacheDir()
	if err != nil || base == "" {
		base = os.TempDir()
	}
	sum := sha256.Sum256([]byte(key))
	name := fmt.Sprintf("hosts-%s.json", hex.EncodeToString(sum[:16]))
	return filepath.Join(base, "openstack-inventory", name), nil
}
