package cache

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"openstack-inventory/internal/types"
)

func TestKeyIsStableForOneConfig(t *testing.T) {
	first := Key("inventories/openstack.yml")
	second := Key("inventories/openstack.yml")
	if first != second {
		t.Fatalf("key not stable: %q vs %q", first, second)
	}
	if first == Key("other/openstack.yml") {
		t.Fatal("distinct config files must not share a key")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())

	servers := []types.Server{
		{ID: "id-1", Name: "web", Cloud: "c", Region: "r", InterfaceIP: "10.0.0.1",
			Metadata: map[string]string{"group": "web"}},
	}
	key := Key("openstack.yml")
	if err := Save(key, servers); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, age, ok, err := Load(key, time.Hour)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if !ok {
		t.Fatal("expected a cache hit")
	}
	if age < 0 {
		t.Fatalf("negative age: %v", age)
	}
	if len(loaded) != 1 || loaded[0].ID != "id-1" || loaded[0].Metadata["group"] != "web" {
		t.Fatalf("round trip lost data: %+v", loaded)
	}
}

func TestLoadMissIsNotAnError(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())

	_, _, ok, err := Load(Key("never-saved.yml"), time.Hour)
	if err != nil {
		t.Fatalf("miss must not error: %v", err)
	}
	if ok {
		t.Fatal("expected a miss")
	}
}

func TestLoadExpiredEntryIsAMiss(t *testing.T) {
	base := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", base)

	key := Key("openstack.yml")
	if err := Save(key, []types.Server{{ID: "id-1"}}); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	// Age the entry past any TTL.
	path, err := hostsCachePath(key)
	if err != nil {
		t.Fatalf("cache path: %v", err)
	}
	old := time.Now().Add(-2 * time.Hour)
	if err := os.Chtimes(path, old, old); err != nil {
		t.Fatalf("chtimes: %v", err)
	}

	_, age, ok, err := Load(key, time.Hour)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if ok {
		t.Fatal("expected expired entry to miss")
	}
	if age < time.Hour {
		t.Fatalf("expected reported age past the TTL, got %v", age)
	}
}

func TestLoadCorruptEntryIsAMiss(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())

	key := Key("openstack.yml")
	path, err := hostsCachePath(key)
	if err != nil {
		t.Fatalf("cache path: %v", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte("not json"), 0600); err != nil {
		t.Fatalf("write: %v", err)
	}

	_, _, ok, err := Load(key, time.Hour)
	if err != nil {
		t.Fatalf("corrupt entry must not error: %v", err)
	}
	if ok {
		t.Fatal("expected corrupt entry to miss")
	}
}
