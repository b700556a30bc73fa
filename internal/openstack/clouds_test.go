package openstack

import (
	"os"
	"path/filepath"
	"testing"
)

func writeCloudsYAML(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "clouds.yaml")
	raw := `
clouds:
  devstack:
    region_name: r1
    auth:
      auth_url: https://devstack.example.com:5000
      username: demo
  prod:
    region_name: r2
    auth:
      auth_url: https://prod.example.com:5000
`
	if err := os.WriteFile(path, []byte(raw), 0600); err != nil {
		t.Fatalf("write clouds.yaml: %v", err)
	}
	return path
}

func TestLoadCloudsFirstExistingFileWins(t *testing.T) {
	dir := t.TempDir()
	path := writeCloudsYAML(t, dir)

	defs, found, err := loadClouds([]string{
		filepath.Join(dir, "does-not-exist.yaml"),
		path,
		"/etc/openstack/clouds.yaml",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found != path {
		t.Fatalf("expected %s, got %s", path, found)
	}
	if len(defs) != 2 {
		t.Fatalf("expected 2 clouds, got %d", len(defs))
	}
}

func TestLoadCloudsNoFileAnywhere(t *testing.T) {
	dir := t.TempDir()
	_, _, err := loadClouds([]string{filepath.Join(dir, "missing.yaml")})
	if err == nil {
		t.Fatal("expected an error when no clouds file exists")
	}
}

func TestCloudListSortedWithRegions(t *testing.T) {
	dir := t.TempDir()
	path := writeCloudsYAML(t, dir)

	defs, _, err := loadClouds([]string{path})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	clouds := cloudList(defs)
	if len(clouds) != 2 {
		t.Fatalf("expected 2 clouds, got %d", len(clouds))
	}
	if clouds[0].Name != "devstack" || clouds[1].Name != "prod" {
		t.Fatalf("expected sorted cloud names, got %+v", clouds)
	}
	if clouds[0].Region != "r1" || clouds[1].Region != "r2" {
		t.Fatalf("regions not carried over: %+v", clouds)
	}
	if clouds[0].AuthURL != "https://devstack.example.com:5000" {
		t.Fatalf("auth URL not carried over: %+v", clouds[0])
	}
}

func TestEnumeratorSelect(t *testing.T) {
	enum := &Enumerator{clouds: []Cloud{
		{Name: "devstack"},
		{Name: "prod"},
		{Name: "staging"},
	}}

	enum.Select(nil)
	if len(enum.Clouds()) != 3 {
		t.Fatalf("empty selection must keep all clouds: %v", enum.Clouds())
	}

	enum.Select([]string{"prod", "unknown"})
	clouds := enum.Clouds()
	if len(clouds) != 1 || clouds[0].Name != "prod" {
		t.Fatalf("expected only prod, got %v", clouds)
	}
}
