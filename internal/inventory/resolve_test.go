package inventory

import (
	"testing"

	"openstack-inventory/internal/types"
)

func server(id, name, ip string) types.Server {
	return types.Server{ID: id, Name: name, Cloud: "devstack", InterfaceIP: ip}
}

func TestResolveHostsKeysByNameWhenUnique(t *testing.T) {
	resolved := ResolveHosts([]types.Server{
		server("id-1", "web-1", "10.0.0.1"),
		server("id-2", "web-2", "10.0.0.2"),
	}, false, false)

	if len(resolved) != 2 {
		t.Fatalf("expected 2 hosts, got %d", len(resolved))
	}
	for i, expected := range []string{"web-1", "web-2"} {
		if resolved[i].Hostname != expected {
			t.Fatalf("expected hostname %s, got %s", expected, resolved[i].Hostname)
		}
		if resolved[i].NameGroup {
			t.Fatalf("unique name %s should not get a name group", expected)
		}
	}
}

func TestResolveHostsDropsUnreachableUnlessShowAll(t *testing.T) {
	input := []types.Server{
		server("id-1", "web-1", "10.0.0.1"),
		server("id-2", "web-2", ""),
	}

	resolved := ResolveHosts(input, false, false)
	if len(resolved) != 1 {
		t.Fatalf("expected 1 host, got %d", len(resolved))
	}
	if resolved[0].Hostname != "web-1" {
		t.Fatalf("expected web-1, got %s", resolved[0].Hostname)
	}

	resolved = ResolveHosts(input, true, false)
	if len(resolved) != 2 {
		t.Fatalf("expected 2 hosts with show_all, got %d", len(resolved))
	}
}

func TestResolveHostsDuplicateNameDistinctIDs(t *testing.T) {
	resolved := ResolveHosts([]types.Server{
		server("id-1", "web", "10.0.0.1"),
		server("id-2", "web", "10.0.0.2"),
	}, false, false)

	if len(resolved) != 2 {
		t.Fatalf("expected 2 hosts, got %d", len(resolved))
	}
	for i, expected := range []string{"id-1", "id-2"} {
		if resolved[i].Hostname != expected {
			t.Fatalf("expected hostname %s, got %s", expected, resolved[i].Hostname)
		}
		if !resolved[i].NameGroup {
			t.Fatalf("host %s should be marked for a name group", expected)
		}
	}
}

func TestResolveHostsDuplicateListingCollapses(t *testing.T) {
	resolved := ResolveHosts([]types.Server{
		server("id-1", "web", "10.0.0.1"),
		server("id-1", "web", "10.0.0.1"),
	}, false, false)

	if len(resolved) != 1 {
		t.Fatalf("expected duplicate listings to collapse, got %d hosts", len(resolved))
	}
	if resolved[0].Hostname != "web" {
		t.Fatalf("expected hostname web, got %s", resolved[0].Hostname)
	}
	if resolved[0].NameGroup {
		t.Fatal("collapsed duplicate should not get a name group")
	}
}

func TestResolveHostsUUIDModeAlwaysKeysByID(t *testing.T) {
	resolved := ResolveHosts([]types.Server{
		server("id-1", "web-1", "10.0.0.1"),
		server("id-2", "web-2", "10.0.0.2"),
	}, false, true)

	if len(resolved) != 2 {
		t.Fatalf("expected 2 hosts, got %d", len(resolved))
	}
	for i, expected := range []string{"id-1", "id-2"} {
		if resolved[i].Hostname != expected {
			t.Fatalf("expected hostname %s, got %s", expected, resolved[i].Hostname)
		}
		if !resolved[i].NameGroup {
			t.Fatalf("uuid mode host %s should always get a name group", expected)
		}
	}
}

func TestResolveHostsEmptyInput(t *testing.T) {
	if resolved := ResolveHosts(nil, false, false); len(resolved) != 0 {
		t.Fatalf("expected empty output, got %d hosts", len(resolved))
	}
}
