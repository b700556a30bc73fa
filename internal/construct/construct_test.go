package construct

import (
	"testing"

	"openstack-inventory/internal/inventory"
)

func testVars() map[string]any {
	return map[string]any{
		"ansible_host": "10.0.0.1",
		"openstack": map[string]any{
			"cloud":  "devstack",
			"region": "r1",
			"flavor": map[string]any{"name": "m1.small"},
		},
	}
}

func TestComposeMergesResults(t *testing.T) {
	warnings := 0
	eval := NewEvaluator(func(string, ...any) { warnings++ })

	out := eval.Compose(map[string]string{
		"ssh_target": `ansible_host + ":22"`,
		"cloud_name": `openstack.cloud`,
	}, testVars())

	if out["ssh_target"] != "10.0.0.1:22" {
		t.Fatalf("ssh_target: %v", out["ssh_target"])
	}
	if out["cloud_name"] != "devstack" {
		t.Fatalf("cloud_name: %v", out["cloud_name"])
	}
	if warnings != 0 {
		t.Fatalf("unexpected warnings: %d", warnings)
	}
}

func TestComposeBadExpressionWarnsAndSkips(t *testing.T) {
	warnings := 0
	eval := NewEvaluator(func(string, ...any) { warnings++ })

	out := eval.Compose(map[string]string{"broken": `ansible_host +`}, testVars())

	if _, ok := out["broken"]; ok {
		t.Fatalf("broken expression produced a value: %v", out)
	}
	if warnings != 1 {
		t.Fatalf("expected 1 warning, got %d", warnings)
	}
}

func TestComposedGroups(t *testing.T) {
	warnings := 0
	eval := NewEvaluator(func(string, ...any) { warnings++ })

	groups := eval.ComposedGroups(map[string]string{
		"devstack_hosts": `openstack.cloud == "devstack"`,
		"other_cloud":    `openstack.cloud == "other"`,
		"not_boolean":    `openstack.cloud`,
	}, testVars())

	if len(groups) != 1 || groups[0] != "devstack_hosts" {
		t.Fatalf("expected only devstack_hosts, got %v", groups)
	}
	if warnings != 1 {
		t.Fatalf("expected 1 warning for the non-boolean condition, got %d", warnings)
	}
}

func TestKeyedGroups(t *testing.T) {
	eval := NewEvaluator(nil)

	groups := eval.KeyedGroups([]inventory.KeyedGroup{
		{Key: `openstack.flavor.name`, Prefix: "flavor"},
		{Key: `openstack.region`},
		{Key: `openstack.missing`, Prefix: "x", DefaultValue: "none"},
		{Key: `openstack.missing`},
	}, testVars())

	expected := []string{"flavor_m1.small", "r1", "x_none"}
	if len(groups) != len(expected) {
		t.Fatalf("expected %v, got %v", expected, groups)
	}
	for i := range expected {
		if groups[i] != expected[i] {
			t.Fatalf("expected %v, got %v", expected, groups)
		}
	}
}

func TestKeyedGroupsCustomSeparator(t *testing.T) {
	eval := NewEvaluator(nil)

	groups := eval.KeyedGroups([]inventory.KeyedGroup{
		{Key: `openstack.region`, Prefix: "region", Separator: "-"},
	}, testVars())

	if len(groups) != 1 || groups[0] != "region-r1" {
		t.Fatalf("expected region-r1, got %v", groups)
	}
}
