package inventory

import (
	"encoding/json"
	"fmt"

	"openstack-inventory/internal/types"
)

// Options controls one inventory build pass.
type Options struct {
	ShowAll     bool
	UseServerID bool
	Compose     map[string]string
	Groups      map[string]string
	KeyedGroups []KeyedGroup
}

// KeyedGroup describes a key-based grouping rule: the key expression is
// evaluated per host and its value becomes (part of) a group name.
type KeyedGroup struct {
	Key          string
	Prefix       string
	Separator    string
	DefaultValue string
}

// Evaluator is the delegated templating collaborator. Build never touches an
// expression engine directly; any implementation that can evaluate user
// expressions against a hostvars mapping will do.
type Evaluator interface {
	Compose(exprs map[string]string, hostvars map[string]any) map[string]any
	ComposedGroups(groups map[string]string, hostvars map[string]any) []string
	KeyedGroups(specs []KeyedGroup, hostvars map[string]any) []string
}

// Sink receives the finished inventory.
type Sink interface {
	AddHost(name string)
	AddGroup(name string)
	AddChild(group, host string)
	SetVariable(host, key string, value any)
}

// Build runs the full population pass: resolve hostnames, derive groups,
// apply composite variables, then composed and keyed groups, and flush
// everything into the sink. It returns the per-host variable table.
//
// Composite variables run before group expressions so that group conditions
// may reference composed values.
func Build(servers []types.Server, opts Options, eval Evaluator, sink Sink) (map[string]map[string]any, error) {
	hostvars := map[string]map[string]any{}
	hosts := []string{}
	membership := newGroupSet()

	for _, host := range ResolveHosts(servers, opts.ShowAll, opts.UseServerID) {
		vars, err := serverVars(host.Server)
		if err != nil {
			return nil, fmt.Errorf("encoding host %q: %w", host.Hostname, err)
		}
		if _, ok := hostvars[host.Hostname]; !ok {
			hosts = append(hosts, host.Hostname)
		}
		hostvars[host.Hostname] = map[string]any{
			"ansible_ssh_host": host.Server.InterfaceIP,
			"ansible_host":     host.Server.InterfaceIP,
			"openstack":        vars,
		}
		sink.AddHost(host.Hostname)

		for _, group := range GroupNames(host.Server, host.NameGroup) {
			membership.add(group, host.Hostname)
		}
	}

	if eval != nil {
		for _, host := range hosts {
			for key, value := range eval.Compose(opts.Compose, hostvars[host]) {
				hostvars[host][key] = value
			}
		}
		for _, host := range hosts {
			for _, group := range eval.ComposedGroups(opts.Groups, hostvars[host]) {
				membership.add(group, host)
			}
			for _, group := range eval.KeyedGroups(opts.KeyedGroups, hostvars[host]) {
				membership.add(group, host)
			}
		}
	}

	for _, host := range hosts {
		for key, value := range hostvars[host] {
			sink.SetVariable(host, key, value)
		}
	}

	for _, group := range membership.groups() {
		sink.AddGroup(group)
		for _, host := range membership.hosts(group) {
			sink.AddChild(group, host)
		}
	}

	return hostvars, nil
}

// serverVars flattens a server record into the plain mapping exposed as the
// "openstack" hostvar, so user expressions see the record the same way the
// cache file and JSON output do.
func serverVars(server types.Server) (map[string]any, error) {
	raw, err := json.Marshal(server)
	if err != nil {
		return nil, err
	}
	vars := map[string]any{}
	if err := json.Unmarshal(raw, &vars); err != nil {
		return nil, err
	}
	return vars, nil
}

// groupSet is an insertion-ordered group membership table with set semantics
// per group.
type groupSet struct {
	order   []string
	members map[string][]string
	seen    map[string]map[string]struct{}
}

func newGroupSet() *groupSet {
	return &groupSet{
		members: map[string][]string{},
		seen:    map[string]map[string]struct{}{},
	}
}

func (g *groupSet) add(group, host string) {
	if _, ok := g.seen[group]; !ok {
		g.order = append(g.order, group)
		g.seen[group] = map[string]struct{}{}
	}
	if _, ok := g.seen[group][host]; ok {
		return
	}
	g.seen[group][host] = struct{}{}
	g.members[group] = append(g.members[group], host)
}

func (g *groupSet) groups() []string {
	return g.order
}

func (g *groupSet) hosts(group string) []string {
	return g.members[group]
}
