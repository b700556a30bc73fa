package inventory

import "sort"

// Memory is an in-process Sink that renders the Ansible script-inventory
// JSON document (one object per group plus _meta.hostvars).
type Memory struct {
	hosts     []string
	hostSeen  map[string]struct{}
	groups    *groupSet
	variables map[string]map[string]any
}

func NewMemory() *Memory {
	return &Memory{
		hostSeen:  map[string]struct{}{},
		groups:    newGroupSet(),
		variables: map[string]map[string]any{},
	}
}

func (m *Memory) AddHost(name string) {
	if _, ok := m.hostSeen[name]; ok {
		return
	}
	m.hostSeen[name] = struct{}{}
	m.hosts = append(m.hosts, name)
}

func (m *Memory) AddGroup(name string) {
	m.groups.add(name, "")
}

func (m *Memory) AddChild(group, host string) {
	m.groups.add(group, host)
}

func (m *Memory) SetVariable(host, key string, value any) {
	if _, ok := m.variables[host]; !ok {
		m.variables[host] = map[string]any{}
	}
	m.variables[host][key] = value
}

// HostVars returns the variables for one host, or nil if unknown.
func (m *Memory) HostVars(host string) map[string]any {
	return m.variables[host]
}

// Groups returns the member hosts per group, sorted.
func (m *Memory) Groups() map[string][]string {
	out := map[string][]string{}
	for _, group := range m.groups.groups() {
		out[group] = sortedMembers(m.groups.hosts(group))
	}
	return out
}

// Hosts returns every host in the inventory, sorted.
func (m *Memory) Hosts() []string {
	hosts := append([]string{}, m.hosts...)
	sort.Strings(hosts)
	return hosts
}

// Render produces the document emitted for `--list`: every group as
// {"hosts": [...]}, an "all" group whose children cover every group plus
// "ungrouped", and the hostvars under _meta. Everything is sorted so
// repeated runs over identical input serialize identically.
func (m *Memory) Render() map[string]any {
	doc := map[string]any{}

	grouped := map[string]struct{}{}
	names := []string{}
	for _, group := range m.groups.groups() {
		names = append(names, group)
	}
	sort.Strings(names)

	for _, group := range names {
		members := sortedMembers(m.groups.hosts(group))
		for _, host := range members {
			grouped[host] = struct{}{}
		}
		doc[group] = map[string]any{"hosts": members}
	}

	ungrouped := []string{}
	for _, host := range m.Hosts() {
		if _, ok := grouped[host]; !ok {
			ungrouped = append(ungrouped, host)
		}
	}
	doc["ungrouped"] = map[string]any{"hosts": ungrouped}
	doc["all"] = map[string]any{"children": append(names, "ungrouped")}

	hostvars := map[string]any{}
	for host, vars := range m.variables {
		hostvars[host] = vars
	}
	doc["_meta"] = map[string]any{"hostvars": hostvars}

	return doc
}

func sortedMembers(members []string) []string {
	out := []string{}
	for _, member := range members {
		if member != "" {
			out = append(out, member)
		}
	}
	sort.Strings(out)
	return out
}
