package inventory

import (
	"openstack-inventory/internal/types"
)

// ResolvedHost binds an inventory hostname to the server record it was
// chosen for. NameGroup is set when the hostname fell back to the server ID,
// so the raw server name can still be reached as a group.
type ResolvedHost struct {
	Hostname  string
	Server    types.Server
	NameGroup bool
}

// ResolveHosts decides the inventory hostname for every server to keep.
//
// Servers without a working interface IP are dropped unless showAll is set.
// The survivors are partitioned by server name: a name carried by a single
// server (or by repeated listings of the same server ID, which happens when
// a server has several network interfaces) keys by name; a name shared by
// genuinely distinct servers keys each one by its own ID and marks it for a
// name group. useServerID forces ID keying for every server.
func ResolveHosts(servers []types.Server, showAll, useServerID bool) []ResolvedHost {
	names := []string{}
	byName := map[string][]types.Server{}
	for _, server := range servers {
		if server.InterfaceIP == "" && !showAll {
			continue
		}
		if _, ok := byName[server.Name]; !ok {
			names = append(names, server.Name)
		}
		byName[server.Name] = append(byName[server.Name], server)
	}

	resolved := []ResolvedHost{}
	for _, name := range names {
		listed := byName[name]
		if len(listed) == 1 && !useServerID {
			resolved = append(resolved, ResolvedHost{Hostname: name, Server: listed[0]})
			continue
		}

		ids := map[string]struct{}{}
		for _, server := range listed {
			ids[server.ID] = struct{}{}
		}
		if len(ids) == 1 && !useServerID {
			// Duplicate listings of one server collapse to a single host.
			resolved = append(resolved, ResolvedHost{Hostname: name, Server: listed[0]})
			continue
		}

		for _, server := range listed {
			resolved = append(resolved, ResolvedHost{Hostname: server.ID, Server: server, NameGroup: true})
		}
	}
	return resolved
}
