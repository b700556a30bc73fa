package inventory

import (
	"sort"
	"strings"

	"openstack-inventory/internal/types"
)

// GroupNames derives every group a server belongs to. The rules are additive
// and depend only on the one record, so the same record always yields the
// same groups.
//
// The metadata "group" and "groups" keys drive their own rules and are still
// swept up by the generic meta-<key>_<value> rule afterwards. That
// duplication is long-standing observable behavior and is kept on purpose.
func GroupNames(server types.Server, namegroup bool) []string {
	groups := []string{server.Cloud}

	if server.Region != "" {
		groups = append(groups, server.Region)
	}

	// Combined cloud_region group, even when the region is empty. The
	// trailing underscore form is what existing inventories expect.
	groups = append(groups, server.Cloud+"_"+server.Region)

	if group, ok := server.Metadata["group"]; ok {
		groups = append(groups, group)
	}
	for _, extra := range strings.Split(server.Metadata["groups"], ",") {
		if extra = strings.TrimSpace(extra); extra != "" {
			groups = append(groups, extra)
		}
	}

	groups = append(groups, "instance-"+server.ID)

	if namegroup {
		groups = append(groups, server.Name)
	}

	if name, ok := server.FlavorName(); ok {
		groups = append(groups, "flavor-"+name)
	}
	if name, ok := server.ImageName(); ok {
		groups = append(groups, "image-"+name)
	}

	metaKeys := make([]string, 0, len(server.Metadata))
	for key := range server.Metadata {
		metaKeys = append(metaKeys, key)
	}
	sort.Strings(metaKeys)
	for _, key := range metaKeys {
		groups = append(groups, "meta-"+key+"_"+server.Metadata[key])
	}

	if server.AZ != "" {
		groups = append(groups,
			server.AZ,
			server.Region+"_"+server.AZ,
			server.Cloud+"_"+server.Region+"_"+server.AZ,
		)
	}

	return groups
}
