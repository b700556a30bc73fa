package openstack

import (
	"time"

	"github.com/gophercloud/gophercloud/v2/openstack/compute/v2/servers"

	"openstack-inventory/internal/types"
)

// normalizeServer flattens a compute API server into the inventory host
// record. The interface IP is the address the inventory will hand to
// Ansible: the floating address when one exists, unless private is set, in
// which case the fixed address wins.
func normalizeServer(cloud Cloud, server servers.Server, private bool) types.Server {
	fixed, floating := collectV4Addresses(server.Addresses)

	publicV4 := floating
	if publicV4 == "" {
		publicV4 = server.AccessIPv4
	}
	privateV4 := fixed

	interfaceIP := publicV4
	if private {
		interfaceIP = privateV4
	}
	if interfaceIP == "" {
		if private {
			interfaceIP = publicV4
		} else {
			interfaceIP = privateV4
		}
	}

	record := types.Server{
		ID:          server.ID,
		Name:        server.Name,
		Cloud:       cloud.Name,
		Region:      cloud.Region,
		AZ:          server.AvailabilityZone,
		InterfaceIP: interfaceIP,
		PublicV4:    publicV4,
		PrivateV4:   privateV4,
		AccessIPv4:  server.AccessIPv4,
		AccessIPv6:  server.AccessIPv6,
		Status:      server.Status,
		Flavor:      copyMap(server.Flavor),
		Image:       copyMap(server.Image),
		Metadata:    copyStringMap(server.Metadata),
		Addresses:   copyMap(server.Addresses),
		KeyName:     server.KeyName,
		HostID:      server.HostID,
		ProjectID:   server.TenantID,
		Created:     formatTime(server.Created),
		Updated:     formatTime(server.Updated),
	}

	for _, group := range server.SecurityGroups {
		if name, ok := group["name"].(string); ok && name != "" {
			record.SecurityGroups = append(record.SecurityGroups, name)
		}
	}
	if server.Tags != nil {
		record.Tags = append(record.Tags, *server.Tags...)
	}

	return record
}

// collectV4Addresses walks the per-network address catalog and returns the
// first fixed and first floating IPv4 address found.
func collectV4Addresses(addresses map[string]any) (fixed, floating string) {
	for _, network := range addresses {
		entries, ok := network.([]any)
		if !ok {
			continue
		}
		for _, entry := range entries {
			attrs, ok := entry.(map[string]any)
			if !ok {
				continue
			}
			addr, _ := attrs["addr"].(string)
			if addr == "" || !isV4(attrs["version"]) {
				continue
			}
			switch attrs["OS-EXT-IPS:type"] {
			case "floating":
				if floating == "" {
					floating = addr
				}
			default:
				if fixed == "" {
					fixed = addr
				}
			}
		}
	}
	return fixed, floating
}

func isV4(version any) bool {
	switch v := version.(type) {
	case float64:
		return v == 4
	case int:
		return v == 4
	case nil:
		// Some deployments omit the version attribute entirely.
		return true
	default:
		return false
	}
}

func formatTime(value time.Time) string {
	if value.IsZero() {
		return ""
	}
	return value.UTC().Format(time.RFC3339)
}

func copyMap(m map[string]any) map[string]any {
	if m == nil {
		return map[string]any{}
	}
	out := make(map[string]any, len(m))
	for key, value := range m {
		out[key] = value
	}
	return out
}

func copyStringMap(m map[string]string) map[string]string {
	if m == nil {
		return map[string]string{}
	}
	out := make(map[string]string, len(m))
	for key, value := range m {
		out[key] = value
	}
	return out
}
