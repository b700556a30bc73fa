// Package openstack enumerates compute instances across the clouds defined
// in clouds.yaml and normalizes them into flat host records.
package openstack

import (
	"context"
	"fmt"

	"github.com/gophercloud/gophercloud/v2"
	"github.com/gophercloud/gophercloud/v2/openstack/compute/v2/servers"
	"github.com/gophercloud/utils/v2/openstack/clientconfig"

	"openstack-inventory/internal/display"
	"openstack-inventory/internal/types"
)

// Enumerator lists hosts from every selected cloud.
type Enumerator struct {
	files   []string
	private bool
	clouds  []Cloud
	disp    *display.Display
}

// NewEnumerator resolves the clouds.yaml search path and records the
// configured clouds. private prefers each server's fixed address as its
// inventory IP.
func NewEnumerator(files []string, private bool, disp *display.Display) (*Enumerator, error) {
	defs, path, err := loadClouds(files)
	if err != nil {
		return nil, err
	}
	disp.VV("Found %d cloud(s) in %s", len(defs), path)
	return &Enumerator{
		files:   files,
		private: private,
		clouds:  cloudList(defs),
		disp:    disp,
	}, nil
}

// Clouds returns the currently selected clouds.
func (e *Enumerator) Clouds() []Cloud {
	return e.clouds
}

// Select narrows the cloud list to the named ones. An empty list keeps all.
func (e *Enumerator) Select(only []string) {
	if len(only) == 0 {
		return
	}
	wanted := map[string]struct{}{}
	for _, name := range only {
		wanted[name] = struct{}{}
	}
	selected := []Cloud{}
	for _, cloud := range e.clouds {
		e.disp.VV("Looking at cloud: %s", cloud.Name)
		if _, ok := wanted[cloud.Name]; ok {
			e.disp.VV("Selecting cloud: %s", cloud.Name)
			selected = append(selected, cloud)
		}
	}
	e.clouds = selected
	e.disp.VV("Selected %d cloud(s)", len(e.clouds))
}

// ListHosts enumerates every selected cloud. When failOnErrors is set any
// single cloud failure aborts with zero hosts; otherwise failures are logged
// and enumeration continues with what the remaining clouds return. expand
// resolves flavor and image names with extra API calls.
func (e *Enumerator) ListHosts(ctx context.Context, expand, failOnErrors bool) ([]types.Server, error) {
	hosts := []types.Server{}
	for _, cloud := range e.clouds {
		listed, err := e.listCloud(ctx, cloud, expand)
		if err != nil {
			classified := classifyError(cloud.Name, err)
			if failOnErrors {
				return nil, classified
			}
			e.disp.Warning("couldn't list hosts: %v", classified)
			continue
		}
		e.disp.VV("Found %d host(s) in cloud %s", len(listed), cloud.Name)
		hosts = append(hosts, listed...)
	}
	return hosts, nil
}

func (e *Enumerator) listCloud(ctx context.Context, cloud Cloud, expand bool) ([]types.Server, error) {
	compute, err := e.serviceClient(ctx, cloud, "compute")
	if err != nil {
		return nil, err
	}

	pages, err := servers.List(compute, servers.ListOpts{}).AllPages(ctx)
	if err != nil {
		return nil, err
	}
	listed, err := servers.ExtractServers(pages)
	if err != nil {
		return nil, err
	}

	var resolver *nameResolver
	if expand {
		resolver = newNameResolver(compute, func() (*gophercloud.ServiceClient, error) {
			return e.serviceClient(ctx, cloud, "image")
		}, e.disp)
	}

	out := make([]types.Server, 0, len(listed))
	for _, server := range listed {
		record := normalizeServer(cloud, server, e.private)
		if resolver != nil {
			resolver.expand(ctx, &record)
		}
		out = append(out, record)
	}
	return out, nil
}

func (e *Enumerator) serviceClient(ctx context.Context, cloud Cloud, service string) (*gophercloud.ServiceClient, error) {
	client, err := clientconfig.NewServiceClient(ctx, service, &clientconfig.ClientOpts{
		Cloud:    cloud.Name,
		YAMLOpts: yamlOpts{files: e.files},
	})
	if err != nil {
		return nil, fmt.Errorf("building %s client: %w", service, err)
	}
	return client, nil
}
