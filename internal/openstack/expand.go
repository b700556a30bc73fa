package openstack

import (
	"context"

	"github.com/gophercloud/gophercloud/v2"
	"github.com/gophercloud/gophercloud/v2/openstack/compute/v2/flavors"
	"github.com/gophercloud/gophercloud/v2/openstack/image/v2/images"

	"openstack-inventory/internal/types"
)

// nameResolver fills in flavor and image names when the server listing only
// carries IDs. Lookups are memoized per cloud since fleets share a handful
// of flavors and images. The image client is built lazily on first use; if
// that fails, image expansion is skipped for the rest of the cloud.
type nameResolver struct {
	compute     *gophercloud.ServiceClient
	imageDialer func() (*gophercloud.ServiceClient, error)
	image       *gophercloud.ServiceClient
	imageFailed bool
	flavorNames map[string]string
	imageNames  map[string]string
	disp        diag
}

// diag is the narrow diagnostic surface the resolver needs.
type diag interface {
	Warning(format string, args ...any)
	VV(format string, args ...any)
}

func newNameResolver(compute *gophercloud.ServiceClient, imageDialer func() (*gophercloud.ServiceClient, error), disp diag) *nameResolver {
	return &nameResolver{
		compute:     compute,
		imageDialer: imageDialer,
		flavorNames: map[string]string{},
		imageNames:  map[string]string{},
		disp:        disp,
	}
}

func (r *nameResolver) expand(ctx context.Context, record *types.Server) {
	if id, ok := missingName(record.Flavor); ok {
		if name := r.flavorName(ctx, id); name != "" {
			record.Flavor["name"] = name
		}
	}
	if id, ok := missingName(record.Image); ok {
		if name := r.imageName(ctx, id); name != "" {
			record.Image["name"] = name
		}
	}
}

// missingName reports the ID of a flavor/image reference lacking a name.
func missingName(ref map[string]any) (string, bool) {
	if ref == nil {
		return "", false
	}
	if name, ok := ref["name"].(string); ok && name != "" {
		return "", false
	}
	id, ok := ref["id"].(string)
	if !ok || id == "" {
		return "", false
	}
	return id, true
}

func (r *nameResolver) flavorName(ctx context.Context, id string) string {
	if name, ok := r.flavorNames[id]; ok {
		return name
	}
	name := ""
	flavor, err := flavors.Get(ctx, r.compute, id).Extract()
	if err != nil {
		r.disp.Warning("couldn't resolve flavor %s: %v", id, err)
	} else {
		name = flavor.Name
	}
	r.flavorNames[id] = name
	return name
}

func (r *nameResolver) imageName(ctx context.Context, id string) string {
	if name, ok := r.imageNames[id]; ok {
		return name
	}
	client := r.imageClient()
	if client == nil {
		return ""
	}
	name := ""
	image, err := images.Get(ctx, client, id).Extract()
	if err != nil {
		r.disp.Warning("couldn't resolve image %s: %v", id, err)
	} else {
		name = image.Name
	}
	r.imageNames[id] = name
	return name
}

func (r *nameResolver) imageClient() *gophercloud.ServiceClient {
	if r.image != nil || r.imageFailed {
		return r.image
	}
	client, err := r.imageDialer()
	if err != nil {
		r.imageFailed = true
		r.disp.Warning("image service unavailable, skipping image name expansion: %v", err)
		return nil
	}
	r.image = client
	return client
}
