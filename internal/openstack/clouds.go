package openstack

import (
	"fmt"
	"os"
	"sort"

	"github.com/gophercloud/utils/v2/openstack/clientconfig"
	"gopkg.in/yaml.v3"
)

// Cloud is one entry from clouds.yaml, reduced to what the inventory needs
// to identify and annotate it.
type Cloud struct {
	Name    string `json:"name" yaml:"name"`
	Region  string `json:"region" yaml:"region"`
	AuthURL string `json:"auth_url" yaml:"auth_url"`
}

type cloudsFile struct {
	Clouds map[string]clientconfig.Cloud `yaml:"clouds"`
}

// loadClouds parses the first existing file from the search path. Search
// order matters: like os-client-config, the first file found wins, the rest
// are ignored.
func loadClouds(files []string) (map[string]clientconfig.Cloud, string, error) {
	for _, file := range files {
		raw, err := os.ReadFile(file)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, file, fmt.Errorf("reading %s: %w", file, err)
		}
		parsed := cloudsFile{}
		if err := yaml.Unmarshal(raw, &parsed); err != nil {
			return nil, file, fmt.Errorf("parsing %s: %w", file, err)
		}
		return parsed.Clouds, file, nil
	}
	return nil, "", fmt.Errorf("no clouds configuration found in %d location(s)", len(files))
}

func cloudList(defs map[string]clientconfig.Cloud) []Cloud {
	clouds := make([]Cloud, 0, len(defs))
	for name, def := range defs {
		cloud := Cloud{Name: name, Region: def.RegionName}
		if def.AuthInfo != nil {
			cloud.AuthURL = def.AuthInfo.AuthURL
		}
		clouds = append(clouds, cloud)
	}
	sort.Slice(clouds, func(i, j int) bool { return clouds[i].Name < clouds[j].Name })
	return clouds
}

// yamlOpts feeds our resolved search path into clientconfig, so service
// clients authenticate from the same clouds.yaml the inventory enumerated.
type yamlOpts struct {
	files []string
}

func (o yamlOpts) LoadCloudsYAML() (map[string]clientconfig.Cloud, error) {
	defs, _, err := loadClouds(o.files)
	return defs, err
}

func (o yamlOpts) LoadSecureCloudsYAML() (map[string]clientconfig.Cloud, error) {
	return map[string]clientconfig.Cloud{}, nil
}

func (o yamlOpts) LoadPublicCloudsYAML() (map[string]clientconfig.Cloud, error) {
	return map[string]clientconfig.Cloud{}, nil
}
