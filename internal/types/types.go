package types

// Server is a normalized view of an OpenStack compute instance, annotated
// with the cloud and region it was enumerated from. The JSON keys follow the
// openstacksdk host-record naming so cached snapshots and the "openstack"
// hostvar stay compatible with existing playbooks.
type Server struct {
	ID             string            `json:"id" yaml:"id"`
	Name           string            `json:"name" yaml:"name"`
	Cloud          string            `json:"cloud" yaml:"cloud"`
	Region         string            `json:"region" yaml:"region"`
	AZ             string            `json:"az,omitempty" yaml:"az,omitempty"`
	InterfaceIP    string            `json:"interface_ip,omitempty" yaml:"interface_ip,omitempty"`
	PublicV4       string            `json:"public_v4,omitempty" yaml:"public_v4,omitempty"`
	PrivateV4      string            `json:"private_v4,omitempty" yaml:"private_v4,omitempty"`
	AccessIPv4     string            `json:"accessIPv4,omitempty" yaml:"accessIPv4,omitempty"`
	AccessIPv6     string            `json:"accessIPv6,omitempty" yaml:"accessIPv6,omitempty"`
	Status         string            `json:"status,omitempty" yaml:"status,omitempty"`
	Flavor         map[string]any    `json:"flavor" yaml:"flavor"`
	Image          map[string]any    `json:"image" yaml:"image"`
	Metadata       map[string]string `json:"metadata" yaml:"metadata"`
	Addresses      map[string]any    `json:"addresses,omitempty" yaml:"addresses,omitempty"`
	KeyName        string            `json:"key_name,omitempty" yaml:"key_name,omitempty"`
	SecurityGroups []string          `json:"security_groups,omitempty" yaml:"security_groups,omitempty"`
	Tags           []string          `json:"tags,omitempty" yaml:"tags,omitempty"`
	HostID         string            `json:"host_id,omitempty" yaml:"host_id,omitempty"`
	ProjectID      string            `json:"project_id,omitempty" yaml:"project_id,omitempty"`
	Created        string            `json:"created,omitempty" yaml:"created,omitempty"`
	Updated        string            `json:"updated,omitempty" yaml:"updated,omitempty"`
}

// FlavorName returns the flavor name if the record carries one.
func (s Server) FlavorName() (string, bool) {
	return mapName(s.Flavor)
}

// ImageName returns the image name if the record carries one.
func (s Server) ImageName() (string, bool) {
	return mapName(s.Image)
}

func mapName(m map[string]any) (string, bool) {
	if m == nil {
		return "", false
	}
	raw, ok := m["name"]
	if !ok {
		return "", false
	}
	name, ok := raw.(string)
	if !ok || name == "" {
		return "", false
	}
	return name, true
}
