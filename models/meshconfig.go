package models

// MeshConfig is a published measurement configuration. It is stored in the
// "configs" collection.
type MeshConfig struct {
	ID     string   `json:"_id" bson:"_id" yaml:"_id"`
	Name   string   `json:"name" bson:"name" yaml:"name"`
	Desc   string   `json:"desc,omitempty" bson:"desc,omitempty" yaml:"desc,omitempty"`
	Admins []string `json:"admins,omitempty" bson:"admins,omitempty" yaml:"admins,omitempty"`
	Tests  []Test   `json:"tests,omitempty" bson:"tests,omitempty" yaml:"tests,omitempty"`
}

// Test is a single measurement definition inside a MeshConfig.
type Test struct {
	Name        string `json:"name,omitempty" bson:"name,omitempty" yaml:"name,omitempty"`
	ServiceType string `json:"service_type,omitempty" bson:"service_type,omitempty" yaml:"service_type,omitempty"`
	MeshType    string `json:"mesh_type,omitempty" bson:"mesh_type,omitempty" yaml:"mesh_type,omitempty"`
	AGroup      string `json:"agroup,omitempty" bson:"agroup,omitempty" yaml:"agroup,omitempty"`
	BGroup      string `json:"bgroup,omitempty" bson:"bgroup,omitempty" yaml:"bgroup,omitempty"`

	// Center is the hub host of a star mesh
	Center string `json:"center,omitempty" bson:"center,omitempty" yaml:"center,omitempty"`

	// NAHosts lists hosts excluded from the mesh
	NAHosts []string `json:"nahosts,omitempty" bson:"nahosts,omitempty" yaml:"nahosts,omitempty"`

	Enabled bool `json:"enabled,omitempty" bson:"enabled,omitempty" yaml:"enabled,omitempty"`
}

// References reports whether any test uses the host as center or lists it in nahosts.
func (c *MeshConfig) References(id string) bool {
	for _, t := range c.Tests {
		if t.Center == id {
			return true
		}
		for _, na := range t.NAHosts {
			if na == id {
				return true
			}
		}
	}
	return false
}
