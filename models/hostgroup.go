package models

// HostgroupType distinguishes explicitly listed groups from filter-evaluated ones.
type HostgroupType string

const (
	HostgroupStatic  HostgroupType = "static"
	HostgroupDynamic HostgroupType = "dynamic"
)

// Hostgroup is a named collection of hosts. For dynamic groups Hosts holds the
// cached result of the last filter evaluation.
type Hostgroup struct {
	ID          string        `json:"_id" bson:"_id" yaml:"_id"`
	Name        string        `json:"name" bson:"name" yaml:"name"`
	Desc        string        `json:"desc,omitempty" bson:"desc,omitempty" yaml:"desc,omitempty"`
	ServiceType string        `json:"service_type,omitempty" bson:"service_type,omitempty" yaml:"service_type,omitempty"`
	Type        HostgroupType `json:"type,omitempty" bson:"type,omitempty" yaml:"type,omitempty"`
	Hosts       []string      `json:"hosts,omitempty" bson:"hosts,omitempty" yaml:"hosts,omitempty"`
	HostFilter  string        `json:"host_filter,omitempty" bson:"host_filter,omitempty" yaml:"host_filter,omitempty"`
	Admins      []string      `json:"admins,omitempty" bson:"admins,omitempty" yaml:"admins,omitempty"`
}

// Contains reports whether the group lists the host id.
func (g *Hostgroup) Contains(id string) bool {
	for _, h := range g.Hosts {
		if h == id {
			return true
		}
	}
	return false
}
