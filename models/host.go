package models

import "time"

// Host is a registered measurement endpoint.
//
// A host carrying an LSID was materialized from the lookup service and is a
// "discovered" host. A host without one was registered by hand ("adhoc").
// Only adhoc hosts may change their identity fields (hostname, sitename,
// info, communities and admins).
//
// Example JSON representation:
//
//	{
//	  "_id": "5c1a7e0b2f...",
//	  "hostname": "perfsonar.example.edu",
//	  "sitename": "Example University",
//	  "services": [{"type": "owamp", "ma": "5c1a7e0b30..."}],
//	  "admins": ["42"]
//	}
type Host struct {
	// ID is the opaque host identifier (maps to the _id document key)
	ID string `json:"_id" bson:"_id" yaml:"_id"`

	// LSID is the lookup service registration id; empty for adhoc hosts
	LSID string `json:"lsid,omitempty" bson:"lsid,omitempty" yaml:"lsid,omitempty"`

	Hostname    string            `json:"hostname,omitempty" bson:"hostname,omitempty" yaml:"hostname,omitempty"`
	Sitename    string            `json:"sitename,omitempty" bson:"sitename,omitempty" yaml:"sitename,omitempty"`
	Info        map[string]string `json:"info,omitempty" bson:"info,omitempty" yaml:"info,omitempty"`
	Communities []string          `json:"communities,omitempty" bson:"communities,omitempty" yaml:"communities,omitempty"`

	// Admins lists the subject ids allowed to edit this host
	Admins []string `json:"admins,omitempty" bson:"admins,omitempty" yaml:"admins,omitempty"`

	Services   []Service `json:"services,omitempty" bson:"services,omitempty" yaml:"services,omitempty"`
	Addresses  []Address `json:"addresses,omitempty" bson:"addresses,omitempty" yaml:"addresses,omitempty"`
	NoAgent    bool      `json:"no_agent" bson:"no_agent" yaml:"no_agent,omitempty"`
	LocalMA    bool      `json:"local_ma" bson:"local_ma" yaml:"local_ma,omitempty"`
	LocalMAURL string    `json:"local_ma_url,omitempty" bson:"local_ma_url,omitempty" yaml:"local_ma_url,omitempty"`

	// MAURLs is stored as a list; the HTTP layer exchanges it as
	// newline-joined text. An empty list is kept so a cleared value stays
	// distinguishable from one never set.
	MAURLs []string `json:"ma_urls,omitempty" bson:"ma_urls" yaml:"ma_urls,omitempty"`

	ToolkitURL string `json:"toolkit_url,omitempty" bson:"toolkit_url,omitempty" yaml:"toolkit_url,omitempty"`
	Desc       string `json:"desc,omitempty" bson:"desc,omitempty" yaml:"desc,omitempty"`

	CreateDate time.Time `json:"create_date,omitzero" bson:"create_date,omitempty" yaml:"create_date,omitempty"`
	UpdateDate time.Time `json:"update_date,omitzero" bson:"update_date,omitempty" yaml:"update_date,omitempty"`
}

// Service is a measurement service offered by a host.
type Service struct {
	// Type is the service type (owamp, bwctl, traceroute, ping, ...)
	Type    string `json:"type" bson:"type" yaml:"type" validate:"required"`
	Name    string `json:"name,omitempty" bson:"name,omitempty" yaml:"name,omitempty"`
	Locator string `json:"locator,omitempty" bson:"locator,omitempty" yaml:"locator,omitempty"`

	// MA references the host archiving this service's results. An empty
	// value is never written to the store.
	MA string `json:"ma,omitempty" bson:"ma,omitempty" yaml:"ma,omitempty"`
}

// Address is a network address of a host.
type Address struct {
	Address string `json:"address" bson:"address" yaml:"address" validate:"required"`
	Family  int    `json:"family,omitempty" bson:"family,omitempty" yaml:"family,omitempty" validate:"omitempty,oneof=4 6"`
}

// IsAdhoc reports whether the host was registered by hand rather than
// discovered through the lookup service.
func (h *Host) IsAdhoc() bool {
	return h.LSID == ""
}

// ReferencesMA reports whether any of the host's services archives to id.
func (h *Host) ReferencesMA(id string) bool {
	for _, svc := range h.Services {
		if svc.MA != "" && svc.MA == id {
			return true
		}
	}
	return false
}
