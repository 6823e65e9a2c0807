package registry

import (
	"context"
	"strings"

	"evalgo.org/hostreg/internal/storage"
	"evalgo.org/hostreg/models"
)

const removeRefused = "You can not remove this host. It is currently referenced "

// Reference is a record that points at a host.
type Reference struct {
	Collection string `json:"collection"`
	ID         string `json:"_id"`
	Name       string `json:"name"`
}

// DependencyReport lists every record referencing a host.
type DependencyReport struct {
	HostID     string      `json:"host_id"`
	Deletable  bool        `json:"deletable"`
	References []Reference `json:"references"`

	// Reason is the message CheckDeletable would return
	Reason string `json:"reason,omitempty"`
}

// dependencyCheck finds the records of one collection that reference a host
// and describes them.
type dependencyCheck struct {
	collection string
	find       func(ctx context.Context, id string) ([]Reference, error)
	describe   func(refs []Reference) string
}

// Resolver decides whether a host may be deleted by running its checks in
// order: hosts using it as MA, hostgroups, then configs.
type Resolver struct {
	checks []dependencyCheck
}

// NewResolver builds a resolver over store.
func NewResolver(store storage.Store) *Resolver {
	return &Resolver{checks: []dependencyCheck{
		{
			collection: storage.CollectionHosts,
			find: func(ctx context.Context, id string) ([]Reference, error) {
				hosts, err := store.FindHosts(ctx, storage.Filter{"services.ma": id}, storage.FindOptions{})
				if err != nil {
					return nil, err
				}
				refs := make([]Reference, 0, len(hosts))
				for _, h := range hosts {
					refs = append(refs, Reference{Collection: storage.CollectionHosts, ID: h.ID, Name: h.Hostname})
				}
				return refs, nil
			},
			describe: func(refs []Reference) string {
				return removeRefused + "as MA in hosts: " + joinNames(refs, " ")
			},
		},
		{
			collection: storage.CollectionHostgroups,
			find: func(ctx context.Context, id string) ([]Reference, error) {
				groups, err := store.FindHostgroups(ctx, storage.Filter{"hosts": id})
				if err != nil {
					return nil, err
				}
				refs := make([]Reference, 0, len(groups))
				for _, g := range groups {
					refs = append(refs, Reference{Collection: storage.CollectionHostgroups, ID: g.ID, Name: g.Name})
				}
				return refs, nil
			},
			describe: func(refs []Reference) string {
				return removeRefused + "in hostgroups: " + joinNames(refs, ", ")
			},
		},
		{
			collection: storage.CollectionConfigs,
			find: func(ctx context.Context, id string) ([]Reference, error) {
				configs, err := store.FindConfigs(ctx, storage.Filter{"$or": []interface{}{
					storage.Filter{"tests.center": id},
					storage.Filter{"tests.nahosts": id},
				}})
				if err != nil {
					return nil, err
				}
				refs := make([]Reference, 0, len(configs))
				for _, c := range configs {
					refs = append(refs, Reference{Collection: storage.CollectionConfigs, ID: c.ID, Name: c.Name})
				}
				return refs, nil
			},
			describe: func(refs []Reference) string {
				return removeRefused + "in configs: " + joinNames(refs, ", ")
			},
		},
	}}
}

func joinNames(refs []Reference, sep string) string {
	names := make([]string, len(refs))
	for i, r := range refs {
		names[i] = r.Name
	}
	return strings.Join(names, sep)
}

// CheckDeletable returns nil when nothing references host. Otherwise it
// returns a Conflict error for the first check that found references; later
// checks are not run. A store failure yields a Persistence error.
func (r *Resolver) CheckDeletable(ctx context.Context, host *models.Host) error {
	for _, check := range r.checks {
		refs, err := check.find(ctx, host.ID)
		if err != nil {
			return persistenceError("failed to query "+check.collection, err)
		}
		if len(refs) > 0 {
			return newError(ErrConflict, check.describe(refs))
		}
	}
	return nil
}

// Dependents runs every check and collects all references.
func (r *Resolver) Dependents(ctx context.Context, host *models.Host) (*DependencyReport, error) {
	report := &DependencyReport{HostID: host.ID, References: []Reference{}}
	for _, check := range r.checks {
		refs, err := check.find(ctx, host.ID)
		if err != nil {
			return nil, persistenceError("failed to query "+check.collection, err)
		}
		if len(refs) > 0 && report.Reason == "" {
			report.Reason = check.describe(refs)
		}
		report.References = append(report.References, refs...)
	}
	report.Deletable = len(report.References) == 0
	return report, nil
}
