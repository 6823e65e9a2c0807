// Package storage provides the storage layer for the host registry.
//
// Three collections are kept: hosts, hostgroups and configs. Queries are
// expressed as MongoDB filter documents. The memory driver runs them on an
// embedded lungo engine, so both drivers share one query implementation.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"evalgo.org/hostreg/internal/config"
	"evalgo.org/hostreg/models"
)

// ErrNotFound is returned when a requested document does not exist.
var ErrNotFound = errors.New("not found")

// Collection names.
const (
	CollectionHosts      = "hosts"
	CollectionHostgroups = "hostgroups"
	CollectionConfigs    = "configs"
)

// Filter is a MongoDB-style query document, e.g.
// {"services.ma": "abc"} or {"$or": [{"tests.center": "abc"}, ...]}.
type Filter map[string]interface{}

// SortField orders results by a single field.
type SortField struct {
	Field      string
	Descending bool
}

// FindOptions controls paging, ordering and projection of a query.
type FindOptions struct {
	// Fields limits the returned top-level fields; empty returns all. _id is
	// always returned.
	Fields []string
	Sort   []SortField
	Limit  int64
	Skip   int64
}

// ParseSort parses a space separated sort string such as "-hostname sitename".
// A leading '-' sorts that field descending. An empty string sorts by _id.
func ParseSort(s string) []SortField {
	var fields []SortField
	for _, f := range strings.Fields(s) {
		if strings.HasPrefix(f, "-") {
			if f = strings.TrimPrefix(f, "-"); f != "" {
				fields = append(fields, SortField{Field: f, Descending: true})
			}
			continue
		}
		fields = append(fields, SortField{Field: strings.TrimPrefix(f, "+")})
	}
	if len(fields) == 0 {
		fields = []SortField{{Field: "_id"}}
	}
	return fields
}

// HostStore persists host records.
type HostStore interface {
	FindHosts(ctx context.Context, filter Filter, opts FindOptions) ([]*models.Host, error)
	CountHosts(ctx context.Context, filter Filter) (int64, error)
	GetHost(ctx context.Context, id string) (*models.Host, error)
	InsertHost(ctx context.Context, host *models.Host) error
	// SaveHost replaces the whole stored document.
	SaveHost(ctx context.Context, host *models.Host) error
	DeleteHost(ctx context.Context, id string) error
}

// HostgroupStore reads and writes hostgroups.
type HostgroupStore interface {
	FindHostgroups(ctx context.Context, filter Filter) ([]*models.Hostgroup, error)
	SaveHostgroup(ctx context.Context, group *models.Hostgroup) error
}

// ConfigStore reads and writes mesh configs.
type ConfigStore interface {
	FindConfigs(ctx context.Context, filter Filter) ([]*models.MeshConfig, error)
	SaveConfig(ctx context.Context, cfg *models.MeshConfig) error
}

// Store bundles every collection used by the registry.
type Store interface {
	HostStore
	HostgroupStore
	ConfigStore
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

// New creates the store selected by cfg.Storage.Driver.
func New(ctx context.Context, cfg *config.Config, logger *logrus.Logger) (Store, error) {
	var (
		store *Mongo
		err   error
	)
	switch cfg.Storage.Driver {
	case "memory":
		logger.Warn("using in-memory storage, data is lost on restart")
		store, err = NewMemory(ctx, logger)
	case "mongo", "":
		store, err = NewMongo(ctx, cfg.MongoDB, logger)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
	if err != nil {
		return nil, err
	}
	return store, nil
}
