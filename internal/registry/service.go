// Package registry implements the host registry: listing, registration,
// updates and guarded deletion of measurement hosts.
//
// Every operation takes the decoded caller identity (nil for anonymous
// callers). Errors are *Error values whose Kind is one of the Err* sentinels
// and whose message is meant to be shown to the user as is.
package registry

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"evalgo.org/hostreg/internal/storage"
	"evalgo.org/hostreg/internal/validation"
	"evalgo.org/hostreg/models"
)

// Default paging.
const (
	DefaultLimit = 100
)

// Event types published after successful writes.
const (
	EventHostAdded   = "host_added"
	EventHostUpdated = "host_updated"
	EventHostRemoved = "host_removed"
)

// Event describes a change to a host record.
type Event struct {
	Type      string       `json:"type"`
	HostID    string       `json:"host_id"`
	Host      *models.Host `json:"host,omitempty"`
	Timestamp time.Time    `json:"timestamp"`
}

// Publisher receives host events.
type Publisher interface {
	Publish(event Event)
}

// AdminResolver resolves subject ids into profiles.
type AdminResolver interface {
	LoadAdmins(subs []string) []models.Profile
}

// ListQuery selects a page of hosts.
type ListQuery struct {
	Filter storage.Filter
	// Select is a space separated list of fields; empty selects everything
	Select string
	Sort   string
	Limit  int64
	Skip   int64
}

// Service orchestrates host operations over a store.
type Service struct {
	store     storage.Store
	resolver  *Resolver
	validator *validation.Validator
	admins    AdminResolver
	publisher Publisher
	logger    *logrus.Logger
	now       func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithPublisher sets the receiver of host events.
func WithPublisher(p Publisher) Option {
	return func(s *Service) { s.publisher = p }
}

// WithAdminResolver sets the profile lookup used by Admins.
func WithAdminResolver(r AdminResolver) Option {
	return func(s *Service) { s.admins = r }
}

// WithLogger sets the logger.
func WithLogger(l *logrus.Logger) Option {
	return func(s *Service) { s.logger = l }
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// NewService creates a registry service.
func NewService(store storage.Store, opts ...Option) *Service {
	s := &Service{
		store:     store,
		resolver:  NewResolver(store),
		validator: validation.New(),
		logger:    logrus.StandardLogger(),
		now:       func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Resolver returns the dependency resolver used by Delete.
func (s *Service) Resolver() *Resolver {
	return s.resolver
}

// List returns a page of hosts and the number of hosts matching the filter.
func (s *Service) List(ctx context.Context, caller *models.Identity, q ListQuery) (*HostList, error) {
	opts := storage.FindOptions{
		Fields: selectFields(q.Select),
		Sort:   storage.ParseSort(q.Sort),
		Limit:  q.Limit,
		Skip:   q.Skip,
	}
	if opts.Limit <= 0 {
		opts.Limit = DefaultLimit
	}
	if opts.Skip < 0 {
		opts.Skip = 0
	}

	hosts, err := s.store.FindHosts(ctx, q.Filter, opts)
	if err != nil {
		return nil, persistenceError("failed to query hosts", err)
	}
	count, err := s.store.CountHosts(ctx, q.Filter)
	if err != nil {
		return nil, persistenceError("failed to count hosts", err)
	}

	list := &HostList{Hosts: make([]*HostView, 0, len(hosts)), Count: count}
	for _, h := range hosts {
		list.Hosts = append(list.Hosts, NewHostView(caller, h))
	}
	return list, nil
}

// selectFields turns a select string into a projection. admins is always
// included so that _canedit can be computed.
func selectFields(sel string) []string {
	var fields []string
	hasAdmins := false
	for _, f := range strings.Fields(sel) {
		if strings.HasPrefix(f, "-") {
			continue
		}
		if f == "admins" {
			hasAdmins = true
		}
		fields = append(fields, f)
	}
	if len(fields) > 0 && !hasAdmins {
		fields = append(fields, "admins")
	}
	return fields
}

// Validate checks a registration request without storing it.
func (s *Service) Validate(in *HostInput) *validation.ValidationResult {
	return s.validator.Validate(in)
}

// Get returns a single host.
func (s *Service) Get(ctx context.Context, caller *models.Identity, id string) (*HostView, error) {
	host, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return NewHostView(caller, host), nil
}

// Create registers an adhoc host. The caller needs the user scope and
// becomes the host's admin unless admins are given.
func (s *Service) Create(ctx context.Context, caller *models.Identity, in *HostInput) (*HostView, error) {
	if !caller.HasScope(models.ScopeUser) {
		return nil, newError(ErrUnauthorized, "You need the user scope to register a host")
	}
	if result := s.validator.Validate(in); !result.Valid {
		return nil, &Error{Kind: ErrInvalid, Message: result.Error(), Err: result}
	}

	host := in.newHost(caller.Sub, s.now())
	if err := s.store.InsertHost(ctx, host); err != nil {
		return nil, persistenceError("failed to register host", err)
	}

	s.logger.WithFields(logrus.Fields{
		"host_id":  host.ID,
		"hostname": host.Hostname,
		"sub":      caller.Sub,
	}).Info("Host registered")
	s.publish(EventHostAdded, host)

	return NewHostView(caller, host), nil
}

// Update applies in to the host with the given id.
func (s *Service) Update(ctx context.Context, caller *models.Identity, id string, in *HostInput) (*HostView, error) {
	host, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !CanEdit(caller, host) {
		return nil, newError(ErrForbidden, "You don't have access to update this host")
	}

	// service entries may be partial on update; identity fields of
	// discovered hosts are not checked
	except := []string{"Services"}
	if !host.IsAdhoc() {
		except = append(except, "Hostname")
	}
	if result := s.validator.Validate(in, except...); !result.Valid {
		return nil, &Error{Kind: ErrInvalid, Message: result.Error(), Err: result}
	}

	in.applyTo(host, s.now())
	if err := s.store.SaveHost(ctx, host); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, newError(ErrNotFound, "can't find a host with id:"+id)
		}
		return nil, persistenceError("failed to update host", err)
	}

	s.logger.WithFields(logrus.Fields{
		"host_id": host.ID,
		"adhoc":   host.IsAdhoc(),
		"sub":     caller.Sub,
	}).Info("Host updated")
	s.publish(EventHostUpdated, host)

	return NewHostView(caller, host), nil
}

// Delete removes a host after checking permission and that no other record
// references it. The first failing check decides the returned error.
func (s *Service) Delete(ctx context.Context, caller *models.Identity, id string) error {
	host, err := s.load(ctx, id)
	if err != nil {
		return err
	}
	if !CanEdit(caller, host) {
		return newError(ErrForbidden, "You don't have access to remove this host")
	}
	if err := s.resolver.CheckDeletable(ctx, host); err != nil {
		s.logger.WithFields(logrus.Fields{
			"host_id": id,
			"error":   err.Error(),
		}).Info("Host removal refused")
		return err
	}

	if err := s.store.DeleteHost(ctx, id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return newError(ErrNotFound, "can't find a host with id:"+id)
		}
		return persistenceError("failed to remove host", err)
	}

	s.logger.WithFields(logrus.Fields{
		"host_id": id,
		"sub":     caller.Sub,
	}).Info("Host removed")
	s.publish(EventHostRemoved, &models.Host{ID: id})
	return nil
}

// Dependents reports every record that references the host.
func (s *Service) Dependents(ctx context.Context, id string) (*DependencyReport, error) {
	host, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.resolver.Dependents(ctx, host)
}

// Admins resolves the host's admins to profiles. Unknown subjects are left
// out.
func (s *Service) Admins(ctx context.Context, id string) ([]models.Profile, error) {
	host, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if s.admins == nil {
		return []models.Profile{}, nil
	}
	return s.admins.LoadAdmins(host.Admins), nil
}

func (s *Service) load(ctx context.Context, id string) (*models.Host, error) {
	host, err := s.store.GetHost(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, newError(ErrNotFound, "can't find a host with id:"+id)
		}
		return nil, persistenceError("failed to load host", err)
	}
	return host, nil
}

func (s *Service) publish(eventType string, host *models.Host) {
	if s.publisher == nil {
		return
	}
	s.publisher.Publish(Event{
		Type:      eventType,
		HostID:    host.ID,
		Host:      host,
		Timestamp: s.now(),
	})
}
