// Package profile keeps a local copy of the user profile service so admin
// subject ids can be resolved without a remote call per request.
package profile

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sirupsen/logrus"

	"evalgo.org/hostreg/internal/auth"
	"evalgo.org/hostreg/internal/config"
	"evalgo.org/hostreg/internal/version"
	"evalgo.org/hostreg/models"
)

// Cache holds profiles by subject id. Refreshes merge into the map and never
// remove entries, so a failed refresh leaves the previous data in place.
type Cache struct {
	client   *resty.Client
	interval time.Duration
	logger   *logrus.Logger

	mu       sync.RWMutex
	profiles map[string]models.Profile
	loaded   time.Time
}

// New creates a cache for the profile service in cfg.
func New(cfg config.ProfileConfig, logger *logrus.Logger) *Cache {
	client := resty.New().
		SetBaseURL(cfg.URL).
		SetTimeout(cfg.Timeout).
		SetHeader("Accept", "application/json").
		SetHeader("User-Agent", version.UserAgent())
	if cfg.Token != "" {
		client.SetAuthToken(cfg.Token)
	}

	interval := cfg.RefreshInterval
	if interval <= 0 {
		interval = 300 * time.Second
	}

	return &Cache{
		client:   client,
		interval: interval,
		logger:   logger,
		profiles: make(map[string]models.Profile),
	}
}

// user is a record of the profile service. sub may be numeric.
type user struct {
	Sub    auth.Subject         `json:"sub"`
	Public models.PublicProfile `json:"public"`
}

// Refresh loads all profiles from GET /users.
func (c *Cache) Refresh(ctx context.Context) error {
	var users []user
	resp, err := c.client.R().
		SetContext(ctx).
		SetResult(&users).
		Get("/users")
	if err != nil {
		return fmt.Errorf("failed to fetch profiles: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("profile service returned %d: %s", resp.StatusCode(), resp.String())
	}

	c.mu.Lock()
	for _, u := range users {
		if u.Sub == "" {
			continue
		}
		c.profiles[string(u.Sub)] = models.Profile{Sub: string(u.Sub), Public: u.Public}
	}
	c.loaded = time.Now()
	size := len(c.profiles)
	c.mu.Unlock()

	c.logger.WithFields(logrus.Fields{
		"received": len(users),
		"cached":   size,
	}).Debug("Profile cache refreshed")
	return nil
}

// Start refreshes immediately and then on every interval until ctx is done.
// It blocks; run it in its own goroutine.
func (c *Cache) Start(ctx context.Context) {
	c.refreshAndLog(ctx)

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.refreshAndLog(ctx)
		}
	}
}

func (c *Cache) refreshAndLog(ctx context.Context) {
	if err := c.Refresh(ctx); err != nil && ctx.Err() == nil {
		c.logger.WithError(err).Error("Failed to refresh profile cache")
	}
}

// Get returns the cached profile for sub.
func (c *Cache) Get(sub string) (models.Profile, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	p, ok := c.profiles[sub]
	return p, ok
}

// LoadAdmins resolves subs in order. Subjects missing from the cache are
// logged and skipped.
func (c *Cache) LoadAdmins(subs []string) []models.Profile {
	out := make([]models.Profile, 0, len(subs))
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, sub := range subs {
		p, ok := c.profiles[sub]
		if !ok {
			c.logger.WithField("sub", sub).Warn("Profile not found in cache")
			continue
		}
		out = append(out, p)
	}
	return out
}

// Len returns the number of cached profiles.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.profiles)
}

// LastRefresh returns the time of the last successful refresh.
func (c *Cache) LastRefresh() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loaded
}
