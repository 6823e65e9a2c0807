package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"evalgo.org/hostreg/internal/storage"
	"evalgo.org/hostreg/models"
)

var seedCmd = &cobra.Command{
	Use:   "seed [file]",
	Short: "Load hosts, hostgroups and configs from a YAML file",
	Long: `Load fixture documents into the configured store.

The file has three optional top-level lists:

  hosts:
    - _id: h1
      hostname: perfsonar.example.edu
      services: [{type: owamp, ma: h2}]
  hostgroups:
    - _id: g1
      name: campus
      hosts: [h1]
  configs:
    - _id: c1
      name: campus mesh
      tests: [{center: h1}]

Documents with an existing _id are replaced.

Examples:
  hostreg seed fixtures.yaml
  hostreg seed fixtures.yaml --config prod.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runSeed,
}

// Fixtures is the document set accepted by the seed command.
type Fixtures struct {
	Hosts      []*models.Host       `yaml:"hosts"`
	Hostgroups []*models.Hostgroup  `yaml:"hostgroups"`
	Configs    []*models.MeshConfig `yaml:"configs"`
}

// SeedResult counts the documents written per collection.
type SeedResult struct {
	Hosts      int
	Hostgroups int
	Configs    int

	// Dangling lists references to hosts that exist neither in the fixtures
	// nor in the store
	Dangling []string
}

func runSeed(cmd *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}
	defer f.Close()

	fx, err := decodeFixtures(f)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	store, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer store.Close(context.Background())

	res, err := seed(ctx, store, fx, time.Now(), logger)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Seeded %d hosts, %d hostgroups, %d configs\n", res.Hosts, res.Hostgroups, res.Configs)
	for _, d := range res.Dangling {
		fmt.Fprintf(out, "  warning: %s\n", d)
	}
	return nil
}

func decodeFixtures(r io.Reader) (*Fixtures, error) {
	var fx Fixtures
	if err := yaml.NewDecoder(r).Decode(&fx); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse fixtures: %w", err)
	}
	return &fx, nil
}

// seed writes fx into store. Hosts are inserted when their id is new and
// replaced otherwise; hostgroups and configs are upserted.
func seed(ctx context.Context, store storage.Store, fx *Fixtures, now time.Time, logger *logrus.Logger) (SeedResult, error) {
	var res SeedResult

	for _, host := range fx.Hosts {
		if host.CreateDate.IsZero() {
			host.CreateDate = now
		}
		if host.UpdateDate.IsZero() {
			host.UpdateDate = now
		}

		err := storage.ErrNotFound
		if host.ID != "" {
			_, err = store.GetHost(ctx, host.ID)
		}
		switch {
		case errors.Is(err, storage.ErrNotFound):
			err = store.InsertHost(ctx, host)
		case err == nil:
			err = store.SaveHost(ctx, host)
		}
		if err != nil {
			return res, fmt.Errorf("failed to seed host %s: %w", host.ID, err)
		}
		logger.WithFields(logrus.Fields{"id": host.ID, "hostname": host.Hostname}).Debug("Seeded host")
		res.Hosts++
	}

	for _, group := range fx.Hostgroups {
		if err := store.SaveHostgroup(ctx, group); err != nil {
			return res, fmt.Errorf("failed to seed hostgroup %s: %w", group.ID, err)
		}
		res.Hostgroups++
	}

	for _, c := range fx.Configs {
		if err := store.SaveConfig(ctx, c); err != nil {
			return res, fmt.Errorf("failed to seed config %s: %w", c.ID, err)
		}
		res.Configs++
	}

	dangling, err := danglingReferences(ctx, store, fx)
	if err != nil {
		return res, err
	}
	for _, d := range dangling {
		logger.Warn(d)
	}
	res.Dangling = dangling

	return res, nil
}

// danglingReferences reports fixture documents that point at a host id
// which is not stored. Such references block nothing but usually mean the
// fixture file is incomplete.
func danglingReferences(ctx context.Context, store storage.Store, fx *Fixtures) ([]string, error) {
	var ids []string
	seen := map[string]bool{}
	add := func(id string) {
		if id != "" && !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	for _, h := range fx.Hosts {
		for _, svc := range h.Services {
			add(svc.MA)
		}
	}
	for _, g := range fx.Hostgroups {
		for _, id := range g.Hosts {
			add(id)
		}
	}
	for _, c := range fx.Configs {
		for _, t := range c.Tests {
			add(t.Center)
			for _, id := range t.NAHosts {
				add(id)
			}
		}
	}

	var out []string
	for _, id := range ids {
		_, err := store.GetHost(ctx, id)
		if err == nil {
			continue
		}
		if !errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("failed to check host %s: %w", id, err)
		}
		for _, h := range fx.Hosts {
			if h.ReferencesMA(id) {
				out = append(out, fmt.Sprintf("host %s uses unknown host %s as MA", h.ID, id))
			}
		}
		for _, g := range fx.Hostgroups {
			if g.Contains(id) {
				out = append(out, fmt.Sprintf("hostgroup %s lists unknown host %s", g.ID, id))
			}
		}
		for _, c := range fx.Configs {
			if c.References(id) {
				out = append(out, fmt.Sprintf("config %s references unknown host %s", c.ID, id))
			}
		}
	}
	return out, nil
}
