package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/256dpi/lungo"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"evalgo.org/hostreg/internal/config"
	"evalgo.org/hostreg/models"
)

// Mongo is the Store for both backends. The client is either a real MongoDB
// connection wrapped by lungo or a lungo engine running in process; every
// query goes through the same mongo-driver API.
type Mongo struct {
	client     lungo.IClient
	engine     *lungo.Engine
	db         lungo.IDatabase
	hosts      lungo.ICollection
	hostgroups lungo.ICollection
	configs    lungo.ICollection
	logger     *logrus.Logger
}

// NewMongo connects to MongoDB and ensures the indexes used by the
// dependency checks exist.
func NewMongo(ctx context.Context, cfg config.MongoDBConfig, logger *logrus.Logger) (*Mongo, error) {
	connectCtx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
	defer cancel()

	opts := options.Client().ApplyURI(cfg.URI)
	if cfg.MaxPoolSize > 0 {
		opts.SetMaxPoolSize(cfg.MaxPoolSize)
	}

	client, err := lungo.Connect(connectCtx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}
	if err := client.Ping(connectCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	m := newStore(client, nil, cfg.Database, logger)
	m.ensureIndexes(ctx)
	return m, nil
}

// NewMemory opens an empty store on lungo's in-process engine. Nothing is
// written to disk.
func NewMemory(ctx context.Context, logger *logrus.Logger) (*Mongo, error) {
	client, engine, err := lungo.Open(ctx, lungo.Options{Store: lungo.NewMemoryStore()})
	if err != nil {
		return nil, fmt.Errorf("failed to open memory engine: %w", err)
	}

	m := newStore(client, engine, "hostreg", logger)
	m.ensureIndexes(ctx)
	return m, nil
}

func newStore(client lungo.IClient, engine *lungo.Engine, database string, logger *logrus.Logger) *Mongo {
	db := client.Database(database)
	return &Mongo{
		client:     client,
		engine:     engine,
		db:         db,
		hosts:      db.Collection(CollectionHosts),
		hostgroups: db.Collection(CollectionHostgroups),
		configs:    db.Collection(CollectionConfigs),
		logger:     logger,
	}
}

func (m *Mongo) ensureIndexes(ctx context.Context) {
	indexes := []struct {
		coll   lungo.ICollection
		fields []string
	}{
		{m.hosts, []string{"services.ma", "hostname", "lsid"}},
		{m.hostgroups, []string{"hosts"}},
		{m.configs, []string{"tests.center", "tests.nahosts"}},
	}
	for _, idx := range indexes {
		for _, field := range idx.fields {
			model := mongo.IndexModel{Keys: bson.D{{Key: field, Value: 1}}}
			if _, err := idx.coll.Indexes().CreateOne(ctx, model); err != nil {
				// index might already exist with other options
				m.logger.WithError(err).Warnf("failed to create index %s.%s", idx.coll.Name(), field)
			}
		}
	}
}

func findOptions(opts FindOptions) *options.FindOptions {
	fo := options.Find()
	sort := bson.D{}
	for _, s := range opts.Sort {
		dir := 1
		if s.Descending {
			dir = -1
		}
		sort = append(sort, bson.E{Key: s.Field, Value: dir})
	}
	if len(sort) == 0 {
		sort = bson.D{{Key: "_id", Value: 1}}
	}
	fo.SetSort(sort)
	if len(opts.Fields) > 0 {
		proj := bson.M{}
		for _, f := range opts.Fields {
			proj[f] = 1
		}
		fo.SetProjection(proj)
	}
	if opts.Limit > 0 {
		fo.SetLimit(opts.Limit)
	}
	if opts.Skip > 0 {
		fo.SetSkip(opts.Skip)
	}
	return fo
}

func toBSON(filter Filter) bson.M {
	if filter == nil {
		return bson.M{}
	}
	return bson.M(filter)
}

// FindHosts returns hosts matching filter.
func (m *Mongo) FindHosts(ctx context.Context, filter Filter, opts FindOptions) ([]*models.Host, error) {
	cur, err := m.hosts.Find(ctx, toBSON(filter), findOptions(opts))
	if err != nil {
		return nil, err
	}
	hosts := []*models.Host{}
	if err := cur.All(ctx, &hosts); err != nil {
		return nil, err
	}
	return hosts, nil
}

// CountHosts counts all hosts matching filter, ignoring paging.
func (m *Mongo) CountHosts(ctx context.Context, filter Filter) (int64, error) {
	return m.hosts.CountDocuments(ctx, toBSON(filter))
}

// GetHost retrieves a host by id. Ids are stored as strings.
func (m *Mongo) GetHost(ctx context.Context, id string) (*models.Host, error) {
	var host models.Host
	err := m.hosts.FindOne(ctx, bson.M{"_id": id}).Decode(&host)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &host, nil
}

// InsertHost stores a new host, assigning an id when missing.
func (m *Mongo) InsertHost(ctx context.Context, host *models.Host) error {
	if host.ID == "" {
		host.ID = models.NewID()
	}
	_, err := m.hosts.InsertOne(ctx, host)
	return err
}

// SaveHost replaces the stored document with host.
func (m *Mongo) SaveHost(ctx context.Context, host *models.Host) error {
	res, err := m.hosts.ReplaceOne(ctx, bson.M{"_id": host.ID}, host)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteHost removes the host with id.
func (m *Mongo) DeleteHost(ctx context.Context, id string) error {
	res, err := m.hosts.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// FindHostgroups returns hostgroups matching filter.
func (m *Mongo) FindHostgroups(ctx context.Context, filter Filter) ([]*models.Hostgroup, error) {
	cur, err := m.hostgroups.Find(ctx, toBSON(filter), findOptions(FindOptions{}))
	if err != nil {
		return nil, err
	}
	groups := []*models.Hostgroup{}
	if err := cur.All(ctx, &groups); err != nil {
		return nil, err
	}
	return groups, nil
}

// SaveHostgroup upserts a hostgroup.
func (m *Mongo) SaveHostgroup(ctx context.Context, group *models.Hostgroup) error {
	if group.ID == "" {
		group.ID = models.NewID()
	}
	_, err := m.hostgroups.ReplaceOne(ctx, bson.M{"_id": group.ID}, group, options.Replace().SetUpsert(true))
	return err
}

// FindConfigs returns configs matching filter.
func (m *Mongo) FindConfigs(ctx context.Context, filter Filter) ([]*models.MeshConfig, error) {
	cur, err := m.configs.Find(ctx, toBSON(filter), findOptions(FindOptions{}))
	if err != nil {
		return nil, err
	}
	configs := []*models.MeshConfig{}
	if err := cur.All(ctx, &configs); err != nil {
		return nil, err
	}
	return configs, nil
}

// SaveConfig upserts a config.
func (m *Mongo) SaveConfig(ctx context.Context, cfg *models.MeshConfig) error {
	if cfg.ID == "" {
		cfg.ID = models.NewID()
	}
	_, err := m.configs.ReplaceOne(ctx, bson.M{"_id": cfg.ID}, cfg, options.Replace().SetUpsert(true))
	return err
}

// Ping checks connectivity to the primary.
func (m *Mongo) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return m.client.Ping(ctx, readpref.Primary())
}

// Close disconnects the client and stops the in-process engine, if any.
func (m *Mongo) Close(ctx context.Context) error {
	err := m.client.Disconnect(ctx)
	if m.engine != nil {
		m.engine.Close()
	}
	return err
}
