// Package mongodb provides support for connecting to a MongoDB deployment.
package mongodb

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jrazmi/tasktracker/sdk/environment"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/event"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.mongodb.org/mongo-driver/x/mongo/driver/connstring"
)

// Set of error variables for CRUD operations.
var (
	ErrDBNotFound        = mongo.ErrNoDocuments
	ErrDBDuplicatedEntry = errors.New("duplicated entry")
)

// DefaultDatabase is used when neither the config nor the URI names one.
const DefaultDatabase = "tasktracker"

// Options represents the exportable database configuration
type Options struct {
	URI            string        `env:"MONGODB_URI" required:"true"`
	Database       string        `env:"MONGODB_DATABASE"`
	Collection     string        `env:"MONGODB_COLLECTION" default:"tasks"`
	ConnectTimeout time.Duration `env:"MONGODB_CONNECT_TIMEOUT" default:"10s"`
}

type dbOptions struct {
	uri            string
	database       string
	collection     string
	connectTimeout time.Duration
	logger         *slog.Logger
}

// Option is a function that configures the database options
type Option func(*dbOptions)

// WithLogger logs the connect line and every failed command to logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *dbOptions) {
		o.logger = logger
	}
}

// WithDatabase overrides the database name.
func WithDatabase(name string) Option {
	return func(o *dbOptions) {
		o.database = name
	}
}

// WithCollection overrides the collection name.
func WithCollection(name string) Option {
	return func(o *dbOptions) {
		o.collection = name
	}
}

// DB is a connected client bound to one database and collection.
type DB struct {
	client     *mongo.Client
	database   *mongo.Database
	collection string
}

// NewFromEnv connects using environment variables.
func NewFromEnv(prefix string, opts ...Option) (*DB, error) {
	var cfg Options
	if err := environment.ParseEnvTags(prefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing mongodb config: %w", err)
	}
	return Open(context.Background(), cfg, opts...)
}

// Open connects to the deployment and pings it, failing fast when it is
// unreachable.
func Open(ctx context.Context, cfg Options, opts ...Option) (*DB, error) {
	o := &dbOptions{
		uri:            cfg.URI,
		database:       cfg.Database,
		collection:     cfg.Collection,
		connectTimeout: cfg.ConnectTimeout,
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.uri == "" {
		return nil, errors.New("mongodb uri is required")
	}
	if o.collection == "" {
		o.collection = "tasks"
	}
	if o.connectTimeout <= 0 {
		o.connectTimeout = 10 * time.Second
	}
	if o.database == "" {
		cs, err := connstring.ParseAndValidate(o.uri)
		if err != nil {
			return nil, fmt.Errorf("parsing connection string: %w", err)
		}
		o.database = cs.Database
	}
	if o.database == "" {
		o.database = DefaultDatabase
	}

	ctx, cancel := context.WithTimeout(ctx, o.connectTimeout)
	defer cancel()

	clientOpts := options.Client().
		ApplyURI(o.uri).
		SetConnectTimeout(o.connectTimeout).
		SetServerSelectionTimeout(o.connectTimeout)
	if o.logger != nil {
		clientOpts.SetMonitor(failedCommandMonitor(o.logger))
	}

	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, fmt.Errorf("connecting to mongodb: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		client.Disconnect(context.Background())
		return nil, fmt.Errorf("pinging mongodb: %w", err)
	}

	if o.logger != nil {
		o.logger.InfoContext(ctx, "mongodb connected", "database", o.database, "collection", o.collection)
	}

	return &DB{
		client:     client,
		database:   client.Database(o.database),
		collection: o.collection,
	}, nil
}

// Collection returns the configured collection handle.
func (db *DB) Collection() *mongo.Collection {
	return db.database.Collection(db.collection)
}

// Close disconnects the client.
func (db *DB) Close(ctx context.Context) error {
	return db.client.Disconnect(ctx)
}

// StatusCheck returns nil if it can successfully talk to the database
func StatusCheck(ctx context.Context, db *DB) error {
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Second)
		defer cancel()
	}
	return db.client.Ping(ctx, readpref.Primary())
}

// Migrate creates the indexes the task queries rely on.
func Migrate(ctx context.Context, db *DB, log *slog.Logger) error {
	name, err := db.Collection().Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}},
		Options: options.Index().SetName("createdAt_desc"),
	})
	if err != nil {
		return fmt.Errorf("create index: %w", HandleMongoError(err))
	}
	log.InfoContext(ctx, "migrate", "status", "index ready", "index", name)
	return nil
}

// HandleMongoError converts driver errors to application errors.
func HandleMongoError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrDBNotFound
	}
	if mongo.IsDuplicateKeyError(err) {
		return ErrDBDuplicatedEntry
	}
	return err
}

// failedCommandMonitor reports commands the server rejected or that never
// completed. Successful commands are not logged.
func failedCommandMonitor(log *slog.Logger) *event.CommandMonitor {
	return &event.CommandMonitor{
		Failed: func(ctx context.Context, e *event.CommandFailedEvent) {
			log.ErrorContext(ctx, "mongodb command failed",
				"command", e.CommandName,
				"database", e.DatabaseName,
				"request_id", e.RequestID,
				"took", e.Duration,
				"err", e.Failure)
		},
	}
}
