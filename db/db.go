package db

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"golang.org/x/sync/singleflight"
)

var (
	// ErrNoURI is returned by NewManager when no store address is configured.
	ErrNoURI = errors.New("db: mongo URI is empty")
	// ErrClosed is returned by Client once Close has been called.
	ErrClosed = errors.New("db: manager is closed")
)

// Dialer opens a client for uri. It is swapped out in tests.
type Dialer func(ctx context.Context, uri string) (*mongo.Client, error)

// Manager hands out one shared mongo client per process.
//
// The first call to Client dials; concurrent first callers wait on that same
// attempt. A failed attempt is not remembered, so the next call dials again.
type Manager struct {
	uri    string
	dbName string
	dial   Dialer
	// disconnect is swapped out in tests, where clients are never connected.
	disconnect func(ctx context.Context, c *mongo.Client) error

	group singleflight.Group

	mu     sync.RWMutex
	client *mongo.Client
	closed bool
}

func NewManager(uri, dbName string) (*Manager, error) {
	return newManager(uri, dbName, Dial)
}

func newManager(uri, dbName string, dial Dialer) (*Manager, error) {
	if uri == "" {
		return nil, ErrNoURI
	}
	return &Manager{uri: uri, dbName: dbName, dial: dial, disconnect: disconnect}, nil
}

// Dial connects to uri and pings the primary so a bad address fails here
// rather than on the first query.
func Dial(ctx context.Context, uri string) (*mongo.Client, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}
	return client, nil
}

func disconnect(ctx context.Context, c *mongo.Client) error {
	return c.Disconnect(ctx)
}

// current returns the memoized client, or ErrClosed after Close.
func (m *Manager) current() (*mongo.Client, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
		return nil, ErrClosed
	}
	return m.client, nil
}

// Client returns the shared client, dialing on first use.
func (m *Manager) Client(ctx context.Context) (*mongo.Client, error) {
	c, err := m.current()
	if err != nil || c != nil {
		return c, err
	}

	v, err, _ := m.group.Do("connect", func() (interface{}, error) {
		c, err := m.current()
		if err != nil || c != nil {
			return c, err
		}

		c, err = m.dial(ctx, m.uri)
		if err != nil {
			return nil, fmt.Errorf("connect mongo: %w", err)
		}

		m.mu.Lock()
		if m.closed {
			m.mu.Unlock()
			// Close ran while dialing; nobody else will release this client.
			if err := m.disconnect(context.Background(), c); err != nil {
				return nil, errors.Join(ErrClosed, err)
			}
			return nil, ErrClosed
		}
		m.client = c
		m.mu.Unlock()
		return c, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*mongo.Client), nil
}

// Database returns the configured database on the shared client.
func (m *Manager) Database(ctx context.Context) (*mongo.Database, error) {
	c, err := m.Client(ctx)
	if err != nil {
		return nil, err
	}
	return c.Database(m.dbName), nil
}

// Close disconnects the shared client if one was opened. A dial still in
// flight is disconnected as soon as it completes, and later calls to Client
// fail with ErrClosed.
func (m *Manager) Close(ctx context.Context) error {
	m.mu.Lock()
	c := m.client
	m.client = nil
	m.closed = true
	m.mu.Unlock()

	if c == nil {
		return nil
	}
	return m.disconnect(ctx, c)
}
