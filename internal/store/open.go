package store

import (
	"context"

	"github.com/rotisserie/eris"
)

// Supported store drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMongo    = "mongo"
)

// Options selects and configures a store backend.
type Options struct {
	Driver        string
	DatabaseURL   string
	MongoDatabase string
	Pool          *PoolConfig
}

// Open creates the store for opts.Driver and runs its migration.
func Open(ctx context.Context, opts Options) (Store, error) {
	var (
		st  Store
		err error
	)
	switch opts.Driver {
	case DriverSQLite, "":
		st, err = NewSQLite(opts.DatabaseURL)
	case DriverPostgres:
		st, err = NewPostgres(ctx, opts.DatabaseURL, opts.Pool)
	case DriverMongo:
		st, err = NewMongo(ctx, opts.DatabaseURL, opts.MongoDatabase)
	default:
		return nil, eris.Errorf("store: unknown driver %q", opts.Driver)
	}
	if err != nil {
		return nil, err
	}
	if err := st.Migrate(ctx); err != nil {
		st.Close() //nolint:errcheck
		return nil, err
	}
	return st, nil
}
