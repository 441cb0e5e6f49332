package db

import (
	"context"
	"fmt"
)

// Open returns the store named by kind ("sqlite" or "postgres"). An empty
// sqlitePath opens an in-memory database.
func Open(ctx context.Context, kind, databaseURL, sqlitePath string) (Store, error) {
	switch kind {
	case "", "sqlite":
		if sqlitePath == "" {
			sqlitePath = ":memory:"
		}
		s, err := OpenSQLite(ctx, sqlitePath)
		if err != nil {
			return nil, err
		}
		return s, nil
	case "postgres":
		if databaseURL == "" {
			return nil, fmt.Errorf("database URL is required for the postgres store")
		}
		d, err := Connect(ctx, databaseURL)
		if err != nil {
			return nil, err
		}
		return d, nil
	default:
		return nil, fmt.Errorf("unknown store %q", kind)
	}
}
