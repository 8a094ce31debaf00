package db

import (
	"context"
	"database/sql"
	"hash/fnv"
)

// AdvisoryLocker implements cross-process locking with Postgres advisory
// locks. Each Lock call pins a dedicated connection so the matching unlock
// runs on the same session.
type AdvisoryLocker struct {
	DB *sql.DB
}

// Lock acquires pg_advisory_lock for the key and returns the unlock func.
func (l *AdvisoryLocker) Lock(ctx context.Context, key string) (func(), error) {
	conn, err := l.DB.Conn(ctx)
	if err != nil {
		return nil, err
	}
	id := lockID(key)
	if _, err := conn.ExecContext(ctx, "SELECT pg_advisory_lock($1)", id); err != nil {
		conn.Close()
		return nil, err
	}
	unlock := func() {
		_, _ = conn.ExecContext(context.Background(), "SELECT pg_advisory_unlock($1)", id)
		conn.Close()
	}
	return unlock, nil
}

func lockID(key string) int64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(key))
	return int64(h.Sum64())
}
