package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/Skaland01/Kollektiv/types"
)

var tableNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z_][A-Za-z0-9_]*)?$`)

// SQL stores snapshots in a relational table using PostgreSQL syntax.
//
// Schema:
//
//	CREATE TABLE kollektiv_snapshots (
//	    collective_id TEXT PRIMARY KEY,
//	    version       BIGINT NOT NULL,
//	    checksum      TEXT NOT NULL,
//	    data          JSONB NOT NULL,
//	    updated_at    TIMESTAMPTZ NOT NULL
//	);
//
// The upsert only overwrites rows with a version not newer than the incoming
// one; zero affected rows means the snapshot was stale.
type SQL struct {
	db    *sql.DB
	table string
	now   func() time.Time

	upsertQuery string
	selectQuery string
	deleteQuery string
}

var _ types.SnapshotStore = (*SQL)(nil)

// NewSQL creates a SQL-backed store for the given table.
//
// Parameters:
//   - db: Open database handle (PostgreSQL driver, e.g. lib/pq)
//   - table: Table name, optionally schema-qualified
//
// Returns:
//   - *SQL: Store bound to the table
//   - error: Invalid table name
//
// Example:
//
//	db, _ := sql.Open("postgres", dsn)
//	st, err := store.NewSQL(db, "kollektiv_snapshots")
//	err = st.EnsureSchema(ctx)
func NewSQL(db *sql.DB, table string) (*SQL, error) {
	if !tableNamePattern.MatchString(table) {
		return nil, fmt.Errorf("invalid snapshot table name %q", table)
	}

	return &SQL{
		db:    db,
		table: table,
		now:   time.Now,
		upsertQuery: fmt.Sprintf(`INSERT INTO %[1]s (collective_id, version, checksum, data, updated_at)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (collective_id) DO UPDATE
SET version = EXCLUDED.version, checksum = EXCLUDED.checksum, data = EXCLUDED.data, updated_at = EXCLUDED.updated_at
WHERE %[1]s.version <= EXCLUDED.version`, table),
		selectQuery: fmt.Sprintf(`SELECT data FROM %s WHERE collective_id = $1`, table),
		deleteQuery: fmt.Sprintf(`DELETE FROM %s WHERE collective_id = $1`, table),
	}, nil
}

// EnsureSchema creates the snapshot table if it does not exist.
func (s *SQL) EnsureSchema(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
    collective_id TEXT PRIMARY KEY,
    version       BIGINT NOT NULL,
    checksum      TEXT NOT NULL,
    data          JSONB NOT NULL,
    updated_at    TIMESTAMPTZ NOT NULL
)`, s.table))
	if err != nil {
		return fmt.Errorf("failed to create snapshot table %s: %w", s.table, err)
	}

	return nil
}

// Save upserts the snapshot unless a newer version is already stored.
func (s *SQL) Save(ctx context.Context, collectiveID string, snap types.Snapshot) error {
	if collectiveID == "" {
		return types.ErrInvalidCollectiveID
	}

	data, err := snap.Marshal()
	if err != nil {
		return err
	}

	res, err := s.db.ExecContext(ctx, s.upsertQuery,
		collectiveID,
		snap.Version,
		fmt.Sprintf("%016x", snap.Checksum()),
		string(data),
		s.now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to save snapshot %s: %w", collectiveID, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to save snapshot %s: %w", collectiveID, err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: collective %s already has a newer version than %d",
			types.ErrStaleSnapshot, collectiveID, snap.Version)
	}

	return nil
}

// Load returns the stored snapshot, or types.ErrSnapshotNotFound.
func (s *SQL) Load(ctx context.Context, collectiveID string) (types.Snapshot, error) {
	var data string
	err := s.db.QueryRowContext(ctx, s.selectQuery, collectiveID).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return types.Snapshot{}, notFoundError(collectiveID)
	}
	if err != nil {
		return types.Snapshot{}, fmt.Errorf("failed to load snapshot %s: %w", collectiveID, err)
	}

	return types.UnmarshalSnapshot([]byte(data))
}

// Delete removes the stored snapshot.
func (s *SQL) Delete(ctx context.Context, collectiveID string) error {
	if _, err := s.db.ExecContext(ctx, s.deleteQuery, collectiveID); err != nil {
		return fmt.Errorf("failed to delete snapshot %s: %w", collectiveID, err)
	}

	return nil
}
