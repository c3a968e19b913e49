package journal

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/lib/pq"

	"github.com/park285/glinski-chess/internal/match"
)

// PostgresJournal inserts one row per committed move.
type PostgresJournal struct {
	db    *sql.DB
	table string
}

func NewPostgresJournal(databaseURL, table string) (*PostgresJournal, error) {
	if strings.TrimSpace(databaseURL) == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	if !validIdentifier(table) {
		return nil, fmt.Errorf("invalid journal table name %q", table)
	}
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(30 * time.Minute)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	j := &PostgresJournal{db: db, table: table}
	if err := j.EnsureSchema(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return j, nil
}

// EnsureSchema creates the journal table when it is missing.
func (j *PostgresJournal) EnsureSchema(ctx context.Context) error {
	_, err := j.db.ExecContext(ctx, schemaSQL(j.table))
	return err
}

func (j *PostgresJournal) Record(ctx context.Context, rec match.MoveRecord) error {
	if j == nil || j.db == nil {
		return nil
	}
	e := NewEntry(rec)
	var captured sql.NullString
	if e.Captured != "" {
		captured = sql.NullString{String: e.Captured, Valid: true}
	}
	_, err := j.db.ExecContext(ctx, insertSQL(j.table),
		e.Seq, e.SessionID, e.Color, e.Piece, captured,
		e.From.FileIdx, e.From.RankIdx, e.To.FileIdx, e.To.RankIdx, e.At,
	)
	if err != nil {
		return fmt.Errorf("postgres journal: %w", err)
	}
	return nil
}

func (j *PostgresJournal) Close() error {
	if j == nil || j.db == nil {
		return nil
	}
	return j.db.Close()
}

func schemaSQL(table string) string {
	return `CREATE TABLE IF NOT EXISTS ` + table + ` (
        id          BIGSERIAL PRIMARY KEY,
        seq         INTEGER     NOT NULL,
        session_id  TEXT        NOT NULL,
        color       TEXT        NOT NULL,
        piece       TEXT        NOT NULL,
        captured    TEXT,
        from_file   SMALLINT    NOT NULL,
        from_rank   SMALLINT    NOT NULL,
        to_file     SMALLINT    NOT NULL,
        to_rank     SMALLINT    NOT NULL,
        played_at   TIMESTAMPTZ NOT NULL
      )`
}

func insertSQL(table string) string {
	return `INSERT INTO ` + table + ` (
        seq, session_id, color, piece, captured,
        from_file, from_rank, to_file, to_rank, played_at
      ) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`
}

// validIdentifier accepts lower-case unquoted SQL identifiers only; the
// table name is spliced into statements.
func validIdentifier(s string) bool {
	if s == "" || len(s) > 63 {
		return false
	}
	for i, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r == '_':
		case r >= '0' && r <= '9' && i > 0:
		default:
			return false
		}
	}
	return true
}
