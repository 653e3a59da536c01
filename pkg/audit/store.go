package audit

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"time"

	_ "github.com/lib/pq"
)

const insertEvent = `INSERT INTO audit_events
	(occurred_at, event, facility, severity, message, details, host, pid)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

// Store appends events to the audit_events table. A nil Store, or one without
// a connection, drops events silently.
type Store struct {
	db       *sql.DB
	host     string
	deadline time.Duration
}

// NewStore connects to TRIPDESK_AUDIT_DATABASE_URL, which may point at the
// booking database itself. It returns a nil Store when the variable is unset,
// leaving the trail in the log only.
func NewStore() (*Store, error) {
	dsn := os.Getenv("TRIPDESK_AUDIT_DATABASE_URL")
	if dsn == "" {
		return nil, nil
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open audit database: %w", err)
	}
	db.SetMaxOpenConns(2)
	return NewStoreWithDB(db), nil
}

func NewStoreWithDB(db *sql.DB) *Store {
	host, _ := os.Hostname()
	return &Store{db: db, host: host, deadline: 2 * time.Second}
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Save appends one event, giving up once the store's deadline passes
func (s *Store) Save(event Event) error {
	if s == nil || s.db == nil {
		return nil
	}

	details, err := json.Marshal(event.StructuredData())
	if err != nil {
		return fmt.Errorf("encode %s details: %w", event.MessageID(), err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.deadline)
	defer cancel()

	_, err = s.db.ExecContext(ctx, insertEvent,
		time.Now().UTC(),
		event.MessageID(),
		event.Facility(),
		int(event.Severity()),
		event.Message(),
		details,
		s.host,
		os.Getpid(),
	)
	if err != nil {
		return fmt.Errorf("append %s event: %w", event.MessageID(), err)
	}
	return nil
}
