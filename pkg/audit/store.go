package audit

import (
	"database/sql"
	"encoding/json"
	"os"

	_ "github.com/lib/pq"
)

const insertEvent = `INSERT INTO audit_events
	(facility, severity, timestamp, hostname, appname, procid, msgid, sdata, message)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

// Store persists audit events to the audit_events table.
type Store struct {
	db       *sql.DB
	hostname string
	pid      int
}

// NewStore opens the database named by HYDRA_AUDIT_DATABASE_URL. It
// returns a nil store when the variable is unset.
func NewStore() (*Store, error) {
	url := os.Getenv("HYDRA_AUDIT_DATABASE_URL")
	if url == "" {
		return nil, nil
	}
	db, err := sql.Open("postgres", url)
	if err != nil {
		return nil, err
	}
	return NewStoreWithDB(db), nil
}

func NewStoreWithDB(db *sql.DB) *Store {
	hostname, _ := os.Hostname()
	return &Store{db: db, hostname: hostname, pid: os.Getpid()}
}

func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Save inserts one row for event. A store without a database is a no-op.
func (s *Store) Save(event Event) error {
	if s.db == nil {
		return nil
	}

	r := stamp(event, s.hostname, s.pid)
	sdata, err := json.Marshal(r.StructuredData())
	if err != nil {
		return err
	}

	_, err = s.db.Exec(insertEvent,
		r.Facility(),
		int(r.Severity()),
		r.at,
		r.hostname,
		AppName,
		r.pid,
		r.MessageID(),
		sdata,
		r.Message(),
	)
	return err
}
