// Package audit is a write-only, best-effort sink recording per-row
// dispatch failures for a long-running stream. Book state itself is never
// persisted; this is operational monitoring of stream health only,
// disabled by default.
package audit

import (
	"database/sql"
	"fmt"
	"net/url"
	"strings"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
)

const createTableDDL = `
CREATE TABLE IF NOT EXISTS stream_run_errors (
	id          BIGINT AUTO_INCREMENT PRIMARY KEY,
	run_id      CHAR(36)    NOT NULL,
	row_index   BIGINT      NOT NULL,
	dialect     VARCHAR(1)  NOT NULL,
	error_code  VARCHAR(64) NOT NULL,
	recorded_at DATETIME    NOT NULL
)`

// convertURIToDSN converts a mysql:// URI into go-sql-driver/mysql DSN
// format; a string already in DSN form passes through unchanged.
func convertURIToDSN(connectionString string) (string, error) {
	if !strings.HasPrefix(connectionString, "mysql://") {
		return connectionString, nil
	}

	u, err := url.Parse(connectionString)
	if err != nil {
		return "", fmt.Errorf("audit: failed to parse URI: %w", err)
	}
	if u.Host == "" {
		return "", fmt.Errorf("audit: host is required in %q", connectionString)
	}

	var userInfo string
	if u.User != nil {
		username := u.User.Username()
		if password, ok := u.User.Password(); ok {
			userInfo = username + ":" + password
		} else {
			userInfo = username
		}
	}

	database := strings.TrimPrefix(u.Path, "/")
	if database == "" {
		database = "order_book_audit"
	}

	dsn := fmt.Sprintf("%s@tcp(%s)/%s", userInfo, u.Host, database)

	params := url.Values{"parseTime": {"true"}}
	for k, v := range u.Query() {
		params[k] = v
	}
	return dsn + "?" + params.Encode(), nil
}

// Connect opens a MySQL connection for the audit sink. An empty dsn means
// the sink is disabled; Connect returns (nil, nil) in that case.
func Connect(dsn string) (*sql.DB, error) {
	if dsn == "" {
		return nil, nil
	}
	resolved, err := convertURIToDSN(dsn)
	if err != nil {
		return nil, err
	}
	db, err := sql.Open("mysql", resolved)
	if err != nil {
		return nil, fmt.Errorf("audit: opening connection: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("audit: pinging database: %w", err)
	}
	if _, err := db.Exec(createTableDDL); err != nil {
		db.Close()
		return nil, fmt.Errorf("audit: creating stream_run_errors table: %w", err)
	}
	return db, nil
}

// Sink records per-row dispatch failures to MySQL under a single run ID.
type Sink struct {
	db        *sql.DB
	runID     uuid.UUID
	insertErr *sql.Stmt
}

// NewSink prepares the insert statement used for every RecordError call.
func NewSink(db *sql.DB) (*Sink, error) {
	stmt, err := db.Prepare(`
		INSERT INTO stream_run_errors (run_id, row_index, dialect, error_code, recorded_at)
		VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return nil, fmt.Errorf("audit: preparing insert statement: %w", err)
	}
	return &Sink{db: db, runID: uuid.New(), insertErr: stmt}, nil
}

// RunID identifies this sink's stream run across every recorded row.
func (s *Sink) RunID() uuid.UUID { return s.runID }

// RecordError persists one row-level failure. A write failure here never
// affects dispatch correctness; the caller logs and continues.
func (s *Sink) RecordError(rowIndex int64, dialect, errorCode string) error {
	_, err := s.insertErr.Exec(s.runID.String(), rowIndex, dialect, errorCode, time.Now())
	if err != nil {
		return fmt.Errorf("audit: recording row %d: %w", rowIndex, err)
	}
	return nil
}

// Close releases the prepared statement. It does not close the underlying
// *sql.DB, which the caller owns.
func (s *Sink) Close() error {
	return s.insertErr.Close()
}
