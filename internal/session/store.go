// Package session persists the authenticated session: bearer token,
// user identity, role, and the UI-preference flags. The login flow is
// the only writer; logout is the only eraser; every other screen reads.
package session

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// ErrNoSession is returned by Load when nobody is logged in.
var ErrNoSession = errors.New("no active session")

// Session is the persisted authentication state.
type Session struct {
	Token       string
	UserID      int64
	DisplayName string
	Role        string

	// UI-preference flags carried across screens.
	DocsPanelExpanded  bool
	AdminPanelExpanded bool
}

// IsAdmin reports whether the session's role grants the admin screens.
func (s Session) IsAdmin() bool { return s.Role == "ADMIN" }

const schema = `
CREATE TABLE IF NOT EXISTS session (
	id                   INTEGER PRIMARY KEY CHECK (id = 1),
	token                TEXT NOT NULL,
	user_id              INTEGER NOT NULL,
	display_name         TEXT NOT NULL,
	role                 TEXT NOT NULL,
	docs_panel_expanded  INTEGER NOT NULL DEFAULT 0,
	admin_panel_expanded INTEGER NOT NULL DEFAULT 0
);
`

// Store is a single-row SQLite-backed session store.
type Store struct {
	db *sql.DB
}

// DefaultDBPath returns the default database path (~/.dms/state.db).
func DefaultDBPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".dms", "state.db"), nil
}

// Open opens (and if needed creates) the session database. An empty
// path uses DefaultDBPath.
func Open(dbPath string) (*Store, error) {
	if dbPath == "" {
		var err error
		dbPath, err = DefaultDBPath()
		if err != nil {
			return nil, err
		}
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o700); err != nil {
		return nil, fmt.Errorf("failed to create session directory: %w", err)
	}

	// modernc.org/sqlite uses _pragma=name(value) syntax
	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)", dbPath)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open session database: %w", err)
	}

	// Single writer; SQLite handles concurrency better this way.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to session database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply session schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the database handle.
func (s *Store) Close() error { return s.db.Close() }

// Save replaces the stored session wholesale.
func (s *Store) Save(ctx context.Context, sess Session) error {
	if sess.Token == "" {
		return errors.New("token is required")
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO session (id, token, user_id, display_name, role, docs_panel_expanded, admin_panel_expanded)
		VALUES (1, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			token = excluded.token,
			user_id = excluded.user_id,
			display_name = excluded.display_name,
			role = excluded.role,
			docs_panel_expanded = excluded.docs_panel_expanded,
			admin_panel_expanded = excluded.admin_panel_expanded
	`, sess.Token, sess.UserID, sess.DisplayName, sess.Role,
		boolToInt(sess.DocsPanelExpanded), boolToInt(sess.AdminPanelExpanded))
	if err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// Load returns the stored session, or ErrNoSession.
func (s *Store) Load(ctx context.Context) (Session, error) {
	var sess Session
	var docs, admin int
	err := s.db.QueryRowContext(ctx, `
		SELECT token, user_id, display_name, role, docs_panel_expanded, admin_panel_expanded
		FROM session WHERE id = 1
	`).Scan(&sess.Token, &sess.UserID, &sess.DisplayName, &sess.Role, &docs, &admin)
	if errors.Is(err, sql.ErrNoRows) {
		return Session{}, ErrNoSession
	}
	if err != nil {
		return Session{}, fmt.Errorf("failed to load session: %w", err)
	}
	sess.DocsPanelExpanded = docs != 0
	sess.AdminPanelExpanded = admin != 0
	return sess, nil
}

// SetPanels updates only the UI-preference flags.
func (s *Store) SetPanels(ctx context.Context, docsExpanded, adminExpanded bool) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE session SET docs_panel_expanded = ?, admin_panel_expanded = ? WHERE id = 1
	`, boolToInt(docsExpanded), boolToInt(adminExpanded))
	if err != nil {
		return fmt.Errorf("failed to update panel flags: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNoSession
	}
	return nil
}

// Clear erases the session (logout).
func (s *Store) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM session WHERE id = 1`); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}

// Token implements api.TokenSource, returning "" when logged out so
// the client can fail fast instead of sending an unauthenticated call.
func (s *Store) Token() (string, error) {
	sess, err := s.Load(context.Background())
	if errors.Is(err, ErrNoSession) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return sess.Token, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
