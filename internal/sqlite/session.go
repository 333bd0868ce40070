package sqlite

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/mesh-intelligence/todolist/pkg/types"
)

// session implements types.Session on one transaction.
type session struct {
	tx      *sql.Tx
	dialect *dialect
	done    bool
}

func newSession(tx *sql.Tx, d *dialect) *session {
	return &session{tx: tx, dialect: d}
}

func (s *session) Teams() types.TeamTable {
	return &teamsTable{s: s}
}

func (s *session) Items() types.ItemTable {
	return &itemsTable{s: s}
}

// Commit makes the session's writes durable. A session can commit once.
func (s *session) Commit() error {
	if s.done {
		return types.ErrSessionClosed
	}
	s.done = true
	if err := s.tx.Commit(); err != nil {
		return fmt.Errorf("commit session: %w", err)
	}
	return nil
}

// Close rolls back uncommitted work. Safe to call after Commit and more than
// once.
func (s *session) Close() error {
	if s.done {
		return nil
	}
	s.done = true
	if err := s.tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
		return fmt.Errorf("rollback session: %w", err)
	}
	return nil
}

// translate maps driver errors onto the package sentinels.
func (s *session) translate(err error) error {
	if err != nil && s.dialect.isForeignKey(err) {
		return fmt.Errorf("%w: %v", types.ErrTeamNotFound, err)
	}
	return err
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// pageArgs returns the LIMIT and OFFSET arguments for a validated page.
func pageArgs(page types.Page) ([]any, error) {
	p, err := page.Normalize()
	if err != nil {
		return nil, err
	}
	return []any{p.Limit, p.Offset}, nil
}
