package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/mesh-intelligence/todolist/pkg/types"
)

// teamsTable implements types.TeamTable.
type teamsTable struct {
	s *session
}

const selectTeam = "SELECT id, name, headquarters FROM teams"

func scanTeam(row rowScanner) (*types.Team, error) {
	var t types.Team
	err := row.Scan(&t.ID, &t.Name, &t.Headquarters)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, types.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scanning team: %w", err)
	}
	return &t, nil
}

func (t *teamsTable) Create(ctx context.Context, in types.TeamCreate) (*types.Team, error) {
	res, err := t.s.tx.ExecContext(ctx,
		"INSERT INTO teams (name, headquarters) VALUES (?, ?)",
		in.Name, in.Headquarters)
	if err != nil {
		return nil, fmt.Errorf("inserting team: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("reading team id: %w", err)
	}
	return t.Get(ctx, id)
}

func (t *teamsTable) Get(ctx context.Context, id int64) (*types.Team, error) {
	return scanTeam(t.s.tx.QueryRowContext(ctx, selectTeam+" WHERE id = ?", id))
}

func (t *teamsTable) List(ctx context.Context, page types.Page) ([]types.Team, error) {
	args, err := pageArgs(page)
	if err != nil {
		return nil, err
	}
	rows, err := t.s.tx.QueryContext(ctx, selectTeam+" ORDER BY id LIMIT ? OFFSET ?", args...)
	if err != nil {
		return nil, fmt.Errorf("fetching teams: %w", err)
	}
	defer rows.Close()

	teams := []types.Team{}
	for rows.Next() {
		team, err := scanTeam(rows)
		if err != nil {
			return nil, err
		}
		teams = append(teams, *team)
	}
	return teams, rows.Err()
}

func (t *teamsTable) Update(ctx context.Context, id int64, patch types.TeamUpdate) (*types.Team, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}
	if _, err := t.Get(ctx, id); err != nil {
		return nil, err
	}

	var sets []string
	var args []any
	if v, ok := patch.Name.Get(); ok {
		sets = append(sets, "name = ?")
		args = append(args, v)
	}
	if v, ok := patch.Headquarters.Get(); ok {
		sets = append(sets, "headquarters = ?")
		args = append(args, v)
	}

	if len(sets) > 0 {
		args = append(args, id)
		if _, err := t.s.tx.ExecContext(ctx,
			"UPDATE teams SET "+strings.Join(sets, ", ")+" WHERE id = ?", args...); err != nil {
			return nil, fmt.Errorf("updating team: %w", err)
		}
	}
	return t.Get(ctx, id)
}

// Delete clears team_id on the team's items before removing the team, so
// the outcome does not depend on whether the engine enforces ON DELETE.
func (t *teamsTable) Delete(ctx context.Context, id int64) error {
	if _, err := t.Get(ctx, id); err != nil {
		return err
	}
	if _, err := t.s.tx.ExecContext(ctx,
		"UPDATE items SET team_id = NULL WHERE team_id = ?", id); err != nil {
		return fmt.Errorf("detaching team items: %w", err)
	}
	if _, err := t.s.tx.ExecContext(ctx, "DELETE FROM teams WHERE id = ?", id); err != nil {
		return fmt.Errorf("deleting team: %w", err)
	}
	return nil
}
