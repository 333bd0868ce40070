package sqlite

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mesh-intelligence/todolist/pkg/types"
)

// Export writes every team and item to TeamsJSONL and ItemsJSONL in dir,
// ordered by id. It reads from a single session so the two files agree.
func (b *Backend) Export(ctx context.Context, dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create export dir: %w", err)
	}
	sess, err := b.begin(ctx)
	if err != nil {
		return err
	}
	defer sess.Close()

	rows, err := sess.tx.QueryContext(ctx, selectTeam+" ORDER BY id")
	if err != nil {
		return fmt.Errorf("fetching teams: %w", err)
	}
	teams := []types.Team{}
	for rows.Next() {
		t, err := scanTeam(rows)
		if err != nil {
			rows.Close()
			return err
		}
		teams = append(teams, *t)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return fmt.Errorf("fetching teams: %w", err)
	}

	items, err := (&itemsTable{s: sess}).query(ctx, selectItem+" ORDER BY id")
	if err != nil {
		return err
	}

	if err := writeJSONL(filepath.Join(dir, TeamsJSONL), teams); err != nil {
		return fmt.Errorf("export teams: %w", err)
	}
	if err := writeJSONL(filepath.Join(dir, ItemsJSONL), items); err != nil {
		return fmt.Errorf("export items: %w", err)
	}
	return nil
}

// ImportStats counts the records loaded by Import.
type ImportStats struct {
	Teams int
	Items int
}

// Import loads TeamsJSONL and ItemsJSONL from dir, keeping their ids. All
// records load in one transaction: on any error nothing is written. Teams
// load first so item team_id references resolve; an item naming a team that
// is in neither the store nor the dump fails with ErrTeamNotFound. Malformed
// lines and unknown fields are ignored. A missing file counts as empty.
func (b *Backend) Import(ctx context.Context, dir string) (ImportStats, error) {
	var stats ImportStats

	teams, err := readDump[types.Team](filepath.Join(dir, TeamsJSONL))
	if err != nil {
		return stats, err
	}
	items, err := readDump[types.Item](filepath.Join(dir, ItemsJSONL))
	if err != nil {
		return stats, err
	}

	sess, err := b.begin(ctx)
	if err != nil {
		return stats, err
	}
	defer sess.Close()

	for _, t := range teams {
		if _, err := sess.tx.ExecContext(ctx,
			"INSERT INTO teams (id, name, headquarters) VALUES (?, ?, ?)",
			t.ID, t.Name, t.Headquarters); err != nil {
			return stats, fmt.Errorf("importing team %d: %w", t.ID, err)
		}
		stats.Teams++
	}
	for _, it := range items {
		if it.Deadline.IsZero() {
			it.Deadline = types.Today()
		}
		if _, err := sess.tx.ExecContext(ctx,
			"INSERT INTO items (id, description, priority, owner, deadline, progress, team_id) VALUES (?, ?, ?, ?, ?, ?, ?)",
			it.ID, it.Description, nullableInt(it.Priority), it.Owner, it.Deadline, it.Progress, nullableInt64(it.TeamID)); err != nil {
			return stats, fmt.Errorf("importing item %d: %w", it.ID, sess.translate(err))
		}
		stats.Items++
	}

	if err := sess.Commit(); err != nil {
		return ImportStats{}, err
	}
	return stats, nil
}

// readDump decodes the records of one dump file. Records that do not decode
// into T are skipped like malformed lines.
func readDump[T any](path string) ([]T, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, nil
	}
	records, err := readJSONL(path)
	if err != nil {
		return nil, err
	}
	out := make([]T, 0, len(records))
	for _, rec := range records {
		var v T
		if err := json.Unmarshal(rec, &v); err != nil {
			continue
		}
		out = append(out, v)
	}
	return out, nil
}
