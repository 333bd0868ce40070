package types

import (
	"context"
	"errors"
)

// TeamTable provides CRUD operations for teams within a Session.
type TeamTable interface {
	// Create inserts a team and returns it as stored, with its new ID.
	Create(ctx context.Context, in TeamCreate) (*Team, error)

	// Get retrieves the team with the given ID.
	// Returns ErrNotFound if no team exists with that ID.
	Get(ctx context.Context, id int64) (*Team, error)

	// List returns one page of teams ordered by ID.
	List(ctx context.Context, page Page) ([]Team, error)

	// Update applies the fields set in patch and returns the team as stored.
	// Returns ErrNotFound if no team exists with that ID.
	Update(ctx context.Context, id int64, patch TeamUpdate) (*Team, error)

	// Delete removes the team. Items that referenced it keep existing with
	// their team_id cleared. Returns ErrNotFound if no team exists.
	Delete(ctx context.Context, id int64) error
}

// ItemTable provides CRUD operations and queries for to-do items within a
// Session.
type ItemTable interface {
	// Create inserts an item and returns it as stored, with its new ID.
	// Returns ErrTeamNotFound if TeamID references a missing team.
	Create(ctx context.Context, in ItemCreate) (*Item, error)

	// Get retrieves the item with the given ID.
	// Returns ErrNotFound if no item exists with that ID.
	Get(ctx context.Context, id int64) (*Item, error)

	// List returns one page of items ordered by ID.
	List(ctx context.Context, page Page) ([]Item, error)

	// ListUrgent returns one page of items whose deadline is on or before
	// the given date, ordered by ID.
	ListUrgent(ctx context.Context, before Date, page Page) ([]Item, error)

	// ListByTeam returns every item owned by the team, ordered by ID.
	ListByTeam(ctx context.Context, teamID int64) ([]Item, error)

	// Update applies the fields set in patch and returns the item as stored.
	// Returns ErrNotFound if no item exists with that ID.
	Update(ctx context.Context, id int64, patch ItemUpdate) (*Item, error)

	// Delete removes the item. Returns ErrNotFound if no item exists.
	Delete(ctx context.Context, id int64) error
}

// Table operation errors.
var (
	ErrNotFound     = errors.New("entity not found")
	ErrInvalidData  = errors.New("invalid entity data")
	ErrInvalidPage  = errors.New("invalid page")
	ErrInvalidDate  = errors.New("invalid date")
	ErrTeamNotFound = errors.New("team not found")
)
