package types

import "encoding/json"

// Item is a to-do list entry, optionally owned by a Team.
type Item struct {
	ID          int64  `json:"id"`
	Description string `json:"description"`
	Priority    *int   `json:"priority"`
	Owner       string `json:"owner"`
	Deadline    Date   `json:"deadline"`
	Progress    string `json:"progress"`
	TeamID      *int64 `json:"team_id"`
}

// ItemCreate is the input for creating an item. Priority, Deadline and
// TeamID are optional; a missing Deadline defaults to the creation day.
// Empty strings are valid values.
type ItemCreate struct {
	Description string `json:"description"`
	Priority    *int   `json:"priority"`
	Owner       string `json:"owner"`
	Deadline    *Date  `json:"deadline"`
	Progress    string `json:"progress"`
	TeamID      *int64 `json:"team_id"`
}

// UnmarshalJSON requires description, owner and progress to be present and
// non-null. Deadline may be omitted but not null.
func (in *ItemCreate) UnmarshalJSON(data []byte) error {
	var raw struct {
		Description Optional[string] `json:"description"`
		Priority    *int             `json:"priority"`
		Owner       Optional[string] `json:"owner"`
		Deadline    Optional[Date]   `json:"deadline"`
		Progress    Optional[string] `json:"progress"`
		TeamID      *int64           `json:"team_id"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	for _, err := range []error{
		required("description", raw.Description),
		required("owner", raw.Owner),
		required("progress", raw.Progress),
		notNull("deadline", raw.Deadline),
	} {
		if err != nil {
			return err
		}
	}

	*in = ItemCreate{
		Description: raw.Description.Value,
		Priority:    raw.Priority,
		Owner:       raw.Owner.Value,
		Progress:    raw.Progress.Value,
		TeamID:      raw.TeamID,
	}
	if d, ok := raw.Deadline.Get(); ok {
		in.Deadline = &d
	}
	return nil
}

// ItemUpdate is a partial update of an item. Unset fields keep their stored
// value. Priority and TeamID accept an explicit null, which clears them.
type ItemUpdate struct {
	Description Optional[string] `json:"description"`
	Priority    Optional[*int]   `json:"priority"`
	Owner       Optional[string] `json:"owner"`
	Deadline    Optional[Date]   `json:"deadline"`
	Progress    Optional[string] `json:"progress"`
	TeamID      Optional[*int64] `json:"team_id"`
}

// Validate rejects explicit nulls on fields that are not nullable.
func (u ItemUpdate) Validate() error {
	for _, err := range []error{
		notNull("description", u.Description),
		notNull("owner", u.Owner),
		notNull("deadline", u.Deadline),
		notNull("progress", u.Progress),
	} {
		if err != nil {
			return err
		}
	}
	return nil
}

// ItemWithTeam is an item together with its owning team, if any.
type ItemWithTeam struct {
	Item
	Team *Team `json:"team"`
}
