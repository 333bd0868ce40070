package types

import "encoding/json"

// Team is an organizational unit that owns zero or more Items.
// The link is held only on the Item side (Item.TeamID).
type Team struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Headquarters string `json:"headquarters"`
}

// TeamCreate is the input for creating a team. Empty strings are valid
// values.
type TeamCreate struct {
	Name         string `json:"name"`
	Headquarters string `json:"headquarters"`
}

// UnmarshalJSON requires name and headquarters to be present and non-null.
func (in *TeamCreate) UnmarshalJSON(data []byte) error {
	var raw struct {
		Name         Optional[string] `json:"name"`
		Headquarters Optional[string] `json:"headquarters"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if err := required("name", raw.Name); err != nil {
		return err
	}
	if err := required("headquarters", raw.Headquarters); err != nil {
		return err
	}
	*in = TeamCreate{Name: raw.Name.Value, Headquarters: raw.Headquarters.Value}
	return nil
}

// TeamUpdate is a partial update of a team. Unset fields keep their stored
// value.
type TeamUpdate struct {
	Name         Optional[string] `json:"name"`
	Headquarters Optional[string] `json:"headquarters"`
}

// Validate rejects explicit nulls, since neither team field is nullable.
func (u TeamUpdate) Validate() error {
	if err := notNull("name", u.Name); err != nil {
		return err
	}
	return notNull("headquarters", u.Headquarters)
}

// TeamWithItems is a team together with the items that reference it.
type TeamWithItems struct {
	Team
	Items []Item `json:"items"`
}
