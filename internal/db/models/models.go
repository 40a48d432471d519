// Package models contains the database models of the projects API
package models

const (
	// DefaultLimit is the max number of rows that are retrieved from the DB per listing API call
	DefaultLimit = 50
)

// ListOptions represents pagination options for list operations
type ListOptions struct {
	Limit  int `json:"limit"`  // Number of items to return
	Offset int `json:"offset"` // Number of items to skip
}

// Normalize fills in the default limit. A nil receiver yields the defaults.
func (o *ListOptions) Normalize() *ListOptions {
	if o == nil {
		return &ListOptions{Limit: DefaultLimit}
	}
	out := *o
	if out.Limit <= 0 {
		out.Limit = DefaultLimit
	}
	if out.Offset < 0 {
		out.Offset = 0
	}
	return &out
}
