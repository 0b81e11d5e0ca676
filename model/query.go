package model

import (
	"fmt"
	"strings"
)

const DefaultPanelLimit = 4

// PanelQuery is the input of the repository panel
type PanelQuery struct {
	Account string `form:"account" json:"account"`
	Limit   int    `form:"limit" json:"limit"`
}

// WithDefaults fills the limit when not provided and trims the account
func (q PanelQuery) WithDefaults(defaultLimit int) PanelQuery {
	q.Account = strings.TrimSpace(q.Account)

	if q.Limit == 0 {
		q.Limit = defaultLimit
	}

	if q.Limit == 0 {
		q.Limit = DefaultPanelLimit
	}

	return q
}

// Validate checks the account is set and the limit is a positive integer
func (q PanelQuery) Validate() error {
	if q.Account == "" {
		return fmt.Errorf("account is required: %w", ErrInvalidQuery)
	}

	if strings.ContainsAny(q.Account, "/?#") {
		return fmt.Errorf("account %q is not a valid github login: %w", q.Account, ErrInvalidQuery)
	}

	if q.Limit <= 0 {
		return fmt.Errorf("limit must be a positive integer, got %d: %w", q.Limit, ErrInvalidQuery)
	}

	return nil
}
