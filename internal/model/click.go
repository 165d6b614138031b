package model

import "errors"

// ErrClickSlugRequired is returned when a click record has no offer slug.
var ErrClickSlugRequired = errors.New("click slug is required")

// Click records that a visitor followed a redirect for an offer slug.
// Clicks are append-only and never read back by this system.
//
// LeadID is a soft cross-reference: it is stored as received and is not
// checked against existing lead identifiers.
type Click struct {
	Slug      string  `json:"slug"`
	LeadID    *string `json:"lead_id"`
	IP        *string `json:"ip"`
	UserAgent *string `json:"user_agent"`
}

// Validate checks the click against its schema constraints.
func (c *Click) Validate() error {
	if c.Slug == "" {
		return ErrClickSlugRequired
	}
	return nil
}
