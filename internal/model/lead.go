// Package model defines domain entities for the application.
// Each entity maps to one named collection in the document store.
package model

import (
	"errors"
	"net/mail"
	"strings"
)

// Collection names, one per entity.
const (
	CollectionLead    = "lead"
	CollectionOffer   = "offer"
	CollectionClick   = "click"
	CollectionUser    = "user"
	CollectionProduct = "product"
)

// DefaultLeadSource is used when an opt-in submission carries no source tag.
const DefaultLeadSource = "landing"

// Lead validation errors.
var (
	ErrLeadNameRequired  = errors.New("lead name is required")
	ErrLeadEmailRequired = errors.New("lead email is required")
	ErrLeadEmailInvalid  = errors.New("lead email is not a valid email address")
)

// Lead is a captured prospect from an opt-in form.
// Leads are immutable after creation; the system never updates or deletes them.
type Lead struct {
	Name   string `json:"name"`
	Email  string `json:"email"`
	Source string `json:"source"`
}

// Validate checks the lead against its schema constraints.
// It must pass before any store write is attempted.
func (l *Lead) Validate() error {
	if l.Name == "" {
		return ErrLeadNameRequired
	}
	if l.Email == "" {
		return ErrLeadEmailRequired
	}
	if !ValidEmail(l.Email) {
		return ErrLeadEmailInvalid
	}
	return nil
}

// ValidEmail reports whether s is a syntactically valid, bare email address.
// Display names ("Jo <jo@x.com>") and dotless domains are rejected.
func ValidEmail(s string) bool {
	addr, err := mail.ParseAddress(s)
	if err != nil || addr.Address != s {
		return false
	}
	at := strings.LastIndex(s, "@")
	if at < 0 {
		return false
	}
	domain := s[at+1:]
	return strings.Contains(domain, ".") && !strings.HasPrefix(domain, ".") && !strings.HasSuffix(domain, ".")
}
