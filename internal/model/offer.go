package model

import "errors"

// Offer validation errors.
var (
	ErrOfferSlugRequired  = errors.New("offer slug is required")
	ErrOfferTitleRequired = errors.New("offer title is required")
	ErrOfferURLRequired   = errors.New("offer url is required")
)

// Offer is an affiliate program entry with a destination URL,
// addressable by a short slug in the public redirect path.
//
// Slugs are intended to be unique but uniqueness is not enforced;
// when duplicates exist the store's first match governs resolution.
type Offer struct {
	Slug        string  `json:"slug"`
	Title       string  `json:"title"`
	URL         string  `json:"url"`
	Description *string `json:"description"`
	Active      bool    `json:"active"`
}

// Validate checks the offer against its schema constraints.
func (o *Offer) Validate() error {
	if o.Slug == "" {
		return ErrOfferSlugRequired
	}
	if o.Title == "" {
		return ErrOfferTitleRequired
	}
	if o.URL == "" {
		return ErrOfferURLRequired
	}
	return nil
}
