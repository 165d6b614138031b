// Package dto provides Data Transfer Objects for API requests and responses.
package dto

import "github.com/funnelbase/funnelbase/internal/model"

// CreateLeadRequest represents the body of POST /api/leads.
// Source is a pointer so an absent field can take the default.
type CreateLeadRequest struct {
	Name   string  `json:"name"`
	Email  string  `json:"email"`
	Source *string `json:"source"`
}

// ToLead converts the request into a Lead, applying the default source.
func (r *CreateLeadRequest) ToLead() model.Lead {
	source := model.DefaultLeadSource
	if r.Source != nil {
		source = *r.Source
	}
	return model.Lead{
		Name:   r.Name,
		Email:  r.Email,
		Source: source,
	}
}

// LeadResponse echoes the validated lead plus its assigned identifier.
type LeadResponse struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Source string `json:"source"`
}

// ToLeadResponse builds the response for a stored lead.
func ToLeadResponse(id string, lead model.Lead) LeadResponse {
	return LeadResponse{
		ID:     id,
		Name:   lead.Name,
		Email:  lead.Email,
		Source: lead.Source,
	}
}

// CreateOfferRequest represents the body of POST /api/admin/offers.
// Active is a pointer so an absent field defaults to true.
type CreateOfferRequest struct {
	Slug        string  `json:"slug"`
	Title       string  `json:"title"`
	URL         string  `json:"url"`
	Description *string `json:"description"`
	Active      *bool   `json:"active"`
}

// ToOffer converts the request into an Offer, applying the active default.
func (r *CreateOfferRequest) ToOffer() model.Offer {
	active := true
	if r.Active != nil {
		active = *r.Active
	}
	return model.Offer{
		Slug:        r.Slug,
		Title:       r.Title,
		URL:         r.URL,
		Description: r.Description,
		Active:      active,
	}
}

// OfferResponse echoes the validated offer plus its assigned identifier.
type OfferResponse struct {
	ID          string  `json:"id"`
	Slug        string  `json:"slug"`
	Title       string  `json:"title"`
	URL         string  `json:"url"`
	Description *string `json:"description"`
	Active      bool    `json:"active"`
}

// ToOfferResponse builds the response for a stored offer.
func ToOfferResponse(id string, offer model.Offer) OfferResponse {
	return OfferResponse{
		ID:          id,
		Slug:        offer.Slug,
		Title:       offer.Title,
		URL:         offer.URL,
		Description: offer.Description,
		Active:      offer.Active,
	}
}

// RedirectResponse carries the destination URL of a resolved offer.
type RedirectResponse struct {
	URL string `json:"url"`
}

// ErrorResponse is the single-field error body used by every endpoint.
type ErrorResponse struct {
	Detail string `json:"detail"`
}
