// Package service implements the funnel business operations on top of the
// document store gateway.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/funnelbase/funnelbase/internal/cache"
	"github.com/funnelbase/funnelbase/internal/metrics"
	"github.com/funnelbase/funnelbase/internal/model"
	"github.com/funnelbase/funnelbase/internal/store"
)

// offerListLimit caps the number of offers returned by the public listing.
const offerListLimit = 50

// Common errors for funnel operations.
var (
	ErrOfferNotFound    = errors.New("offer not found")
	ErrStoreUnavailable = errors.New("document store is not configured")
)

// Storage is the document store contract the service depends on.
// *store.Store satisfies it; tests substitute an in-memory fake.
type Storage interface {
	Insert(ctx context.Context, collection string, doc any) (string, error)
	Find(ctx context.Context, collection string, filter map[string]any, limit int) ([]store.Document, error)
	FindOne(ctx context.Context, collection string, filter map[string]any) (*store.Document, error)
}

// FunnelService coordinates validation, persistence and caching for the
// lead capture, offer listing, offer creation and redirect operations.
type FunnelService struct {
	storage  Storage
	cache    *cache.Cache // nil when Redis is not configured
	recorder metrics.Recorder
	offerTTL time.Duration
}

// NewFunnelService creates a FunnelService. storage may be nil when no
// database is configured; every persistence operation then fails with
// ErrStoreUnavailable. cacheClient may be nil to disable offer caching.
func NewFunnelService(storage Storage, cacheClient *cache.Cache, recorder metrics.Recorder, offerTTL time.Duration) *FunnelService {
	return &FunnelService{
		storage:  storage,
		cache:    cacheClient,
		recorder: recorder,
		offerTTL: offerTTL,
	}
}

// CaptureLead validates and persists an opt-in submission.
// Returns the store-assigned identifier.
func (s *FunnelService) CaptureLead(ctx context.Context, lead model.Lead) (string, error) {
	if err := lead.Validate(); err != nil {
		return "", err
	}
	if s.storage == nil {
		return "", ErrStoreUnavailable
	}

	id, err := s.storage.Insert(ctx, model.CollectionLead, &lead)
	if err != nil {
		return "", err
	}

	s.recorder.IncLeadCaptured()
	return id, nil
}

// ListOffers returns active offers, store-assigned identifiers stripped.
// Stored documents that fail the offer schema surface as an error, not as a
// partial result.
func (s *FunnelService) ListOffers(ctx context.Context) ([]model.Offer, error) {
	if s.storage == nil {
		return nil, ErrStoreUnavailable
	}

	docs, err := s.storage.Find(ctx, model.CollectionOffer, map[string]any{"active": true}, offerListLimit)
	if err != nil {
		return nil, err
	}

	offers := make([]model.Offer, 0, len(docs))
	for _, doc := range docs {
		var offer model.Offer
		if err := doc.Decode(&offer); err != nil {
			return nil, err
		}
		if err := offer.Validate(); err != nil {
			return nil, fmt.Errorf("stored offer %s: %w", doc.ID, err)
		}
		offers = append(offers, offer)
	}

	return offers, nil
}

// CreateOffer validates and persists an offer, invalidating any cached
// resolution for its slug. Slug uniqueness is not enforced.
func (s *FunnelService) CreateOffer(ctx context.Context, offer model.Offer) (string, error) {
	if err := offer.Validate(); err != nil {
		return "", err
	}
	if s.storage == nil {
		return "", ErrStoreUnavailable
	}

	id, err := s.storage.Insert(ctx, model.CollectionOffer, &offer)
	if err != nil {
		return "", err
	}

	if s.cache != nil {
		// Best effort; a stale entry expires with its TTL anyway.
		_ = s.cache.DeleteOffer(ctx, offer.Slug)
	}

	s.recorder.IncOfferCreated()
	return id, nil
}

// ResolveRedirect looks up the destination URL for an active offer slug and
// records the click. An inactive slug is indistinguishable from a missing
// one: both return ErrOfferNotFound and write nothing.
//
// The click write is part of the request: if it fails, the resolution fails.
func (s *FunnelService) ResolveRedirect(ctx context.Context, slug string, click model.Click) (url string, cacheHit bool, err error) {
	if s.storage == nil {
		return "", false, ErrStoreUnavailable
	}

	url, cacheHit = s.lookupCached(ctx, slug)
	if !cacheHit {
		doc, err := s.storage.FindOne(ctx, model.CollectionOffer, map[string]any{"slug": slug, "active": true})
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return "", false, ErrOfferNotFound
			}
			return "", false, err
		}

		var offer model.Offer
		if err := doc.Decode(&offer); err != nil {
			return "", false, err
		}
		url = offer.URL

		if s.cache != nil {
			_ = s.cache.SetOfferURL(ctx, slug, url, s.offerTTL)
		}
	}

	if err := click.Validate(); err != nil {
		return "", cacheHit, err
	}
	if _, err := s.storage.Insert(ctx, model.CollectionClick, &click); err != nil {
		return "", cacheHit, err
	}

	s.recorder.IncClickRecorded()
	return url, cacheHit, nil
}

// lookupCached consults the offer cache, recording hit/miss metrics.
func (s *FunnelService) lookupCached(ctx context.Context, slug string) (string, bool) {
	if s.cache == nil {
		return "", false
	}

	url, err := s.cache.GetOfferURL(ctx, slug)
	if err != nil {
		s.recorder.IncRedirectCacheMiss()
		return "", false
	}

	s.recorder.IncRedirectCacheHit()
	return url, true
}
