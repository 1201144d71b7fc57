package application

import (
	"context"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

// ReviewComposer holds the transient state of a review being written for the
// currently selected place. Publishing requires a selection, a logged-in
// user, a rating between 1 and 5 and a non-blank comment; any missing guard
// makes it a silent no-op. The rating and comment are cleared on completion
// whether the submission succeeded or not, so callers never observe a
// distinct failure path — the error only reaches the log.
type ReviewComposer struct {
	store   *PlaceStore
	reviews ReviewRepository
	session Session
	logger  *zap.Logger

	mu         sync.RWMutex
	rating     int
	comment    string
	submitting bool
}

// NewReviewComposer wires the composer to the live store and session.
func NewReviewComposer(store *PlaceStore, reviews ReviewRepository, session Session, logger *zap.Logger) *ReviewComposer {
	return &ReviewComposer{store: store, reviews: reviews, session: session, logger: logger}
}

// SetRating clamps the value into [0, 5]; 0 means unset.
func (c *ReviewComposer) SetRating(value int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if value < 0 {
		value = 0
	}
	if value > 5 {
		value = 5
	}
	c.rating = value
}

// SetComment replaces the comment text as-is, without trimming.
func (c *ReviewComposer) SetComment(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.comment = text
}

// Rating returns the current rating, 0 when unset.
func (c *ReviewComposer) Rating() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.rating
}

// Comment returns the current comment text.
func (c *ReviewComposer) Comment() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.comment
}

// IsSubmitting reports whether a submission is in flight.
func (c *ReviewComposer) IsSubmitting() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.submitting
}

// Publish submits the review for the selected place when every guard holds.
func (c *ReviewComposer) Publish(ctx context.Context) {
	place := c.store.SelectedPlace()
	user := c.session.CurrentUser()

	c.mu.Lock()
	rating, comment := c.rating, c.comment
	if place == nil || user == nil || rating < 1 || rating > 5 || strings.TrimSpace(comment) == "" {
		c.mu.Unlock()
		return
	}
	c.submitting = true
	c.mu.Unlock()

	review := Review{
		PlaceID:   place.ID,
		UserID:    user.ID,
		Rating:    rating,
		Comment:   comment,
		CreatedAt: time.Now().UTC(),
	}
	if err := c.reviews.Create(ctx, review); err != nil {
		c.logger.Error("no se pudo guardar la reseña", zap.String("placeId", place.ID), zap.Error(err))
	}

	c.Cancel()
}

// Cancel clears the rating, comment and submitting flag without submitting.
func (c *ReviewComposer) Cancel() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.rating = 0
	c.comment = ""
	c.submitting = false
}
