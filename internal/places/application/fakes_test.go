package application

import (
	"context"
	"sync"

	"github.com/parchados/parchados-services/api/internal/places/domain"
)

// fakePlaceRepo is an in-memory PlaceRepository driven by tests. Batches are
// pushed through a channel exactly like the Mongo adapter delivers them.
type fakePlaceRepo struct {
	mu sync.Mutex

	batches   chan Batch
	cancelled int

	createID  string
	createErr error
	created   []Record

	updateErr  error
	statusByID map[string]string

	deleteErr error
	deleted   []string
}

func newFakePlaceRepo() *fakePlaceRepo {
	return &fakePlaceRepo{
		batches:    make(chan Batch, 8),
		createID:   "generated-id",
		statusByID: map[string]string{},
	}
}

func (f *fakePlaceRepo) Create(_ context.Context, record Record) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return "", f.createErr
	}
	f.created = append(f.created, record)
	return f.createID, nil
}

func (f *fakePlaceRepo) Update(_ context.Context, id string, patch map[string]any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.updateErr != nil {
		return f.updateErr
	}
	if status, ok := patch["status"].(string); ok {
		f.statusByID[id] = status
	}
	return nil
}

func (f *fakePlaceRepo) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakePlaceRepo) Get(_ context.Context, id string) (*Record, error) {
	return nil, nil
}

func (f *fakePlaceRepo) SubscribeOrdered(string, bool) (<-chan Batch, func()) {
	return f.batches, func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.cancelled++
		close(f.batches)
	}
}

func (f *fakePlaceRepo) cancelCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.cancelled
}

func (f *fakePlaceRepo) createdRecords() []Record {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Record{}, f.created...)
}

func (f *fakePlaceRepo) deletedIDs() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string{}, f.deleted...)
}

func (f *fakePlaceRepo) statusOf(id string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.statusByID[id]
}

// fakeSession is a Session with a fixed user.
type fakeSession struct {
	mu   sync.Mutex
	user *domain.User
}

func (f *fakeSession) CurrentUser() *domain.User {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.user
}

func (f *fakeSession) setUser(user *domain.User) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.user = user
}

// fakeUploader resolves refs to URLs, or fails with err.
type fakeUploader struct {
	mu   sync.Mutex
	urls map[string]string
	err  error
}

func newFakeUploader() *fakeUploader {
	return &fakeUploader{urls: map[string]string{}}
}

func (f *fakeUploader) Upload(_ context.Context, localRef string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return "", f.err
	}
	if url, ok := f.urls[localRef]; ok {
		return url, nil
	}
	return "https://cdn.example.com/" + localRef, nil
}

// fakeReviewRepo records submitted reviews.
type fakeReviewRepo struct {
	mu      sync.Mutex
	err     error
	reviews []Review
}

func (f *fakeReviewRepo) Create(_ context.Context, review Review) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.reviews = append(f.reviews, review)
	return nil
}

func (f *fakeReviewRepo) all() []Review {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Review{}, f.reviews...)
}
