package public

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/parchados/parchados-services/api/internal/places/application"
	"github.com/parchados/parchados-services/api/internal/places/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubPlaceRepo struct {
	mu      sync.Mutex
	batches chan application.Batch
	created []application.Record
}

func newStubPlaceRepo() *stubPlaceRepo {
	return &stubPlaceRepo{batches: make(chan application.Batch, 4)}
}

func (s *stubPlaceRepo) Create(_ context.Context, record application.Record) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.created = append(s.created, record)
	return "nuevo-id", nil
}

func (s *stubPlaceRepo) Update(context.Context, string, map[string]any) error { return nil }
func (s *stubPlaceRepo) Delete(context.Context, string) error                 { return nil }
func (s *stubPlaceRepo) Get(context.Context, string) (*application.Record, error) {
	return nil, nil
}

func (s *stubPlaceRepo) SubscribeOrdered(string, bool) (<-chan application.Batch, func()) {
	return s.batches, func() { close(s.batches) }
}

type stubUploader struct{}

func (stubUploader) Upload(_ context.Context, localRef string) (string, error) {
	return "https://cdn.example.com/" + localRef, nil
}

type stubSession struct{ user *domain.User }

func (s stubSession) CurrentUser() *domain.User { return s.user }

type stubReviewRepo struct {
	mu      sync.Mutex
	reviews []application.Review
}

func (s *stubReviewRepo) Create(_ context.Context, review application.Review) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reviews = append(s.reviews, review)
	return nil
}

func stubRecord(id, title, status string) application.Record {
	return application.Record{
		ID:        id,
		Title:     title,
		City:      "ARMENIA",
		Type:      "RESTAURANT",
		CreatedAt: time.Now().UTC(),
		Status:    status,
	}
}

type publicFixture struct {
	router  chi.Router
	repo    *stubPlaceRepo
	store   *application.PlaceStore
	reviews *stubReviewRepo
}

func newPublicFixture(t *testing.T) *publicFixture {
	t.Helper()
	logger := zap.NewNop()
	repo := newStubPlaceRepo()
	store := application.NewPlaceStore(repo, logger)
	store.Start()
	t.Cleanup(store.Close)

	reviews := &stubReviewRepo{}
	session := stubSession{user: &domain.User{ID: "user-1", Role: domain.RoleUser}}
	composer := application.NewReviewComposer(store, reviews, session, logger)
	drafts := application.NewDraftSessions(func() *application.Wizard {
		return application.NewWizard(repo, stubUploader{}, session)
	})

	handler := NewHandler(Config{
		Logger:   logger,
		Store:    store,
		Drafts:   drafts,
		Composer: composer,
	})

	router := chi.NewRouter()
	passthrough := func(next http.Handler) http.Handler { return next }
	handler.Register(router, passthrough)

	return &publicFixture{router: router, repo: repo, store: store, reviews: reviews}
}

func (f *publicFixture) push(t *testing.T, records ...application.Record) {
	t.Helper()
	f.repo.batches <- application.Batch{Records: records}
	require.Eventually(t, func() bool {
		return len(f.store.All()) == len(records)
	}, time.Second, 5*time.Millisecond)
}

func (f *publicFixture) do(t *testing.T, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&reader).Encode(body))
	}
	req := httptest.NewRequest(method, target, &reader)
	recorder := httptest.NewRecorder()
	f.router.ServeHTTP(recorder, req)
	return recorder
}

func decodeItems(t *testing.T, recorder *httptest.ResponseRecorder) []placeResponse {
	t.Helper()
	var payload struct {
		Items []placeResponse `json:"items"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &payload))
	return payload.Items
}

func TestPublicPlacesListOnlyApproved(t *testing.T) {
	f := newPublicFixture(t)
	f.push(t,
		stubRecord("p1", "Restaurante El paisa", "APPROVED"),
		stubRecord("p2", "Bar test 1", "PENDING"),
		stubRecord("p3", "Hotel de prueba", "APPROVED"),
	)

	recorder := f.do(t, http.MethodGet, "/places", nil)
	require.Equal(t, http.StatusOK, recorder.Code)

	items := decodeItems(t, recorder)
	require.Len(t, items, 2)
	assert.Equal(t, "p1", items[0].ID)
	assert.Equal(t, "p3", items[1].ID)
	assert.Equal(t, "Restaurante", items[0].TypeName)
	assert.Equal(t, "Publicado", items[0].StatusLabel)
}

func TestPublicPlacesListFilters(t *testing.T) {
	f := newPublicFixture(t)
	hotel := stubRecord("p2", "Hotel de prueba", "APPROVED")
	hotel.City = "PEREIRA"
	hotel.Type = "HOTEL"
	f.push(t, stubRecord("p1", "Restaurante El paisa", "APPROVED"), hotel)

	items := decodeItems(t, f.do(t, http.MethodGet, "/places?q=hotel", nil))
	require.Len(t, items, 1)
	assert.Equal(t, "p2", items[0].ID)

	items = decodeItems(t, f.do(t, http.MethodGet, "/places?city=PEREIRA", nil))
	require.Len(t, items, 1)
	assert.Equal(t, "p2", items[0].ID)

	items = decodeItems(t, f.do(t, http.MethodGet, "/places?type=RESTAURANT", nil))
	require.Len(t, items, 1)
	assert.Equal(t, "p1", items[0].ID)

	items = decodeItems(t, f.do(t, http.MethodGet, "/places?q=hotel&type=RESTAURANT", nil))
	assert.Empty(t, items)
}

func TestPublicPlaceDetail(t *testing.T) {
	f := newPublicFixture(t)
	f.push(t, stubRecord("p1", "Bar test 1", "PENDING"))

	recorder := f.do(t, http.MethodGet, "/places/p1", nil)
	require.Equal(t, http.StatusOK, recorder.Code)
	var place placeResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &place))
	assert.Equal(t, "Bar test 1", place.Title)

	recorder = f.do(t, http.MethodGet, "/places/desconocido", nil)
	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

func TestPublicReviewSubmission(t *testing.T) {
	f := newPublicFixture(t)
	f.push(t, stubRecord("p1", "Bar test 1", "APPROVED"))

	recorder := f.do(t, http.MethodPost, "/places/p1/reviews", map[string]any{
		"rating": 5, "comment": "Excelente atención",
	})
	require.Equal(t, http.StatusAccepted, recorder.Code)
	require.Len(t, f.reviews.reviews, 1)
	assert.Equal(t, "p1", f.reviews.reviews[0].PlaceID)
	assert.Equal(t, "user-1", f.reviews.reviews[0].UserID)

	recorder = f.do(t, http.MethodPost, "/places/no-existe/reviews", map[string]any{
		"rating": 5, "comment": "hola",
	})
	assert.Equal(t, http.StatusNotFound, recorder.Code)

	recorder = f.do(t, http.MethodPost, "/places/p1/reviews", map[string]any{
		"rating": 0, "comment": "hola",
	})
	assert.Equal(t, http.StatusBadRequest, recorder.Code)

	recorder = f.do(t, http.MethodPost, "/places/p1/reviews", map[string]any{
		"rating": 4, "comment": "   ",
	})
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Len(t, f.reviews.reviews, 1)
}

func decodeDraft(t *testing.T, recorder *httptest.ResponseRecorder) draftResponse {
	t.Helper()
	var draft draftResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &draft))
	return draft
}

func TestPublicDraftFlow(t *testing.T) {
	f := newPublicFixture(t)

	recorder := f.do(t, http.MethodPost, "/drafts/", nil)
	require.Equal(t, http.StatusCreated, recorder.Code)
	draft := decodeDraft(t, recorder)
	require.NotEmpty(t, draft.DraftID)
	assert.Equal(t, application.WizardSteps, draft.Steps)
	base := "/drafts/" + draft.DraftID

	recorder = f.do(t, http.MethodPatch, base, map[string]any{
		"name":        "Café Andino",
		"description": "Café de especialidad",
		"category":    "Restaurante",
		"phones":      "+57 311 000 1122",
	})
	require.Equal(t, http.StatusOK, recorder.Code)
	draft = decodeDraft(t, recorder)
	assert.Equal(t, "RESTAURANT", draft.Category)
	assert.False(t, draft.CanAdvance, "sin fotos aún no se puede avanzar")

	recorder = f.do(t, http.MethodPost, base+"/photos", map[string]any{"ref": "fachada.jpg"})
	require.Equal(t, http.StatusOK, recorder.Code)
	draft = decodeDraft(t, recorder)
	assert.True(t, draft.CanAdvance)
	assert.Equal(t, []string{"https://cdn.example.com/fachada.jpg"}, draft.UploadedPhotos)

	for i := 0; i < 3; i++ {
		recorder = f.do(t, http.MethodPost, base+"/next", nil)
		require.Equal(t, http.StatusOK, recorder.Code)
	}
	draft = decodeDraft(t, recorder)
	assert.Equal(t, len(application.WizardSteps)-1, draft.StepIndex)

	// The final next publishes and discards the session.
	recorder = f.do(t, http.MethodPost, base+"/next", nil)
	require.Equal(t, http.StatusOK, recorder.Code)
	draft = decodeDraft(t, recorder)
	assert.Equal(t, "nuevo-id", draft.CreatedPlaceID)
	assert.Equal(t, "Enviado a moderación", draft.LastMessage)

	f.repo.mu.Lock()
	created := append([]application.Record{}, f.repo.created...)
	f.repo.mu.Unlock()
	require.Len(t, created, 1)
	assert.Equal(t, "PENDING", created[0].Status)

	recorder = f.do(t, http.MethodGet, base, nil)
	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

func TestPublicDraftUnknownSession(t *testing.T) {
	f := newPublicFixture(t)
	recorder := f.do(t, http.MethodGet, "/drafts/no-existe", nil)
	assert.Equal(t, http.StatusNotFound, recorder.Code)
}
