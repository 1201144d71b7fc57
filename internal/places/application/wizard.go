package application

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/parchados/parchados-services/api/internal/places/domain"
)

// WizardSteps are the fixed steps of the creation flow, in order.
var WizardSteps = []string{"Básicos", "Ubicación", "Horario", "Revisión"}

// Defaults applied at publish time. The location and schedule steps collect
// nothing yet, so every submission starts from the Armenia city centre.
var (
	defaultAddress  = "Cra 0 # 00-00"
	defaultCity     = domain.CityArmenia
	defaultSchedule = domain.Schedule{
		Day:   time.Monday,
		Open:  domain.ClockTime{Hour: 8},
		Close: domain.ClockTime{Hour: 18},
	}
)

// WizardState is an observer snapshot of the draft being assembled.
type WizardState struct {
	StepIndex         int
	Name              string
	Description       string
	Category          *domain.Category
	Phones            string
	LocalPhotos       []string
	UploadedPhotos    []string
	IsUploadingPhotos bool
	UploadMessage     string
	IsSavingDraft     bool
	CanAdvance        bool
	LastMessage       string
	IsPublishing      bool
	CreatedPlaceID    string
}

// Wizard assembles a place draft across the fixed steps and publishes it as
// a PENDING place. The draft is transient: it lives for one session and is
// discarded on publish success or an explicit delete. Local photo refs and
// their uploaded URLs are parallel, index-aligned lists; every mutation is
// applied against the latest state under the lock so out-of-order upload
// completions cannot misalign them.
type Wizard struct {
	repo     PlaceRepository
	uploader MediaUploader
	session  Session

	mu    sync.Mutex
	state WizardState
}

// NewWizard starts a fresh draft at step 0.
func NewWizard(repo PlaceRepository, uploader MediaUploader, session Session) *Wizard {
	return &Wizard{repo: repo, uploader: uploader, session: session}
}

// State returns a copy of the current draft.
func (w *Wizard) State() WizardState {
	w.mu.Lock()
	defer w.mu.Unlock()
	return copyState(w.state)
}

func copyState(s WizardState) WizardState {
	s.LocalPhotos = append([]string{}, s.LocalPhotos...)
	s.UploadedPhotos = append([]string{}, s.UploadedPhotos...)
	return s
}

// SetName updates the draft name and recomputes the advance gate.
func (w *Wizard) SetName(value string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.state.Name = value
	w.recompute()
}

// SetDescription updates the draft description and recomputes the gate.
func (w *Wizard) SetDescription(value string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.state.Description = value
	w.recompute()
}

// SetCategory resolves the value against the category enum or its display
// name; unrecognised values keep the current selection.
func (w *Wizard) SetCategory(value string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	for _, category := range domain.Categories {
		if string(category) == value || category.DisplayName() == value {
			selected := category
			w.state.Category = &selected
			break
		}
	}
	w.recompute()
}

// SetPhones replaces the contact phone field.
func (w *Wizard) SetPhones(value string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.state.Phones = value
}

// recompute derives CanAdvance from the four gate inputs. Caller holds the
// lock.
func (w *Wizard) recompute() {
	s := &w.state
	s.CanAdvance = !isBlank(s.Name) &&
		!isBlank(s.Description) &&
		s.Category != nil &&
		len(s.UploadedPhotos) > 0
}

// AddPhoto uploads the local media ref and, on success, appends the matched
// (local, remote) pair. The uploading flag is cleared on completion either
// way; a failed upload appends nothing.
func (w *Wizard) AddPhoto(ctx context.Context, localRef string) error {
	w.mu.Lock()
	w.state.IsUploadingPhotos = true
	w.state.UploadMessage = "Subiendo foto..."
	w.mu.Unlock()

	url, err := w.uploader.Upload(ctx, localRef)

	w.mu.Lock()
	defer w.mu.Unlock()
	w.state.IsUploadingPhotos = false
	if err != nil {
		w.state.UploadMessage = err.Error()
		return err
	}
	w.state.LocalPhotos = append(w.state.LocalPhotos, localRef)
	w.state.UploadedPhotos = append(w.state.UploadedPhotos, url)
	w.state.UploadMessage = "Foto subida"
	w.recompute()
	return nil
}

// RemovePhoto drops the entry for the local ref from both parallel lists.
// Unknown refs are a no-op.
func (w *Wizard) RemovePhoto(localRef string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	index := -1
	for i, ref := range w.state.LocalPhotos {
		if ref == localRef {
			index = i
			break
		}
	}
	if index == -1 {
		return
	}
	w.state.LocalPhotos = append(w.state.LocalPhotos[:index], w.state.LocalPhotos[index+1:]...)
	w.state.UploadedPhotos = append(w.state.UploadedPhotos[:index], w.state.UploadedPhotos[index+1:]...)
	w.recompute()
}

// SaveDraft is a best-effort persistence affordance: drafts are not durably
// stored, only the confirmation flow is exercised. Fields and step are left
// untouched.
func (w *Wizard) SaveDraft(ctx context.Context) {
	w.mu.Lock()
	w.state.IsSavingDraft = true
	w.state.LastMessage = ""
	w.mu.Unlock()

	w.persistDraft(ctx)

	w.mu.Lock()
	defer w.mu.Unlock()
	w.state.IsSavingDraft = false
	w.state.LastMessage = "Borrador guardado en la nube"
}

// persistDraft is a stand-in for a drafts collection. Nothing durable is
// written; the confirmation flow is what matters to callers.
func (w *Wizard) persistDraft(context.Context) {}

// Next advances one step; on the last step it attempts to publish instead.
func (w *Wizard) Next(ctx context.Context) error {
	w.mu.Lock()
	if w.state.StepIndex < len(WizardSteps)-1 {
		w.state.StepIndex++
		w.mu.Unlock()
		return nil
	}
	if w.state.IsPublishing {
		w.mu.Unlock()
		return nil
	}
	w.mu.Unlock()
	return w.Publish(ctx)
}

// Previous steps back, never below the first step.
func (w *Wizard) Previous() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.state.StepIndex > 0 {
		w.state.StepIndex--
	}
}

// DeleteDraft resets the whole draft to its initial empty state.
func (w *Wizard) DeleteDraft() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.state = WizardState{}
}

// ConsumeMessage clears the last status message after it has been shown.
func (w *Wizard) ConsumeMessage() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.state.LastMessage = ""
}

// Publish submits the draft as a new PENDING place. Without a category it is
// a silent no-op. On success the draft resets and the new id is recorded; on
// failure every field stays intact and the failure message is surfaced.
func (w *Wizard) Publish(ctx context.Context) error {
	w.mu.Lock()
	if w.state.Category == nil {
		w.mu.Unlock()
		return nil
	}
	w.state.IsPublishing = true
	w.state.LastMessage = ""
	record := w.buildRecord()
	w.mu.Unlock()

	id, err := w.repo.Create(ctx, record)

	w.mu.Lock()
	defer w.mu.Unlock()
	if err != nil {
		w.state.IsPublishing = false
		w.state.LastMessage = "Error publicando el lugar"
		return err
	}
	w.state = WizardState{
		CreatedPlaceID: id,
		LastMessage:    "Enviado a moderación",
	}
	return nil
}

// buildRecord maps the draft into a wire record. Caller holds the lock.
func (w *Wizard) buildRecord() Record {
	s := w.state
	createdBy := ""
	if user := w.session.CurrentUser(); user != nil {
		createdBy = user.ID
	}

	return Record{
		Title:       s.Name,
		Description: s.Description,
		Address:     defaultAddress,
		City:        string(defaultCity),
		Latitude:    4.514 + float64(len(s.UploadedPhotos))*0.001,
		Longitude:   -75.677 + float64(len(s.UploadedPhotos))*0.002,
		Images:      append([]string{}, s.UploadedPhotos...),
		PhoneNumber: s.Phones,
		Type:        string(*s.Category),
		Schedules:   []ScheduleRecord{scheduleToRecord(defaultSchedule)},

		CreatedByUserID: createdBy,
		Status:          string(domain.StatusPending),
	}
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
