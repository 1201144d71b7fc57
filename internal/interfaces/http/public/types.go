package public

import (
	"time"

	"github.com/parchados/parchados-services/api/internal/places/application"
	"github.com/parchados/parchados-services/api/internal/places/domain"
)

type scheduleResponse struct {
	Day   string `json:"day"`
	Open  string `json:"open"`
	Close string `json:"close"`
}

type placeResponse struct {
	ID              string             `json:"id"`
	Title           string             `json:"title"`
	Description     string             `json:"description"`
	Address         string             `json:"address"`
	City            string             `json:"city"`
	Latitude        float64            `json:"latitude"`
	Longitude       float64            `json:"longitude"`
	Images          []string           `json:"images"`
	PhoneNumber     string             `json:"phoneNumber"`
	Type            string             `json:"type"`
	TypeName        string             `json:"typeName"`
	Schedules       []scheduleResponse `json:"schedules"`
	CreatedByUserID string             `json:"createdByUserId,omitempty"`
	CreatedAt       time.Time          `json:"createdAt"`
	Status          string             `json:"status"`
	StatusLabel     string             `json:"statusLabel"`
}

func placeToResponse(place domain.Place) placeResponse {
	schedules := make([]scheduleResponse, 0, len(place.Schedules))
	for _, s := range domain.GroupSchedules(place.Schedules) {
		schedules = append(schedules, scheduleResponse{
			Day:   domain.WeekdayName(s.Day),
			Open:  s.Open.String(),
			Close: s.Close.String(),
		})
	}
	return placeResponse{
		ID:              place.ID,
		Title:           place.Title,
		Description:     place.Description,
		Address:         place.Address,
		City:            string(place.City),
		Latitude:        place.Latitude,
		Longitude:       place.Longitude,
		Images:          append([]string{}, place.Images...),
		PhoneNumber:     place.PhoneNumber,
		Type:            string(place.Category),
		TypeName:        place.Category.DisplayName(),
		Schedules:       schedules,
		CreatedByUserID: place.CreatedByUserID,
		CreatedAt:       place.CreatedAt,
		Status:          string(place.Status),
		StatusLabel:     place.Status.Label(),
	}
}

type userResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Username string `json:"username"`
	Role     string `json:"role"`
	City     string `json:"city"`
	Email    string `json:"email"`
}

func userToResponse(user domain.User) userResponse {
	return userResponse{
		ID:       user.ID,
		Name:     user.Name,
		Username: user.Username,
		Role:     string(user.Role),
		City:     string(user.City),
		Email:    user.Email,
	}
}

type draftResponse struct {
	DraftID           string   `json:"draftId"`
	StepIndex         int      `json:"stepIndex"`
	Steps             []string `json:"steps"`
	Name              string   `json:"name"`
	Description       string   `json:"description"`
	Category          string   `json:"category,omitempty"`
	Phones            string   `json:"phones"`
	LocalPhotos       []string `json:"localPhotos"`
	UploadedPhotos    []string `json:"uploadedPhotos"`
	IsUploadingPhotos bool     `json:"isUploadingPhotos"`
	UploadMessage     string   `json:"uploadMessage,omitempty"`
	IsSavingDraft     bool     `json:"isSavingDraft"`
	CanAdvance        bool     `json:"canAdvance"`
	LastMessage       string   `json:"lastMessage,omitempty"`
	IsPublishing      bool     `json:"isPublishing"`
	CreatedPlaceID    string   `json:"createdPlaceId,omitempty"`
}

func draftToResponse(draftID string, state application.WizardState) draftResponse {
	category := ""
	if state.Category != nil {
		category = string(*state.Category)
	}
	return draftResponse{
		DraftID:           draftID,
		StepIndex:         state.StepIndex,
		Steps:             application.WizardSteps,
		Name:              state.Name,
		Description:       state.Description,
		Category:          category,
		Phones:            state.Phones,
		LocalPhotos:       state.LocalPhotos,
		UploadedPhotos:    state.UploadedPhotos,
		IsUploadingPhotos: state.IsUploadingPhotos,
		UploadMessage:     state.UploadMessage,
		IsSavingDraft:     state.IsSavingDraft,
		CanAdvance:        state.CanAdvance,
		LastMessage:       state.LastMessage,
		IsPublishing:      state.IsPublishing,
		CreatedPlaceID:    state.CreatedPlaceID,
	}
}
