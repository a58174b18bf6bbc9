package domain

import (
	"civicline/internal/core/media"
)

// CreateInput is the full creation surface shared by both intake adapters.
// Validation order and messages live in the service, not in tags; the tags
// only bound obviously hostile payload sizes at the binder
type CreateInput struct {
	PhoneNumber       string       `json:"phone_number" validate:"omitempty,max=32" example:"+15551234567"`
	Name              string       `json:"name,omitempty" validate:"omitempty,max=200" example:"Asha Rao"`
	PreferredLanguage string       `json:"preferred_language,omitempty" validate:"omitempty,max=64" example:"en-US"`
	Channel           string       `json:"channel" validate:"omitempty,max=16" example:"sms"`
	RawText           string       `json:"raw_text,omitempty" validate:"omitempty,max=10000" example:"pothole on 5th"`
	TranslatedText    string       `json:"translated_text,omitempty" validate:"omitempty,max=10000"`
	Category          string       `json:"category,omitempty" validate:"omitempty,max=200" example:"roads"`
	Priority          string       `json:"priority,omitempty" validate:"omitempty,max=16" example:"medium"`
	LocationText      string       `json:"location_text,omitempty" validate:"omitempty,max=500"`
	Latitude          *float64     `json:"latitude,omitempty" example:"18.52"`
	Longitude         *float64     `json:"longitude,omitempty" example:"73.85"`
	WardID            string       `json:"ward_id,omitempty" validate:"omitempty,max=64"`
	DepartmentID      string       `json:"department_id,omitempty" validate:"omitempty,max=64"`
	SourceMessageID   string       `json:"source_message_id,omitempty" validate:"omitempty,max=128"`
	SourceCallID      string       `json:"source_call_id,omitempty" validate:"omitempty,max=128"`
	Media             []media.Item `json:"media,omitempty" validate:"omitempty,max=20"`

	// Note overrides the audit note recorded with the creation event.
	// Set by adapters, never by callers
	Note string `json:"-"`
}

// Created is what a successful creation returns to the adapter
type Created struct {
	ID              string `json:"id"`
	ComplaintNumber int64  `json:"complaint_number"`
	Status          string `json:"status"`
	Channel         string `json:"channel"`
	CitizenID       string `json:"citizen_id"`
	CreatedAt       string `json:"created_at"`
}

// Removed is what a successful removal returns
type Removed struct {
	ID              string `json:"id"`
	ComplaintNumber int64  `json:"complaint_number"`
}
