// Package domain holds types for the complaint intake and read paths
package domain

import "encoding/json"

// ValidChannels are the intake channels a complaint can arrive through
var ValidChannels = map[string]bool{"sms": true, "whatsapp": true, "voice": true}

// ValidPriorities are the accepted triage priorities
var ValidPriorities = map[string]bool{"low": true, "medium": true, "high": true, "critical": true}

// DefaultPriority is applied when the caller supplies none
const DefaultPriority = "medium"

// StatusReceived is the lifecycle state every complaint starts in
const StatusReceived = "received"

// EventComplaintCreated is the first event on every complaint timeline
const EventComplaintCreated = "complaint_created"

// Complaint is the stored complaint record as presented to callers
type Complaint struct {
	ID              string   `json:"id"`
	ComplaintNumber int64    `json:"complaint_number"`
	Status          string   `json:"status"`
	Channel         string   `json:"channel"`
	Priority        string   `json:"priority"`
	Category        string   `json:"category,omitempty"`
	RawText         string   `json:"raw_text,omitempty"`
	TranslatedText  string   `json:"translated_text,omitempty"`
	LocationText    string   `json:"location_text,omitempty"`
	Latitude        *float64 `json:"latitude,omitempty"`
	Longitude       *float64 `json:"longitude,omitempty"`
	CitizenID       string   `json:"citizen_id"`
	WardID          string   `json:"ward_id,omitempty"`
	DepartmentID    string   `json:"department_id,omitempty"`
	CreatedAt       string   `json:"created_at"`
	UpdatedAt       string   `json:"updated_at"`
	ResolvedAt      string   `json:"resolved_at,omitempty"`
}

// Event is one immutable audit record on a complaint timeline
type Event struct {
	ID        string          `json:"id"`
	EventType string          `json:"event_type"`
	OldValue  json.RawMessage `json:"old_value,omitempty"`
	NewValue  json.RawMessage `json:"new_value,omitempty"`
	ActorID   string          `json:"actor_id,omitempty"`
	ActorType string          `json:"actor_type"`
	Note      string          `json:"note,omitempty"`
	CreatedAt string          `json:"created_at"`
}

// Media is one evidence attachment as presented to callers
type Media struct {
	ID             string   `json:"id"`
	MediaType      string   `json:"media_type"`
	StorageBucket  string   `json:"storage_bucket"`
	StoragePath    string   `json:"storage_path"`
	MimeType       string   `json:"mime_type,omitempty"`
	SizeBytes      *int64   `json:"size_bytes,omitempty"`
	DurationSec    *float64 `json:"duration_sec,omitempty"`
	ChecksumSHA256 string   `json:"checksum_sha256,omitempty"`
	UploadedAt     string   `json:"uploaded_at"`
}

// Aggregate is the full read view: the complaint plus evidence and timeline
type Aggregate struct {
	Complaint
	Media    []Media `json:"media"`
	Timeline []Event `json:"timeline"`
}
