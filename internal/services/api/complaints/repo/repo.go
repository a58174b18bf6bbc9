// Package repo provides postgres access for complaints, events, and media
package repo

import (
	"context"
	"encoding/json"

	"civicline/internal/core/media"
	"civicline/internal/modkit/repokit"
	perr "civicline/internal/platform/errors"
	"civicline/internal/platform/store"
	str "civicline/internal/platform/strings"
)

// Repo defines the repository contract for complaints
type Repo interface {
	InsertComplaint(ctx context.Context, in InsertComplaint) (RowCreated, error)
	AppendEvent(ctx context.Context, in AppendEvent) error
	InsertMediaBatch(ctx context.Context, complaintID string, ids []string, items []media.Item) error
	GetByNumber(ctx context.Context, complaintNo int64) (RowComplaint, error)
	ListMedia(ctx context.Context, complaintID string) ([]RowMedia, error)
	ListEvents(ctx context.Context, complaintID string) ([]RowEvent, error)
	Head(ctx context.Context, id string) (RowHead, error)
	Delete(ctx context.Context, id string) error
}

// InsertComplaint carries the already validated creation payload.
// Blank optional strings persist as NULL
type InsertComplaint struct {
	ID              string
	CitizenID       string
	Channel         string
	RawText         string
	TranslatedText  string
	Category        string
	Priority        string
	LocationText    string
	Latitude        *float64
	Longitude       *float64
	WardID          string
	DepartmentID    string
	SourceMessageID string
	SourceCallID    string
}

// AppendEvent carries one audit trail insert
type AppendEvent struct {
	ID          string
	ComplaintID string
	EventType   string
	OldValue    json.RawMessage
	NewValue    json.RawMessage
	ActorType   string
	ActorID     string
	Note        string
}

// RowCreated is the slice of columns returned by a successful insert
type RowCreated struct {
	ID              string
	ComplaintNumber int64
	Status          string
	Channel         string
	CitizenID       string
	CreatedAt       string
}

// RowComplaint represents a full complaint row from the database
type RowComplaint struct {
	ID              string
	ComplaintNumber int64
	Status          string
	Channel         string
	Priority        string
	Category        string
	RawText         string
	TranslatedText  string
	LocationText    string
	Latitude        *float64
	Longitude       *float64
	CitizenID       string
	WardID          string
	DepartmentID    string
	CreatedAt       string
	UpdatedAt       string
	ResolvedAt      string
}

// RowMedia represents an evidence row from the database
type RowMedia struct {
	ID             string
	MediaType      string
	StorageBucket  string
	StoragePath    string
	MimeType       string
	SizeBytes      *int64
	DurationSec    *float64
	ChecksumSHA256 string
	UploadedAt     string
}

// RowEvent represents an audit event row from the database
type RowEvent struct {
	ID        string
	EventType string
	OldValue  []byte
	NewValue  []byte
	ActorID   string
	ActorType string
	Note      string
	CreatedAt string
}

// RowHead is the id and public number of a complaint
type RowHead struct {
	ID              string
	ComplaintNumber int64
}

type (
	// PG implements the Repo interface using Postgres
	PG struct{}

	// queries holds the database query methods
	queries struct{ q repokit.Queryer }
)

// NewPG creates a new Postgres repository binder
func NewPG() repokit.Binder[Repo] { return PG{} }

// Bind binds a Postgres queryer to the Repo implementation
func (PG) Bind(q repokit.Queryer) Repo { return &queries{q: q} }

func (r *queries) InsertComplaint(ctx context.Context, in InsertComplaint) (RowCreated, error) {
	const sql = `
insert into complaints (
  id, citizen_id, channel, raw_text, translated_text, category, priority,
  location_text, latitude, longitude, ward_id, department_id,
  source_message_id, source_call_id
)
values ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
returning id::text, complaint_number, status, channel, citizen_id::text, created_at::text
`
	var out RowCreated
	err := r.q.QueryRow(ctx, sql,
		in.ID,
		in.CitizenID,
		in.Channel,
		str.SQLNull(in.RawText),
		str.SQLNull(in.TranslatedText),
		str.SQLNull(in.Category),
		in.Priority,
		str.SQLNull(in.LocationText),
		in.Latitude,
		in.Longitude,
		str.SQLNull(in.WardID),
		str.SQLNull(in.DepartmentID),
		str.SQLNull(in.SourceMessageID),
		str.SQLNull(in.SourceCallID),
	).Scan(
		&out.ID,
		&out.ComplaintNumber,
		&out.Status,
		&out.Channel,
		&out.CitizenID,
		&out.CreatedAt,
	)
	if err != nil {
		return RowCreated{}, perr.FromPostgresf(err, "complaints insert")
	}
	return out, nil
}

func (r *queries) AppendEvent(ctx context.Context, in AppendEvent) error {
	const sql = `
insert into complaint_events (id, complaint_id, event_type, old_value, new_value, actor_type, actor_id, note)
values ($1, $2, $3, $4, $5, $6, $7, $8)
`
	_, err := r.q.Exec(ctx, sql,
		in.ID,
		in.ComplaintID,
		in.EventType,
		nullableJSON(in.OldValue),
		nullableJSON(in.NewValue),
		in.ActorType,
		str.SQLNull(in.ActorID),
		str.SQLNull(in.Note),
	)
	if err != nil {
		return perr.FromPostgresf(err, "complaint event insert")
	}
	return nil
}

// InsertMediaBatch persists all attachments for one complaint.
// ids must be the same length as items; both come from the service
func (r *queries) InsertMediaBatch(ctx context.Context, complaintID string, ids []string, items []media.Item) error {
	const sql = `
insert into complaint_media (
  id, complaint_id, media_type, storage_bucket, storage_path,
  mime_type, size_bytes, duration_sec, checksum_sha256
)
values ($1, $2, $3, $4, $5, $6, $7, $8, $9)
`
	for i, it := range items {
		_, err := r.q.Exec(ctx, sql,
			ids[i],
			complaintID,
			it.MediaType,
			it.StorageBucket,
			it.StoragePath,
			str.SQLNull(it.MimeType),
			it.SizeBytes,
			it.DurationSec,
			str.SQLNull(it.ChecksumSHA256),
		)
		if err != nil {
			return perr.FromPostgresf(err, "complaint media insert")
		}
	}
	return nil
}

func (r *queries) GetByNumber(ctx context.Context, complaintNo int64) (RowComplaint, error) {
	const sql = `
select id::text, complaint_number, status, channel, priority,
       coalesce(category, ''), coalesce(raw_text, ''), coalesce(translated_text, ''),
       coalesce(location_text, ''), latitude, longitude,
       citizen_id::text, coalesce(ward_id, ''), coalesce(department_id, ''),
       created_at::text, updated_at::text, coalesce(resolved_at::text, '')
from complaints
where complaint_number = $1
`
	out, err := store.One(ctx, r.q, func(row store.Row) (RowComplaint, error) {
		var rr RowComplaint
		err := row.Scan(
			&rr.ID,
			&rr.ComplaintNumber,
			&rr.Status,
			&rr.Channel,
			&rr.Priority,
			&rr.Category,
			&rr.RawText,
			&rr.TranslatedText,
			&rr.LocationText,
			&rr.Latitude,
			&rr.Longitude,
			&rr.CitizenID,
			&rr.WardID,
			&rr.DepartmentID,
			&rr.CreatedAt,
			&rr.UpdatedAt,
			&rr.ResolvedAt,
		)
		return rr, err
	}, sql, complaintNo)
	if err != nil {
		return RowComplaint{}, perr.FromPostgresf(err, "complaints get by number")
	}
	return out, nil
}

func (r *queries) ListMedia(ctx context.Context, complaintID string) ([]RowMedia, error) {
	const sql = `
select id::text, media_type, storage_bucket, storage_path,
       coalesce(mime_type, ''), size_bytes, duration_sec,
       coalesce(checksum_sha256, ''), uploaded_at::text
from complaint_media
where complaint_id = $1
order by uploaded_at desc
`
	out, err := store.Many(ctx, r.q, func(row store.Row) (RowMedia, error) {
		var rr RowMedia
		err := row.Scan(
			&rr.ID,
			&rr.MediaType,
			&rr.StorageBucket,
			&rr.StoragePath,
			&rr.MimeType,
			&rr.SizeBytes,
			&rr.DurationSec,
			&rr.ChecksumSHA256,
			&rr.UploadedAt,
		)
		return rr, err
	}, sql, complaintID)
	if err != nil {
		return nil, perr.FromPostgresf(err, "complaint media list")
	}
	return out, nil
}

func (r *queries) ListEvents(ctx context.Context, complaintID string) ([]RowEvent, error) {
	const sql = `
select id::text, event_type, old_value, new_value,
       coalesce(actor_id::text, ''), actor_type, coalesce(note, ''), created_at::text
from complaint_events
where complaint_id = $1
order by created_at desc
`
	out, err := store.Many(ctx, r.q, func(row store.Row) (RowEvent, error) {
		var rr RowEvent
		err := row.Scan(
			&rr.ID,
			&rr.EventType,
			&rr.OldValue,
			&rr.NewValue,
			&rr.ActorID,
			&rr.ActorType,
			&rr.Note,
			&rr.CreatedAt,
		)
		return rr, err
	}, sql, complaintID)
	if err != nil {
		return nil, perr.FromPostgresf(err, "complaint events list")
	}
	return out, nil
}

func (r *queries) Head(ctx context.Context, id string) (RowHead, error) {
	const sql = `select id::text, complaint_number from complaints where id = $1`
	out, err := store.One(ctx, r.q, func(row store.Row) (RowHead, error) {
		var rr RowHead
		err := row.Scan(&rr.ID, &rr.ComplaintNumber)
		return rr, err
	}, sql, id)
	if err != nil {
		return RowHead{}, perr.FromPostgresf(err, "complaints head")
	}
	return out, nil
}

func (r *queries) Delete(ctx context.Context, id string) error {
	const sql = `delete from complaints where id = $1`
	if _, err := r.q.Exec(ctx, sql, id); err != nil {
		return perr.FromPostgresf(err, "complaints delete")
	}
	return nil
}

// nullableJSON maps empty payloads to NULL so jsonb columns stay clean
func nullableJSON(b json.RawMessage) any {
	if len(b) == 0 {
		return nil
	}
	return []byte(b)
}
