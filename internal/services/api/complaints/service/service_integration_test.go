//go:build integration_pg
// +build integration_pg

package service_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"testing"
	"time"

	perr "civicline/internal/platform/errors"
	"civicline/internal/platform/store"

	"civicline/internal/core/media"
	"civicline/internal/services/api/complaints/domain"
	complaintsrepo "civicline/internal/services/api/complaints/repo"
	complaintssvc "civicline/internal/services/api/complaints/service"
	citizensrepo "civicline/internal/services/citizens/repo"
	citizenssvc "civicline/internal/services/citizens/service"

	"github.com/rs/zerolog"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// startPostgres launches a disposable Postgres and returns DSN + stop func
func startPostgres(t *testing.T) (dsn string, stop func()) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)

	req := tc.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "postgres",
			"POSTGRES_PASSWORD": "postgres",
			"POSTGRES_DB":       "postgres",
		},
		WaitingFor: wait.ForAll(
			wait.ForListeningPort("5432/tcp"),
			wait.ForLog("database system is ready to accept connections"),
		).WithDeadline(2 * time.Minute),
	}
	c, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		cancel()
		t.Fatalf("failed to start postgres container: %v", err)
	}

	host, err := c.Host(ctx)
	if err != nil {
		_ = c.Terminate(context.Background())
		cancel()
		t.Fatalf("failed to get container host: %v", err)
	}
	mp, err := c.MappedPort(ctx, "5432/tcp")
	if err != nil {
		_ = c.Terminate(context.Background())
		cancel()
		t.Fatalf("failed to get mapped port: %v", err)
	}

	dsn = fmt.Sprintf("postgres://postgres:postgres@%s:%s/postgres?sslmode=disable", host, mp.Port())
	stop = func() {
		_ = c.Terminate(context.Background())
		cancel()
	}
	return dsn, stop
}

const schemaDDL = `
create table citizens (
	id                 uuid primary key,
	phone_number       text not null unique,
	name               text,
	preferred_language text,
	created_at         timestamptz not null default now(),
	updated_at         timestamptz not null default now()
);

create table complaints (
	id                uuid primary key,
	complaint_number  bigint generated always as identity unique,
	citizen_id        uuid not null references citizens(id),
	channel           text not null,
	raw_text          text,
	translated_text   text,
	category          text,
	status            text not null default 'received',
	priority          text not null default 'medium',
	location_text     text,
	latitude          double precision,
	longitude         double precision,
	ward_id           text,
	department_id     text,
	source_message_id text,
	source_call_id    text,
	resolved_at       timestamptz,
	created_at        timestamptz not null default now(),
	updated_at        timestamptz not null default now()
);

create unique index complaints_channel_message_uq
	on complaints (channel, source_message_id)
	where source_message_id is not null;

create unique index complaints_channel_call_uq
	on complaints (channel, source_call_id)
	where source_call_id is not null;

create table complaint_events (
	id           uuid primary key,
	complaint_id uuid not null references complaints(id) on delete cascade,
	event_type   text not null,
	old_value    jsonb,
	new_value    jsonb,
	actor_type   text not null,
	actor_id     text,
	note         text,
	created_at   timestamptz not null default now()
);

create table complaint_media (
	id              uuid primary key,
	complaint_id    uuid not null references complaints(id) on delete cascade,
	media_type      text not null,
	storage_bucket  text not null,
	storage_path    text not null,
	mime_type       text,
	size_bytes      bigint,
	duration_sec    double precision,
	checksum_sha256 text,
	uploaded_at     timestamptz not null default now()
);
`

// newStack opens a store against dsn, applies the schema, and wires the
// full complaint service the way the composition root does
func newStack(t *testing.T, ctx context.Context, dsn string) (*complaintssvc.Svc, *store.Store) {
	t.Helper()

	st, err := store.Open(ctx,
		store.Config{PG: store.PGConfig{Enabled: true, URL: dsn, MaxConns: 2}},
		store.WithLogger(zerolog.New(io.Discard)),
	)
	if err != nil {
		t.Fatalf("store.Open failed: %v", err)
	}
	t.Cleanup(func() { _ = st.Close(context.Background()) })

	if _, err := st.PG.Exec(ctx, schemaDDL); err != nil {
		t.Fatalf("apply schema: %v", err)
	}

	resolver := citizenssvc.New(st.PG, citizensrepo.NewPG())
	svc := complaintssvc.New(st.PG, complaintsrepo.NewPG(), resolver)
	return svc, st
}

func TestComplaintLifecycle_Integration(t *testing.T) {
	dsn, stop := startPostgres(t)
	defer stop()

	ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
	defer cancel()

	svc, st := newStack(t, ctx, dsn)

	lat, lng := 18.52, 73.85
	created, err := svc.Create(ctx, domain.CreateInput{
		PhoneNumber:     "+15551230001",
		Name:            "Asha Rao",
		Channel:         "SMS",
		RawText:         "  pothole near the school gate  ",
		Category:        "Roads",
		Latitude:        &lat,
		Longitude:       &lng,
		SourceMessageID: "SM-lifecycle-1",
		Media: []media.Item{
			{MediaType: "image", StoragePath: "evidence/pothole.jpg", MimeType: "image/jpeg"},
		},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ComplaintNumber < 1 {
		t.Fatalf("expected positive complaint number, got %d", created.ComplaintNumber)
	}
	if created.Status != domain.StatusReceived || created.Channel != "sms" {
		t.Fatalf("unexpected created row: %+v", created)
	}

	// same phone resolves to the same citizen on a second complaint
	again, err := svc.Create(ctx, domain.CreateInput{
		PhoneNumber: "+15551230001",
		Channel:     "sms",
		RawText:     "streetlight out on 5th",
	})
	if err != nil {
		t.Fatalf("second create: %v", err)
	}
	if again.CitizenID != created.CitizenID {
		t.Fatalf("citizen not reused: %q vs %q", again.CitizenID, created.CitizenID)
	}

	agg, err := svc.Get(ctx, created.ComplaintNumber)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if agg.ID != created.ID || agg.RawText != "pothole near the school gate" {
		t.Fatalf("unexpected aggregate: %+v", agg.Complaint)
	}
	if agg.Category != "roads" {
		t.Fatalf("category not lowered: %q", agg.Category)
	}
	if agg.Latitude == nil || *agg.Latitude != lat {
		t.Fatalf("latitude lost: %v", agg.Latitude)
	}
	if len(agg.Media) != 1 {
		t.Fatalf("expected 1 media row, got %d", len(agg.Media))
	}
	if agg.Media[0].StorageBucket != media.DefaultBucket {
		t.Fatalf("bucket not defaulted: %q", agg.Media[0].StorageBucket)
	}
	if len(agg.Timeline) != 1 {
		t.Fatalf("expected 1 event, got %d", len(agg.Timeline))
	}
	ev := agg.Timeline[0]
	if ev.EventType != domain.EventComplaintCreated || ev.ActorType != "system" {
		t.Fatalf("unexpected event: %+v", ev)
	}
	var nv struct {
		Status string `json:"status"`
	}
	if err := json.Unmarshal(ev.NewValue, &nv); err != nil || nv.Status != domain.StatusReceived {
		t.Fatalf("event new_value mismatch: %s (%v)", ev.NewValue, err)
	}

	removed, err := svc.Remove(ctx, created.ID)
	if err != nil {
		t.Fatalf("remove: %v", err)
	}
	if removed.ComplaintNumber != created.ComplaintNumber {
		t.Fatalf("removed number mismatch: %+v", removed)
	}

	if _, err := svc.Get(ctx, created.ComplaintNumber); !perr.IsCode(err, perr.ErrorCodeNotFound) {
		t.Fatalf("expected not found after remove, got %v", err)
	}

	// children cascade with the complaint row
	var orphans int
	if err := st.PG.QueryRow(ctx,
		`select count(*) from complaint_events where complaint_id = $1`, created.ID,
	).Scan(&orphans); err != nil {
		t.Fatalf("count events: %v", err)
	}
	if orphans != 0 {
		t.Fatalf("events not cascaded, %d left", orphans)
	}
}

func TestCreate_DuplicateSourceMessage_Integration(t *testing.T) {
	dsn, stop := startPostgres(t)
	defer stop()

	ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
	defer cancel()

	svc, _ := newStack(t, ctx, dsn)

	in := domain.CreateInput{
		PhoneNumber:     "+15551230002",
		Channel:         "sms",
		RawText:         "overflowing bin",
		SourceMessageID: "SM-dup-1",
	}
	if _, err := svc.Create(ctx, in); err != nil {
		t.Fatalf("first create: %v", err)
	}

	_, err := svc.Create(ctx, in)
	if !perr.IsCode(err, perr.ErrorCodeDuplicateKey) {
		t.Fatalf("expected duplicate key, got %v", err)
	}
	if got := perr.MessageOf(err); got != "Duplicate source message/call id" {
		t.Fatalf("unexpected message: %q", got)
	}

	// same id on another channel is a different idempotency scope
	in.Channel = "whatsapp"
	in.SourceMessageID = "SM-dup-1"
	if _, err := svc.Create(ctx, in); err != nil {
		t.Fatalf("cross channel create: %v", err)
	}

	// a failed duplicate leaves exactly one audit event behind
	agg, err := svc.Get(ctx, 1)
	if err != nil {
		t.Fatalf("get first: %v", err)
	}
	if len(agg.Timeline) != 1 {
		t.Fatalf("expected 1 event after duplicate attempt, got %d", len(agg.Timeline))
	}
}
