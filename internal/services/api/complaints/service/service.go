// Package service contains the complaint create, read, and remove workflows
package service

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"civicline/internal/core/media"
	"civicline/internal/modkit/repokit"
	perr "civicline/internal/platform/errors"
	str "civicline/internal/platform/strings"
	"civicline/internal/services/api/complaints/domain"
	"civicline/internal/services/api/complaints/repo"
	citizensdom "civicline/internal/services/citizens/domain"
)

// Service defines the service contract for complaints
type Service interface{ domain.ServicePort }

// Svc implements the Service interface
type Svc struct {
	Repo     repo.Repo
	binder   repokit.Binder[repo.Repo]
	db       repokit.TxRunner
	resolver citizensdom.ResolverPort
}

// New creates a new complaints service
func New(db repokit.TxRunner, binder repokit.Binder[repo.Repo], resolver citizensdom.ResolverPort) *Svc {
	if db == nil {
		panic("complaints.Service requires a non nil TxRunner")
	}
	if binder == nil {
		panic("complaints.Service requires a non nil Repo binder")
	}
	if resolver == nil {
		panic("complaints.Service requires a citizen resolver")
	}
	return &Svc{Repo: binder.Bind(db), binder: binder, db: db, resolver: resolver}
}

// Create validates the input and persists complaint, first audit event, and
// media in one transaction. Validation is ordered and fails on the first
// violation with a distinct message
func (s *Svc) Create(ctx context.Context, in domain.CreateInput) (domain.Created, error) {
	var zero domain.Created

	phone := strings.TrimSpace(in.PhoneNumber)
	if phone == "" {
		return zero, perr.Validationf("phone_number is required")
	}

	channel := str.LowerTrim(in.Channel)
	if !domain.ValidChannels[channel] {
		return zero, perr.Validationf("channel must be sms, whatsapp, or voice")
	}

	priority := str.LowerTrim(in.Priority)
	if priority == "" {
		priority = domain.DefaultPriority
	}
	if !domain.ValidPriorities[priority] {
		return zero, perr.Validationf("priority must be low, medium, high, or critical")
	}

	items := media.Normalize(in.Media)
	rawText := strings.TrimSpace(in.RawText)
	if rawText == "" && len(items) == 0 {
		return zero, perr.Validationf("Either raw_text or at least one media item is required")
	}

	if in.Latitude != nil && (*in.Latitude < -90 || *in.Latitude > 90) {
		return zero, perr.Validationf("latitude must be between -90 and 90")
	}
	if in.Longitude != nil && (*in.Longitude < -180 || *in.Longitude > 180) {
		return zero, perr.Validationf("longitude must be between -180 and 180")
	}

	for _, it := range items {
		if err := media.Validate(it); err != nil {
			return zero, err
		}
	}

	note := strings.TrimSpace(in.Note)
	if note == "" {
		note = "Complaint created via API"
	}

	var out domain.Created
	err := repokit.WithTx(ctx, s.db, func(q repokit.Queryer) error {
		citizenID, err := s.resolver.Resolve(ctx, q, citizensdom.ResolveInput{
			Phone:             phone,
			Name:              in.Name,
			PreferredLanguage: in.PreferredLanguage,
		})
		if err != nil {
			return err
		}

		r := s.binder.Bind(q)

		created, err := r.InsertComplaint(ctx, repo.InsertComplaint{
			ID:              uuid.NewString(),
			CitizenID:       citizenID,
			Channel:         channel,
			RawText:         rawText,
			TranslatedText:  strings.TrimSpace(in.TranslatedText),
			Category:        str.LowerTrim(in.Category),
			Priority:        priority,
			LocationText:    strings.TrimSpace(in.LocationText),
			Latitude:        in.Latitude,
			Longitude:       in.Longitude,
			WardID:          strings.TrimSpace(in.WardID),
			DepartmentID:    strings.TrimSpace(in.DepartmentID),
			SourceMessageID: strings.TrimSpace(in.SourceMessageID),
			SourceCallID:    strings.TrimSpace(in.SourceCallID),
		})
		if err != nil {
			if perr.IsCode(err, perr.ErrorCodeDuplicateKey) {
				return perr.Wrap(err, perr.ErrorCodeDuplicateKey, "Duplicate source message/call id")
			}
			return err
		}

		newValue, err := json.Marshal(map[string]string{"status": created.Status})
		if err != nil {
			return perr.Wrap(err, perr.ErrorCodeUnknown, "event payload marshal")
		}
		if err := r.AppendEvent(ctx, repo.AppendEvent{
			ID:          uuid.NewString(),
			ComplaintID: created.ID,
			EventType:   domain.EventComplaintCreated,
			OldValue:    nil,
			NewValue:    newValue,
			ActorType:   "system",
			Note:        note,
		}); err != nil {
			return err
		}

		if len(items) > 0 {
			ids := make([]string, len(items))
			for i := range items {
				ids[i] = uuid.NewString()
			}
			if err := r.InsertMediaBatch(ctx, created.ID, ids, items); err != nil {
				return err
			}
		}

		out = domain.Created{
			ID:              created.ID,
			ComplaintNumber: created.ComplaintNumber,
			Status:          created.Status,
			Channel:         created.Channel,
			CitizenID:       created.CitizenID,
			CreatedAt:       created.CreatedAt,
		}
		return nil
	})
	if err != nil {
		return zero, err
	}
	return out, nil
}

// Get loads one complaint by its public sequence number together with its
// media and timeline. The two child fetches run concurrently; either
// failure fails the whole read
func (s *Svc) Get(ctx context.Context, complaintNo int64) (domain.Aggregate, error) {
	var zero domain.Aggregate
	if complaintNo <= 0 {
		return zero, perr.Validationf("complaint_no must be a positive integer")
	}

	row, err := s.Repo.GetByNumber(ctx, complaintNo)
	if err != nil {
		if perr.IsCode(err, perr.ErrorCodeNotFound) {
			return zero, perr.NotFoundf("Complaint not found")
		}
		return zero, err
	}

	var (
		mediaRows []repo.RowMedia
		eventRows []repo.RowEvent
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		mediaRows, err = s.Repo.ListMedia(gctx, row.ID)
		return err
	})
	g.Go(func() error {
		var err error
		eventRows, err = s.Repo.ListEvents(gctx, row.ID)
		return err
	})
	if err := g.Wait(); err != nil {
		return zero, err
	}

	agg := domain.Aggregate{
		Complaint: domain.Complaint{
			ID:              row.ID,
			ComplaintNumber: row.ComplaintNumber,
			Status:          row.Status,
			Channel:         row.Channel,
			Priority:        row.Priority,
			Category:        row.Category,
			RawText:         row.RawText,
			TranslatedText:  row.TranslatedText,
			LocationText:    row.LocationText,
			Latitude:        row.Latitude,
			Longitude:       row.Longitude,
			CitizenID:       row.CitizenID,
			WardID:          row.WardID,
			DepartmentID:    row.DepartmentID,
			CreatedAt:       row.CreatedAt,
			UpdatedAt:       row.UpdatedAt,
			ResolvedAt:      row.ResolvedAt,
		},
		Media:    make([]domain.Media, 0, len(mediaRows)),
		Timeline: make([]domain.Event, 0, len(eventRows)),
	}
	for _, m := range mediaRows {
		agg.Media = append(agg.Media, domain.Media{
			ID:             m.ID,
			MediaType:      m.MediaType,
			StorageBucket:  m.StorageBucket,
			StoragePath:    m.StoragePath,
			MimeType:       m.MimeType,
			SizeBytes:      m.SizeBytes,
			DurationSec:    m.DurationSec,
			ChecksumSHA256: m.ChecksumSHA256,
			UploadedAt:     m.UploadedAt,
		})
	}
	for _, e := range eventRows {
		agg.Timeline = append(agg.Timeline, domain.Event{
			ID:        e.ID,
			EventType: e.EventType,
			OldValue:  e.OldValue,
			NewValue:  e.NewValue,
			ActorID:   e.ActorID,
			ActorType: e.ActorType,
			Note:      e.Note,
			CreatedAt: e.CreatedAt,
		})
	}
	return agg, nil
}

// Remove deletes a complaint by internal id and returns its public number.
// Dependent events and media cascade in the store
func (s *Svc) Remove(ctx context.Context, id string) (domain.Removed, error) {
	var zero domain.Removed

	id = strings.TrimSpace(id)
	if id == "" {
		return zero, perr.Validationf("complaint_id is required")
	}

	head, err := s.Repo.Head(ctx, id)
	if err != nil {
		if perr.IsCode(err, perr.ErrorCodeNotFound) {
			return zero, perr.NotFoundf("Complaint not found")
		}
		return zero, err
	}
	if err := s.Repo.Delete(ctx, id); err != nil {
		return zero, err
	}
	return domain.Removed{ID: head.ID, ComplaintNumber: head.ComplaintNumber}, nil
}
