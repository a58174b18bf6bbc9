package http_test

import (
	"context"
	"encoding/json"
	stdhttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	perr "civicline/internal/platform/errors"
	phttp "civicline/internal/platform/net/http"
	"civicline/internal/services/api/complaints/domain"
	complaintshttp "civicline/internal/services/api/complaints/http"
)

type fakeSvc struct {
	created domain.Created
	agg     domain.Aggregate
	removed domain.Removed
	err     error

	gotCreate domain.CreateInput
	gotNo     int64
	gotID     string
}

func (f *fakeSvc) Create(_ context.Context, in domain.CreateInput) (domain.Created, error) {
	f.gotCreate = in
	return f.created, f.err
}

func (f *fakeSvc) Get(_ context.Context, no int64) (domain.Aggregate, error) {
	f.gotNo = no
	return f.agg, f.err
}

func (f *fakeSvc) Remove(_ context.Context, id string) (domain.Removed, error) {
	f.gotID = id
	return f.removed, f.err
}

func newRouter(f *fakeSvc) phttp.Router {
	r := phttp.AdaptChi(chi.NewRouter())
	complaintshttp.Register(r, f)
	return r
}

func TestCreate_Returns201(t *testing.T) {
	f := &fakeSvc{created: domain.Created{ID: "c-1", ComplaintNumber: 12, Status: "received", Channel: "api"}}
	r := newRouter(f)

	body := `{"phone_number":"+15551234567","channel":"api","raw_text":"pothole on 5th"}`
	req := httptest.NewRequest("POST", "/createComplaints", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.Mux().ServeHTTP(rec, req)

	if rec.Code != stdhttp.StatusCreated {
		t.Fatalf("expected 201, got %d body=%s", rec.Code, rec.Body.String())
	}
	if f.gotCreate.PhoneNumber != "+15551234567" {
		t.Fatalf("input not forwarded: %+v", f.gotCreate)
	}
	var env phttp.Envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !env.Success {
		t.Fatalf("expected success envelope: %+v", env)
	}
	data, _ := env.Data.(map[string]any)
	if n, _ := data["complaint_number"].(float64); int64(n) != 12 {
		t.Fatalf("complaint_number mismatch: %#v", data)
	}
}

func TestCreate_DuplicateMapsTo409(t *testing.T) {
	f := &fakeSvc{err: perr.New(perr.ErrorCodeDuplicateKey, "Duplicate source message/call id")}
	r := newRouter(f)

	req := httptest.NewRequest("POST", "/createComplaints", strings.NewReader(`{"channel":"sms"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.Mux().ServeHTTP(rec, req)

	if rec.Code != stdhttp.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
	var env phttp.Envelope
	_ = json.Unmarshal(rec.Body.Bytes(), &env)
	if env.Error != "Duplicate source message/call id" {
		t.Fatalf("error text: %q", env.Error)
	}
}

func TestRead_ParsesNumber(t *testing.T) {
	f := &fakeSvc{agg: domain.Aggregate{
		Complaint: domain.Complaint{ID: "c-2", ComplaintNumber: 7, Status: "received"},
		Media:     []domain.Media{},
		Timeline:  []domain.Event{},
	}}
	r := newRouter(f)

	req := httptest.NewRequest("GET", "/readComplaints/7", nil)
	rec := httptest.NewRecorder()
	r.Mux().ServeHTTP(rec, req)

	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rec.Code, rec.Body.String())
	}
	if f.gotNo != 7 {
		t.Fatalf("number not forwarded: %d", f.gotNo)
	}
}

func TestRead_NonNumericIs400(t *testing.T) {
	f := &fakeSvc{}
	r := newRouter(f)

	req := httptest.NewRequest("GET", "/readComplaints/abc", nil)
	rec := httptest.NewRecorder()
	r.Mux().ServeHTTP(rec, req)

	if rec.Code != stdhttp.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	var env phttp.Envelope
	_ = json.Unmarshal(rec.Body.Bytes(), &env)
	if env.Error != "complaint_no must be a positive integer" {
		t.Fatalf("error text: %q", env.Error)
	}
	if f.gotNo != 0 {
		t.Fatalf("service should not be called on parse failure")
	}
}

func TestRead_NotFoundIs404(t *testing.T) {
	f := &fakeSvc{err: perr.NotFoundf("Complaint not found")}
	r := newRouter(f)

	req := httptest.NewRequest("GET", "/readComplaints/99", nil)
	rec := httptest.NewRecorder()
	r.Mux().ServeHTTP(rec, req)

	if rec.Code != stdhttp.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestRemove_ReturnsMessageEnvelope(t *testing.T) {
	f := &fakeSvc{removed: domain.Removed{ID: "c-3", ComplaintNumber: 4}}
	r := newRouter(f)

	req := httptest.NewRequest("DELETE", "/deleteComplaints/c-3", nil)
	rec := httptest.NewRecorder()
	r.Mux().ServeHTTP(rec, req)

	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rec.Code, rec.Body.String())
	}
	if f.gotID != "c-3" {
		t.Fatalf("id not forwarded: %q", f.gotID)
	}
	var env phttp.Envelope
	_ = json.Unmarshal(rec.Body.Bytes(), &env)
	if env.Message != "Complaint deleted successfully" {
		t.Fatalf("message: %q", env.Message)
	}
}
