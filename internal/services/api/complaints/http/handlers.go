// Package http provides http transport for complaints
package http

import (
	stdhttp "net/http"
	"strconv"

	"civicline/internal/modkit/httpkit"
	perr "civicline/internal/platform/errors"
	"civicline/internal/services/api/complaints/domain"
	svc "civicline/internal/services/api/complaints/service"
)

// Register mounts complaint endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}
	httpkit.PostJSON[domain.CreateInput](r, "/createComplaints", h.create)
	httpkit.Get(r, "/readComplaints/{complaint_no}", h.read)
	httpkit.Delete(r, "/deleteComplaints/{complaint_id}", h.remove)
}

type handlers struct{ svc svc.Service }

// @Summary Create a complaint
// @Tags Complaints
// @Accept json
// @Produce json
// @Param payload body domain.CreateInput true "Complaint"
// @Success 201 {object} domain.Created "created"
// @Failure 409 {object} httpkit.Envelope "duplicate source id"
// @Router /complaints/createComplaints [post]
func (h *handlers) create(r *stdhttp.Request, in domain.CreateInput) (any, error) {
	out, err := h.svc.Create(r.Context(), in)
	if err != nil {
		return nil, err
	}
	return httpkit.Created(out), nil
}

// @Summary Read a complaint with media and timeline
// @Tags Complaints
// @Produce json
// @Param complaint_no path int true "Complaint sequence number"
// @Success 200 {object} domain.Aggregate "ok"
// @Failure 404 {object} httpkit.Envelope "not found"
// @Router /complaints/readComplaints/{complaint_no} [get]
func (h *handlers) read(r *stdhttp.Request) (any, error) {
	raw := httpkit.Param(r, "complaint_no")
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, perr.Validationf("complaint_no must be a positive integer")
	}
	return h.svc.Get(r.Context(), n)
}

// @Summary Delete a complaint by id
// @Tags Complaints
// @Produce json
// @Param complaint_id path string true "Complaint id"
// @Success 200 {object} domain.Removed "deleted"
// @Failure 404 {object} httpkit.Envelope "not found"
// @Router /complaints/deleteComplaints/{complaint_id} [delete]
func (h *handlers) remove(r *stdhttp.Request) (any, error) {
	out, err := h.svc.Remove(r.Context(), httpkit.Param(r, "complaint_id"))
	if err != nil {
		return nil, err
	}
	return httpkit.OKMsg("Complaint deleted successfully", out), nil
}
