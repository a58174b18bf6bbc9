// Package http provides the SMS gateway webhook transport
package http

import (
	"encoding/xml"
	"fmt"
	stdhttp "net/http"
	"strconv"
	"strings"

	"civicline/internal/core/phone"
	"civicline/internal/modkit/httpkit"
	perr "civicline/internal/platform/errors"
	phttp "civicline/internal/platform/net/http"
	complaintsdom "civicline/internal/services/api/complaints/domain"
)

// PlaceholderText substitutes for an empty body when the message carried media
const PlaceholderText = "Media complaint received"

// twiml is the gateway acknowledgment wire shape.
// An empty Message renders <Response></Response>, the duplicate-suppression ack
type twiml struct {
	XMLName xml.Name `xml:"Response"`
	Message string   `xml:"Message,omitempty"`
}

// Register mounts the gateway webhook on the given router
func Register(r httpkit.Router, creator complaintsdom.CreatorPort) {
	h := &handlers{creator: creator}
	r.Post("/sms", h.sms)
}

type handlers struct{ creator complaintsdom.CreatorPort }

// @Summary Twilio SMS webhook
// @Tags Intake
// @Accept x-www-form-urlencoded
// @Produce xml
// @Param From formData string true "Sender address"
// @Param Body formData string false "Message body"
// @Param MessageSid formData string false "Gateway message id"
// @Param NumMedia formData int false "Attached media count"
// @Success 200 {string} string "TwiML acknowledgment"
// @Router /twilio/sms [post]
func (h *handlers) sms(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	if err := r.ParseForm(); err != nil {
		phttp.RespondError(w, r, perr.Validationf("malformed form payload"))
		return
	}

	from := strings.TrimSpace(r.PostFormValue("From"))
	body := strings.TrimSpace(r.PostFormValue("Body"))
	messageSid := strings.TrimSpace(r.PostFormValue("MessageSid"))
	numMedia, _ := strconv.Atoi(strings.TrimSpace(r.PostFormValue("NumMedia")))

	if from == "" {
		phttp.RespondError(w, r, perr.Validationf("Missing sender number"))
		return
	}
	if body == "" && numMedia <= 0 {
		phttp.RespondError(w, r, perr.Validationf("SMS body or media is required"))
		return
	}

	rawText := body
	if rawText == "" {
		rawText = PlaceholderText
	}

	created, err := h.creator.Create(r.Context(), complaintsdom.CreateInput{
		PhoneNumber:     phone.Normalize(from),
		Channel:         "sms",
		RawText:         rawText,
		SourceMessageID: messageSid,
		Note:            "Complaint created via Twilio SMS webhook",
	})
	if err != nil {
		// a replayed MessageSid gets an empty ack so the gateway stops resending
		if perr.IsCode(err, perr.ErrorCodeDuplicateKey) {
			phttp.XML(w, stdhttp.StatusOK, twiml{})
			return
		}
		phttp.RespondError(w, r, err)
		return
	}

	msg := fmt.Sprintf("Complaint #%d received. We will keep you updated.", created.ComplaintNumber)
	phttp.XML(w, stdhttp.StatusOK, twiml{Message: msg})
}
