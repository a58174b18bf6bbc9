// Package domain holds types for the citizen identity resolver
package domain

import (
	"strings"
	"time"

	"golang.org/x/text/language"
)

// ResolveInput carries the contact details supplied by an intake channel.
// Phone is already normalized by the caller; Name and PreferredLanguage
// are optional and only update the stored row when non empty
type ResolveInput struct {
	Phone             string
	Name              string
	PreferredLanguage string
}

// Citizen is the stored identity row
type Citizen struct {
	ID                string    `json:"id"`
	PhoneNumber       string    `json:"phone_number"`
	Name              string    `json:"name,omitempty"`
	PreferredLanguage string    `json:"preferred_language,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// CanonicalLanguage returns the BCP-47 canonical form of s when parseable.
// Unparseable values pass through trimmed so callers never lose user intent
func CanonicalLanguage(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	tag, err := language.Parse(s)
	if err != nil {
		return s
	}
	return tag.String()
}
