// Package phone normalizes gateway sender addresses into stored phone numbers
// Pipeline
// 1 trim surrounding whitespace
// 2 strip any channel scheme prefix eg whatsapp: or tel:
// 3 keep a single leading + followed by digits only
package phone

import "strings"

// known scheme prefixes gateways prepend to the raw address
var schemes = []string{"whatsapp:", "tel:", "sms:"}

// Normalize returns the canonical stored form of a sender address.
// Empty input normalizes to empty, callers decide whether that is an error
func Normalize(s string) string {
	s = strings.TrimSpace(s)
	low := strings.ToLower(s)
	for _, p := range schemes {
		if strings.HasPrefix(low, p) {
			s = s[len(p):]
			break
		}
	}
	s = strings.TrimSpace(s)

	var b strings.Builder
	b.Grow(len(s))
	for i, r := range s {
		if r == '+' && i == 0 {
			b.WriteRune(r)
			continue
		}
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
