// Package filter narrows the admin lead list. Every criterion is optional and
// present criteria are ANDed; results keep the input order.
package filter

import (
	"strings"

	"inmobiliaria_backend/internal/leads/domain"
	"inmobiliaria_backend/internal/leads/scoring"
)

// Criteria selects leads. Zero values mean "no constraint".
type Criteria struct {
	// Search matches name or email case-insensitively, or the raw whatsapp
	// number as typed.
	Search string
	Type   domain.LeadType
	State  domain.Status
	Band   scoring.Tier
}

// IsZero reports whether c constrains nothing.
func (c Criteria) IsZero() bool {
	return c == Criteria{}
}

// Leads returns the leads matching c in their original relative order.
// The input slice is never modified.
func Leads(leads []domain.Lead, c Criteria) []domain.Lead {
	out := make([]domain.Lead, 0, len(leads))
	term := strings.ToLower(c.Search)
	for _, lead := range leads {
		if matches(lead, c, term) {
			out = append(out, lead)
		}
	}
	return out
}

// Match reports whether a single lead satisfies c.
func Match(lead domain.Lead, c Criteria) bool {
	return matches(lead, c, strings.ToLower(c.Search))
}

func matches(lead domain.Lead, c Criteria, term string) bool {
	if c.Search != "" && !matchesSearch(lead, c.Search, term) {
		return false
	}
	if c.Type != "" && lead.Tipo != c.Type {
		return false
	}
	if c.State != "" && lead.Estado != c.State {
		return false
	}
	if c.Band != "" && scoring.Classify(lead.Score) != c.Band {
		return false
	}
	return true
}

// The phone comparison deliberately uses the raw term: numbers have no case
// and the back office types them exactly as stored.
func matchesSearch(lead domain.Lead, raw, lowered string) bool {
	return strings.Contains(strings.ToLower(lead.Nombre), lowered) ||
		strings.Contains(strings.ToLower(lead.Email), lowered) ||
		strings.Contains(lead.Whatsapp, raw)
}
