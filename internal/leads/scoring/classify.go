package scoring

import "strings"

// Tier is the score band shown to agents.
type Tier string

const (
	TierHot  Tier = "hot"
	TierWarm Tier = "warm"
	TierCold Tier = "cold"
)

const (
	hotThreshold  = 70
	warmThreshold = 40
)

// ParseTier accepts the band names used in admin filters.
func ParseTier(s string) (Tier, bool) {
	switch Tier(strings.ToLower(strings.TrimSpace(s))) {
	case TierHot:
		return TierHot, true
	case TierWarm:
		return TierWarm, true
	case TierCold:
		return TierCold, true
	}
	return "", false
}

// Classify maps a score to its tier: 70 and up is hot, 40 to 69 warm,
// anything lower cold.
func Classify(score int) Tier {
	switch {
	case score >= hotThreshold:
		return TierHot
	case score >= warmThreshold:
		return TierWarm
	default:
		return TierCold
	}
}

// Label is the Spanish name the back office displays.
func (t Tier) Label() string {
	switch t {
	case TierHot:
		return "Caliente"
	case TierWarm:
		return "Tibio"
	default:
		return "Frío"
	}
}

// Color is the UI color token for the tier badge.
func (t Tier) Color() string {
	switch t {
	case TierHot:
		return "bg-green-500"
	case TierWarm:
		return "bg-yellow-500"
	default:
		return "bg-red-500"
	}
}

// UrgencyTier is the coarse urgency derived from a free-form label.
type UrgencyTier string

const (
	UrgencyHigh   UrgencyTier = "high"
	UrgencyMedium UrgencyTier = "medium"
	UrgencyLow    UrgencyTier = "low"
)

// Urgency classifies an urgency label by substring, first match wins:
// "1 mes" or "Urgente" is high, "1-3" is medium, anything else low.
// The match runs on the label text the form submitted, so "Menos de 1 mes"
// and "Urgente (menos 1 mes)" are both high.
func Urgency(label string) UrgencyTier {
	switch {
	case strings.Contains(label, "1 mes"), strings.Contains(label, "Urgente"):
		return UrgencyHigh
	case strings.Contains(label, "1-3"):
		return UrgencyMedium
	default:
		return UrgencyLow
	}
}
