// Package scoring qualifies leads: a 0-100 score from the intake answers and
// the tiers the back office derives from scores and urgency labels.
package scoring

import (
	"inmobiliaria_backend/internal/leads/domain"
)

// Version identifies the rule set that produced a score. Bump it whenever a
// rule or weight changes so stored scores can be told apart.
const Version = "2026-v1"

const maxScore = 100

// Factor keys reported in Result.Factors.
const (
	FactorBudget        = "budget"
	FactorUrgency       = "urgency"
	FactorPremiumZone   = "premium_zone"
	FactorPropertyType  = "property_type"
	FactorBedrooms      = "bedrooms"
	FactorPaperwork     = "paperwork"
	FactorSaleUrgency   = "sale_urgency"
	FactorSquareMeters  = "square_meters"
	FactorExpectedPrice = "expected_price"
	FactorContact       = "contact_complete"
)

// Input is what the scorer looks at: the type-specific answers plus the two
// contact channels.
type Input struct {
	Email    string
	Whatsapp string
	Details  domain.Details
}

// Result is a score with the points each rule contributed.
type Result struct {
	Score   int
	Factors map[string]int
	Version string
}

// Score applies the qualification rules. It is pure: the same input always
// yields the same result, and missing answers simply earn nothing.
func Score(in Input) Result {
	factors := make(map[string]int)

	switch d := in.Details.(type) {
	case domain.BuyerDetails:
		scoreBuyer(d, factors)
	case domain.SellerDetails:
		scoreSeller(d, factors)
	case domain.RenterDetails:
		// No renter rules exist yet; renters only earn the contact bonus.
	}

	if in.Whatsapp != "" && in.Email != "" {
		addFactor(factors, FactorContact, 10)
	}

	total := 0
	for _, v := range factors {
		total += v
	}

	return Result{
		Score:   clampScore(total),
		Factors: factors,
		Version: Version,
	}
}

// ScoreLead scores a stored lead with the same rules used at intake.
func ScoreLead(lead domain.Lead) Result {
	return Score(Input{Email: lead.Email, Whatsapp: lead.Whatsapp, Details: lead.Details})
}

func scoreBuyer(d domain.BuyerDetails, factors map[string]int) {
	if d.Presupuesto != "" && !domain.IsUnknownAnswer(d.Presupuesto) {
		addFactor(factors, FactorBudget, 20)
	}

	switch d.Urgencia {
	case domain.UrgencyUnderOneMonth:
		addFactor(factors, FactorUrgency, 30)
	case domain.UrgencyOneToThree:
		addFactor(factors, FactorUrgency, 20)
	case domain.UrgencyThreeToSix:
		addFactor(factors, FactorUrgency, 10)
	}

	if domain.PremiumZones[d.Zona] {
		addFactor(factors, FactorPremiumZone, 15)
	}
	if d.TipoPropiedad != "" {
		addFactor(factors, FactorPropertyType, 10)
	}
	if d.Habitaciones != "" {
		addFactor(factors, FactorBedrooms, 5)
	}
}

func scoreSeller(d domain.SellerDetails, factors map[string]int) {
	if d.DocumentosRegla == domain.PaperworkInOrder {
		addFactor(factors, FactorPaperwork, 20)
	}

	switch d.UrgenciaVenta {
	case domain.SaleUrgencyUrgent:
		addFactor(factors, FactorSaleUrgency, 25)
	case domain.SaleUrgencyOneToThree:
		addFactor(factors, FactorSaleUrgency, 15)
	}

	if d.MetrosCuadrados != "" {
		addFactor(factors, FactorSquareMeters, 10)
	}
	if d.PrecioEsperado != "" && !domain.IsUnknownAnswer(d.PrecioEsperado) {
		addFactor(factors, FactorExpectedPrice, 15)
	}
	if d.HabitacionesVenta != "" {
		addFactor(factors, FactorBedrooms, 5)
	}
}

func clampScore(total int) int {
	return max(0, min(total, maxScore))
}

func addFactor(factors map[string]int, key string, value int) {
	factors[key] += value
}
