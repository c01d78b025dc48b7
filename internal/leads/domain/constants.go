package domain

// Literal answers the public intake form emits. Scoring and classification
// match against these exact strings, so they live here rather than inline.
const (
	// AnswerUnknown is the "I don't know" budget/price answer.
	AnswerUnknown = "No lo sé"
	// answerUnknownToken is the same answer as the form's option value.
	answerUnknownToken = "no-se"

	// PaperworkInOrder is the only paperwork answer that earns points.
	PaperworkInOrder = "Sí todo en regla"

	UrgencyUnderOneMonth = "Menos de 1 mes"
	UrgencyOneToThree    = "1-3 meses"
	UrgencyThreeToSix    = "3-6 meses"

	SaleUrgencyUrgent     = "Urgente (menos 1 mes)"
	SaleUrgencyOneToThree = "1-3 meses"
)

// PremiumZones are the zones a buyer earns the zone bonus for.
var PremiumZones = map[string]bool{
	"Norte":  true,
	"Centro": true,
}

// IsUnknownAnswer reports whether v is the "don't know" sentinel.
func IsUnknownAnswer(v string) bool {
	return v == AnswerUnknown || v == answerUnknownToken
}
