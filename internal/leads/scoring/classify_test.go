package scoring

import "testing"

func TestClassifyBoundaries(t *testing.T) {
	tests := []struct {
		score int
		want  Tier
	}{
		{100, TierHot},
		{70, TierHot},
		{69, TierWarm},
		{40, TierWarm},
		{39, TierCold},
		{0, TierCold},
	}

	for _, tt := range tests {
		if got := Classify(tt.score); got != tt.want {
			t.Errorf("Classify(%d) = %s, want %s", tt.score, got, tt.want)
		}
	}
}

func TestTierPresentation(t *testing.T) {
	if TierHot.Label() != "Caliente" || TierWarm.Label() != "Tibio" || TierCold.Label() != "Frío" {
		t.Fatal("unexpected tier labels")
	}
	if TierHot.Color() != "bg-green-500" || TierCold.Color() != "bg-red-500" {
		t.Fatal("unexpected tier colors")
	}
}

func TestParseTier(t *testing.T) {
	if tier, ok := ParseTier(" HOT "); !ok || tier != TierHot {
		t.Fatalf("got %q %v", tier, ok)
	}
	if _, ok := ParseTier("tibio"); ok {
		t.Fatal("labels are not accepted as filter values")
	}
}

func TestUrgency(t *testing.T) {
	tests := []struct {
		label string
		want  UrgencyTier
	}{
		{"Menos de 1 mes", UrgencyHigh},
		{"Urgente (menos 1 mes)", UrgencyHigh},
		{"Urgente", UrgencyHigh},
		{"1-3 meses", UrgencyMedium},
		{"3-6 meses", UrgencyLow},
		{"Más de 3 meses", UrgencyLow},
		{"", UrgencyLow},
	}

	for _, tt := range tests {
		if got := Urgency(tt.label); got != tt.want {
			t.Errorf("Urgency(%q) = %s, want %s", tt.label, got, tt.want)
		}
	}
}
