package phone

import "testing"

func TestNormalizeE164(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"612 345 678", "+34612345678"},
		{"+34 612-345-678", "+34612345678"},
		{"", ""},
		{"not a phone", ""},
		{"123", ""},
	}

	for _, tt := range tests {
		if got := NormalizeE164(tt.in); got != tt.want {
			t.Errorf("NormalizeE164(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestIsPlausible(t *testing.T) {
	if !IsPlausible("+44 20 7946 0958") {
		t.Errorf("foreign number should be plausible")
	}
	if IsPlausible("12") {
		t.Errorf("two digits should not be plausible")
	}
}
