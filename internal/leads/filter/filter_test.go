package filter

import (
	"testing"

	"inmobiliaria_backend/internal/leads/domain"
	"inmobiliaria_backend/internal/leads/scoring"

	"github.com/stretchr/testify/assert"
)

func fixture() []domain.Lead {
	return []domain.Lead{
		{ID: "1", Nombre: "Ana García", Email: "ana@correo.es", Whatsapp: "612111222", Tipo: domain.TypeBuyer, Estado: domain.StatusNew, Score: 90},
		{ID: "2", Nombre: "Bruno Díaz", Email: "bruno@correo.es", Whatsapp: "+34 600 333 444", Tipo: domain.TypeSeller, Estado: domain.StatusContacted, Score: 85},
		{ID: "3", Nombre: "Carla Ruiz", Email: "CARLA@Mail.com", Whatsapp: "699888777", Tipo: domain.TypeBuyer, Estado: domain.StatusContacted, Score: 45},
		{ID: "4", Nombre: "David León", Email: "david@correo.es", Whatsapp: "611000000", Tipo: domain.TypeRenter, Estado: domain.StatusNew, Score: 10},
		{ID: "5", Nombre: "Elena Gil", Email: "elena@correo.es", Whatsapp: "622555666", Tipo: domain.TypeBuyer, Estado: domain.StatusNegotiating, Score: 70},
	}
}

func ids(leads []domain.Lead) []string {
	out := make([]string, 0, len(leads))
	for _, l := range leads {
		out = append(out, l.ID)
	}
	return out
}

func TestLeadsANDComposition(t *testing.T) {
	got := Leads(fixture(), Criteria{Type: domain.TypeBuyer, Band: scoring.TierHot})
	assert.Equal(t, []string{"1", "5"}, ids(got))
}

func TestLeadsSingleCriteria(t *testing.T) {
	tests := []struct {
		name string
		c    Criteria
		want []string
	}{
		{"no criteria keeps everything", Criteria{}, []string{"1", "2", "3", "4", "5"}},
		{"type", Criteria{Type: domain.TypeRenter}, []string{"4"}},
		{"state", Criteria{State: domain.StatusContacted}, []string{"2", "3"}},
		{"warm band", Criteria{Band: scoring.TierWarm}, []string{"3"}},
		{"cold band", Criteria{Band: scoring.TierCold}, []string{"4"}},
		{"search name any case", Criteria{Search: "GARCÍA"}, []string{"1"}},
		{"search email any case", Criteria{Search: "mail.com"}, []string{"3"}},
		{"search phone substring", Criteria{Search: "333 444"}, []string{"2"}},
		{"search shared domain", Criteria{Search: "correo"}, []string{"1", "2", "4", "5"}},
		{"no match", Criteria{Search: "zzz"}, []string{}},
		{"search and state", Criteria{Search: "correo", State: domain.StatusNew}, []string{"1", "4"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(Leads(fixture(), tt.c)))
		})
	}
}

func TestLeadsDoesNotMutateInput(t *testing.T) {
	in := fixture()
	_ = Leads(in, Criteria{Type: domain.TypeSeller})
	assert.Equal(t, fixture(), in)
}

func TestLeadsIsIdempotent(t *testing.T) {
	c := Criteria{Band: scoring.TierHot}
	once := Leads(fixture(), c)
	assert.Equal(t, once, Leads(once, c))
}

func TestMatchAndIsZero(t *testing.T) {
	assert.True(t, Criteria{}.IsZero())
	assert.False(t, Criteria{Search: "a"}.IsZero())
	assert.True(t, Match(fixture()[0], Criteria{State: domain.StatusNew}))
	assert.False(t, Match(fixture()[0], Criteria{State: domain.StatusLost}))
}
