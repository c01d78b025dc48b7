package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// FlexString accepts a JSON string or number and keeps it as text. The form
// sends square meters and room counts as strings, older clients as numbers.
// A numeric zero means the field was left unanswered and decodes as empty.
type FlexString string

func (f *FlexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = FlexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("expected string or number, got %s", data)
	}
	if v, err := n.Float64(); err == nil && v == 0 {
		*f = ""
		return nil
	}
	*f = FlexString(n.String())
	return nil
}

// Int parses the value as an integer; ok is false when it is not one.
func (f FlexString) Int() (int, bool) {
	n, err := strconv.Atoi(string(f))
	return n, err == nil
}

// leadWire is the flat JSON shape shared by the intake form, the admin UI
// and the automation webhook. Only the active variant pointer is set.
type leadWire struct {
	ID           string   `json:"id"`
	Tipo         LeadType `json:"tipo"`
	Nombre       string   `json:"nombre"`
	Email        string   `json:"email"`
	Whatsapp     string   `json:"whatsapp"`
	WhatsappE164 string   `json:"whatsappE164,omitempty"`
	Mensaje      string   `json:"mensaje,omitempty"`

	*BuyerDetails
	*SellerDetails
	*RenterDetails

	Score          int            `json:"score"`
	ScoreFactors   map[string]int `json:"scoreFactors,omitempty"`
	Estado         Status         `json:"estado"`
	AgenteAsignado *string        `json:"agenteAsignado,omitempty"`
	Notas          *string        `json:"notas,omitempty"`
	CreatedAt      time.Time      `json:"createdAt"`
	UpdatedAt      time.Time      `json:"updatedAt"`
}

func (l Lead) MarshalJSON() ([]byte, error) {
	w := leadWire{
		ID:             l.ID,
		Tipo:           l.Tipo,
		Nombre:         l.Nombre,
		Email:          l.Email,
		Whatsapp:       l.Whatsapp,
		WhatsappE164:   l.WhatsappE164,
		Mensaje:        l.Mensaje,
		Score:          l.Score,
		ScoreFactors:   l.ScoreFactors,
		Estado:         l.Estado,
		AgenteAsignado: l.AgenteAsignado,
		Notas:          l.Notas,
		CreatedAt:      l.CreatedAt,
		UpdatedAt:      l.UpdatedAt,
	}
	switch d := l.Details.(type) {
	case BuyerDetails:
		w.BuyerDetails = &d
	case SellerDetails:
		w.SellerDetails = &d
	case RenterDetails:
		w.RenterDetails = &d
	}
	return json.Marshal(w)
}

func (l *Lead) UnmarshalJSON(data []byte) error {
	var w leadWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	tipo, _ := ParseLeadType(string(w.Tipo))
	*l = Lead{
		ID:             w.ID,
		Tipo:           tipo,
		Nombre:         w.Nombre,
		Email:          w.Email,
		Whatsapp:       w.Whatsapp,
		WhatsappE164:   w.WhatsappE164,
		Mensaje:        w.Mensaje,
		Details:        pickDetails(tipo, w.BuyerDetails, w.SellerDetails, w.RenterDetails),
		Score:          w.Score,
		ScoreFactors:   w.ScoreFactors,
		Estado:         w.Estado,
		AgenteAsignado: w.AgenteAsignado,
		Notas:          w.Notas,
		CreatedAt:      w.CreatedAt,
		UpdatedAt:      w.UpdatedAt,
	}
	return nil
}

func pickDetails(t LeadType, b *BuyerDetails, s *SellerDetails, r *RenterDetails) Details {
	switch t {
	case TypeBuyer:
		if b != nil {
			return *b
		}
	case TypeSeller:
		if s != nil {
			return *s
		}
	case TypeRenter:
		if r != nil {
			return *r
		}
	}
	return EmptyDetails(t)
}

// MarshalDetails encodes only the variant fields, for storage columns.
func MarshalDetails(d Details) ([]byte, error) {
	if d == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(d)
}

// UnmarshalDetails decodes a storage column back into the variant for t.
func UnmarshalDetails(t LeadType, data []byte) (Details, error) {
	switch t {
	case TypeBuyer:
		var d BuyerDetails
		err := json.Unmarshal(data, &d)
		return d, err
	case TypeSeller:
		var d SellerDetails
		err := json.Unmarshal(data, &d)
		return d, err
	case TypeRenter:
		var d RenterDetails
		err := json.Unmarshal(data, &d)
		return d, err
	}
	return nil, fmt.Errorf("unknown lead type %q", t)
}

// MergeDetails overlays fields (keyed by JSON name) on the variant for t.
// Keys belonging to other variants are dropped; an empty value clears.
func MergeDetails(t LeadType, current Details, fields map[string]string) (Details, error) {
	if current == nil {
		current = EmptyDetails(t)
	}
	raw, err := MarshalDetails(current)
	if err != nil {
		return nil, err
	}
	merged := make(map[string]any)
	if err := json.Unmarshal(raw, &merged); err != nil {
		return nil, err
	}
	for k, v := range fields {
		merged[k] = v
	}
	raw, err = json.Marshal(merged)
	if err != nil {
		return nil, err
	}
	return UnmarshalDetails(t, raw)
}
