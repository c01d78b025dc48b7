// Package search narrows the public property list by the site's search
// form. Every criterion is optional and present criteria are ANDed.
package search

import (
	"strconv"
	"strings"

	"inmobiliaria_backend/internal/properties/domain"
)

// Sentinel values the search form sends for "no constraint".
const (
	anyType   = "all"
	anyTypeES = "todos"
	anyZone   = "todas"
	noLimit   = "sin-limite"

	// topPriceBracket is the "300.000€+" option: a floor, not a ceiling.
	topPriceBracket = "300000"
)

// Operations offered by the search form.
const (
	OperationBuy  = "comprar"
	OperationRent = "alquilar"
)

// Criteria is the raw search form state.
type Criteria struct {
	Operation    string
	PropertyType string
	Zone         string
	MaxPrice     string
	Status       string
}

// Normalize trims every value and derives Status from Operation when no
// explicit status was chosen.
func (c Criteria) Normalize() Criteria {
	c.Operation = strings.TrimSpace(c.Operation)
	c.PropertyType = strings.TrimSpace(c.PropertyType)
	c.Zone = strings.TrimSpace(c.Zone)
	c.MaxPrice = strings.TrimSpace(c.MaxPrice)
	c.Status = strings.TrimSpace(c.Status)

	if isAny(c.Status) {
		switch c.Operation {
		case OperationBuy:
			c.Status = domain.StatusForSale
		case OperationRent:
			c.Status = domain.StatusForRent
		}
	}
	return c
}

// Filter returns the properties matching c in their original order.
func Filter(properties []domain.Property, c Criteria) []domain.Property {
	c = c.Normalize()
	priceMatch := priceMatcher(c.MaxPrice)
	zone := strings.ToLower(c.Zone)

	out := make([]domain.Property, 0, len(properties))
	for _, p := range properties {
		if !isAny(c.PropertyType) && p.PropertyType != c.PropertyType {
			continue
		}
		if !isAny(c.Status) && p.Status != c.Status {
			continue
		}
		if zone != "" && zone != anyZone && !strings.Contains(strings.ToLower(p.Location), zone) {
			continue
		}
		if !priceMatch(p.Price) {
			continue
		}
		out = append(out, p)
	}
	return out
}

func isAny(v string) bool {
	return v == "" || v == anyType || v == anyTypeES
}

// priceMatcher interprets a price bracket. The top bracket keeps listings
// at or above it; any other number keeps listings at or below it.
// Unparsable brackets do not constrain.
func priceMatcher(bracket string) func(int64) bool {
	if bracket == "" || bracket == noLimit {
		return func(int64) bool { return true }
	}
	limit, err := strconv.ParseInt(bracket, 10, 64)
	if err != nil {
		return func(int64) bool { return true }
	}
	if bracket == topPriceBracket {
		return func(price int64) bool { return price >= limit }
	}
	return func(price int64) bool { return price <= limit }
}

// Featured returns the listings flagged for the home page, in order.
func Featured(properties []domain.Property) []domain.Property {
	out := make([]domain.Property, 0, len(properties))
	for _, p := range properties {
		if p.IsFeatured {
			out = append(out, p)
		}
	}
	return out
}
