// Package catalog reads property listings from the CMS, a local YAML file,
// or a Redis cache in front of either.
package catalog

import (
	"context"
	"errors"

	"inmobiliaria_backend/internal/properties/domain"
)

// ErrNotFound is returned by BySlug for an unknown slug.
var ErrNotFound = errors.New("property not found")

// Source is a read-only property catalog.
type Source interface {
	// All returns every listing, newest first.
	All(ctx context.Context) ([]domain.Property, error)
	// Featured returns the listings flagged for the home page, newest first.
	Featured(ctx context.Context) ([]domain.Property, error)
	BySlug(ctx context.Context, slug string) (domain.Property, error)
}

// Fallback serves from primary and switches to secondary when primary fails.
// A not-found answer from primary is final.
type Fallback struct {
	primary   Source
	secondary Source
	onError   func(op string, err error)
}

func NewFallback(primary, secondary Source, onError func(op string, err error)) *Fallback {
	return &Fallback{primary: primary, secondary: secondary, onError: onError}
}

func (f *Fallback) All(ctx context.Context) ([]domain.Property, error) {
	props, err := f.primary.All(ctx)
	if err == nil {
		return props, nil
	}
	f.report("all", err)
	return f.secondary.All(ctx)
}

func (f *Fallback) Featured(ctx context.Context) ([]domain.Property, error) {
	props, err := f.primary.Featured(ctx)
	if err == nil {
		return props, nil
	}
	f.report("featured", err)
	return f.secondary.Featured(ctx)
}

func (f *Fallback) BySlug(ctx context.Context, slug string) (domain.Property, error) {
	prop, err := f.primary.BySlug(ctx, slug)
	if err == nil || errors.Is(err, ErrNotFound) {
		return prop, err
	}
	f.report("by_slug", err)
	return f.secondary.BySlug(ctx, slug)
}

func (f *Fallback) report(op string, err error) {
	if f.onError != nil {
		f.onError(op, err)
	}
}
