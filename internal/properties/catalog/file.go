package catalog

import (
	"context"
	"fmt"
	"os"
	"sort"

	"inmobiliaria_backend/internal/properties/domain"
	"inmobiliaria_backend/internal/properties/search"

	"gopkg.in/yaml.v3"
)

// FileSource serves a catalog loaded once from a YAML document with a
// top-level "properties" list. Used offline and when the CMS is down.
type FileSource struct {
	properties []domain.Property
}

type catalogFile struct {
	Properties []domain.Property `yaml:"properties"`
}

// LoadFile reads and parses path.
func LoadFile(path string) (*FileSource, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return ParseFile(data)
}

// ParseFile parses a YAML catalog document.
func ParseFile(data []byte) (*FileSource, error) {
	var doc catalogFile
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	return NewStaticSource(doc.Properties), nil
}

// NewStaticSource serves props as given, newest first.
func NewStaticSource(props []domain.Property) *FileSource {
	sorted := append([]domain.Property(nil), props...)
	// createdAt is RFC 3339, so lexical order is chronological.
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt > sorted[j].CreatedAt
	})
	return &FileSource{properties: sorted}
}

func (f *FileSource) All(context.Context) ([]domain.Property, error) {
	return append([]domain.Property{}, f.properties...), nil
}

func (f *FileSource) Featured(context.Context) ([]domain.Property, error) {
	return search.Featured(f.properties), nil
}

func (f *FileSource) BySlug(_ context.Context, slug string) (domain.Property, error) {
	for _, p := range f.properties {
		if p.Slug.Current == slug {
			return p, nil
		}
	}
	return domain.Property{}, ErrNotFound
}
