package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"inmobiliaria_backend/internal/properties/domain"
	"inmobiliaria_backend/platform/logger"
)

const propertyProjection = `{
  _id, title, slug,
  mainImage { asset, alt },
  gallery[] { asset, alt },
  price, location, neighborhood,
  geoLocation { lat, lng },
  bedrooms, bathrooms, squareMeters,
  description, features, propertyType, status, isFeatured, createdAt
}`

const (
	queryAll      = `*[_type == "property"] | order(createdAt desc) ` + propertyProjection
	queryFeatured = `*[_type == "property" && isFeatured == true] | order(createdAt desc) ` + propertyProjection
	queryBySlug   = `*[_type == "property" && slug.current == $slug][0] ` + propertyProjection
)

// SanityConfig identifies the CMS dataset to query.
type SanityConfig struct {
	ProjectID  string
	Dataset    string
	APIVersion string
	// Token is optional; without it the public CDN endpoint is used.
	Token   string
	BaseURL string
	Timeout time.Duration
}

// SanityClient runs GROQ queries against the Sanity HTTP query API.
type SanityClient struct {
	client   *http.Client
	endpoint string
	token    string
	log      *logger.Logger
}

func NewSanityClient(cfg SanityConfig, log *logger.Logger) *SanityClient {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	base := strings.TrimRight(cfg.BaseURL, "/")
	if base == "" {
		host := "api.sanity.io"
		if cfg.Token == "" {
			host = "apicdn.sanity.io"
		}
		base = fmt.Sprintf("https://%s.%s", cfg.ProjectID, host)
	}

	return &SanityClient{
		client:   &http.Client{Timeout: timeout},
		endpoint: fmt.Sprintf("%s/v%s/data/query/%s", base, strings.TrimPrefix(cfg.APIVersion, "v"), cfg.Dataset),
		token:    cfg.Token,
		log:      log,
	}
}

func (c *SanityClient) All(ctx context.Context) ([]domain.Property, error) {
	var props []domain.Property
	if err := c.query(ctx, queryAll, nil, &props); err != nil {
		return nil, err
	}
	return nonNil(props), nil
}

func (c *SanityClient) Featured(ctx context.Context) ([]domain.Property, error) {
	var props []domain.Property
	if err := c.query(ctx, queryFeatured, nil, &props); err != nil {
		return nil, err
	}
	return nonNil(props), nil
}

func (c *SanityClient) BySlug(ctx context.Context, slug string) (domain.Property, error) {
	var prop *domain.Property
	if err := c.query(ctx, queryBySlug, map[string]string{"slug": slug}, &prop); err != nil {
		return domain.Property{}, err
	}
	if prop == nil {
		return domain.Property{}, ErrNotFound
	}
	return *prop, nil
}

type queryResponse struct {
	Result json.RawMessage `json:"result"`
}

func (c *SanityClient) query(ctx context.Context, groq string, params map[string]string, out any) error {
	values := url.Values{}
	values.Set("query", groq)
	for name, value := range params {
		// Query parameters are JSON literals.
		encoded, err := json.Marshal(value)
		if err != nil {
			return err
		}
		values.Set("$"+name, string(encoded))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"?"+values.Encode(), nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		c.log.Error("sanity request failed", "error", err)
		return err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		c.log.Error("sanity upstream error", "status", resp.StatusCode)
		return fmt.Errorf("upstream api error: %d", resp.StatusCode)
	}

	var body queryResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		c.log.Error("failed to decode sanity payload", "error", err)
		return err
	}
	if len(body.Result) == 0 {
		return nil
	}
	return json.Unmarshal(body.Result, out)
}

func nonNil(props []domain.Property) []domain.Property {
	if props == nil {
		return []domain.Property{}
	}
	return props
}
