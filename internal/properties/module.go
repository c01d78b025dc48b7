// Package properties serves the public listings and the no-results alert funnel.
package properties

import (
	"context"
	"time"

	"inmobiliaria_backend/internal/events"
	apphttp "inmobiliaria_backend/internal/http"
	"inmobiliaria_backend/internal/properties/catalog"
	"inmobiliaria_backend/internal/properties/handler"
	"inmobiliaria_backend/platform/config"
	"inmobiliaria_backend/platform/httpkit"
	"inmobiliaria_backend/platform/logger"
	"inmobiliaria_backend/platform/validator"

	"github.com/redis/go-redis/v9"
)

const alertsPerMinute = 5

// Module is the properties bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	alerts  *httpkit.IPRateLimiter
	closers []func() error
}

// NewModule assembles the catalog: the CMS when configured, the YAML file
// as fallback (or sole source), and Redis in front when available.
func NewModule(cfg config.CatalogConfig, eventBus events.Bus, val *validator.Validator, log *logger.Logger) (*Module, error) {
	m := &Module{alerts: httpkit.NewPerMinuteLimiter(alertsPerMinute, log)}

	source, err := buildSource(cfg, log)
	if err != nil {
		return nil, err
	}

	var invalidator handler.Invalidator
	if redisURL := cfg.GetRedisURL(); redisURL != "" {
		opt, err := redis.ParseURL(redisURL)
		if err != nil {
			return nil, err
		}
		rdb := redis.NewClient(opt)
		cached := catalog.NewCachedSource(source, rdb, cfg.GetCatalogCacheTTL(), log)
		source, invalidator = cached, cached
		m.closers = append(m.closers, rdb.Close)
	}

	m.handler = handler.New(source, invalidator, eventBus, val)
	return m, nil
}

func buildSource(cfg config.CatalogConfig, log *logger.Logger) (catalog.Source, error) {
	var file catalog.Source
	if path := cfg.GetCatalogFile(); path != "" {
		loaded, err := catalog.LoadFile(path)
		if err != nil {
			return nil, err
		}
		file = loaded
	}

	if cfg.GetSanityProjectID() == "" {
		if file == nil {
			log.Warn("no property catalog configured, listings will be empty")
			return catalog.NewStaticSource(nil), nil
		}
		return file, nil
	}

	cms := catalog.NewSanityClient(catalog.SanityConfig{
		ProjectID:  cfg.GetSanityProjectID(),
		Dataset:    cfg.GetSanityDataset(),
		APIVersion: cfg.GetSanityAPIVersion(),
		Token:      cfg.GetSanityToken(),
		Timeout:    5 * time.Second,
	}, log)
	if file == nil {
		return cms, nil
	}
	return catalog.NewFallback(cms, file, func(op string, err error) {
		log.Warn("cms unavailable, serving file catalog", "op", op, "error", err)
	}), nil
}

func (m *Module) Name() string {
	return "properties"
}

func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.handler.RegisterPublicRoutes(ctx.V1, m.alerts.RateLimit())
	m.handler.RegisterAdminRoutes(ctx.Admin)
}

// Close releases the cache connection.
func (m *Module) Close(context.Context) error {
	for _, closeFn := range m.closers {
		if err := closeFn(); err != nil {
			return err
		}
	}
	return nil
}

var _ apphttp.Module = (*Module)(nil)
