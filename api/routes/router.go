package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/MrJigi/mechhive-assignment-app/api/controllers"
	"github.com/MrJigi/mechhive-assignment-app/api/middleware"
	"github.com/MrJigi/mechhive-assignment-app/internal/filters"
	"github.com/MrJigi/mechhive-assignment-app/pkg/config"
	"github.com/MrJigi/mechhive-assignment-app/pkg/logger"
	"github.com/MrJigi/mechhive-assignment-app/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	catalogService controllers.CatalogService,
	listingCache controllers.ListingCache,
	redisPinger redis.Pinger,
	registry *prometheus.Registry,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.App.CORSOrigins),
	)

	codec := filters.NewCodec(cfg.Catalog.PriceCeiling)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, catalogService, redisPinger))
	})

	if registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1/shop", func(r chi.Router) {
		r.Get("/products", controllers.ShopProducts(catalogService, codec, listingCache, cfg.Redis.ListingTTL, logg))
		r.Get("/products/{productId}", controllers.ShopProduct(catalogService, logg))
		r.Get("/categories", controllers.ShopCategories(catalogService, logg))
		r.Get("/brands", controllers.ShopBrands(catalogService, logg))
	})

	return r
}
