package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/classcooks/classcooks-backend/api/controllers"
	"github.com/classcooks/classcooks-backend/api/middleware"
	cartsvc "github.com/classcooks/classcooks-backend/internal/cart"
	"github.com/classcooks/classcooks-backend/internal/orders"
	"github.com/classcooks/classcooks-backend/internal/recipes"
	"github.com/classcooks/classcooks-backend/internal/schools"
	"github.com/classcooks/classcooks-backend/pkg/config"
	"github.com/classcooks/classcooks-backend/pkg/logger"
	"github.com/classcooks/classcooks-backend/pkg/metrics"
)

type Deps struct {
	Config          *config.Config
	Logger          *logger.Logger
	Metrics         *metrics.HTTPMetrics
	MetricsGatherer http.Handler
	DB              controllers.Pinger
	Cache           controllers.Pinger
	Cart            cartsvc.Service
	Orders          orders.Service
	Recipes         recipes.Service
	Schools         schools.Service
}

func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(deps.Metrics),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, deps.DB, deps.Cache))
	})

	if deps.MetricsGatherer != nil {
		r.Method(http.MethodGet, "/metrics", deps.MetricsGatherer)
	} else {
		r.Method(http.MethodGet, "/metrics", promhttp.Handler())
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, logg))

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", controllers.CartGet(deps.Cart, logg))
			r.Delete("/", controllers.CartClear(deps.Cart, logg))
			r.Post("/lines", controllers.CartAddLine(deps.Cart, logg))
			r.Route("/lines/{recipeId}/{classId}", func(r chi.Router) {
				r.Delete("/", controllers.CartRemoveLine(deps.Cart, logg))
				r.Patch("/quantity", controllers.CartUpdateQuantity(deps.Cart, logg))
				r.Patch("/notes", controllers.CartUpdateNotes(deps.Cart, logg))
				r.Patch("/date", controllers.CartUpdateDate(deps.Cart, logg))
				r.Patch("/class", controllers.CartUpdateClass(deps.Cart, logg))
			})
		})

		r.Post("/orders", controllers.OrderSubmit(deps.Orders, deps.Cart, logg))
		r.Get("/orders/{orderId}", controllers.OrderGet(deps.Orders, logg))
		r.Get("/classes/{classId}/order", controllers.ClassOrderGet(deps.Orders, logg))

		r.Get("/recipes", controllers.RecipeList(deps.Recipes, logg))
		r.Get("/recipes/{recipeId}", controllers.RecipeGet(deps.Recipes, logg))

		r.Get("/schools", controllers.SchoolList(deps.Schools, logg))
		r.Get("/schools/{schoolId}", controllers.SchoolGet(deps.Schools, logg))
		r.Get("/schools/{schoolId}/classes", controllers.SchoolClasses(deps.Schools, logg))
	})

	r.Route("/api/admin/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, logg))
		r.Use(middleware.RequireAdmin(logg))

		r.Get("/orders", controllers.OrderList(deps.Orders, logg))
		r.Post("/orders/{orderId}/status", controllers.AdminOrderTransition(deps.Orders, logg))
		r.Post("/orders/{orderId}/complete", controllers.AdminOrderComplete(deps.Orders, logg))
		r.Post("/orders/{orderId}/items/{itemId}/stage", controllers.AdminOrderItemTransition(deps.Orders, logg))

		r.Post("/recipes", controllers.RecipeCreate(deps.Recipes, logg))
		r.Patch("/recipes/{recipeId}", controllers.RecipeUpdate(deps.Recipes, logg))
		r.Delete("/recipes/{recipeId}", controllers.RecipeDelete(deps.Recipes, logg))
	})

	return r
}
