package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/medstock/medstock-backend/api/controllers"
	"github.com/medstock/medstock-backend/api/middleware"
	authsvc "github.com/medstock/medstock-backend/internal/auth"
	"github.com/medstock/medstock-backend/internal/authz"
	categorysvc "github.com/medstock/medstock-backend/internal/categories"
	dashboardsvc "github.com/medstock/medstock-backend/internal/dashboard"
	medicinesvc "github.com/medstock/medstock-backend/internal/medicines"
	operatorsvc "github.com/medstock/medstock-backend/internal/operators"
	suppliersvc "github.com/medstock/medstock-backend/internal/suppliers"
	transactionsvc "github.com/medstock/medstock-backend/internal/transactions"
	"github.com/medstock/medstock-backend/pkg/config"
	"github.com/medstock/medstock-backend/pkg/db"
	"github.com/medstock/medstock-backend/pkg/logger"
	"github.com/medstock/medstock-backend/pkg/metrics"
	pkgredis "github.com/medstock/medstock-backend/pkg/redis"
)

// Services bundles every domain service the router wires handlers to.
type Services struct {
	Auth         *authsvc.Service
	Suppliers    *suppliersvc.Service
	Categories   *categorysvc.Service
	Medicines    *medicinesvc.Service
	Transactions *transactionsvc.Service
	Operators    *operatorsvc.Service
	Dashboard    *dashboardsvc.Service
}

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisClient *pkgredis.Client,
	httpMetrics *metrics.HTTPMetrics,
	promRegistry *prometheus.Registry,
	svcs Services,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(httpMetrics),
	)

	// A typed nil pointer would slip past the middleware's nil checks once
	// boxed in an interface.
	var idemStore pkgredis.IdempotencyStore
	var limiterStore middleware.RateLimiterStore
	var redisPinger pkgredis.Pinger
	if redisClient != nil {
		idemStore = redisClient
		limiterStore = redisClient
		redisPinger = redisClient
	}

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)
	registerPolicy := middleware.NewAuthRateLimitPolicy(
		"register",
		cfg.AuthRateLimit.RegisterWindow,
		cfg.AuthRateLimit.RegisterIPLimit,
		cfg.AuthRateLimit.RegisterEmailLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, dbP, redisPinger, logg))
	})

	if promRegistry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(promRegistry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(registerPolicy, limiterStore, logg)).Post("/register", controllers.Register(svcs.Auth, logg))
		r.With(middleware.AuthRateLimit(loginPolicy, limiterStore, logg)).Post("/login", controllers.Login(svcs.Auth, logg))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, logg))
		r.Use(middleware.Idempotency(idemStore, cfg.Idempotency.TTL, logg))

		r.Route("/suppliers", func(r chi.Router) {
			r.With(middleware.RequireAction(authz.ActionCatalogRead, logg)).Get("/", controllers.ListSuppliers(svcs.Suppliers, logg))
			r.With(middleware.RequireAction(authz.ActionCatalogRead, logg)).Get("/{id}", controllers.GetSupplier(svcs.Suppliers, logg))
			r.With(middleware.RequireAction(authz.ActionSupplierWrite, logg)).Post("/", controllers.CreateSupplier(svcs.Suppliers, logg))
			r.With(middleware.RequireAction(authz.ActionSupplierWrite, logg)).Put("/{id}", controllers.UpdateSupplier(svcs.Suppliers, logg))
			r.With(middleware.RequireAction(authz.ActionSupplierWrite, logg)).Delete("/{id}", controllers.DeleteSupplier(svcs.Suppliers, logg))
		})

		r.Route("/categories", func(r chi.Router) {
			r.With(middleware.RequireAction(authz.ActionCatalogRead, logg)).Get("/", controllers.ListCategories(svcs.Categories, logg))
			r.With(middleware.RequireAction(authz.ActionCatalogRead, logg)).Get("/{id}", controllers.GetCategory(svcs.Categories, logg))
			r.With(middleware.RequireAction(authz.ActionCategoryWrite, logg)).Post("/", controllers.CreateCategory(svcs.Categories, logg))
			r.With(middleware.RequireAction(authz.ActionCategoryWrite, logg)).Put("/{id}", controllers.UpdateCategory(svcs.Categories, logg))
			r.With(middleware.RequireAction(authz.ActionCategoryWrite, logg)).Delete("/{id}", controllers.DeleteCategory(svcs.Categories, logg))
		})

		r.Route("/medicines", func(r chi.Router) {
			r.With(middleware.RequireAction(authz.ActionCatalogRead, logg)).Get("/", controllers.ListMedicines(svcs.Medicines, logg))
			r.With(middleware.RequireAction(authz.ActionCatalogRead, logg)).Get("/{id}", controllers.GetMedicine(svcs.Medicines, logg))
			r.With(middleware.RequireAction(authz.ActionMedicineWrite, logg)).Post("/", controllers.CreateMedicine(svcs.Medicines, logg))
			r.With(middleware.RequireAction(authz.ActionMedicineWrite, logg)).Put("/{id}", controllers.UpdateMedicine(svcs.Medicines, logg))
			r.With(middleware.RequireAction(authz.ActionMedicineOpname, logg)).Put("/{id}/stock-opname", controllers.ConfirmStockOpname(svcs.Medicines, logg))
			r.With(middleware.RequireAction(authz.ActionMedicineWrite, logg)).Delete("/{id}", controllers.DeleteMedicine(svcs.Medicines, logg))
		})

		r.Route("/transactions", func(r chi.Router) {
			r.With(middleware.RequireAction(authz.ActionTransactionCreate, logg)).Post("/", controllers.ProcessTransaction(svcs.Transactions, logg))
			r.With(middleware.RequireAction(authz.ActionCatalogRead, logg)).Get("/", controllers.ListTransactions(svcs.Transactions, logg))
			r.With(middleware.RequireAction(authz.ActionCatalogRead, logg)).Get("/{id}", controllers.GetTransaction(svcs.Transactions, logg))
			r.With(middleware.RequireAction(authz.ActionTransactionManage, logg)).Patch("/{id}", controllers.CorrectTransaction(svcs.Transactions, logg))
			r.With(middleware.RequireAction(authz.ActionTransactionManage, logg)).Delete("/{id}", controllers.DeleteTransaction(svcs.Transactions, logg))
		})

		r.Route("/operators", func(r chi.Router) {
			r.With(middleware.RequireAction(authz.ActionCatalogRead, logg)).Get("/", controllers.ListOperators(svcs.Operators, logg))
			r.With(middleware.RequireAction(authz.ActionCatalogRead, logg)).Get("/{id}", controllers.GetOperator(svcs.Operators, logg))
			r.With(middleware.RequireAction(authz.ActionOperatorManage, logg)).Put("/{id}", controllers.UpdateOperator(svcs.Operators, logg))
			r.With(middleware.RequireAction(authz.ActionOperatorManage, logg)).Delete("/{id}", controllers.DeleteOperator(svcs.Operators, logg))
		})

		r.With(middleware.RequireAction(authz.ActionDashboardView, logg)).Get("/dashboard", controllers.Dashboard(svcs.Dashboard, logg))
	})

	return r
}
