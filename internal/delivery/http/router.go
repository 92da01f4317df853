package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/kosarinj/lilys-dogboarding-app/internal/config"
	authhandler "github.com/kosarinj/lilys-dogboarding-app/internal/delivery/http/handler/auth"
	billhandler "github.com/kosarinj/lilys-dogboarding-app/internal/delivery/http/handler/bill"
	customerhandler "github.com/kosarinj/lilys-dogboarding-app/internal/delivery/http/handler/customer"
	doghandler "github.com/kosarinj/lilys-dogboarding-app/internal/delivery/http/handler/dog"
	payhandler "github.com/kosarinj/lilys-dogboarding-app/internal/delivery/http/handler/payment"
	ratehandler "github.com/kosarinj/lilys-dogboarding-app/internal/delivery/http/handler/rate"
	settinghandler "github.com/kosarinj/lilys-dogboarding-app/internal/delivery/http/handler/setting"
	stayhandler "github.com/kosarinj/lilys-dogboarding-app/internal/delivery/http/handler/stay"
	"github.com/kosarinj/lilys-dogboarding-app/internal/delivery/middleware"
	"github.com/kosarinj/lilys-dogboarding-app/internal/metrics"
	adminrepo "github.com/kosarinj/lilys-dogboarding-app/internal/repository/postgres/admin"
	billrepo "github.com/kosarinj/lilys-dogboarding-app/internal/repository/postgres/bill"
	customerrepo "github.com/kosarinj/lilys-dogboarding-app/internal/repository/postgres/customer"
	dogrepo "github.com/kosarinj/lilys-dogboarding-app/internal/repository/postgres/dog"
	payrepo "github.com/kosarinj/lilys-dogboarding-app/internal/repository/postgres/payment"
	raterepo "github.com/kosarinj/lilys-dogboarding-app/internal/repository/postgres/rate"
	settingrepo "github.com/kosarinj/lilys-dogboarding-app/internal/repository/postgres/setting"
	stayrepo "github.com/kosarinj/lilys-dogboarding-app/internal/repository/postgres/stay"
	authuc "github.com/kosarinj/lilys-dogboarding-app/internal/usecase/auth"
	billuc "github.com/kosarinj/lilys-dogboarding-app/internal/usecase/bill"
	customeruc "github.com/kosarinj/lilys-dogboarding-app/internal/usecase/customer"
	doguc "github.com/kosarinj/lilys-dogboarding-app/internal/usecase/dog"
	payuc "github.com/kosarinj/lilys-dogboarding-app/internal/usecase/payment"
	rateuc "github.com/kosarinj/lilys-dogboarding-app/internal/usecase/rate"
	settinguc "github.com/kosarinj/lilys-dogboarding-app/internal/usecase/setting"
	stayuc "github.com/kosarinj/lilys-dogboarding-app/internal/usecase/stay"
)

// Denylist records logged-out tokens until they expire.
type Denylist interface {
	Revoke(ctx context.Context, jti string, ttl time.Duration) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

type Deps struct {
	Config   config.Config
	DB       *pgxpool.Pool
	Denylist Denylist
	Log      *zap.Logger
}

func RegisterRoutes(app *fiber.App, d Deps) {
	cfg, db, log := d.Config, d.DB, d.Log

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"ok": true})
	})
	app.Get("/metrics", metrics.Handler())

	api := app.Group("/api")

	// Auth wiring
	adminFinder := adminrepo.NewAdminFinderAdapter(adminrepo.NewAdminRepo(db))
	loginUC := authuc.NewAdminLoginUsecase(adminFinder, d.Denylist, cfg.JWTSecret, cfg.JWTExpiresMinutes, log)
	loginHandler := authhandler.NewAdminLoginHandler(loginUC)
	meHandler := authhandler.NewAdminMeHandler()

	// Pricing configuration wiring
	rateUC := rateuc.New(raterepo.NewRateStoreAdapter(raterepo.NewRateRepo(db)))
	settingUC := settinguc.New(settingrepo.NewSettingStoreAdapter(settingrepo.NewSettingRepo(db)))

	// Business wiring
	customerUC := customeruc.New(customerrepo.NewCustomerStoreAdapter(customerrepo.NewCustomerRepo(db)))
	dogUC := doguc.New(dogrepo.NewDogStoreAdapter(dogrepo.NewDogRepo(db)))
	stayUC := stayuc.New(stayrepo.NewStayStoreAdapter(stayrepo.NewStayRepo(db)), rateUC, settingUC, log)
	billUC := billuc.New(billrepo.NewBillStoreAdapter(billrepo.NewBillRepo(db)), cfg.BillDueDays, log)
	payUC := payuc.New(payrepo.NewPaymentStoreAdapter(payrepo.NewPaymentRepo(db)), log)

	customerH := customerhandler.New(customerUC)
	dogH := doghandler.New(dogUC)
	rateH := ratehandler.New(rateUC)
	settingH := settinghandler.New(settingUC)
	stayH := stayhandler.New(stayUC)
	billH := billhandler.New(billUC)
	payH := payhandler.New(payUC)

	// Public routes
	api.Post("/admin/login", loginHandler.Handle)
	api.Get("/bills/code/:code", billH.GetByCode)

	// Protected admin group (MUST be defined before use)
	admin := api.Group("/admin", middleware.RequireAdminJWT(middleware.JWTConfig{
		Secret:      cfg.JWTSecret,
		Revocations: d.Denylist,
	}))

	admin.Get("/me", meHandler.Handle)
	admin.Post("/logout", loginHandler.Logout)

	// Customer routes
	admin.Post("/customers", customerH.Create)
	admin.Get("/customers", customerH.List)
	admin.Get("/customers/:id", customerH.GetByID)
	admin.Patch("/customers/:id", customerH.Update)
	admin.Delete("/customers/:id", customerH.Delete)

	// Dog routes
	admin.Post("/dogs", dogH.Create)
	admin.Get("/dogs", dogH.List)
	admin.Get("/dogs/:id", dogH.GetByID)
	admin.Patch("/dogs/:id", dogH.Update)
	admin.Delete("/dogs/:id", dogH.Delete)

	// Rate routes
	admin.Get("/rates", rateH.List)
	admin.Post("/rates/initialize", rateH.Initialize)
	admin.Get("/rates/:id", rateH.GetByID)
	admin.Patch("/rates/:id", rateH.Update)

	// Setting routes
	admin.Get("/settings", settingH.List)
	admin.Get("/settings/:key", settingH.Get)
	admin.Put("/settings/:key", settingH.Update)

	// Stay routes (quote before :id)
	admin.Post("/stays/quote", stayH.Quote)
	admin.Post("/stays", stayH.Create)
	admin.Get("/stays", stayH.List)
	admin.Get("/stays/:id", stayH.GetByID)
	admin.Put("/stays/:id", stayH.Update)
	admin.Patch("/stays/:id/status", stayH.UpdateStatus)
	admin.Delete("/stays/:id", stayH.Delete)

	// Bill routes (unbilled-stays before :id)
	admin.Get("/bills/unbilled-stays", billH.UnbilledStays)
	admin.Post("/bills", billH.Create)
	admin.Get("/bills", billH.List)
	admin.Get("/bills/:id", billH.Get)
	admin.Patch("/bills/:id/status", billH.UpdateStatus)
	admin.Delete("/bills/:id", billH.Delete)

	// Payment routes
	admin.Post("/bills/:id/payments", payH.CreateForBill)
	admin.Get("/bills/:id/payments", payH.ListForBill)
}
