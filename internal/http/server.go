package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog"

	"crowdspark-backend-go/internal/config"
	"crowdspark-backend-go/internal/services"
)

type Server struct {
	DB       *sqlx.DB
	Config   config.Config
	Tokens   services.TokenService
	Payments services.PaymentIntentCreator
	Live     *services.LiveHub
	Log      zerolog.Logger
}

func NewServer(db *sqlx.DB, cfg config.Config, hub *services.LiveHub, logger zerolog.Logger) *Server {
	tokens := services.TokenService{
		Secret:      []byte(cfg.JWTSecret),
		Issuer:      cfg.JWTIssuer,
		TokenTTL:    time.Duration(cfg.TokenTTLSeconds) * time.Second,
		RememberTTL: time.Duration(cfg.RememberTTLSeconds) * time.Second,
	}
	return &Server{
		DB:       db,
		Config:   cfg,
		Tokens:   tokens,
		Payments: services.StripePayments{SecretKey: cfg.StripeSecretKey},
		Live:     hub,
		Log:      logger,
	}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(RequestID)
	r.Use(RequestLogger(s.Log))
	if len(s.Config.CorsOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   s.Config.CorsOrigins,
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
			AllowCredentials: false,
			MaxAge:           300,
		}))
	}

	r.Route("/api", func(api chi.Router) {
		api.Route("/users", func(users chi.Router) {
			users.Post("/login", s.Login)
			users.Post("/register", s.Register)

			users.Group(func(priv chi.Router) {
				priv.Use(WithAuth(s.Tokens))
				priv.Get("/get-current-user", s.GetCurrentUser)
				priv.Put("/update-profile", s.UpdateProfile)
				priv.Put("/change-password", s.ChangePassword)
				priv.With(RequireAdmin).Get("/all-users", s.ListUsers)
				priv.With(RequireAdmin).Put("/update/{userId}", s.UpdateUser)
				priv.With(RequireAdmin).Delete("/delete/{userId}", s.DeleteUser)
			})
		})

		api.Route("/campaigns", func(campaigns chi.Router) {
			campaigns.Use(WithAuth(s.Tokens))
			campaigns.Get("/get-all", s.ListCampaigns)
			campaigns.Get("/get/{campaignId}", s.GetCampaign)
			campaigns.Post("/create", s.CreateCampaign)
			campaigns.Put("/update/{campaignId}", s.UpdateCampaign)
			campaigns.With(RequireAdmin).Delete("/delete/{campaignId}", s.DeleteCampaign)
		})

		api.Route("/donations", func(donations chi.Router) {
			donations.Use(WithAuth(s.Tokens))
			donations.With(RequireAdmin).Get("/get-all", s.ListDonations)
			donations.Get("/get-donations-by-user/{userId}", s.ListDonationsByUser)
			donations.Post("/create", s.CreateDonation)
		})

		api.With(WithAuth(s.Tokens)).Post("/payments/create-payment-intent", s.CreatePaymentIntent)

		api.Route("/reports", func(reports chi.Router) {
			reports.Use(WithAuth(s.Tokens))
			reports.With(RequireAdmin).Get("/admin-reports", s.AdminReports)
			reports.With(RequireAdmin).Get("/admin-reports/export", s.ExportAdminReport)
			reports.Get("/user-reports/{userId}", s.UserReports)
			reports.Get("/user-reports/{userId}/export", s.ExportUserReport)
		})

		api.Route("/admin", func(admin chi.Router) {
			admin.Use(WithAuth(s.Tokens))
			admin.Use(RequireAdmin)
			admin.Get("/metrics/history", s.MetricsHistory)
		})
	})

	r.Get("/ws/live", s.LiveSocket)
	return r
}
