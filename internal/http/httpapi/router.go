package httpapi

import (
	stdhttp "net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"crowdpay/internal/http/handlers"
	"crowdpay/internal/infra"
	appmw "crowdpay/internal/middleware"
)

func NewRouter(app *handlers.App, cfg *infra.Config, logger zerolog.Logger, lookup appmw.CountryLookup) stdhttp.Handler {
	r := chi.NewRouter()

	r.Use(
		appmw.RequestID,
		chimw.RealIP,
		chimw.Recoverer,
		appmw.Logger(logger),
		appmw.CORS(cfg.CORSOrigins),
		appmw.I18N("en", lookup),
		appmw.RateLimit(cfg.RateLimitPerMin, time.Minute),
	)

	r.Get("/v1/healthz", app.Health)

	r.Post("/v1/invoices", app.InvoicesCreate)

	r.Route("/v1/campaigns", func(r chi.Router) {
		r.Get("/demo", app.CampaignsListDemo)
		r.Get("/{campaignRef}", app.CampaignGet)
		r.Get("/{campaignRef}/contributions", app.ContributionsList)
		r.Post("/{campaignRef}/contributions", app.ContributionsCreate)
		r.Get("/{campaignRef}/live", app.CampaignLive)

		r.Group(func(r chi.Router) {
			r.Use(appmw.AuthJWT(cfg.JWTSecret))
			r.Post("/", app.CampaignsCreate)
			r.Get("/", app.CampaignsListOwn)
			r.Post("/{campaignRef}/cover", app.CampaignCoverUpload)
			r.Get("/{campaignRef}/export", app.CampaignExport)
		})
	})

	r.Group(func(r chi.Router) {
		r.Use(appmw.AuthJWT(cfg.JWTSecret))
		r.Post("/v1/wallet", app.WalletProvision)
	})

	// Uploaded cover images under app.FileBaseURL.
	if app.Files != nil {
		fs := stdhttp.StripPrefix("/static/", stdhttp.FileServer(stdhttp.Dir(app.Files.BasePath())))
		r.Handle("/static/*", fs)
	}

	return r
}
