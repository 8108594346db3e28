package handler

import (
	"net/http"

	"github.com/vfg2006/traffic-stats-sync/internal/api/handler/router"
	"github.com/vfg2006/traffic-stats-sync/internal/metrics"
	"github.com/vfg2006/traffic-stats-sync/pkg/middleware"
)

func Healthcheck(db Pinger) []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(db),
		},
	}
}

func Metrics(m *metrics.Metrics) []router.Route {
	return []router.Route{
		{
			Path:    "/metrics",
			Method:  http.MethodGet,
			Handler: m.Handler(),
		},
	}
}

func Sync(service SyncService, rewinder Rewinder) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/sync/:type/run",
			Method:      http.MethodPost,
			Handler:     RunSyncJob(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/sync/status",
			Method:      http.MethodGet,
			Handler:     GetSyncStatus(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOrSupervisor()},
		},
		{
			Path:        "/v1/accounts/:id/sync",
			Method:      http.MethodPost,
			Handler:     SyncAccount(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/accounts/:id/rewind",
			Method:      http.MethodPost,
			Handler:     RewindAccount(rewinder),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
	}
}

func Accounts(lister CampaignLister) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/accounts/:id/campaigns",
			Method:      http.MethodGet,
			Handler:     ListCampaigns(lister),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOrSupervisor()},
		},
	}
}

func Credentials(store CredentialStore) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/credentials",
			Method:      http.MethodPost,
			Handler:     CreateCredential(store),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
	}
}
