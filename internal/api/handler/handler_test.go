package handler_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/vfg2006/traffic-stats-sync/internal/api/handler"
	"github.com/vfg2006/traffic-stats-sync/internal/api/handler/mocks"
	"github.com/vfg2006/traffic-stats-sync/internal/domain"
	"github.com/vfg2006/traffic-stats-sync/internal/scheduler"
	"github.com/vfg2006/traffic-stats-sync/internal/usecases/syncing"
	"github.com/vfg2006/traffic-stats-sync/pkg/apiErrors"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func serve(method, pattern string, h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rt := httprouter.New()
	rt.Handler(method, pattern, h)

	rec := httptest.NewRecorder()
	rt.ServeHTTP(rec, req)
	return rec
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	var apiErr apiErrors.APIError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &apiErr))
	return apiErr.Code
}

func TestRunSyncJob(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		setup    func(service *mocks.MockSyncService)
		validate func(t *testing.T, rec *httptest.ResponseRecorder)
	}{
		{
			name: "dispara a rotina",
			path: "/v1/sync/hourly/run",
			setup: func(service *mocks.MockSyncService) {
				service.EXPECT().TriggerManualSync(scheduler.JobHourly).Return(nil)
			},
			validate: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, http.StatusAccepted, rec.Code)
				assert.Contains(t, rec.Body.String(), `"type":"hourly"`)
			},
		},
		{
			name:  "rotina desconhecida",
			path:  "/v1/sync/weekly/run",
			setup: func(service *mocks.MockSyncService) {},
			validate: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, http.StatusBadRequest, rec.Code)
				assert.Equal(t, apiErrors.ErrSyncUnknownJob, errorCode(t, rec))
			},
		},
		{
			name: "rotina já em andamento",
			path: "/v1/sync/full/run",
			setup: func(service *mocks.MockSyncService) {
				service.EXPECT().TriggerManualSync(scheduler.JobFull).Return(scheduler.ErrJobRunning)
			},
			validate: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, http.StatusConflict, rec.Code)
				assert.Equal(t, apiErrors.ErrSyncJobRunning, errorCode(t, rec))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			service := mocks.NewMockSyncService(ctrl)
			tt.setup(service)

			req := httptest.NewRequest(http.MethodPost, tt.path, nil)
			tt.validate(t, serve(http.MethodPost, "/v1/sync/:type/run", handler.RunSyncJob(service), req))
		})
	}
}

func TestGetSyncStatus(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service := mocks.NewMockSyncService(ctrl)
	service.EXPECT().GetStatus().Return(map[string]any{"enabled": true})

	req := httptest.NewRequest(http.MethodGet, "/v1/sync/status", nil)
	rec := serve(http.MethodGet, "/v1/sync/status", handler.GetSyncStatus(service), req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"enabled":true}`, rec.Body.String())
}

func TestSyncAccount(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		setup    func(service *mocks.MockSyncService)
		validate func(t *testing.T, rec *httptest.ResponseRecorder)
	}{
		{
			name: "escopo completo por padrão",
			path: "/v1/accounts/123/sync",
			setup: func(service *mocks.MockSyncService) {
				service.EXPECT().SyncAccount(gomock.Any(), "123", domain.SyncScopeFull).
					Return(&domain.AccountSyncReport{AccountID: "123", Scope: domain.SyncScopeFull, Stamped: true}, nil)
			},
			validate: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, http.StatusOK, rec.Code)

				var report domain.AccountSyncReport
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
				assert.Equal(t, "123", report.AccountID)
				assert.True(t, report.Stamped)
			},
		},
		{
			name: "escopo horário",
			path: "/v1/accounts/123/sync?scope=hourly",
			setup: func(service *mocks.MockSyncService) {
				service.EXPECT().SyncAccount(gomock.Any(), "123", domain.SyncScopeHourly).
					Return(&domain.AccountSyncReport{AccountID: "123", Scope: domain.SyncScopeHourly}, nil)
			},
			validate: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, http.StatusOK, rec.Code)
			},
		},
		{
			name:  "escopo inválido",
			path:  "/v1/accounts/123/sync?scope=monthly",
			setup: func(service *mocks.MockSyncService) {},
			validate: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, http.StatusBadRequest, rec.Code)
				assert.Equal(t, apiErrors.ErrInvalidRequest, errorCode(t, rec))
			},
		},
		{
			name: "conta ocupada",
			path: "/v1/accounts/123/sync",
			setup: func(service *mocks.MockSyncService) {
				service.EXPECT().SyncAccount(gomock.Any(), "123", domain.SyncScopeFull).Return(nil, scheduler.ErrAccountBusy)
			},
			validate: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, http.StatusConflict, rec.Code)
				assert.Equal(t, apiErrors.ErrSyncAccountBusy, errorCode(t, rec))
			},
		},
		{
			name: "conta não encontrada",
			path: "/v1/accounts/999/sync",
			setup: func(service *mocks.MockSyncService) {
				service.EXPECT().SyncAccount(gomock.Any(), "999", domain.SyncScopeFull).
					Return(nil, errors.Join(domain.ErrAccountNotFound, errors.New("999")))
			},
			validate: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, http.StatusNotFound, rec.Code)
				assert.Equal(t, apiErrors.ErrSyncAccountNotFound, errorCode(t, rec))
			},
		},
		{
			name: "conta desativada",
			path: "/v1/accounts/123/sync",
			setup: func(service *mocks.MockSyncService) {
				service.EXPECT().SyncAccount(gomock.Any(), "123", domain.SyncScopeFull).Return(nil, domain.ErrAccountInactive)
			},
			validate: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, http.StatusConflict, rec.Code)
				assert.Equal(t, apiErrors.ErrSyncAccountInactive, errorCode(t, rec))
			},
		},
		{
			name: "erro inesperado",
			path: "/v1/accounts/123/sync",
			setup: func(service *mocks.MockSyncService) {
				service.EXPECT().SyncAccount(gomock.Any(), "123", domain.SyncScopeFull).Return(nil, errors.New("banco fora do ar"))
			},
			validate: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, http.StatusInternalServerError, rec.Code)
				assert.Equal(t, apiErrors.ErrInternalServer, errorCode(t, rec))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			service := mocks.NewMockSyncService(ctrl)
			tt.setup(service)

			req := httptest.NewRequest(http.MethodPost, tt.path, nil)
			tt.validate(t, serve(http.MethodPost, "/v1/accounts/:id/sync", handler.SyncAccount(service), req))
		})
	}
}

func TestRewindAccount(t *testing.T) {
	from := time.Date(2020, 3, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		body     string
		setup    func(rewinder *mocks.MockRewinder)
		validate func(t *testing.T, rec *httptest.ResponseRecorder)
	}{
		{
			name: "apaga as estatísticas a partir da data",
			body: `{"kind":"campaign","from":"2020-03-01"}`,
			setup: func(rewinder *mocks.MockRewinder) {
				rewinder.EXPECT().Rewind(gomock.Any(), "123", domain.KindCampaign, from).Return(int64(42), nil)
			},
			validate: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, http.StatusOK, rec.Code)
				assert.JSONEq(t, `{"account_id":"123","kind":"campaign","from":"2020-03-01","removed":42}`, rec.Body.String())
			},
		},
		{
			name:  "corpo inválido",
			body:  `{"kind":`,
			setup: func(rewinder *mocks.MockRewinder) {},
			validate: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, http.StatusBadRequest, rec.Code)
				assert.Equal(t, apiErrors.ErrInvalidRequest, errorCode(t, rec))
			},
		},
		{
			name:  "sem data",
			body:  `{"kind":"campaign"}`,
			setup: func(rewinder *mocks.MockRewinder) {},
			validate: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, apiErrors.ErrMissingRequiredData, errorCode(t, rec))
			},
		},
		{
			name:  "data em formato inválido",
			body:  `{"kind":"campaign","from":"01/03/2020"}`,
			setup: func(rewinder *mocks.MockRewinder) {},
			validate: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, apiErrors.ErrInvalidFormat, errorCode(t, rec))
			},
		},
		{
			name: "tipo desconhecido",
			body: `{"kind":"weather","from":"2020-03-01"}`,
			setup: func(rewinder *mocks.MockRewinder) {
				rewinder.EXPECT().Rewind(gomock.Any(), "123", domain.StatisticKind("weather"), from).
					Return(int64(0), syncing.ErrUnknownKind)
			},
			validate: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, http.StatusBadRequest, rec.Code)
				assert.Equal(t, apiErrors.ErrSyncUnknownKind, errorCode(t, rec))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			rewinder := mocks.NewMockRewinder(ctrl)
			tt.setup(rewinder)

			req := httptest.NewRequest(http.MethodPost, "/v1/accounts/123/rewind", strings.NewReader(tt.body))
			tt.validate(t, serve(http.MethodPost, "/v1/accounts/:id/rewind", handler.RewindAccount(rewinder), req))
		})
	}
}

func TestListCampaigns(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	lister := mocks.NewMockCampaignLister(ctrl)
	lister.EXPECT().ListCampaigns(gomock.Any(), "123").Return([]domain.Campaign{
		{ID: "10", AccountID: "123", Name: "Institucional", Totals: domain.Measures{Impressions: 1000, Clicks: 50}},
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/v1/accounts/123/campaigns", nil)
	rec := serve(http.MethodGet, "/v1/accounts/:id/campaigns", handler.ListCampaigns(lister), req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body, 1)
	assert.Equal(t, "10", body[0]["id"])

	ctrl2 := gomock.NewController(t)
	failing := mocks.NewMockCampaignLister(ctrl2)
	failing.EXPECT().ListCampaigns(gomock.Any(), "123").Return(nil, errors.New("timeout"))

	rec = serve(http.MethodGet, "/v1/accounts/:id/campaigns", handler.ListCampaigns(failing), req)
	assert.Equal(t, apiErrors.ErrDatabaseOperation, errorCode(t, rec))
}

func TestCreateCredential(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		setup    func(store *mocks.MockCredentialStore)
		validate func(t *testing.T, rec *httptest.ResponseRecorder)
	}{
		{
			name: "grava a credencial e as permissões de leitura",
			body: `{"email":" Gestor@Agencia.com ","refresh_token":"1//token","account_ids":["123","456"]}`,
			setup: func(store *mocks.MockCredentialStore) {
				store.EXPECT().SaveCredential(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, credential *domain.Credential) error {
						assert.Equal(t, "gestor@agencia.com", credential.Email)
						assert.Equal(t, "1//token", credential.RefreshToken)
						assert.NotEmpty(t, credential.ID)
						return nil
					})
				store.EXPECT().UpsertPermissions(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, permissions []domain.Permission) (int, error) {
						require.Len(t, permissions, 2)
						for _, p := range permissions {
							assert.True(t, p.CanRead)
							assert.NotEmpty(t, p.CredentialID)
						}
						assert.Equal(t, "456", permissions[1].AccountID)
						return 2, nil
					})
			},
			validate: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, http.StatusCreated, rec.Code)
				assert.Contains(t, rec.Body.String(), `"permissions":2`)
				assert.NotContains(t, rec.Body.String(), "1//token")
			},
		},
		{
			name:  "sem refresh token",
			body:  `{"email":"gestor@agencia.com"}`,
			setup: func(store *mocks.MockCredentialStore) {},
			validate: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, http.StatusBadRequest, rec.Code)
				assert.Equal(t, apiErrors.ErrMissingRequiredData, errorCode(t, rec))
			},
		},
		{
			name:  "e-mail inválido",
			body:  `{"email":"gestor","refresh_token":"1//token"}`,
			setup: func(store *mocks.MockCredentialStore) {},
			validate: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, apiErrors.ErrInvalidFormat, errorCode(t, rec))
			},
		},
		{
			name: "erro ao gravar",
			body: `{"email":"gestor@agencia.com","refresh_token":"1//token"}`,
			setup: func(store *mocks.MockCredentialStore) {
				store.EXPECT().SaveCredential(gomock.Any(), gomock.Any()).Return(errors.New("violação de chave"))
			},
			validate: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, http.StatusInternalServerError, rec.Code)
				assert.Equal(t, apiErrors.ErrDatabaseOperation, errorCode(t, rec))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			store := mocks.NewMockCredentialStore(ctrl)
			tt.setup(store)

			req := httptest.NewRequest(http.MethodPost, "/v1/credentials", strings.NewReader(tt.body))
			tt.validate(t, serve(http.MethodPost, "/v1/credentials", handler.CreateCredential(store), req))
		})
	}
}

func TestHealthcheck(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	db := mocks.NewMockPinger(ctrl)
	db.EXPECT().Ping(gomock.Any()).Return(nil)

	req := httptest.NewRequest(http.MethodGet, "/healthcheck", nil)
	rec := serve(http.MethodGet, "/healthcheck", handler.HealthcheckHandler(db), req)
	assert.Equal(t, http.StatusOK, rec.Code)

	db.EXPECT().Ping(gomock.Any()).Return(errors.New("connection refused"))
	rec = serve(http.MethodGet, "/healthcheck", handler.HealthcheckHandler(db), req)
	assert.Equal(t, http.StatusServiceUnavailable, apiErrors.StatusOf(apiErrors.ErrCommunication))
	assert.Equal(t, apiErrors.StatusOf(apiErrors.ErrCommunication), rec.Code)
}
