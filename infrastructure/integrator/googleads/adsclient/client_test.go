package adsclient

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/traffic-stats-sync/internal/config"
	"github.com/vfg2006/traffic-stats-sync/internal/domain"
)

type fakeAPI struct {
	tokenStatus int
	tokenBody   string
	handler     http.HandlerFunc
}

func (f fakeAPI) start(t *testing.T) (*httptest.Server, config.AdsAPI) {
	mux := http.NewServeMux()
	mux.HandleFunc("/token", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(f.tokenStatus)
		_, _ = io.WriteString(w, f.tokenBody)
	})
	mux.HandleFunc("/v17/", f.handler)

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	return server, config.AdsAPI{
		URL:            server.URL + "/v17",
		TokenURL:       server.URL + "/token",
		DeveloperToken: "dev-token",
		ClientID:       "client",
		ClientSecret:   "secret",
		RequestTimeout: 5 * time.Second,
	}
}

const validToken = `{"access_token":"access","token_type":"Bearer","expires_in":3600}`

func TestAdsClientSearch(t *testing.T) {
	t.Run("envia cabeçalhos e decodifica a página", func(t *testing.T) {
		api := fakeAPI{
			tokenStatus: http.StatusOK,
			tokenBody:   validToken,
			handler: func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodPost, r.Method)
				assert.Equal(t, "/v17/customers/123/googleAds:search", r.URL.Path)
				assert.Equal(t, "Bearer access", r.Header.Get("Authorization"))
				assert.Equal(t, "dev-token", r.Header.Get("developer-token"))
				assert.Equal(t, "900", r.Header.Get("login-customer-id"))

				body, _ := io.ReadAll(r.Body)
				assert.JSONEq(t, `{"query":"SELECT campaign.id FROM campaign","pageToken":"p2"}`, string(body))

				_, _ = io.WriteString(w, `{"results":[{"campaign":{"id":"1"},"metrics":{"clicks":"3","ctr":0.5}}],"nextPageToken":"p3"}`)
			},
		}
		_, cfg := api.start(t)

		client := NewClient(context.Background(), cfg, "refresh", "900")
		resp, err := client.Search(context.Background(), "123", "SELECT campaign.id FROM campaign", "p2")

		require.NoError(t, err)
		assert.Equal(t, "p3", resp.NextPageToken)
		require.Len(t, resp.Results, 1)
		assert.Contains(t, resp.Results[0], "campaign")
	})
}

func TestAdsClientErrors(t *testing.T) {
	tests := []struct {
		name        string
		tokenStatus int
		tokenBody   string
		status      int
		body        string
		expected    domain.ErrorKind
		sentinel    error
	}{
		{
			name:        "refresh token revogado",
			tokenStatus: http.StatusBadRequest,
			tokenBody:   `{"error":"invalid_grant","error_description":"Token has been expired or revoked."}`,
			expected:    domain.ErrorKindTokenRevoked,
			sentinel:    domain.ErrTokenRevoked,
		},
		{
			name:        "permissão negada",
			tokenStatus: http.StatusOK,
			tokenBody:   validToken,
			status:      http.StatusForbidden,
			body: `{"error":{"code":403,"message":"denied","status":"PERMISSION_DENIED","details":[` +
				`{"@type":"type.googleapis.com/google.ads.googleads.v17.errors.GoogleAdsFailure",` +
				`"errors":[{"errorCode":{"authorizationError":"USER_PERMISSION_DENIED"},"message":"denied"}]}]}}`,
			expected: domain.ErrorKindPermissionDenied,
			sentinel: domain.ErrPermissionDenied,
		},
		{
			name:        "token de desenvolvedor não aprovado não nega a leitura",
			tokenStatus: http.StatusOK,
			tokenBody:   validToken,
			status:      http.StatusForbidden,
			body: `{"error":{"code":403,"message":"not approved","status":"PERMISSION_DENIED","details":[` +
				`{"errors":[{"errorCode":{"authorizationError":"DEVELOPER_TOKEN_NOT_APPROVED"}}]}]}}`,
			expected: domain.ErrorKindUnknown,
		},
		{
			name:        "conta cancelada",
			tokenStatus: http.StatusOK,
			tokenBody:   validToken,
			status:      http.StatusForbidden,
			body: `{"error":{"code":403,"message":"not enabled","status":"PERMISSION_DENIED","details":[` +
				`{"errors":[{"errorCode":{"authorizationError":"CUSTOMER_NOT_ENABLED"}}]}]}}`,
			expected: domain.ErrorKindAccountInactive,
			sentinel: domain.ErrAccountInactive,
		},
		{
			name:        "cota esgotada",
			tokenStatus: http.StatusOK,
			tokenBody:   validToken,
			status:      http.StatusTooManyRequests,
			body:        `{"error":{"code":429,"message":"quota","status":"RESOURCE_EXHAUSTED"}}`,
			expected:    domain.ErrorKindRateExceeded,
			sentinel:    domain.ErrRateExceeded,
		},
		{
			name:        "campo incompatível com o recurso",
			tokenStatus: http.StatusOK,
			tokenBody:   validToken,
			status:      http.StatusBadRequest,
			body: `{"error":{"code":400,"message":"bad query","status":"INVALID_ARGUMENT","details":[` +
				`{"errors":[{"errorCode":{"queryError":"PROHIBITED_SEGMENT_FOR_RESOURCE"}}]}]}}`,
			expected: domain.ErrorKindReportTypeMismatch,
			sentinel: domain.ErrReportTypeMismatch,
		},
		{
			name:        "erro do servidor sem corpo legível",
			tokenStatus: http.StatusOK,
			tokenBody:   validToken,
			status:      http.StatusBadGateway,
			body:        `<html>bad gateway</html>`,
			expected:    domain.ErrorKindTransientServer,
			sentinel:    domain.ErrTransientServer,
		},
		{
			name:        "erro sem classificação",
			tokenStatus: http.StatusOK,
			tokenBody:   validToken,
			status:      http.StatusBadRequest,
			body:        `{"error":{"code":400,"message":"???","status":"INVALID_ARGUMENT"}}`,
			expected:    domain.ErrorKindUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := fakeAPI{
				tokenStatus: tt.tokenStatus,
				tokenBody:   tt.tokenBody,
				handler: func(w http.ResponseWriter, r *http.Request) {
					w.WriteHeader(tt.status)
					_, _ = io.WriteString(w, tt.body)
				},
			}
			_, cfg := api.start(t)

			client := NewClient(context.Background(), cfg, "refresh", "")
			_, err := client.Search(context.Background(), "123", "SELECT customer.id FROM customer", "")

			require.Error(t, err)
			var syncErr *domain.SyncError
			require.True(t, errors.As(err, &syncErr))
			assert.Equal(t, tt.expected, syncErr.Kind)
			if tt.sentinel != nil {
				assert.ErrorIs(t, err, tt.sentinel)
			}
		})
	}
}

func TestAdsClientCanceled(t *testing.T) {
	api := fakeAPI{
		tokenStatus: http.StatusOK,
		tokenBody:   validToken,
		handler: func(w http.ResponseWriter, r *http.Request) {
			_, _ = io.WriteString(w, `{}`)
		},
	}
	_, cfg := api.start(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := NewClient(context.Background(), cfg, "refresh", "")
	_, err := client.Search(ctx, "123", "SELECT customer.id FROM customer", "")

	assert.True(t, domain.IsCanceled(err))
}

func TestAdsClientListAccessibleCustomers(t *testing.T) {
	api := fakeAPI{
		tokenStatus: http.StatusOK,
		tokenBody:   validToken,
		handler: func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodGet, r.Method)
			assert.Equal(t, "/v17/customers:listAccessibleCustomers", r.URL.Path)
			_, _ = io.WriteString(w, `{"resourceNames":["customers/111","customers/222"]}`)
		},
	}
	_, cfg := api.start(t)

	ids, err := NewClient(context.Background(), cfg, "refresh", "").ListAccessibleCustomers(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []string{"111", "222"}, ids)
}
