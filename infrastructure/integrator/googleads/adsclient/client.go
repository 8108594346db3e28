package adsclient

//go:generate mockgen -source=client.go -destination=mocks/client.go -package=mocks

import (
	"context"
	"io"
	"net/http"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"golang.org/x/oauth2"

	adsdomain "github.com/vfg2006/traffic-stats-sync/infrastructure/integrator/googleads/domain"
	"github.com/vfg2006/traffic-stats-sync/internal/config"
	"github.com/vfg2006/traffic-stats-sync/internal/domain"
)

// números chegam como json.Number para não perder precisão de IDs e micros
var json = jsoniter.Config{
	EscapeHTML:             true,
	SortMapKeys:            true,
	ValidateJsonRawMessage: true,
	UseNumber:              true,
}.Froze()

type Client interface {
	Search(ctx context.Context, customerID, query, pageToken string) (*adsdomain.SearchResponse, error)
	ListAccessibleCustomers(ctx context.Context) ([]string, error)
}

// AdsClient fala com a API REST usando o refresh token de uma credencial
type AdsClient struct {
	cfg             config.AdsAPI
	httpClient      *http.Client
	loginCustomerID string
}

func NewClient(ctx context.Context, cfg config.AdsAPI, refreshToken, loginCustomerID string) Client {
	oauthCfg := &oauth2.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		Endpoint: oauth2.Endpoint{
			TokenURL:  cfg.TokenURL,
			AuthStyle: oauth2.AuthStyleInParams,
		},
	}

	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = 2 * time.Minute
	}

	// o cliente base vale também para a troca do refresh token
	base := &http.Client{Timeout: timeout}
	ctx = context.WithValue(ctx, oauth2.HTTPClient, base)

	httpClient := oauth2.NewClient(ctx, oauthCfg.TokenSource(ctx, &oauth2.Token{RefreshToken: refreshToken}))
	httpClient.Timeout = timeout

	return &AdsClient{
		cfg:             cfg,
		httpClient:      httpClient,
		loginCustomerID: loginCustomerID,
	}
}

func (c *AdsClient) newRequest(ctx context.Context, method, url string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, errors.Wrapf(err, "erro ao criar requisição %s", url)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("developer-token", c.cfg.DeveloperToken)
	if c.loginCustomerID != "" {
		req.Header.Set("login-customer-id", c.loginCustomerID)
	}

	return req, nil
}

// do executa a requisição e devolve o corpo; qualquer falha sai classificada
func (c *AdsClient) do(req *http.Request) ([]byte, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, classifyTransportError(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, domain.NewSyncError(domain.ErrorKindTransientServer, "", "erro ao ler resposta", err)
	}

	return HandleResponse(resp.StatusCode, body)
}

// HandleResponse transforma respostas de erro em *domain.SyncError
func HandleResponse(status int, body []byte) ([]byte, error) {
	if status >= 200 && status < 300 {
		return body, nil
	}

	var errResp adsdomain.ErrorResponse
	if err := json.Unmarshal(body, &errResp); err != nil || (errResp.Error.Code == 0 && errResp.Error.Status == "") {
		return nil, domain.NewSyncError(adsdomain.ClassifyStatus(status), http.StatusText(status), truncate(string(body), 300), nil)
	}

	return nil, errResp.ToSyncError(status)
}

// classifyTransportError trata falhas antes de existir uma resposta HTTP,
// inclusive a troca do refresh token por um access token
func classifyTransportError(err error) error {
	if domain.IsCanceled(err) {
		return err
	}

	var retrieveErr *oauth2.RetrieveError
	if errors.As(err, &retrieveErr) {
		if retrieveErr.ErrorCode == "invalid_grant" || (retrieveErr.Response != nil && retrieveErr.Response.StatusCode == http.StatusUnauthorized) {
			return domain.NewSyncError(domain.ErrorKindTokenRevoked, retrieveErr.ErrorCode, "refresh token recusado", err)
		}
		return domain.NewSyncError(domain.ErrorKindTransientServer, retrieveErr.ErrorCode, "erro ao renovar access token", err)
	}

	return domain.NewSyncError(domain.ErrorKindTransientServer, "", "erro de transporte", errors.Wrap(err, "requisição ao google ads"))
}

func truncate(value string, limit int) string {
	if len(value) <= limit {
		return value
	}
	return value[:limit] + "..."
}
