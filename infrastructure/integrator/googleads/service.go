package googleads

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/traffic-stats-sync/infrastructure/integrator/googleads/adsclient"
	"github.com/vfg2006/traffic-stats-sync/internal/config"
	"github.com/vfg2006/traffic-stats-sync/internal/domain"
	"github.com/vfg2006/traffic-stats-sync/internal/usecases/syncing"
)

var customerClientFields = []string{
	"customer_client.id",
	"customer_client.descriptive_name",
	"customer_client.currency_code",
	"customer_client.time_zone",
	"customer_client.manager",
	"customer_client.hidden",
	"customer_client.test_account",
}

// ClientBuilder cria o cliente HTTP autenticado de uma credencial
type ClientBuilder func(ctx context.Context, cfg config.AdsAPI, refreshToken, loginCustomerID string) adsclient.Client

// GoogleAdsIntegrator cria um cliente de relatórios novo por credencial, sem cache entre tentativas
type GoogleAdsIntegrator struct {
	cfg       config.AdsAPI
	newClient ClientBuilder
}

func New(cfg config.AdsAPI) *GoogleAdsIntegrator {
	return &GoogleAdsIntegrator{
		cfg:       cfg,
		newClient: adsclient.NewClient,
	}
}

func (s *GoogleAdsIntegrator) WithClientBuilder(builder ClientBuilder) *GoogleAdsIntegrator {
	s.newClient = builder
	return s
}

func (s *GoogleAdsIntegrator) NewClient(ctx context.Context, credential domain.Credential, loginCustomerID string) (syncing.ReportClient, error) {
	if credential.RefreshToken == "" {
		return nil, domain.NewSyncError(domain.ErrorKindTokenRevoked, "", fmt.Sprintf("credencial %s sem refresh token", credential.ID), nil)
	}

	return &ReportClient{
		client:       s.newClient(ctx, s.cfg, credential.RefreshToken, loginCustomerID),
		credentialID: credential.ID,
	}, nil
}

// ReportClient implementa os relatórios da sincronização sobre a API REST
type ReportClient struct {
	client       adsclient.Client
	credentialID string
}

func (c *ReportClient) Fetch(ctx context.Context, req domain.ReportRequest) (syncing.RowIterator, error) {
	query, err := adsclient.BuildQuery(req)
	if err != nil {
		return nil, domain.NewSyncError(domain.ErrorKindReportTypeMismatch, "INVALID_QUERY", err.Error(), err)
	}

	logrus.WithFields(logrus.Fields{
		"account_id":    req.AccountID,
		"credential_id": c.credentialID,
		"resource":      req.Resource,
	}).Debug("Consultando relatório")

	return newPageIterator(c.client, normalizeCustomerID(req.AccountID), query), nil
}

func (c *ReportClient) ListAccessibleCustomers(ctx context.Context) ([]string, error) {
	return c.client.ListAccessibleCustomers(ctx)
}

// ListCustomerClients lista toda a hierarquia sob a gerenciadora, inclusive ela mesma
func (c *ReportClient) ListCustomerClients(ctx context.Context, managerID string) ([]domain.CustomerClient, error) {
	query, err := adsclient.BuildQuery(domain.ReportRequest{
		AccountID: managerID,
		Resource:  "customer_client",
		Fields:    customerClientFields,
	})
	if err != nil {
		return nil, err
	}

	iter := newPageIterator(c.client, normalizeCustomerID(managerID), query)
	defer iter.Close()

	clients := make([]domain.CustomerClient, 0)
	for iter.Next(ctx) {
		row := iter.Row()
		id := row.String("customer_client.id")
		if id == "" {
			continue
		}
		clients = append(clients, domain.CustomerClient{
			ID:           id,
			Name:         row.String("customer_client.descriptive_name"),
			CurrencyCode: row.String("customer_client.currency_code"),
			Timezone:     row.String("customer_client.time_zone"),
			IsManager:    row.String("customer_client.manager") == "true",
			Hidden:       row.String("customer_client.hidden") == "true",
			TestAccount:  row.String("customer_client.test_account") == "true",
		})
	}

	if err := iter.Err(); err != nil {
		return nil, err
	}

	return clients, nil
}

// a API não aceita o formato com hífens da interface, ex: 123-456-7890
func normalizeCustomerID(id string) string {
	return strings.ReplaceAll(id, "-", "")
}
