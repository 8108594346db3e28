package adsclient

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	adsdomain "github.com/vfg2006/traffic-stats-sync/infrastructure/integrator/googleads/domain"
)

// Search busca uma página do relatório; pageToken vazio busca a primeira
func (c *AdsClient) Search(ctx context.Context, customerID, query, pageToken string) (*adsdomain.SearchResponse, error) {
	payload, err := json.Marshal(adsdomain.SearchRequest{Query: query, PageToken: pageToken})
	if err != nil {
		return nil, errors.Wrap(err, "erro ao serializar consulta")
	}

	url := fmt.Sprintf("%s/customers/%s/googleAds:search", c.cfg.URL, customerID)
	req, err := c.newRequest(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}

	body, err := c.do(req)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"customer_id": customerID,
			"error":       err.Error(),
		}).Debug("Erro na consulta ao Google Ads")
		return nil, err
	}

	var response adsdomain.SearchResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, errors.Wrapf(err, "erro ao decodificar página do cliente %s", customerID)
	}

	return &response, nil
}

// ListAccessibleCustomers devolve os IDs das contas acessíveis pela credencial
func (c *AdsClient) ListAccessibleCustomers(ctx context.Context) ([]string, error) {
	url := fmt.Sprintf("%s/customers:listAccessibleCustomers", c.cfg.URL)
	req, err := c.newRequest(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	body, err := c.do(req)
	if err != nil {
		return nil, err
	}

	var response adsdomain.ListAccessibleCustomersResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, errors.Wrap(err, "erro ao decodificar contas acessíveis")
	}

	ids := make([]string, 0, len(response.ResourceNames))
	for _, name := range response.ResourceNames {
		ids = append(ids, strings.TrimPrefix(name, "customers/"))
	}

	return ids, nil
}
