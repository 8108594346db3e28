package googleads

import (
	"context"
	"strings"
	"unicode"

	"github.com/vfg2006/traffic-stats-sync/infrastructure/integrator/googleads/adsclient"
	"github.com/vfg2006/traffic-stats-sync/internal/domain"
)

// pageIterator busca as páginas sob demanda; só uma página fica em memória
type pageIterator struct {
	client     adsclient.Client
	customerID string
	query      string

	rows      []domain.Row
	pos       int
	pageToken string
	fetched   bool
	pages     int
	err       error
	closed    bool
}

func newPageIterator(client adsclient.Client, customerID, query string) *pageIterator {
	return &pageIterator{
		client:     client,
		customerID: customerID,
		query:      query,
		pos:        -1,
	}
}

func (it *pageIterator) Next(ctx context.Context) bool {
	if it.err != nil || it.closed {
		return false
	}

	for {
		if it.pos+1 < len(it.rows) {
			it.pos++
			return true
		}

		if it.fetched && it.pageToken == "" {
			return false
		}

		if err := ctx.Err(); err != nil {
			it.err = err
			return false
		}

		resp, err := it.client.Search(ctx, it.customerID, it.query, it.pageToken)
		if err != nil {
			it.err = err
			return false
		}

		it.fetched = true
		it.pages++
		it.pageToken = resp.NextPageToken
		it.pos = -1
		it.rows = it.rows[:0]
		for _, result := range resp.Results {
			it.rows = append(it.rows, flattenResult(result))
		}
	}
}

func (it *pageIterator) Row() domain.Row {
	if it.pos < 0 || it.pos >= len(it.rows) {
		return nil
	}
	return it.rows[it.pos]
}

func (it *pageIterator) Err() error {
	return it.err
}

func (it *pageIterator) Close() error {
	it.closed = true
	it.rows = nil
	return nil
}

// flattenResult converte {"adGroupCriterion": {"keyword": {"text": "x"}}} em
// {"ad_group_criterion.keyword.text": "x"}, o mesmo nome usado na consulta
func flattenResult(result map[string]interface{}) domain.Row {
	row := make(domain.Row)
	flattenInto(row, "", result)
	return row
}

func flattenInto(row domain.Row, prefix string, values map[string]interface{}) {
	for key, value := range values {
		name := prefix + snakeCase(key)
		if nested, ok := value.(map[string]interface{}); ok {
			flattenInto(row, name+".", nested)
			continue
		}
		row[name] = value
	}
}

func snakeCase(value string) string {
	var b strings.Builder
	b.Grow(len(value) + 4)
	for i, r := range value {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
