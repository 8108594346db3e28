package adsclient

import (
	"fmt"
	"strings"
	"time"

	"github.com/vfg2006/traffic-stats-sync/internal/domain"
)

const dateField = "segments.date"

// BuildQuery monta a consulta GAQL do relatório.
// Sem DateRange a consulta não filtra datas e a API devolve todo o período.
func BuildQuery(req domain.ReportRequest) (string, error) {
	if req.Resource == "" {
		return "", fmt.Errorf("relatório sem recurso")
	}
	if len(req.Fields) == 0 {
		return "", fmt.Errorf("relatório %s sem campos", req.Resource)
	}

	var b strings.Builder
	b.WriteString("SELECT ")
	b.WriteString(strings.Join(req.Fields, ", "))
	b.WriteString(" FROM ")
	b.WriteString(req.Resource)

	conditions := make([]string, 0, len(req.Predicates)+1)
	for _, p := range req.Predicates {
		condition, err := formatPredicate(p)
		if err != nil {
			return "", err
		}
		conditions = append(conditions, condition)
	}

	if req.DateRange != nil {
		conditions = append(conditions, fmt.Sprintf(
			"%s BETWEEN '%s' AND '%s'",
			dateField,
			req.DateRange.From.Format(time.DateOnly),
			req.DateRange.To.Format(time.DateOnly),
		))
	}

	if len(conditions) > 0 {
		b.WriteString(" WHERE ")
		b.WriteString(strings.Join(conditions, " AND "))
	}

	return b.String(), nil
}

func formatPredicate(p domain.Predicate) (string, error) {
	if p.Field == "" || len(p.Values) == 0 {
		return "", fmt.Errorf("condição inválida: %+v", p)
	}

	operator := strings.ToUpper(strings.TrimSpace(p.Operator))
	switch operator {
	case "IN", "NOT IN":
		quoted := make([]string, len(p.Values))
		for i, v := range p.Values {
			quoted[i] = quote(v)
		}
		return fmt.Sprintf("%s %s (%s)", p.Field, operator, strings.Join(quoted, ", ")), nil
	case "=", "!=", "LIKE", "NOT LIKE":
		return fmt.Sprintf("%s %s %s", p.Field, operator, quote(p.Values[0])), nil
	case ">", ">=", "<", "<=":
		return fmt.Sprintf("%s %s %s", p.Field, operator, p.Values[0]), nil
	}

	return "", fmt.Errorf("operador não suportado: %s", p.Operator)
}

func quote(value string) string {
	return "'" + strings.ReplaceAll(value, "'", `\'`) + "'"
}
