package domain

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Row é uma linha de relatório: nome do campo (ex: "metrics.clicks") para valor
type Row map[string]any

func (r Row) String(field string) string {
	value, ok := r[field]
	if !ok || value == nil {
		return ""
	}

	switch v := value.(type) {
	case string:
		return v
	case json.Number:
		return v.String()
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}

// Int64 aceita números e strings numéricas (a API serializa int64 como string)
func (r Row) Int64(field string) int64 {
	switch v := r[field].(type) {
	case int64:
		return v
	case int:
		return int64(v)
	case float64:
		return int64(v)
	case json.Number:
		n, err := v.Int64()
		if err != nil {
			f, _ := v.Float64()
			return int64(f)
		}
		return n
	case string:
		n, err := strconv.ParseInt(strings.ReplaceAll(v, ",", ""), 10, 64)
		if err != nil {
			f, _ := strconv.ParseFloat(strings.ReplaceAll(v, ",", ""), 64)
			return int64(f)
		}
		return n
	}
	return 0
}

func (r Row) Float64(field string) float64 {
	switch v := r[field].(type) {
	case float64:
		return v
	case int64:
		return float64(v)
	case int:
		return float64(v)
	case json.Number:
		f, _ := v.Float64()
		return f
	case string:
		f, _ := strconv.ParseFloat(strings.TrimSuffix(strings.ReplaceAll(v, ",", ""), "%"), 64)
		return f
	}
	return 0
}

// Date interpreta o campo no formato YYYY-MM-DD
func (r Row) Date(field string) (time.Time, bool) {
	value := r.String(field)
	if value == "" {
		return time.Time{}, false
	}

	date, err := time.Parse(time.DateOnly, value)
	if err != nil {
		return time.Time{}, false
	}
	return date, true
}

// Predicate é uma condição do relatório, ex: metrics.impressions > 0
type Predicate struct {
	Field    string
	Operator string
	Values   []string
}

// DateRange é inclusivo nas duas pontas
type DateRange struct {
	From time.Time
	To   time.Time
}

func (d DateRange) Days() int {
	return int(DateOf(d.To).Sub(DateOf(d.From)).Hours()/24) + 1
}

// ReportRequest descreve um relatório. DateRange nil significa todo o período.
type ReportRequest struct {
	AccountID  string
	Resource   string
	Fields     []string
	Predicates []Predicate
	DateRange  *DateRange
}
