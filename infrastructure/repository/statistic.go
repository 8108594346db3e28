package repository

//go:generate mockgen -source=statistic.go -destination=mocks/statistic.go -package=mocks

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/traffic-stats-sync/infrastructure/database/postgres"
	"github.com/vfg2006/traffic-stats-sync/internal/domain"
)

const statisticsTable = "ad_statistics"

// colunas de medida, as únicas alteradas por uma atualização
var measureColumns = []string{
	"impressions",
	"video_views",
	"clicks",
	"cost",
	"conversions",
	"all_conversions",
	"view_through",
	"video_views_25_quartile",
	"video_views_50_quartile",
	"video_views_75_quartile",
	"video_views_100_quartile",
	"clicks_website",
	"clicks_call_to_action_overlay",
	"clicks_app_store",
	"clicks_cards",
	"clicks_end_cap",
}

// tipos das colunas de medida no VALUES da atualização em lote
var measureCasts = []string{
	"bigint", "bigint", "bigint", "numeric", "numeric", "numeric", "bigint",
	"numeric", "numeric", "numeric", "numeric",
	"bigint", "bigint", "bigint", "bigint", "bigint",
}

type StatisticRepository interface {
	MinMaxDate(ctx context.Context, accountID string, kind domain.StatisticKind) (*time.Time, *time.Time, error)
	// MaxDateBefore retorna o maior dia salvo estritamente antes de before
	MaxDateBefore(ctx context.Context, accountID string, kind domain.StatisticKind, before time.Time) (*time.Time, error)
	ExistingKeys(ctx context.Context, accountID string, kind domain.StatisticKind, since time.Time) (map[domain.StatisticKey]struct{}, error)
	// BulkUpsert insere creates e atualiza apenas as medidas de updates numa transação
	BulkUpsert(ctx context.Context, kind domain.StatisticKind, creates, updates []domain.StatisticRecord) error
	DeleteKeys(ctx context.Context, accountID string, kind domain.StatisticKind, keys []domain.StatisticKey) (int64, error)
	DeleteRange(ctx context.Context, accountID string, kind domain.StatisticKind, from, to time.Time) (int64, error)
}

type statisticRepository struct {
	conn *postgres.Connection
}

func NewStatisticRepository(conn *postgres.Connection) StatisticRepository {
	return &statisticRepository{
		conn: conn,
	}
}

func (r *statisticRepository) MinMaxDate(ctx context.Context, accountID string, kind domain.StatisticKind) (*time.Time, *time.Time, error) {
	query, args, err := squirrel.
		Select("MIN(date)", "MAX(date)").
		From(statisticsTable).
		Where(squirrel.Eq{"account_id": accountID, "kind": kind}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, nil, err
	}

	var minDate, maxDate sql.NullTime
	if err := r.conn.QueryRowContext(ctx, query, args...).Scan(&minDate, &maxDate); err != nil {
		return nil, nil, wrapDBError("erro ao buscar datas limite", err)
	}

	return nullDate(minDate), nullDate(maxDate), nil
}

func (r *statisticRepository) MaxDateBefore(ctx context.Context, accountID string, kind domain.StatisticKind, before time.Time) (*time.Time, error) {
	query, args, err := squirrel.
		Select("MAX(date)").
		From(statisticsTable).
		Where(squirrel.Eq{"account_id": accountID, "kind": kind}).
		Where(squirrel.Lt{"date": before}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	var maxDate sql.NullTime
	if err := r.conn.QueryRowContext(ctx, query, args...).Scan(&maxDate); err != nil {
		return nil, wrapDBError("erro ao buscar última data retida", err)
	}

	return nullDate(maxDate), nil
}

func (r *statisticRepository) ExistingKeys(
	ctx context.Context,
	accountID string,
	kind domain.StatisticKind,
	since time.Time,
) (map[domain.StatisticKey]struct{}, error) {
	query, args, err := squirrel.
		Select("parent_id", "segment", "date").
		From(statisticsTable).
		Where(squirrel.Eq{"account_id": accountID, "kind": kind}).
		Where(squirrel.GtOrEq{"date": since}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, wrapDBError("erro ao buscar chaves existentes", err)
	}
	defer rows.Close()

	keys := make(map[domain.StatisticKey]struct{})
	for rows.Next() {
		var (
			parentID, segment string
			date              time.Time
		)
		if err := rows.Scan(&parentID, &segment, &date); err != nil {
			return nil, wrapDBError("erro ao deserializar chave", err)
		}
		keys[domain.NewStatisticKey(parentID, segment, date)] = struct{}{}
	}

	if err := rows.Err(); err != nil {
		return nil, wrapDBError("erro ao iterar chaves", err)
	}

	return keys, nil
}

func (r *statisticRepository) BulkUpsert(ctx context.Context, kind domain.StatisticKind, creates, updates []domain.StatisticRecord) error {
	if len(creates) == 0 && len(updates) == 0 {
		return nil
	}

	err := r.conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
		for _, batch := range chunk(creates, rowsPerStatement(5+len(measureColumns))) {
			query, args, err := insertStatistics(kind, batch)
			if err != nil {
				return err
			}
			if _, err := tx.ExecContext(ctx, query, args...); err != nil {
				return err
			}
		}

		// o +1 reserva o parâmetro do tipo no WHERE
		for _, batch := range chunk(updates, rowsPerStatement(3+len(measureColumns)+1)) {
			query, args, err := updateStatistics(kind, batch)
			if err != nil {
				return err
			}
			if _, err := tx.ExecContext(ctx, query, args...); err != nil {
				return err
			}
		}

		return nil
	})

	return wrapDBError(fmt.Sprintf("erro ao gravar estatísticas de %s", kind), err)
}

// insertStatistics é idempotente: uma chave já existente tem só as medidas atualizadas
func insertStatistics(kind domain.StatisticKind, records []domain.StatisticRecord) (string, []interface{}, error) {
	columns := append([]string{"kind", "account_id", "parent_id", "segment", "date"}, measureColumns...)

	query := squirrel.StatementBuilder.
		Insert(statisticsTable).
		Columns(columns...).
		PlaceholderFormat(squirrel.Dollar)

	for _, record := range records {
		values := append([]interface{}{kind, record.AccountID, record.Key.ParentID, record.Key.Segment, record.Key.Date}, measureValues(record)...)
		query = query.Values(values...)
	}

	set := make([]string, 0, len(measureColumns)+1)
	for _, column := range measureColumns {
		set = append(set, fmt.Sprintf("%s = EXCLUDED.%s", column, column))
	}
	set = append(set, "updated_at = NOW()")

	query = query.Suffix("ON CONFLICT (kind, parent_id, segment, date) DO UPDATE SET " + strings.Join(set, ", "))

	return query.ToSql()
}

// updateStatistics altera apenas as colunas de medida, nunca a chave natural nem a conta
func updateStatistics(kind domain.StatisticKind, records []domain.StatisticRecord) (string, []interface{}, error) {
	valueColumns := append([]string{"parent_id", "segment", "date"}, measureColumns...)

	rowPlaceholders := make([]string, 0, len(records))
	args := make([]interface{}, 0, len(records)*len(valueColumns)+1)

	for i, record := range records {
		placeholders := []string{"?::text", "?::text", "?::date"}
		if i > 0 {
			placeholders = []string{"?", "?", "?"}
		}
		for j := range measureColumns {
			if i == 0 {
				placeholders = append(placeholders, "?::"+measureCasts[j])
			} else {
				placeholders = append(placeholders, "?")
			}
		}
		rowPlaceholders = append(rowPlaceholders, "("+strings.Join(placeholders, ", ")+")")

		args = append(args, record.Key.ParentID, record.Key.Segment, record.Key.Date)
		args = append(args, measureValues(record)...)
	}

	set := make([]string, 0, len(measureColumns)+1)
	for _, column := range measureColumns {
		set = append(set, fmt.Sprintf("%s = v.%s", column, column))
	}
	set = append(set, "updated_at = NOW()")

	statement := fmt.Sprintf(
		"UPDATE %s AS s SET %s FROM (VALUES %s) AS v(%s) "+
			"WHERE s.kind = ? AND s.parent_id = v.parent_id AND s.segment = v.segment AND s.date = v.date",
		statisticsTable,
		strings.Join(set, ", "),
		strings.Join(rowPlaceholders, ", "),
		strings.Join(valueColumns, ", "),
	)
	args = append(args, kind)

	query, err := squirrel.Dollar.ReplacePlaceholders(statement)
	if err != nil {
		return "", nil, err
	}
	return query, args, nil
}

func measureValues(record domain.StatisticRecord) []interface{} {
	m := record.Measures
	c := record.Clicks
	return []interface{}{
		m.Impressions,
		m.VideoViews,
		m.Clicks,
		m.Cost,
		m.Conversions,
		m.AllConversions,
		m.ViewThrough,
		m.VideoViews25Quartile,
		m.VideoViews50Quartile,
		m.VideoViews75Quartile,
		m.VideoViews100Quartile,
		c.Website,
		c.CallToActionOverlay,
		c.AppStore,
		c.Cards,
		c.EndCap,
	}
}

func (r *statisticRepository) DeleteKeys(ctx context.Context, accountID string, kind domain.StatisticKind, keys []domain.StatisticKey) (int64, error) {
	if len(keys) == 0 {
		return 0, nil
	}

	var deleted int64
	for _, batch := range chunk(keys, rowsPerStatement(3)) {
		byKey := make(squirrel.Or, 0, len(batch))
		for _, key := range batch {
			byKey = append(byKey, squirrel.Eq{"parent_id": key.ParentID, "segment": key.Segment, "date": key.Date})
		}

		query, args, err := squirrel.
			Delete(statisticsTable).
			Where(squirrel.Eq{"account_id": accountID, "kind": kind}).
			Where(byKey).
			PlaceholderFormat(squirrel.Dollar).
			ToSql()
		if err != nil {
			return deleted, err
		}

		removed, err := execDelete(ctx, r.conn, query, args...)
		if err != nil {
			return deleted, wrapDBError("erro ao remover estatísticas obsoletas", err)
		}
		deleted += removed
	}
	return deleted, nil
}

func (r *statisticRepository) DeleteRange(ctx context.Context, accountID string, kind domain.StatisticKind, from, to time.Time) (int64, error) {
	query, args, err := squirrel.
		Delete(statisticsTable).
		Where(squirrel.Eq{"account_id": accountID, "kind": kind}).
		Where(squirrel.GtOrEq{"date": from}).
		Where(squirrel.LtOrEq{"date": to}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, err
	}

	deleted, err := execDelete(ctx, r.conn, query, args...)
	if err != nil {
		return 0, wrapDBError("erro ao remover intervalo de estatísticas", err)
	}
	return deleted, nil
}

// execDelete devolve quantas linhas o DELETE removeu, dentro ou fora de transação
func execDelete(ctx context.Context, q postgres.Queryer, query string, args ...interface{}) (int64, error) {
	result, err := q.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func nullDate(value sql.NullTime) *time.Time {
	if !value.Valid {
		return nil
	}
	date := domain.DateOf(value.Time)
	return &date
}
