package repository

//go:generate mockgen -source=entity.go -destination=mocks/entity.go -package=mocks

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/traffic-stats-sync/infrastructure/database/postgres"
	"github.com/vfg2006/traffic-stats-sync/internal/domain"
)

// colunas somadas nos agregados desnormalizados
var totalColumns = []string{
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
}

// tipos que acendem cada flag has_* na entidade
var flagKinds = map[string]domain.StatisticKind{
	"has_keywords":   domain.KindKeyword,
	"has_topics":     domain.KindTopic,
	"has_interests":  domain.KindInterest,
	"has_placements": domain.KindPlacement,
	"has_videos":     domain.KindVideo,
}

type EntityRepository interface {
	// KnownEntityIDs lista os IDs de campanhas ou grupos de anúncios da conta
	KnownEntityIDs(ctx context.Context, accountID string, level domain.EntityLevel) (map[string]struct{}, error)
	UpsertSideEntities(ctx context.Context, accountID string, entities []domain.SideEntity) error
	MarkDenormalizedStale(ctx context.Context, level domain.EntityLevel, ids []string) error
	RecalculateDenormalizedFields(ctx context.Context, accountID string) error
	ListCampaigns(ctx context.Context, accountID string) ([]domain.Campaign, error)
}

type entityRepository struct {
	conn *postgres.Connection
}

func NewEntityRepository(conn *postgres.Connection) EntityRepository {
	return &entityRepository{
		conn: conn,
	}
}

func (r *entityRepository) KnownEntityIDs(ctx context.Context, accountID string, level domain.EntityLevel) (map[string]struct{}, error) {
	var builder squirrel.SelectBuilder

	switch level {
	case domain.LevelCampaign:
		builder = squirrel.Select("id").From("campaigns").Where(squirrel.Eq{"account_id": accountID})
	case domain.LevelAdGroup:
		builder = squirrel.Select("g.id").
			From("ad_groups g").
			Join("campaigns c ON c.id = g.campaign_id").
			Where(squirrel.Eq{"c.account_id": accountID})
	case domain.LevelAccount:
		return map[string]struct{}{accountID: {}}, nil
	default:
		return nil, fmt.Errorf("nível de entidade desconhecido: %s", level)
	}

	query, args, err := builder.PlaceholderFormat(squirrel.Dollar).ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, wrapDBError("erro ao listar entidades conhecidas", err)
	}
	defer rows.Close()

	ids := make(map[string]struct{})
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, wrapDBError("erro ao deserializar entidade", err)
		}
		ids[id] = struct{}{}
	}

	if err := rows.Err(); err != nil {
		return nil, wrapDBError("erro ao iterar entidades", err)
	}

	return ids, nil
}

// UpsertSideEntities grava campanhas antes dos grupos de anúncios, em lotes, e zera o flag de recálculo
func (r *entityRepository) UpsertSideEntities(ctx context.Context, accountID string, entities []domain.SideEntity) error {
	var campaigns, adGroups []domain.SideEntity
	for _, entity := range entities {
		switch entity.Level {
		case domain.LevelCampaign:
			campaigns = append(campaigns, entity)
		case domain.LevelAdGroup:
			adGroups = append(adGroups, entity)
		}
	}

	if len(campaigns) == 0 && len(adGroups) == 0 {
		return nil
	}

	err := r.conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
		campaignColumns := []string{"id", "account_id", "name", "type", "status", "start_date", "end_date", "budget"}
		for _, batch := range chunk(campaigns, rowsPerStatement(len(campaignColumns))) {
			query := squirrel.StatementBuilder.
				Insert("campaigns").
				Columns(campaignColumns...).
				PlaceholderFormat(squirrel.Dollar)

			for _, c := range batch {
				query = query.Values(c.ID, accountID, c.Name, c.Type, c.Status, c.StartDate, c.EndDate, c.Budget)
			}

			query = query.Suffix(`ON CONFLICT (id) DO UPDATE SET
				name = EXCLUDED.name,
				type = EXCLUDED.type,
				status = EXCLUDED.status,
				start_date = EXCLUDED.start_date,
				end_date = EXCLUDED.end_date,
				budget = COALESCE(EXCLUDED.budget, campaigns.budget),
				de_norm_fields_are_recalculated = FALSE,
				updated_at = NOW()`)

			sqlQuery, args, err := query.ToSql()
			if err != nil {
				return err
			}
			if _, err := tx.ExecContext(ctx, sqlQuery, args...); err != nil {
				return err
			}
		}

		adGroupColumns := []string{"id", "campaign_id", "name", "type", "status"}
		for _, batch := range chunk(adGroups, rowsPerStatement(len(adGroupColumns))) {
			query := squirrel.StatementBuilder.
				Insert("ad_groups").
				Columns(adGroupColumns...).
				PlaceholderFormat(squirrel.Dollar)

			for _, g := range batch {
				query = query.Values(g.ID, g.ParentID, g.Name, g.Type, g.Status)
			}

			query = query.Suffix(`ON CONFLICT (id) DO UPDATE SET
				name = EXCLUDED.name,
				type = EXCLUDED.type,
				status = EXCLUDED.status,
				de_norm_fields_are_recalculated = FALSE,
				updated_at = NOW()`)

			sqlQuery, args, err := query.ToSql()
			if err != nil {
				return err
			}
			if _, err := tx.ExecContext(ctx, sqlQuery, args...); err != nil {
				return err
			}
		}

		return nil
	})

	return wrapDBError("erro ao gravar entidades", err)
}

func (r *entityRepository) MarkDenormalizedStale(ctx context.Context, level domain.EntityLevel, ids []string) error {
	if len(ids) == 0 {
		return nil
	}

	table, err := entityTable(level)
	if err != nil {
		return err
	}

	for _, batch := range chunk(ids, rowsPerStatement(1)) {
		query, args, err := squirrel.
			Update(table).
			Set("de_norm_fields_are_recalculated", false).
			Where(squirrel.Eq{"id": batch}).
			PlaceholderFormat(squirrel.Dollar).
			ToSql()
		if err != nil {
			return err
		}

		if _, err := r.conn.ExecContext(ctx, query, args...); err != nil {
			return wrapDBError("erro ao marcar agregados como desatualizados", err)
		}
	}
	return nil
}

// RecalculateDenormalizedFields refaz datas limite, totais e flags de campanhas e grupos da conta
func (r *entityRepository) RecalculateDenormalizedFields(ctx context.Context, accountID string) error {
	statements := []string{
		totalsStatement("campaigns", domain.KindCampaign, "t.account_id = $1"),
		flagsStatement("campaigns", "g.campaign_id = t.id", "t.account_id = $1"),
		totalsStatement("ad_groups", domain.KindAdGroup, "t.campaign_id IN (SELECT id FROM campaigns WHERE account_id = $1)"),
		flagsStatement("ad_groups", "g.id = t.id", "t.campaign_id IN (SELECT id FROM campaigns WHERE account_id = $1)"),
	}

	err := r.conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
		for _, statement := range statements {
			if _, err := tx.ExecContext(ctx, statement, accountID); err != nil {
				return err
			}
		}
		return nil
	})

	return wrapDBError("erro ao recalcular agregados", err)
}

func totalsStatement(table string, kind domain.StatisticKind, scope string) string {
	sums := make([]string, 0, len(totalColumns))
	set := make([]string, 0, len(totalColumns)+2)
	for _, column := range totalColumns {
		sums = append(sums, fmt.Sprintf("COALESCE(SUM(s.%s), 0) AS %s", column, column))
		set = append(set, fmt.Sprintf("%s = a.%s", column, column))
	}
	set = append(set, "min_stat_date = a.min_date", "max_stat_date = a.max_date")

	return fmt.Sprintf(
		"UPDATE %s AS t SET %s FROM ("+
			"SELECT s.parent_id, MIN(s.date) AS min_date, MAX(s.date) AS max_date, %s "+
			"FROM %s s WHERE s.account_id = $1 AND s.kind = '%s' GROUP BY s.parent_id"+
			") AS a WHERE t.id = a.parent_id AND %s",
		table,
		strings.Join(set, ", "),
		strings.Join(sums, ", "),
		statisticsTable,
		kind,
		scope,
	)
}

func flagsStatement(table, adGroupJoin, scope string) string {
	set := make([]string, 0, len(flagKinds)+1)
	for column, kind := range flagKinds {
		set = append(set, fmt.Sprintf(
			"%s = EXISTS (SELECT 1 FROM %s s JOIN ad_groups g ON g.id = s.parent_id WHERE %s AND s.kind = '%s')",
			column, statisticsTable, adGroupJoin, kind,
		))
	}
	set = append(set, "de_norm_fields_are_recalculated = TRUE")

	return fmt.Sprintf("UPDATE %s AS t SET %s WHERE %s", table, strings.Join(set, ", "), scope)
}

func (r *entityRepository) ListCampaigns(ctx context.Context, accountID string) ([]domain.Campaign, error) {
	columns := []string{"id", "account_id", "name", "type", "status", "start_date", "end_date", "budget"}
	columns = append(columns, totalColumns...)
	columns = append(columns,
		"de_norm_fields_are_recalculated", "min_stat_date", "max_stat_date",
		"has_keywords", "has_topics", "has_interests", "has_placements", "has_videos",
		"updated_at",
	)

	query, args, err := squirrel.
		Select(columns...).
		From("campaigns").
		Where(squirrel.Eq{"account_id": accountID}).
		OrderBy("name ASC", "id ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, wrapDBError("erro ao listar campanhas", err)
	}
	defer rows.Close()

	var campaigns []domain.Campaign
	for rows.Next() {
		var (
			c         domain.Campaign
			minDate   sql.NullTime
			maxDate   sql.NullTime
			budget    sql.NullFloat64
			startDate sql.NullTime
			endDate   sql.NullTime
		)

		err := rows.Scan(
			&c.ID, &c.AccountID, &c.Name, &c.Type, &c.Status, &startDate, &endDate, &budget,
			&c.Totals.Impressions, &c.Totals.VideoViews, &c.Totals.Clicks, &c.Totals.Cost,
			&c.Totals.Conversions, &c.Totals.AllConversions, &c.Totals.ViewThrough,
			&c.Totals.VideoViews25Quartile, &c.Totals.VideoViews50Quartile,
			&c.Totals.VideoViews75Quartile, &c.Totals.VideoViews100Quartile,
			&c.Flags.Recalculated, &minDate, &maxDate,
			&c.Flags.HasKeywords, &c.Flags.HasTopics, &c.Flags.HasInterests, &c.Flags.HasPlacements, &c.Flags.HasVideos,
			&c.UpdatedAt,
		)
		if err != nil {
			return nil, wrapDBError("erro ao deserializar campanha", err)
		}

		c.StartDate = nullDate(startDate)
		c.EndDate = nullDate(endDate)
		c.Flags.MinStatDate = nullDate(minDate)
		c.Flags.MaxStatDate = nullDate(maxDate)
		if budget.Valid {
			value := budget.Float64
			c.Budget = &value
		}

		campaigns = append(campaigns, c)
	}

	if err := rows.Err(); err != nil {
		return nil, wrapDBError("erro ao iterar campanhas", err)
	}

	return campaigns, nil
}

func entityTable(level domain.EntityLevel) (string, error) {
	switch level {
	case domain.LevelCampaign:
		return "campaigns", nil
	case domain.LevelAdGroup:
		return "ad_groups", nil
	}
	return "", fmt.Errorf("nível de entidade sem tabela: %s", level)
}

