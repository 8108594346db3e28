package repository

//go:generate mockgen -source=hourly_statistic.go -destination=mocks/hourly_statistic.go -package=mocks

import (
	"context"
	"database/sql"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/traffic-stats-sync/infrastructure/database/postgres"
	"github.com/vfg2006/traffic-stats-sync/internal/domain"
)

const hourlyTable = "campaign_hourly_statistics"

type HourlyStatisticRepository interface {
	// LatestDateBefore retorna o maior dia salvo estritamente antes de before
	LatestDateBefore(ctx context.Context, accountID string, before time.Time) (*time.Time, error)
	// ReplaceRange apaga as estatísticas da conta a partir de from e grava stats em lotes na mesma transação
	ReplaceRange(ctx context.Context, accountID string, from time.Time, stats []domain.HourlyStatistic) (int64, error)
}

type hourlyStatisticRepository struct {
	conn *postgres.Connection
}

func NewHourlyStatisticRepository(conn *postgres.Connection) HourlyStatisticRepository {
	return &hourlyStatisticRepository{
		conn: conn,
	}
}

func (r *hourlyStatisticRepository) LatestDateBefore(ctx context.Context, accountID string, before time.Time) (*time.Time, error) {
	query, args, err := squirrel.
		Select("MAX(h.date)").
		From(hourlyTable + " h").
		Join("campaigns c ON c.id = h.campaign_id").
		Where(squirrel.Eq{"c.account_id": accountID}).
		Where(squirrel.Lt{"h.date": before}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	var latest sql.NullTime
	if err := r.conn.QueryRowContext(ctx, query, args...).Scan(&latest); err != nil {
		return nil, wrapDBError("erro ao buscar última estatística horária", err)
	}

	return nullDate(latest), nil
}

func (r *hourlyStatisticRepository) ReplaceRange(ctx context.Context, accountID string, from time.Time, stats []domain.HourlyStatistic) (int64, error) {
	deleteQuery, deleteArgs, err := squirrel.
		Delete(hourlyTable).
		Where("campaign_id IN (SELECT id FROM campaigns WHERE account_id = ?)", accountID).
		Where(squirrel.GtOrEq{"date": from}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, err
	}

	var deleted int64
	err = r.conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
		var err error
		if deleted, err = execDelete(ctx, tx, deleteQuery, deleteArgs...); err != nil {
			return err
		}

		if len(stats) == 0 {
			return nil
		}

		columns := []string{"campaign_id", "date", "hour", "impressions", "video_views", "clicks", "cost", "conversions"}
		for _, batch := range chunk(stats, rowsPerStatement(len(columns))) {
			insert := squirrel.StatementBuilder.
				Insert(hourlyTable).
				Columns(columns...).
				PlaceholderFormat(squirrel.Dollar)

			for _, s := range batch {
				insert = insert.Values(s.CampaignID, s.Date, s.Hour, s.Impressions, s.VideoViews, s.Clicks, s.Cost, s.Conversions)
			}

			query, args, err := insert.ToSql()
			if err != nil {
				return err
			}
			if _, err := tx.ExecContext(ctx, query, args...); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return 0, wrapDBError("erro ao recriar estatísticas horárias", err)
	}

	return deleted, nil
}
