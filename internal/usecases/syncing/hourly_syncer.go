package syncing

import (
	"context"
	"time"

	"github.com/vfg2006/traffic-stats-sync/infrastructure/repository"
	"github.com/vfg2006/traffic-stats-sync/internal/config"
	"github.com/vfg2006/traffic-stats-sync/internal/domain"
	"github.com/vfg2006/traffic-stats-sync/internal/metrics"
	"github.com/vfg2006/traffic-stats-sync/pkg/log"
	"github.com/vfg2006/traffic-stats-sync/pkg/utils"
)

var hourlyFields = []string{
	fieldCampaignID,
	fieldCampaignName,
	fieldCampaignType,
	fieldCampaignStatus,
	fieldCampaignStartDate,
	fieldCampaignEndDate,
	fieldDate,
	fieldHour,
	fieldImpressions,
	fieldVideoViews,
	fieldClicks,
	fieldCostMicros,
	fieldConversions,
}

type hourlyKey struct {
	campaignID string
	date       time.Time
	hour       int
}

// HourlySyncer recria as estatísticas por hora das campanhas nos últimos dias
type HourlySyncer struct {
	hourly        repository.HourlyStatisticRepository
	entities      repository.EntityRepository
	stabilityDays int
	clock         Clock
	metrics       *metrics.Metrics
}

func NewHourlySyncer(
	hourly repository.HourlyStatisticRepository,
	entities repository.EntityRepository,
	cfg config.Sync,
	m *metrics.Metrics,
) *HourlySyncer {
	return &HourlySyncer{
		hourly:        hourly,
		entities:      entities,
		stabilityDays: cfg.HourlyStabilityDays,
		clock:         systemClock{},
		metrics:       m,
	}
}

func (s *HourlySyncer) WithClock(clock Clock) *HourlySyncer {
	s.clock = clock
	return s
}

// Sync apaga e recria [início, hoje]. O início é o último dia salvo antes do
// corte de estabilidade, ou o próprio corte quando não há nada salvo.
func (s *HourlySyncer) Sync(ctx context.Context, account *domain.Account, client ReportClient) (*domain.SyncOutcome, error) {
	today := utils.TodayIn(s.clock.Now(), account.Location())
	cut := utils.AddDays(today, -s.stabilityDays)

	latest, err := s.hourly.LatestDateBefore(ctx, account.ID, cut)
	if err != nil {
		return nil, err
	}

	start := cut
	if latest != nil {
		start = *latest
	}
	window := domain.DateRange{From: start, To: today}

	iter, err := client.Fetch(ctx, domain.ReportRequest{
		AccountID:  account.ID,
		Resource:   "campaign",
		Fields:     hourlyFields,
		Predicates: withImpressions,
		DateRange:  &window,
	})
	if err != nil {
		return nil, err
	}
	defer iter.Close()

	known, err := s.entities.KnownEntityIDs(ctx, account.ID, domain.LevelCampaign)
	if err != nil {
		return nil, err
	}

	var (
		fetched, skipped int
		order            []hourlyKey
		entities         []domain.SideEntity
	)
	stats := make(map[hourlyKey]*domain.HourlyStatistic)
	seenEntities := make(map[string]struct{})

	for iter.Next(ctx) {
		row := iter.Row()
		fetched++

		entity, ok := campaignEntity(row)
		date, hasDate := row.Date(fieldDate)
		if !ok || !hasDate {
			skipped++
			continue
		}

		// campanhas novas vistas só no relatório horário
		if _, ok := known[entity.ID]; !ok {
			if _, seen := seenEntities[entity.ID]; !seen {
				seenEntities[entity.ID] = struct{}{}
				entities = append(entities, entity)
			}
		}

		key := hourlyKey{campaignID: entity.ID, date: domain.DateOf(date), hour: int(row.Int64(fieldHour))}
		stat, ok := stats[key]
		if !ok {
			stat = &domain.HourlyStatistic{CampaignID: key.campaignID, Date: key.date, Hour: key.hour}
			stats[key] = stat
			order = append(order, key)
		}
		stat.Impressions += row.Int64(fieldImpressions)
		stat.VideoViews += row.Int64(fieldVideoViews)
		stat.Clicks += row.Int64(fieldClicks)
		stat.Cost += utils.MicrosToUnits(row.Int64(fieldCostMicros))
		stat.Conversions += row.Float64(fieldConversions)
	}

	if err := iter.Err(); err != nil {
		return nil, err
	}

	if err := s.entities.UpsertSideEntities(ctx, account.ID, entities); err != nil {
		return nil, err
	}

	records := make([]domain.HourlyStatistic, 0, len(order))
	for _, key := range order {
		records = append(records, *stats[key])
	}

	removed, err := s.hourly.ReplaceRange(ctx, account.ID, start, records)
	if err != nil {
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.RecordRows(string(domain.KindCampaignHourly), len(records), 0, skipped)
	}

	log.ForContext(ctx).WithFields(log.Fields{
		"account_id": account.ID,
		"kind":       domain.KindCampaignHourly,
		"fetch_from": window.From.Format(time.DateOnly),
		"fetch_to":   window.To.Format(time.DateOnly),
		"created":    len(records),
		"removed":    removed,
	}).Info("Estatísticas por hora recriadas")

	return &domain.SyncOutcome{
		Kind:     domain.KindCampaignHourly,
		Status:   domain.SyncStatusSynced,
		Window:   &window,
		Fetched:  fetched,
		Created:  len(records),
		Skipped:  skipped,
		Removed:  int(removed),
		Entities: len(entities),
	}, nil
}
