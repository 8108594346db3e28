package syncing

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/vfg2006/traffic-stats-sync/infrastructure/repository"
	"github.com/vfg2006/traffic-stats-sync/internal/config"
	"github.com/vfg2006/traffic-stats-sync/internal/domain"
	"github.com/vfg2006/traffic-stats-sync/internal/metrics"
	"github.com/vfg2006/traffic-stats-sync/pkg/log"
	"github.com/vfg2006/traffic-stats-sync/pkg/utils"
)

// EntitySyncer atualiza um tipo de estatística de uma conta.
// Uma única implementação serve todos os tipos, parametrizada por KindSpec.
type EntitySyncer struct {
	stats     repository.StatisticRepository
	entities  repository.EntityRepository
	watermark WatermarkCalculator
	batchSize int
	clock     Clock
	metrics   *metrics.Metrics
}

func NewEntitySyncer(
	stats repository.StatisticRepository,
	entities repository.EntityRepository,
	cfg config.Sync,
	m *metrics.Metrics,
) *EntitySyncer {
	batchSize := cfg.PersistBatchSize
	if batchSize < 1 {
		batchSize = 1000
	}

	return &EntitySyncer{
		stats:     stats,
		entities:  entities,
		watermark: NewWatermarkCalculator(cfg.MinFetchDate, cfg.StabilityDays),
		batchSize: batchSize,
		clock:     systemClock{},
		metrics:   m,
	}
}

// WithClock troca o relógio, usado em testes
func (s *EntitySyncer) WithClock(clock Clock) *EntitySyncer {
	s.clock = clock
	return s
}

// Sync busca a janela pendente do tipo e grava as estatísticas.
// Erros do relatório sobem sem tratamento para o executor de credenciais.
func (s *EntitySyncer) Sync(ctx context.Context, spec KindSpec, account *domain.Account, client ReportClient) (*domain.SyncOutcome, error) {
	logger := log.ForContext(ctx).WithFields(log.Fields{
		"account_id": account.ID,
		"kind":       spec.Kind,
	})

	window, ok, err := s.fetchWindow(ctx, spec, account)
	if err != nil {
		return nil, err
	}
	if !ok {
		logger.Debug("Nenhuma data pendente para sincronizar")
		return domain.NoOpOutcome(spec.Kind), nil
	}

	logger = logger.WithFields(log.Fields{
		"fetch_from": window.From.Format(time.DateOnly),
		"fetch_to":   window.To.Format(time.DateOnly),
	})

	existing, err := s.stats.ExistingKeys(ctx, account.ID, spec.Kind, window.From)
	if err != nil {
		return nil, err
	}

	resolver, err := s.newParentResolver(ctx, spec, account.ID)
	if err != nil {
		return nil, err
	}

	var index *ClickTypeIndex
	if spec.ClickTypes {
		if index, err = s.buildClickTypeIndex(ctx, spec, account.ID, window, client); err != nil {
			return nil, err
		}
	}

	batch, err := s.collect(ctx, spec, account.ID, window, client, resolver, index)
	if err != nil {
		return nil, err
	}

	outcome := &domain.SyncOutcome{
		Kind:     spec.Kind,
		Status:   domain.SyncStatusSynced,
		Window:   &window,
		Fetched:  batch.fetched,
		Skipped:  batch.skipped,
		Merged:   batch.merged,
		Entities: len(resolver.pending),
	}
	if index != nil {
		outcome.Collisions = index.Collisions()
	}

	// entidades laterais antes das estatísticas que as referenciam
	if err := s.entities.UpsertSideEntities(ctx, account.ID, resolver.pendingEntities()); err != nil {
		return nil, err
	}
	if spec.ParentLevel != domain.LevelAccount {
		if err := s.entities.MarkDenormalizedStale(ctx, spec.ParentLevel, batch.parentIDs()); err != nil {
			return nil, err
		}
	}

	creates, updates := batch.split(existing)
	created, updated, persistErr := s.persist(ctx, spec.Kind, creates, updates)
	outcome.Created = created
	outcome.Updated = updated

	if persistErr == nil {
		removed, err := s.removeStale(ctx, spec.Kind, account.ID, window, existing, batch)
		if err != nil {
			return nil, err
		}
		outcome.Removed = removed
	}

	if s.metrics != nil {
		s.metrics.RecordRows(string(spec.Kind), outcome.Created, outcome.Updated, outcome.Skipped)
		s.metrics.RecordCollisions(string(spec.Kind), outcome.Collisions)
	}

	if outcome.Collisions > 0 {
		logger.WithField("collisions", outcome.Collisions).Warn("Colisões de chave no relatório de tipos de clique")
	}

	if persistErr != nil {
		logger.WithError(persistErr).Error("Falha ao gravar parte das estatísticas")
		return outcome, persistErr
	}

	logger.WithFields(log.Fields{
		"created": outcome.Created,
		"updated": outcome.Updated,
		"skipped": outcome.Skipped,
		"removed": outcome.Removed,
	}).Info("Estatísticas sincronizadas")

	return outcome, nil
}

// fetchWindow descarta logicamente a janela de estabilidade e calcula o que buscar
func (s *EntitySyncer) fetchWindow(ctx context.Context, spec KindSpec, account *domain.Account) (domain.DateRange, bool, error) {
	today := s.watermark.Today(s.clock.Now(), account.Location())
	floor := s.watermark.MinFetchDate
	ceiling := today

	if spec.BoundedByAccount {
		accountMin, accountMax, err := s.stats.MinMaxDate(ctx, account.ID, domain.KindAdGroup)
		if err != nil {
			return domain.DateRange{}, false, err
		}
		// conta sem histórico de entrega
		if accountMax == nil {
			return domain.DateRange{}, false, nil
		}
		if accountMin != nil {
			floor = utils.MaxDate(floor, *accountMin)
		}
		if accountMax.Before(ceiling) {
			ceiling = *accountMax
		}
	}

	_, ownMax, err := s.stats.MinMaxDate(ctx, account.ID, spec.Kind)
	if err != nil {
		return domain.DateRange{}, false, err
	}

	retained := ownMax
	stabilityStart := s.watermark.StabilityStart(today)
	if ownMax != nil && !ownMax.Before(stabilityStart) {
		retained, err = s.stats.MaxDateBefore(ctx, account.ID, spec.Kind, stabilityStart)
		if err != nil {
			return domain.DateRange{}, false, err
		}
	}

	window, ok := s.watermark.Window(retained, floor, ceiling)
	return window, ok, nil
}

func (s *EntitySyncer) buildClickTypeIndex(
	ctx context.Context,
	spec KindSpec,
	accountID string,
	window domain.DateRange,
	client ReportClient,
) (*ClickTypeIndex, error) {
	iter, err := client.Fetch(ctx, domain.ReportRequest{
		AccountID:  accountID,
		Resource:   spec.Resource,
		Fields:     spec.ClickTypeFields(),
		Predicates: []domain.Predicate{{Field: fieldClicks, Operator: ">", Values: []string{"0"}}},
		DateRange:  &window,
	})
	if err != nil {
		return nil, err
	}
	defer iter.Close()

	index := NewClickTypeIndex(spec.ConsumeOnce)
	for iter.Next(ctx) {
		row := iter.Row()
		key, ok := spec.Key(row)
		if !ok {
			continue
		}
		index.Add(key, row.String(fieldClickType), row.Int64(fieldClicks))
	}

	if err := iter.Err(); err != nil {
		return nil, err
	}
	return index, nil
}

func (s *EntitySyncer) collect(
	ctx context.Context,
	spec KindSpec,
	accountID string,
	window domain.DateRange,
	client ReportClient,
	resolver *parentResolver,
	index *ClickTypeIndex,
) (*statisticBatch, error) {
	iter, err := client.Fetch(ctx, domain.ReportRequest{
		AccountID:  accountID,
		Resource:   spec.Resource,
		Fields:     spec.PrimaryFields(),
		Predicates: spec.Predicates,
		DateRange:  &window,
	})
	if err != nil {
		return nil, err
	}
	defer iter.Close()

	batch := newStatisticBatch()
	for iter.Next(ctx) {
		row := iter.Row()
		batch.fetched++

		if spec.SideEntity != nil {
			if entity, ok := spec.SideEntity(row); ok {
				resolver.observe(entity)
			}
		}

		key, ok := spec.Key(row)
		if !ok || !resolver.known(key.ParentID) {
			batch.skipped++
			continue
		}

		record := domain.StatisticRecord{
			Kind:      spec.Kind,
			AccountID: accountID,
			Key:       key,
			Measures:  measuresFromRow(row, spec.Quartiles),
		}
		if index != nil {
			if breakdown, found := index.Apply(key); found {
				record.Clicks = breakdown
			}
		}

		batch.add(record)
	}

	if err := iter.Err(); err != nil {
		return nil, err
	}
	return batch, nil
}

// persist grava em lotes; um lote com violação de integridade é regravado linha a linha
func (s *EntitySyncer) persist(ctx context.Context, kind domain.StatisticKind, creates, updates []domain.StatisticRecord) (int, int, error) {
	var (
		created, updated int
		failures         []error
	)

	for _, chunk := range chunkRecords(creates, s.batchSize) {
		n, err := s.persistChunk(ctx, kind, chunk, true)
		if err != nil && !errors.Is(err, domain.ErrIntegrityViolation) {
			return created, updated, err
		}
		if err != nil {
			failures = append(failures, err)
		}
		created += n
	}

	for _, chunk := range chunkRecords(updates, s.batchSize) {
		n, err := s.persistChunk(ctx, kind, chunk, false)
		if err != nil && !errors.Is(err, domain.ErrIntegrityViolation) {
			return created, updated, err
		}
		if err != nil {
			failures = append(failures, err)
		}
		updated += n
	}

	return created, updated, errors.Join(failures...)
}

func (s *EntitySyncer) persistChunk(ctx context.Context, kind domain.StatisticKind, chunk []domain.StatisticRecord, create bool) (int, error) {
	err := s.upsert(ctx, kind, chunk, create)
	if err == nil {
		return len(chunk), nil
	}
	if !errors.Is(err, domain.ErrIntegrityViolation) {
		return 0, err
	}

	log.ForContext(ctx).WithField("kind", kind).WithError(err).
		Warn("Violação de integridade no lote, gravando linha a linha")

	var (
		persisted int
		failures  []error
	)
	for _, record := range chunk {
		single := []domain.StatisticRecord{record}

		err := s.upsert(ctx, kind, single, create)
		if errors.Is(err, domain.ErrIntegrityViolation) {
			// uma nova tentativa por linha
			err = s.upsert(ctx, kind, single, create)
		}

		switch {
		case err == nil:
			persisted++
		case errors.Is(err, domain.ErrIntegrityViolation):
			failures = append(failures, fmt.Errorf("linha %s: %w", record.Key, err))
		default:
			return persisted, err
		}
	}

	return persisted, errors.Join(failures...)
}

func (s *EntitySyncer) upsert(ctx context.Context, kind domain.StatisticKind, records []domain.StatisticRecord, create bool) error {
	if create {
		return s.stats.BulkUpsert(ctx, kind, records, nil)
	}
	return s.stats.BulkUpsert(ctx, kind, nil, records)
}

// removeStale apaga chaves da janela que o relatório deixou de retornar
func (s *EntitySyncer) removeStale(
	ctx context.Context,
	kind domain.StatisticKind,
	accountID string,
	window domain.DateRange,
	existing map[domain.StatisticKey]struct{},
	batch *statisticBatch,
) (int, error) {
	var stale []domain.StatisticKey
	for key := range existing {
		if key.Date.Before(window.From) || key.Date.After(window.To) {
			continue
		}
		if _, ok := batch.records[key]; !ok {
			stale = append(stale, key)
		}
	}

	if len(stale) == 0 {
		return 0, nil
	}

	sort.Slice(stale, func(i, j int) bool {
		return stale[i].String() < stale[j].String()
	})

	removed, err := s.stats.DeleteKeys(ctx, accountID, kind, stale)
	if err != nil {
		return 0, err
	}
	return int(removed), nil
}

func (s *EntitySyncer) newParentResolver(ctx context.Context, spec KindSpec, accountID string) (*parentResolver, error) {
	known, err := s.entities.KnownEntityIDs(ctx, accountID, spec.ParentLevel)
	if err != nil {
		return nil, err
	}
	if known == nil {
		known = make(map[string]struct{})
	}

	resolver := &parentResolver{
		ids:     known,
		pending: make(map[string]domain.SideEntity),
	}

	if spec.SideEntity != nil && spec.ParentLevel == domain.LevelAdGroup {
		if resolver.knownParents, err = s.entities.KnownEntityIDs(ctx, accountID, domain.LevelCampaign); err != nil {
			return nil, err
		}
	}

	return resolver, nil
}

