package syncing

import (
	"sort"

	"github.com/vfg2006/traffic-stats-sync/internal/domain"
)

// statisticBatch acumula as linhas de uma execução, uma por chave natural
type statisticBatch struct {
	records map[domain.StatisticKey]*domain.StatisticRecord
	order   []domain.StatisticKey
	fetched int
	skipped int
	merged  int
}

func newStatisticBatch() *statisticBatch {
	return &statisticBatch{
		records: make(map[domain.StatisticKey]*domain.StatisticRecord),
	}
}

// add soma as medidas de linhas repetidas; os cliques por tipo entram uma vez só
func (b *statisticBatch) add(record domain.StatisticRecord) {
	current, ok := b.records[record.Key]
	if !ok {
		b.records[record.Key] = &record
		b.order = append(b.order, record.Key)
		return
	}

	b.merged++
	current.Measures = current.Measures.Add(record.Measures)
	if current.Clicks.IsZero() {
		current.Clicks = record.Clicks
	}
}

// split separa o que é novo do que já existe, na ordem de chegada
func (b *statisticBatch) split(existing map[domain.StatisticKey]struct{}) (creates, updates []domain.StatisticRecord) {
	for _, key := range b.order {
		record := *b.records[key]
		if _, ok := existing[key]; ok {
			updates = append(updates, record)
		} else {
			creates = append(creates, record)
		}
	}
	return creates, updates
}

func (b *statisticBatch) parentIDs() []string {
	seen := make(map[string]struct{})
	ids := make([]string, 0)
	for _, key := range b.order {
		if _, ok := seen[key.ParentID]; ok {
			continue
		}
		seen[key.ParentID] = struct{}{}
		ids = append(ids, key.ParentID)
	}
	return ids
}

func chunkRecords(records []domain.StatisticRecord, size int) [][]domain.StatisticRecord {
	var chunks [][]domain.StatisticRecord
	for size < len(records) {
		records, chunks = records[size:], append(chunks, records[:size:size])
	}
	if len(records) > 0 {
		chunks = append(chunks, records)
	}
	return chunks
}

// parentResolver decide se a entidade pai de uma linha existe localmente.
// Entidades laterais vistas no relatório passam a existir se o pai delas existir.
type parentResolver struct {
	ids          map[string]struct{}
	knownParents map[string]struct{}
	pending      map[string]domain.SideEntity
}

func (r *parentResolver) observe(entity domain.SideEntity) {
	if entity.ParentLevel() == domain.LevelCampaign {
		if _, ok := r.knownParents[entity.ParentID]; !ok {
			return
		}
	}

	r.pending[entity.ID] = entity
	r.ids[entity.ID] = struct{}{}
}

func (r *parentResolver) known(id string) bool {
	_, ok := r.ids[id]
	return ok
}

// pendingEntities devolve campanhas antes de grupos de anúncios, ordenadas por ID
func (r *parentResolver) pendingEntities() []domain.SideEntity {
	entities := make([]domain.SideEntity, 0, len(r.pending))
	for _, entity := range r.pending {
		entities = append(entities, entity)
	}

	sort.Slice(entities, func(i, j int) bool {
		if entities[i].Level != entities[j].Level {
			return entities[i].Level == domain.LevelCampaign
		}
		return entities[i].ID < entities[j].ID
	})
	return entities
}
