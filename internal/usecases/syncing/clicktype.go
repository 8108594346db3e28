package syncing

import (
	"github.com/vfg2006/traffic-stats-sync/internal/domain"
)

// Tipos de clique rastreados, nos nomes do relatório legado e nos do enum atual.
// Tipos fora desta lista são ignorados.
var trackedClickTypes = map[string]domain.ClickType{
	"Website":                           domain.ClickWebsite,
	"Call-to-Action overlay":            domain.ClickCallToActionOverlay,
	"App store":                         domain.ClickAppStore,
	"Cards":                             domain.ClickCards,
	"End cap":                           domain.ClickEndCap,
	"VIDEO_WEBSITE_CLICKS":              domain.ClickWebsite,
	"VIDEO_CALL_TO_ACTION_CLICKS":       domain.ClickCallToActionOverlay,
	"VIDEO_APP_STORE_CLICKS":            domain.ClickAppStore,
	"VIDEO_CARD_ACTION_HEADLINE_CLICKS": domain.ClickCards,
	"VIDEO_END_CAP_CLICKS":              domain.ClickEndCap,
}

// TrackedClickType traduz o código do relatório para o campo correspondente
func TrackedClickType(code string) (domain.ClickType, bool) {
	clickType, ok := trackedClickTypes[code]
	return clickType, ok
}

type clickTypeEntry struct {
	key       domain.StatisticKey
	clickType domain.ClickType
}

// ClickTypeIndex junta o relatório secundário de tipos de clique às estatísticas
// pela chave (entidade pai, segmentação, data).
//
// Com consumeOnce cada chave é entregue a uma única linha primária; novas buscas
// pela mesma chave contam como colisão em vez de somar de novo.
type ClickTypeIndex struct {
	entries     map[domain.StatisticKey]domain.ClickBreakdown
	seen        map[clickTypeEntry]struct{}
	consumed    map[domain.StatisticKey]struct{}
	consumeOnce bool
	collisions  int
	ignored     int
}

func NewClickTypeIndex(consumeOnce bool) *ClickTypeIndex {
	return &ClickTypeIndex{
		entries:     make(map[domain.StatisticKey]domain.ClickBreakdown),
		seen:        make(map[clickTypeEntry]struct{}),
		consumed:    make(map[domain.StatisticKey]struct{}),
		consumeOnce: consumeOnce,
	}
}

// Add registra os cliques de um tipo para a chave. Repetições do mesmo tipo na
// mesma chave são somadas e contadas como colisão.
func (i *ClickTypeIndex) Add(key domain.StatisticKey, code string, clicks int64) {
	clickType, ok := TrackedClickType(code)
	if !ok {
		i.ignored++
		return
	}

	entry := clickTypeEntry{key: key, clickType: clickType}
	if _, dup := i.seen[entry]; dup {
		i.collisions++
	}
	i.seen[entry] = struct{}{}

	breakdown := i.entries[key]
	breakdown.Add(clickType, clicks)
	i.entries[key] = breakdown
}

// Apply retorna a decomposição de cliques da chave, se houver
func (i *ClickTypeIndex) Apply(key domain.StatisticKey) (domain.ClickBreakdown, bool) {
	if !i.consumeOnce {
		breakdown, ok := i.entries[key]
		return breakdown, ok
	}

	breakdown, ok := i.entries[key]
	if !ok {
		if _, used := i.consumed[key]; used {
			i.collisions++
		}
		return domain.ClickBreakdown{}, false
	}

	delete(i.entries, key)
	i.consumed[key] = struct{}{}
	return breakdown, true
}

func (i *ClickTypeIndex) Len() int {
	return len(i.entries)
}

// Collisions conta chaves repetidas na construção e reusos de chaves consumidas
func (i *ClickTypeIndex) Collisions() int {
	return i.collisions
}

// Ignored conta linhas com tipo de clique fora da lista rastreada
func (i *ClickTypeIndex) Ignored() int {
	return i.ignored
}
