package syncing

import (
	"time"

	"github.com/vfg2006/traffic-stats-sync/internal/domain"
	"github.com/vfg2006/traffic-stats-sync/pkg/utils"
)

// WatermarkCalculator decide a janela de datas que precisa ser buscada.
// Os últimos StabilityDays dias ainda são revisados pela plataforma e sempre voltam para a janela.
type WatermarkCalculator struct {
	MinFetchDate  time.Time
	StabilityDays int
}

func NewWatermarkCalculator(minFetchDate time.Time, stabilityDays int) WatermarkCalculator {
	return WatermarkCalculator{
		MinFetchDate:  domain.DateOf(minFetchDate),
		StabilityDays: stabilityDays,
	}
}

// Today é o dia corrente no fuso da conta
func (w WatermarkCalculator) Today(now time.Time, loc *time.Location) time.Time {
	return utils.TodayIn(now, loc)
}

// StabilityStart é o primeiro dia da janela de estabilidade
func (w WatermarkCalculator) StabilityStart(today time.Time) time.Time {
	return utils.AddDays(domain.DateOf(today), -w.StabilityDays)
}

// InStabilityWindow indica se a data ainda pode ser revisada
func (w WatermarkCalculator) InStabilityWindow(date, today time.Time) bool {
	return !domain.DateOf(date).Before(w.StabilityStart(today))
}

// Window calcula [retainedMax + 1, ceiling], ou [floor, ceiling] sem dados retidos.
// retainedMax é o maior dia salvo fora da janela de estabilidade.
// Retorna false quando não há trabalho.
func (w WatermarkCalculator) Window(retainedMax *time.Time, floor, ceiling time.Time) (domain.DateRange, bool) {
	from := domain.DateOf(floor)
	if retainedMax != nil {
		from = utils.AddDays(domain.DateOf(*retainedMax), 1)
	}
	to := domain.DateOf(ceiling)

	if from.After(to) {
		return domain.DateRange{}, false
	}
	return domain.DateRange{From: from, To: to}, true
}
