package syncing_test

import (
	"context"
	"time"

	"github.com/vfg2006/traffic-stats-sync/internal/domain"
)

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

func dayPtr(year int, month time.Month, d int) *time.Time {
	value := day(year, month, d)
	return &value
}

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time {
	return c.now
}

// sliceIterator entrega linhas fixas e, opcionalmente, um erro no fim
type sliceIterator struct {
	rows   []domain.Row
	pos    int
	err    error
	closed bool
}

func newSliceIterator(rows ...domain.Row) *sliceIterator {
	return &sliceIterator{rows: rows, pos: -1}
}

func (i *sliceIterator) Next(_ context.Context) bool {
	if i.pos+1 >= len(i.rows) {
		return false
	}
	i.pos++
	return true
}

func (i *sliceIterator) Row() domain.Row {
	return i.rows[i.pos]
}

func (i *sliceIterator) Err() error {
	return i.err
}

func (i *sliceIterator) Close() error {
	i.closed = true
	return nil
}

func hasField(req domain.ReportRequest, field string) bool {
	for _, f := range req.Fields {
		if f == field {
			return true
		}
	}
	return false
}

func testAccount() *domain.Account {
	return &domain.Account{ID: "123", Timezone: "UTC", IsActive: true}
}
