package alerts

import (
	"sync"
	"time"
)

const defaultWindow = 30 * time.Minute

// AlertRecord guarda o último envio de um alerta
type AlertRecord struct {
	Key        string
	SentAt     time.Time
	Count      int
	Suppressed int
}

// DedupStore guarda os alertas enviados para deduplicação
type DedupStore struct {
	records map[string]*AlertRecord
	window  time.Duration
	now     func() time.Time
	mu      sync.Mutex
}

func NewDedupStore(window time.Duration) *DedupStore {
	if window <= 0 {
		window = defaultWindow
	}
	return &DedupStore{
		records: make(map[string]*AlertRecord),
		window:  window,
		now:     time.Now,
	}
}

// Allow registra o envio e retorna true quando não houve alerta igual dentro da janela
func (d *DedupStore) Allow(key string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	now := d.now()
	record, exists := d.records[key]
	if !exists {
		d.records[key] = &AlertRecord{Key: key, SentAt: now, Count: 1}
		return true
	}

	if now.Sub(record.SentAt) < d.window {
		record.Suppressed++
		return false
	}

	record.SentAt = now
	record.Count++
	return true
}

func (d *DedupStore) GetRecord(key string) *AlertRecord {
	d.mu.Lock()
	defer d.mu.Unlock()

	record, ok := d.records[key]
	if !ok {
		return nil
	}
	copied := *record
	return &copied
}

// Cleanup remove registros fora da janela
func (d *DedupStore) Cleanup() {
	d.mu.Lock()
	defer d.mu.Unlock()

	now := d.now()
	for key, record := range d.records {
		if now.Sub(record.SentAt) > d.window {
			delete(d.records, key)
		}
	}
}

func (d *DedupStore) Size() int {
	d.mu.Lock()
	defer d.mu.Unlock()

	return len(d.records)
}
