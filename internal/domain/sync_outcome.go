package domain

import "time"

type SyncStatus string

const (
	SyncStatusNoOp   SyncStatus = "no_op"
	SyncStatusSynced SyncStatus = "synced"
)

// SyncOutcome resume a sincronização de um tipo para uma conta
type SyncOutcome struct {
	Kind       StatisticKind `json:"kind"`
	Status     SyncStatus    `json:"status"`
	Window     *DateRange    `json:"window,omitempty"`
	Fetched    int           `json:"fetched"`
	Created    int           `json:"created"`
	Updated    int           `json:"updated"`
	Skipped    int           `json:"skipped"`
	Removed    int           `json:"removed"`
	Merged     int           `json:"merged"`
	Collisions int           `json:"collisions"`
	Entities   int           `json:"entities"`
}

func NoOpOutcome(kind StatisticKind) *SyncOutcome {
	return &SyncOutcome{Kind: kind, Status: SyncStatusNoOp}
}

// AccountSyncReport agrega os resultados de uma execução de conta
type AccountSyncReport struct {
	AccountID       string          `json:"account_id"`
	Scope           SyncScope       `json:"scope"`
	StartedAt       time.Time       `json:"started_at"`
	FinishedAt      time.Time       `json:"finished_at"`
	Outcomes        []*SyncOutcome  `json:"outcomes"`
	SkippedKinds    []StatisticKind `json:"skipped_kinds,omitempty"`
	ExhaustedKinds  []StatisticKind `json:"exhausted_kinds,omitempty"`
	FailedKinds     []StatisticKind `json:"failed_kinds,omitempty"`
	AccountInactive bool            `json:"account_inactive"`
	Stamped         bool            `json:"stamped"`
}

// Completed indica que todos os tipos terminaram sem esgotar credenciais nem falhar na persistência
func (r *AccountSyncReport) Completed() bool {
	return !r.AccountInactive && len(r.ExhaustedKinds) == 0 && len(r.FailedKinds) == 0
}

// DiscoveryReport resume a descoberta de contas sob uma gerenciadora
type DiscoveryReport struct {
	ManagerID   string   `json:"manager_id"`
	Visible     int      `json:"visible"`
	Created     []string `json:"created"`
	Permissions int      `json:"permissions"`
}

// ProbeReport resume uma rodada da verificação de permissões de leitura
type ProbeReport struct {
	Checked     int `json:"checked"`
	Healed      int `json:"healed"`
	Deactivated int `json:"deactivated"`
	Failed      int `json:"failed"`
}
