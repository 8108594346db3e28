package domain

import (
	"errors"
	"time"
)

var ErrAccountNotFound = errors.New("account not found")

type AccountStatus string

const (
	AccountStatusActive   AccountStatus = "ACTIVE"
	AccountStatusInactive AccountStatus = "INACTIVE"
)

// Account representa uma conta da plataforma de anúncios (gerenciadora ou final)
type Account struct {
	ID               string     `json:"id"`
	Name             string     `json:"name"`
	CurrencyCode     string     `json:"currency_code"`
	Timezone         string     `json:"timezone"`
	ManagerID        *string    `json:"manager_id"`
	IsManager        bool       `json:"is_manager"`
	IsActive         bool       `json:"is_active"`
	EndDate          *time.Time `json:"end_date"`
	LastFullSyncAt   *time.Time `json:"last_full_sync_at"`
	LastHourlySyncAt *time.Time `json:"last_hourly_sync_at"`
	CreatedAt        time.Time  `json:"created_at"`
}

// Status retorna o status textual da conta
func (a *Account) Status() AccountStatus {
	if a.IsActive {
		return AccountStatusActive
	}
	return AccountStatusInactive
}

// Location retorna o fuso horário da conta, UTC quando o nome é desconhecido
func (a *Account) Location() *time.Location {
	if a.Timezone == "" {
		return time.UTC
	}

	loc, err := time.LoadLocation(a.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// LoginCustomerID é a conta usada no cabeçalho de login das requisições.
// Contas finais descobertas sob uma gerenciadora usam o ID da gerenciadora.
func (a *Account) LoginCustomerID() string {
	if a.ManagerID != nil && *a.ManagerID != "" {
		return *a.ManagerID
	}
	return a.ID
}

// CustomerClient é uma conta visível sob uma conta gerenciadora
type CustomerClient struct {
	ID           string
	Name         string
	CurrencyCode string
	Timezone     string
	IsManager    bool
	Hidden       bool
	TestAccount  bool
}

// ToAccount converte o cliente descoberto em uma conta ativa vinculada à gerenciadora
func (c CustomerClient) ToAccount(managerID string) Account {
	return Account{
		ID:           c.ID,
		Name:         c.Name,
		CurrencyCode: c.CurrencyCode,
		Timezone:     c.Timezone,
		ManagerID:    &managerID,
		IsManager:    c.IsManager,
		IsActive:     true,
	}
}

type SyncScope string

const (
	SyncScopeFull   SyncScope = "full"
	SyncScopeHourly SyncScope = "hourly"
)

func (s SyncScope) Valid() bool {
	return s == SyncScopeFull || s == SyncScopeHourly
}
