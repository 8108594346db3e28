package repository

//go:generate mockgen -source=account.go -destination=mocks/account.go -package=mocks

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/Masterminds/squirrel"
	_ "github.com/lib/pq"
	"github.com/vfg2006/traffic-stats-sync/infrastructure/database/postgres"
	"github.com/vfg2006/traffic-stats-sync/internal/domain"
)

const accountsTable = "accounts a"

const accountColumns = "a.id, a.name, a.currency_code, a.timezone, a.manager_id, a.is_manager, a.is_active, " +
	"a.end_date, a.last_full_sync_at, a.last_hourly_sync_at, a.created_at"

type AccountRepository interface {
	GetAccount(ctx context.Context, accountID string) (*domain.Account, error)
	// ListDue lista contas finais ativas cujo carimbo e última tentativa do escopo são nulos ou
	// anteriores a olderThan, das tentadas há mais tempo para as mais recentes
	ListDue(ctx context.Context, scope domain.SyncScope, olderThan, endedAfter time.Time, limit int) ([]*domain.Account, error)
	ListManagers(ctx context.Context) ([]*domain.Account, error)
	Deactivate(ctx context.Context, accountID string) error
	StampFullSync(ctx context.Context, accountID string, at time.Time) error
	StampHourlySync(ctx context.Context, accountID string, at time.Time) error
	// StampAttempt registra o início de uma sincronização agendada, concluída ou não
	StampAttempt(ctx context.Context, accountID string, scope domain.SyncScope, at time.Time) error
	// UpsertDiscovered grava contas descobertas e retorna os IDs criados
	UpsertDiscovered(ctx context.Context, accounts []domain.Account) ([]string, error)
}

type accountRepository struct {
	conn *postgres.Connection
}

func NewAccountRepository(conn *postgres.Connection) AccountRepository {
	return &accountRepository{
		conn: conn,
	}
}

func (r *accountRepository) GetAccount(ctx context.Context, accountID string) (*domain.Account, error) {
	query, args, err := squirrel.
		Select(accountColumns).
		From(accountsTable).
		Where(squirrel.Eq{"a.id": accountID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	acc, err := scanAccount(r.conn.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, wrapDBError("erro ao buscar conta", err)
	}

	return acc, nil
}

func (r *accountRepository) ListDue(
	ctx context.Context,
	scope domain.SyncScope,
	olderThan, endedAfter time.Time,
	limit int,
) ([]*domain.Account, error) {
	stampColumn, attemptColumn := "a.last_full_sync_at", "a.last_full_attempt_at"
	if scope == domain.SyncScopeHourly {
		stampColumn, attemptColumn = "a.last_hourly_sync_at", "a.last_hourly_attempt_at"
	}

	query, args, err := squirrel.
		Select(accountColumns).
		From(accountsTable).
		Where(squirrel.Eq{"a.is_manager": false, "a.is_active": true}).
		Where(squirrel.Or{
			squirrel.Eq{"a.end_date": nil},
			squirrel.GtOrEq{"a.end_date": endedAfter},
		}).
		Where(squirrel.Or{
			squirrel.Eq{stampColumn: nil},
			squirrel.Lt{stampColumn: olderThan},
		}).
		Where(squirrel.Or{
			squirrel.Eq{attemptColumn: nil},
			squirrel.Lt{attemptColumn: olderThan},
		}).
		OrderBy(attemptColumn+" ASC NULLS FIRST", stampColumn+" ASC NULLS FIRST").
		Limit(uint64(limit)).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	return r.listAccounts(ctx, query, args...)
}

// ListManagers lista as contas gerenciadoras ativas
func (r *accountRepository) ListManagers(ctx context.Context) ([]*domain.Account, error) {
	query, args, err := squirrel.
		Select(accountColumns).
		From(accountsTable).
		Where(squirrel.Eq{"a.is_manager": true, "a.is_active": true}).
		OrderBy("a.id ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	return r.listAccounts(ctx, query, args...)
}

func (r *accountRepository) listAccounts(ctx context.Context, query string, args ...interface{}) ([]*domain.Account, error) {
	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, wrapDBError("erro ao listar contas", err)
	}
	defer rows.Close()

	accounts := make([]*domain.Account, 0)
	for rows.Next() {
		acc, err := scanAccount(rows)
		if err != nil {
			return nil, wrapDBError("erro ao deserializar conta", err)
		}
		accounts = append(accounts, acc)
	}

	if err := rows.Err(); err != nil {
		return nil, wrapDBError("erro ao iterar contas", err)
	}

	return accounts, nil
}

func (r *accountRepository) Deactivate(ctx context.Context, accountID string) error {
	return r.update(ctx, "erro ao desativar conta", squirrel.
		Update("accounts").
		Set("is_active", false).
		Where(squirrel.Eq{"id": accountID}))
}

func (r *accountRepository) StampFullSync(ctx context.Context, accountID string, at time.Time) error {
	return r.update(ctx, "erro ao registrar sincronização completa", squirrel.
		Update("accounts").
		Set("last_full_sync_at", at).
		Where(squirrel.Eq{"id": accountID}))
}

func (r *accountRepository) StampHourlySync(ctx context.Context, accountID string, at time.Time) error {
	return r.update(ctx, "erro ao registrar sincronização horária", squirrel.
		Update("accounts").
		Set("last_hourly_sync_at", at).
		Where(squirrel.Eq{"id": accountID}))
}

func (r *accountRepository) StampAttempt(ctx context.Context, accountID string, scope domain.SyncScope, at time.Time) error {
	column := "last_full_attempt_at"
	if scope == domain.SyncScopeHourly {
		column = "last_hourly_attempt_at"
	}

	return r.update(ctx, "erro ao registrar tentativa de sincronização", squirrel.
		Update("accounts").
		Set(column, at).
		Where(squirrel.Eq{"id": accountID}))
}

func (r *accountRepository) update(ctx context.Context, op string, builder squirrel.UpdateBuilder) error {
	query, args, err := builder.PlaceholderFormat(squirrel.Dollar).ToSql()
	if err != nil {
		return err
	}

	result, err := r.conn.ExecContext(ctx, query, args...)
	if err != nil {
		return wrapDBError(op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return wrapDBError(op, err)
	}
	if rowsAffected == 0 {
		return domain.ErrAccountNotFound
	}

	return nil
}

func (r *accountRepository) UpsertDiscovered(ctx context.Context, accounts []domain.Account) ([]string, error) {
	if len(accounts) == 0 {
		return nil, nil
	}

	query := squirrel.StatementBuilder.
		Insert("accounts").
		Columns("id", "name", "currency_code", "timezone", "manager_id", "is_manager", "is_active").
		PlaceholderFormat(squirrel.Dollar)

	for _, acc := range accounts {
		query = query.Values(
			acc.ID,
			acc.Name,
			acc.CurrencyCode,
			acc.Timezone,
			acc.ManagerID,
			acc.IsManager,
			acc.IsActive,
		)
	}

	// xmax = 0 apenas nas linhas inseridas por este comando
	query = query.Suffix(`
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			currency_code = EXCLUDED.currency_code,
			timezone = EXCLUDED.timezone,
			manager_id = COALESCE(accounts.manager_id, EXCLUDED.manager_id),
			is_manager = EXCLUDED.is_manager
		RETURNING id, (xmax = 0) AS inserted
	`)

	sqlQuery, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.conn.QueryContext(ctx, sqlQuery, args...)
	if err != nil {
		return nil, wrapDBError("erro ao gravar contas descobertas", err)
	}
	defer rows.Close()

	created := make([]string, 0)
	for rows.Next() {
		var (
			id       string
			inserted bool
		)
		if err := rows.Scan(&id, &inserted); err != nil {
			return nil, wrapDBError("erro ao ler contas gravadas", err)
		}
		if inserted {
			created = append(created, id)
		}
	}

	if err := rows.Err(); err != nil {
		return nil, wrapDBError("erro ao iterar contas gravadas", err)
	}

	return created, nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanAccount(row scanner) (*domain.Account, error) {
	acc := &domain.Account{}
	var managerID sql.NullString

	if err := row.Scan(
		&acc.ID,
		&acc.Name,
		&acc.CurrencyCode,
		&acc.Timezone,
		&managerID,
		&acc.IsManager,
		&acc.IsActive,
		&acc.EndDate,
		&acc.LastFullSyncAt,
		&acc.LastHourlySyncAt,
		&acc.CreatedAt,
	); err != nil {
		return nil, err
	}

	if managerID.Valid {
		acc.ManagerID = &managerID.String
	}

	return acc, nil
}
