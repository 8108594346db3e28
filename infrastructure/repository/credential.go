package repository

//go:generate mockgen -source=credential.go -destination=mocks/credential.go -package=mocks

import (
	"context"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/traffic-stats-sync/infrastructure/database/postgres"
	"github.com/vfg2006/traffic-stats-sync/internal/domain"
	"github.com/vfg2006/traffic-stats-sync/pkg/secret"
)

const candidateColumns = "p.id, p.credential_id, p.account_id, p.can_read, p.can_write, p.last_success_at, " +
	"c.id, c.email, c.refresh_token, c.revoked, c.created_at"

type CredentialRepository interface {
	// Candidates lista permissões legíveis com credencial ativa, a de sucesso mais recente primeiro
	Candidates(ctx context.Context, accountID string) ([]domain.CredentialCandidate, error)
	// ListUnreadable lista permissões sem leitura de contas ativas com credencial ativa
	ListUnreadable(ctx context.Context) ([]domain.CredentialCandidate, error)
	RevokeCredential(ctx context.Context, credentialID string) error
	DenyRead(ctx context.Context, permissionID string) error
	GrantRead(ctx context.Context, permissionID string) error
	MarkSuccess(ctx context.Context, permissionID string, at time.Time) error
	// UpsertPermissions cria as permissões que ainda não existem e retorna quantas foram criadas
	UpsertPermissions(ctx context.Context, permissions []domain.Permission) (int, error)
	SaveCredential(ctx context.Context, credential *domain.Credential) error
}

type credentialRepository struct {
	conn *postgres.Connection
	box  *secret.Box
}

func NewCredentialRepository(conn *postgres.Connection, box *secret.Box) CredentialRepository {
	return &credentialRepository{
		conn: conn,
		box:  box,
	}
}

func (r *credentialRepository) Candidates(ctx context.Context, accountID string) ([]domain.CredentialCandidate, error) {
	query, args, err := squirrel.
		Select(candidateColumns).
		From("permissions p").
		Join("credentials c ON c.id = p.credential_id").
		Where(squirrel.Eq{"p.account_id": accountID, "p.can_read": true, "c.revoked": false}).
		OrderBy("p.last_success_at DESC NULLS LAST", "p.id ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	return r.listCandidates(ctx, query, args...)
}

func (r *credentialRepository) ListUnreadable(ctx context.Context) ([]domain.CredentialCandidate, error) {
	query, args, err := squirrel.
		Select(candidateColumns).
		From("permissions p").
		Join("credentials c ON c.id = p.credential_id").
		Join("accounts a ON a.id = p.account_id").
		Where(squirrel.Eq{"p.can_read": false, "c.revoked": false, "a.is_active": true}).
		OrderBy("p.account_id ASC", "p.id ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	return r.listCandidates(ctx, query, args...)
}

func (r *credentialRepository) listCandidates(ctx context.Context, query string, args ...interface{}) ([]domain.CredentialCandidate, error) {
	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, wrapDBError("erro ao listar credenciais", err)
	}
	defer rows.Close()

	candidates := make([]domain.CredentialCandidate, 0)
	for rows.Next() {
		var (
			candidate domain.CredentialCandidate
			sealed    string
		)
		p := &candidate.Permission
		c := &candidate.Credential

		if err := rows.Scan(
			&p.ID,
			&p.CredentialID,
			&p.AccountID,
			&p.CanRead,
			&p.CanWrite,
			&p.LastSuccessAt,
			&c.ID,
			&c.Email,
			&sealed,
			&c.Revoked,
			&c.CreatedAt,
		); err != nil {
			return nil, wrapDBError("erro ao deserializar credencial", err)
		}

		token, err := r.box.Open(sealed)
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"credential_id": c.ID,
				"error":         err.Error(),
			}).Warn("Refresh token não pôde ser decifrado, credencial ignorada")
			continue
		}
		c.RefreshToken = token

		candidates = append(candidates, candidate)
	}

	if err := rows.Err(); err != nil {
		return nil, wrapDBError("erro ao iterar credenciais", err)
	}

	return candidates, nil
}

func (r *credentialRepository) RevokeCredential(ctx context.Context, credentialID string) error {
	return r.exec(ctx, "erro ao revogar credencial", squirrel.
		Update("credentials").
		Set("revoked", true).
		Where(squirrel.Eq{"id": credentialID}))
}

func (r *credentialRepository) DenyRead(ctx context.Context, permissionID string) error {
	return r.exec(ctx, "erro ao remover permissão de leitura", squirrel.
		Update("permissions").
		Set("can_read", false).
		Where(squirrel.Eq{"id": permissionID}))
}

func (r *credentialRepository) GrantRead(ctx context.Context, permissionID string) error {
	return r.exec(ctx, "erro ao restaurar permissão de leitura", squirrel.
		Update("permissions").
		Set("can_read", true).
		Where(squirrel.Eq{"id": permissionID}))
}

func (r *credentialRepository) MarkSuccess(ctx context.Context, permissionID string, at time.Time) error {
	return r.exec(ctx, "erro ao registrar sucesso da permissão", squirrel.
		Update("permissions").
		Set("last_success_at", at).
		Where(squirrel.Eq{"id": permissionID}))
}

func (r *credentialRepository) exec(ctx context.Context, op string, builder squirrel.UpdateBuilder) error {
	query, args, err := builder.PlaceholderFormat(squirrel.Dollar).ToSql()
	if err != nil {
		return err
	}

	if _, err := r.conn.ExecContext(ctx, query, args...); err != nil {
		return wrapDBError(op, err)
	}
	return nil
}

func (r *credentialRepository) UpsertPermissions(ctx context.Context, permissions []domain.Permission) (int, error) {
	if len(permissions) == 0 {
		return 0, nil
	}

	query := squirrel.StatementBuilder.
		Insert("permissions").
		Columns("id", "credential_id", "account_id", "can_read", "can_write").
		PlaceholderFormat(squirrel.Dollar)

	for _, p := range permissions {
		query = query.Values(p.ID, p.CredentialID, p.AccountID, p.CanRead, p.CanWrite)
	}

	query = query.Suffix("ON CONFLICT (credential_id, account_id) DO NOTHING")

	sqlQuery, args, err := query.ToSql()
	if err != nil {
		return 0, err
	}

	result, err := r.conn.ExecContext(ctx, sqlQuery, args...)
	if err != nil {
		return 0, wrapDBError("erro ao gravar permissões", err)
	}

	inserted, err := result.RowsAffected()
	if err != nil {
		return 0, wrapDBError("erro ao gravar permissões", err)
	}

	return int(inserted), nil
}

// SaveCredential cifra o refresh token antes de gravar
func (r *credentialRepository) SaveCredential(ctx context.Context, credential *domain.Credential) error {
	sealed, err := r.box.Seal(credential.RefreshToken)
	if err != nil {
		return err
	}

	query, args, err := squirrel.StatementBuilder.
		Insert("credentials").
		Columns("id", "email", "refresh_token", "revoked").
		Values(credential.ID, credential.Email, sealed, false).
		Suffix(`
			ON CONFLICT (email) DO UPDATE SET
				refresh_token = EXCLUDED.refresh_token,
				revoked = FALSE
			RETURNING id
		`).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return err
	}

	if err := r.conn.QueryRowContext(ctx, query, args...).Scan(&credential.ID); err != nil {
		return wrapDBError("erro ao gravar credencial", err)
	}

	credential.Revoked = false
	return nil
}
