package domain

import "time"

// Credential guarda um refresh token compartilhado entre várias contas.
// Revoked só vai de false para true durante a sincronização.
type Credential struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	RefreshToken string    `json:"-"`
	Revoked      bool      `json:"revoked"`
	CreatedAt    time.Time `json:"created_at"`
}

// Permission liga uma credencial a uma conta
type Permission struct {
	ID            string     `json:"id"`
	CredentialID  string     `json:"credential_id"`
	AccountID     string     `json:"account_id"`
	CanRead       bool       `json:"can_read"`
	CanWrite      bool       `json:"can_write"`
	LastSuccessAt *time.Time `json:"last_success_at"`
}

// CredentialCandidate é uma permissão junto com a credencial que ela referencia
type CredentialCandidate struct {
	Permission Permission
	Credential Credential
}
