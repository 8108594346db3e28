package handler

import (
	"net/http"
	"net/mail"
	"strings"

	"github.com/vfg2006/traffic-stats-sync/internal/domain"
	"github.com/vfg2006/traffic-stats-sync/pkg/apiErrors"
	"github.com/vfg2006/traffic-stats-sync/pkg/log"
	"github.com/vfg2006/traffic-stats-sync/pkg/utils"
)

type credentialRequest struct {
	Email        string   `json:"email"`
	RefreshToken string   `json:"refresh_token"`
	AccountIDs   []string `json:"account_ids"`
}

type credentialResponse struct {
	Credential  domain.Credential `json:"credential"`
	Permissions int               `json:"permissions"`
}

// CreateCredential grava (ou renova) o refresh token de um e-mail e concede leitura
// nas contas informadas. Contas sem permissão são cobertas pela descoberta.
func CreateCredential(store CredentialStore) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req credentialRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Corpo da requisição inválido: "+err.Error(), nil)
			return
		}

		req.Email = strings.TrimSpace(strings.ToLower(req.Email))
		if req.Email == "" || req.RefreshToken == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "email e refresh_token são obrigatórios", nil)
			return
		}
		if _, err := mail.ParseAddress(req.Email); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "email inválido", nil)
			return
		}

		id, err := utils.GenerateID()
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao gerar identificador", nil)
			return
		}

		credential := &domain.Credential{ID: id, Email: req.Email, RefreshToken: req.RefreshToken}
		if err := store.SaveCredential(r.Context(), credential); err != nil {
			log.ForContext(r.Context()).WithError(err).Error("Erro ao gravar credencial")
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao gravar credencial", nil)
			return
		}

		permissions := make([]domain.Permission, 0, len(req.AccountIDs))
		for _, accountID := range req.AccountIDs {
			permissionID, err := utils.GenerateID()
			if err != nil {
				apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao gerar identificador", nil)
				return
			}
			permissions = append(permissions, domain.Permission{
				ID:           permissionID,
				CredentialID: credential.ID,
				AccountID:    accountID,
				CanRead:      true,
			})
		}

		inserted, err := store.UpsertPermissions(r.Context(), permissions)
		if err != nil {
			log.ForContext(r.Context()).WithError(err).WithField("credential_id", credential.ID).Error("Erro ao gravar permissões")
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao gravar permissões", nil)
			return
		}

		log.ForContext(r.Context()).WithFields(log.Fields{
			"credential_id":    credential.ID,
			"sync_permissions": inserted,
		}).Info("Credencial gravada")

		writeJSON(w, http.StatusCreated, credentialResponse{Credential: *credential, Permissions: inserted})
	})
}
