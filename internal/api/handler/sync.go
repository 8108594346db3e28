package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/vfg2006/traffic-stats-sync/internal/domain"
	"github.com/vfg2006/traffic-stats-sync/internal/scheduler"
	"github.com/vfg2006/traffic-stats-sync/internal/usecases/syncing"
	"github.com/vfg2006/traffic-stats-sync/pkg/apiErrors"
	"github.com/vfg2006/traffic-stats-sync/pkg/log"
	"github.com/vfg2006/traffic-stats-sync/pkg/utils"
)

// RunSyncJob dispara uma rotina em segundo plano e responde 202
func RunSyncJob(service SyncService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		jobType := httprouter.ParamsFromContext(r.Context()).ByName("type")

		job, err := scheduler.ParseJobType(jobType)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrSyncUnknownJob, "Rotina inválida. Valores aceitos: full, hourly, discovery, permissions, all", nil)
			return
		}

		if err := service.TriggerManualSync(job); err != nil {
			if errors.Is(err, scheduler.ErrJobRunning) {
				apiErrors.WriteError(w, apiErrors.ErrSyncJobRunning, "Rotina já em andamento", nil)
				return
			}
			log.ForContext(r.Context()).WithError(err).Error("Erro ao disparar rotina")
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao disparar rotina", nil)
			return
		}

		writeJSON(w, http.StatusAccepted, map[string]any{
			"message": "Sincronização iniciada com sucesso",
			"type":    job,
		})
	})
}

func GetSyncStatus(service SyncService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, service.GetStatus())
	})
}

// SyncAccount roda a sincronização da conta e devolve o relatório da execução
func SyncAccount(service SyncService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		accountID := httprouter.ParamsFromContext(r.Context()).ByName("id")

		scope := domain.SyncScope(r.URL.Query().Get("scope"))
		if scope == "" {
			scope = domain.SyncScopeFull
		}
		if !scope.Valid() {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Escopo inválido. Valores aceitos: full, hourly", nil)
			return
		}

		logger := log.ForContext(r.Context()).WithFields(log.Fields{
			"account_id": accountID,
			"scope":      scope,
		})
		logger.Info("Sincronização manual de conta solicitada")

		report, err := service.SyncAccount(r.Context(), accountID, scope)
		if err != nil {
			code, message := accountErrorCode(err)
			if code == apiErrors.ErrInternalServer {
				logger.WithError(err).Error("Erro na sincronização manual da conta")
			}
			apiErrors.WriteError(w, code, message, nil)
			return
		}

		writeJSON(w, http.StatusOK, report)
	})
}

type rewindRequest struct {
	Kind domain.StatisticKind `json:"kind"`
	From string               `json:"from"`
}

// RewindAccount apaga as estatísticas do tipo a partir de uma data
func RewindAccount(rewinder Rewinder) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		accountID := httprouter.ParamsFromContext(r.Context()).ByName("id")

		var req rewindRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Corpo da requisição inválido: "+err.Error(), nil)
			return
		}
		if req.Kind == "" || req.From == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "kind e from são obrigatórios", nil)
			return
		}

		from, err := utils.ParseDate(req.From)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "from deve estar no formato YYYY-MM-DD", nil)
			return
		}

		removed, err := rewinder.Rewind(r.Context(), accountID, req.Kind, *from)
		if err != nil {
			code, message := accountErrorCode(err)
			if code == apiErrors.ErrInternalServer {
				log.ForContext(r.Context()).WithError(err).Error("Erro ao reiniciar estatísticas")
			}
			apiErrors.WriteError(w, code, message, nil)
			return
		}

		writeJSON(w, http.StatusOK, map[string]any{
			"account_id": accountID,
			"kind":       req.Kind,
			"from":       from.Format(time.DateOnly),
			"removed":    removed,
		})
	})
}

func accountErrorCode(err error) (string, string) {
	switch {
	case errors.Is(err, scheduler.ErrAccountBusy):
		return apiErrors.ErrSyncAccountBusy, "Conta já está sendo sincronizada"
	case errors.Is(err, domain.ErrAccountNotFound):
		return apiErrors.ErrSyncAccountNotFound, "Conta não encontrada"
	case errors.Is(err, domain.ErrAccountInactive):
		return apiErrors.ErrSyncAccountInactive, "Conta desativada"
	case errors.Is(err, syncing.ErrUnknownKind):
		return apiErrors.ErrSyncUnknownKind, err.Error()
	}
	return apiErrors.ErrInternalServer, "Erro ao sincronizar conta"
}
