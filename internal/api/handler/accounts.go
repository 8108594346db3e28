package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/vfg2006/traffic-stats-sync/internal/domain"
	"github.com/vfg2006/traffic-stats-sync/pkg/apiErrors"
	"github.com/vfg2006/traffic-stats-sync/pkg/log"
)

// ListCampaigns devolve as campanhas da conta com totais e métricas derivadas
func ListCampaigns(lister CampaignLister) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		accountID := httprouter.ParamsFromContext(r.Context()).ByName("id")

		campaigns, err := lister.ListCampaigns(r.Context(), accountID)
		if err != nil {
			log.ForContext(r.Context()).WithError(err).WithField("account_id", accountID).Error("Erro ao listar campanhas")
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao consultar campanhas", nil)
			return
		}

		response := make([]domain.CampaignResponse, 0, len(campaigns))
		for _, campaign := range campaigns {
			response = append(response, domain.NewCampaignResponse(campaign))
		}

		writeJSON(w, http.StatusOK, response)
	})
}
