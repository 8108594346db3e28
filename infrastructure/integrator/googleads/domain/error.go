package adsdomain

import (
	"net/http"

	"github.com/vfg2006/traffic-stats-sync/internal/domain"
)

// ErrorResponse representa a estrutura de erro da API REST do Google Ads
type ErrorResponse struct {
	Error ErrorDetails `json:"error"`
}

type ErrorDetails struct {
	Code    int          `json:"code"`
	Message string       `json:"message"`
	Status  string       `json:"status"`
	Details []AdsFailure `json:"details"`
}

// AdsFailure é o detalhe do tipo GoogleAdsFailure
type AdsFailure struct {
	Type      string     `json:"@type"`
	Errors    []AdsError `json:"errors"`
	RequestID string     `json:"requestId"`
}

type AdsError struct {
	// ErrorCode traz uma única chave, ex: {"authorizationError": "USER_PERMISSION_DENIED"}
	ErrorCode map[string]string `json:"errorCode"`
	Message   string            `json:"message"`
}

// códigos por tipo de erro
var errorCodeKinds = map[string]domain.ErrorKind{
	"USER_PERMISSION_DENIED": domain.ErrorKindPermissionDenied,
	"CUSTOMER_NOT_FOUND":     domain.ErrorKindPermissionDenied,

	// problema do token de desenvolvedor, não da permissão da credencial na conta
	"DEVELOPER_TOKEN_NOT_APPROVED": domain.ErrorKindUnknown,

	"CUSTOMER_NOT_ENABLED": domain.ErrorKindAccountInactive,

	"OAUTH_TOKEN_EXPIRED": domain.ErrorKindTokenRevoked,
	"OAUTH_TOKEN_REVOKED": domain.ErrorKindTokenRevoked,
	"OAUTH_TOKEN_INVALID": domain.ErrorKindTokenRevoked,
	"NOT_ADS_USER":        domain.ErrorKindTokenRevoked,

	"RESOURCE_EXHAUSTED":             domain.ErrorKindRateExceeded,
	"RESOURCE_TEMPORARILY_EXHAUSTED": domain.ErrorKindRateExceeded,

	"PROHIBITED_RESOURCE_TYPE_IN_SELECT_CLAUSE":   domain.ErrorKindReportTypeMismatch,
	"PROHIBITED_SEGMENT_FOR_RESOURCE":             domain.ErrorKindReportTypeMismatch,
	"PROHIBITED_METRIC_IN_SELECT_OR_WHERE_CLAUSE": domain.ErrorKindReportTypeMismatch,
	"UNRECOGNIZED_FIELD":                          domain.ErrorKindReportTypeMismatch,
	"INVALID_RESOURCE_NAME":                       domain.ErrorKindReportTypeMismatch,

	"INTERNAL_ERROR":    domain.ErrorKindTransientServer,
	"TRANSIENT_ERROR":   domain.ErrorKindTransientServer,
	"DEADLINE_EXCEEDED": domain.ErrorKindTransientServer,
}

// FirstCode devolve o primeiro código específico do Google Ads, se houver
func (e *ErrorResponse) FirstCode() string {
	for _, detail := range e.Error.Details {
		for _, adsErr := range detail.Errors {
			for _, code := range adsErr.ErrorCode {
				return code
			}
		}
	}
	return ""
}

// Classify traduz a resposta de erro para a taxonomia da sincronização.
// O código específico tem prioridade sobre o status HTTP.
func (e *ErrorResponse) Classify(httpStatus int) domain.ErrorKind {
	if kind, ok := errorCodeKinds[e.FirstCode()]; ok {
		return kind
	}

	switch e.Error.Status {
	case "UNAUTHENTICATED":
		return domain.ErrorKindTokenRevoked
	case "PERMISSION_DENIED":
		return domain.ErrorKindPermissionDenied
	case "RESOURCE_EXHAUSTED":
		return domain.ErrorKindRateExceeded
	case "UNAVAILABLE", "INTERNAL", "DEADLINE_EXCEEDED", "ABORTED":
		return domain.ErrorKindTransientServer
	}

	return ClassifyStatus(httpStatus)
}

// ToSyncError monta o erro classificado da resposta
func (e *ErrorResponse) ToSyncError(httpStatus int) *domain.SyncError {
	code := e.FirstCode()
	if code == "" {
		code = e.Error.Status
	}
	return domain.NewSyncError(e.Classify(httpStatus), code, e.Error.Message, nil)
}

// ClassifyStatus classifica respostas sem corpo de erro legível
func ClassifyStatus(httpStatus int) domain.ErrorKind {
	switch {
	case httpStatus == http.StatusUnauthorized:
		return domain.ErrorKindTokenRevoked
	case httpStatus == http.StatusForbidden:
		return domain.ErrorKindPermissionDenied
	case httpStatus == http.StatusTooManyRequests:
		return domain.ErrorKindRateExceeded
	case httpStatus >= http.StatusInternalServerError:
		return domain.ErrorKindTransientServer
	}
	return domain.ErrorKindUnknown
}
