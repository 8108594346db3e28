package domain

import (
	"context"
	"errors"
	"fmt"
)

type ErrorKind string

const (
	ErrorKindTokenRevoked       ErrorKind = "token_expired_or_revoked"
	ErrorKindPermissionDenied   ErrorKind = "permission_denied"
	ErrorKindAccountInactive    ErrorKind = "account_inactive"
	ErrorKindRateExceeded       ErrorKind = "rate_exceeded"
	ErrorKindTransientServer    ErrorKind = "transient_server_error"
	ErrorKindReportTypeMismatch ErrorKind = "report_type_mismatch"
	ErrorKindUnknown            ErrorKind = "unknown"
)

// Erros da taxonomia de sincronização, comparáveis com errors.Is
var (
	ErrTokenRevoked       = errors.New("token expired or revoked")
	ErrPermissionDenied   = errors.New("permission denied")
	ErrAccountInactive    = errors.New("account inactive")
	ErrRateExceeded       = errors.New("rate exceeded")
	ErrTransientServer    = errors.New("transient server error")
	ErrReportTypeMismatch = errors.New("report type mismatch")

	// ErrIntegrityViolation é retornado pela persistência em violação de chave
	ErrIntegrityViolation = errors.New("integrity violation")
)

var sentinelByKind = map[ErrorKind]error{
	ErrorKindTokenRevoked:       ErrTokenRevoked,
	ErrorKindPermissionDenied:   ErrPermissionDenied,
	ErrorKindAccountInactive:    ErrAccountInactive,
	ErrorKindRateExceeded:       ErrRateExceeded,
	ErrorKindTransientServer:    ErrTransientServer,
	ErrorKindReportTypeMismatch: ErrReportTypeMismatch,
}

// IsAuthentication indica erros em que repetir a chamada com a mesma credencial não adianta
func (k ErrorKind) IsAuthentication() bool {
	switch k {
	case ErrorKindTokenRevoked, ErrorKindPermissionDenied, ErrorKindAccountInactive:
		return true
	}
	return false
}

// Retryable indica erros repetidos localmente com backoff
func (k ErrorKind) Retryable() bool {
	return k == ErrorKindTransientServer || k == ErrorKindUnknown
}

// SyncError é o resultado classificado de uma falha da API de relatórios
type SyncError struct {
	Kind    ErrorKind
	Code    string
	Message string
	Err     error
}

func (e *SyncError) Error() string {
	msg := string(e.Kind)
	if e.Code != "" {
		msg = fmt.Sprintf("%s (%s)", msg, e.Code)
	}
	if e.Message != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Message)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *SyncError) Unwrap() error {
	return e.Err
}

// Is permite errors.Is(err, ErrPermissionDenied) sobre um SyncError
func (e *SyncError) Is(target error) bool {
	sentinel, ok := sentinelByKind[e.Kind]
	return ok && sentinel == target
}

func NewSyncError(kind ErrorKind, code, message string, err error) *SyncError {
	return &SyncError{
		Kind:    kind,
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// ClassifyError devolve o tipo do erro; erros sem classificação são Unknown
func ClassifyError(err error) ErrorKind {
	if err == nil {
		return ""
	}

	var syncErr *SyncError
	if errors.As(err, &syncErr) {
		return syncErr.Kind
	}

	for kind, sentinel := range sentinelByKind {
		if errors.Is(err, sentinel) {
			return kind
		}
	}

	return ErrorKindUnknown
}

// IsCanceled indica cancelamento do contexto, que nunca é repetido
func IsCanceled(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
