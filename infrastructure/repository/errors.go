package repository

import (
	"errors"
	"fmt"

	"github.com/lib/pq"
	"github.com/vfg2006/traffic-stats-sync/internal/domain"
)

// SQLSTATE tratados como violação de integridade
var integrityCodes = map[pq.ErrorCode]bool{
	"23505": true, // unique_violation
	"23503": true, // foreign_key_violation
	"21000": true, // cardinality_violation (ON CONFLICT afetando a mesma linha duas vezes)
}

func wrapDBError(op string, err error) error {
	if err == nil {
		return nil
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		if integrityCodes[pqErr.Code] {
			return fmt.Errorf("%s: %w: %w (code: %s)", op, domain.ErrIntegrityViolation, pqErr, pqErr.Code)
		}
		return fmt.Errorf("%s: database error: %w (code: %s)", op, pqErr, pqErr.Code)
	}

	return fmt.Errorf("%s: %w", op, err)
}

// IsIntegrityViolation indica violação de chave única, estrangeira ou de cardinalidade
func IsIntegrityViolation(err error) bool {
	return errors.Is(err, domain.ErrIntegrityViolation)
}
