package authenticating

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vfg2006/traffic-stats-sync/internal/config"
	"github.com/vfg2006/traffic-stats-sync/pkg/apiErrors"
)

func TestServiceValidateToken(t *testing.T) {
	issuedAt := time.Date(2020, 3, 10, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		token    func(s *Service) string
		validate func(t *testing.T, err error, code string)
	}{
		{
			name: "token válido",
			token: func(s *Service) string {
				token, err := s.IssueToken("ops@empresa.com", 1, time.Hour)
				require.NoError(t, err)
				return token
			},
			validate: func(t *testing.T, err error, _ string) {
				assert.NoError(t, err)
			},
		},
		{
			name: "token expirado",
			token: func(s *Service) string {
				token, err := s.IssueToken("ops@empresa.com", 1, -time.Minute)
				require.NoError(t, err)
				return token
			},
			validate: func(t *testing.T, err error, code string) {
				assert.ErrorIs(t, err, ErrExpiredToken)
				assert.Equal(t, apiErrors.ErrExpiredToken, code)
			},
		},
		{
			name: "assinado com outro segredo",
			token: func(s *Service) string {
				other := NewService(config.Auth{Secret: "outro"})
				other.now = s.now
				token, err := other.IssueToken("ops@empresa.com", 1, time.Hour)
				require.NoError(t, err)
				return token
			},
			validate: func(t *testing.T, err error, code string) {
				assert.ErrorIs(t, err, ErrInvalidToken)
				assert.Equal(t, apiErrors.ErrInvalidToken, code)
			},
		},
		{
			name: "algoritmo sem assinatura",
			token: func(s *Service) string {
				token, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"role_id": 1}).
					SignedString(jwt.UnsafeAllowNoneSignatureType)
				require.NoError(t, err)
				return token
			},
			validate: func(t *testing.T, err error, _ string) {
				assert.ErrorIs(t, err, ErrInvalidToken)
			},
		},
		{
			name: "token sem perfil",
			token: func(s *Service) string {
				token, err := s.IssueToken("ops@empresa.com", 0, time.Hour)
				require.NoError(t, err)
				return token
			},
			validate: func(t *testing.T, err error, code string) {
				assert.ErrorIs(t, err, ErrMissingRole)
				assert.Equal(t, apiErrors.ErrInsufficientPrivilege, code)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := NewService(config.Auth{Secret: "segredo"})
			service.now = func() time.Time { return issuedAt }

			claims, err := service.ValidateToken(tt.token(service))
			if err == nil {
				assert.Equal(t, "ops@empresa.com", claims.Subject)
			}
			tt.validate(t, err, CodeOf(err))
		})
	}
}

func TestServiceIssueTokenWithoutSubject(t *testing.T) {
	_, err := NewService(config.Auth{Secret: "segredo"}).IssueToken("", 1, time.Hour)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
