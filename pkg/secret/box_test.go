package secret

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBox(t *testing.T) {
	box, err := NewBox("chave-de-teste")
	require.NoError(t, err)

	tests := []struct {
		name     string
		setup    func() string
		validate func(t *testing.T, plain string, err error)
	}{
		{
			name: "abre o que foi selado",
			setup: func() string {
				sealed, err := box.Seal("1//refresh-token")
				require.NoError(t, err)
				return sealed
			},
			validate: func(t *testing.T, plain string, err error) {
				require.NoError(t, err)
				assert.Equal(t, "1//refresh-token", plain)
			},
		},
		{
			name: "falha com texto adulterado",
			setup: func() string {
				sealed, err := box.Seal("1//refresh-token")
				require.NoError(t, err)
				raw, _ := base64.StdEncoding.DecodeString(sealed)
				raw[len(raw)-1] ^= 0xff
				return base64.StdEncoding.EncodeToString(raw)
			},
			validate: func(t *testing.T, _ string, err error) {
				assert.ErrorIs(t, err, ErrInvalidCiphertext)
			},
		},
		{
			name: "falha com chave diferente",
			setup: func() string {
				other, err := NewBox("outra-chave")
				require.NoError(t, err)
				sealed, err := other.Seal("1//refresh-token")
				require.NoError(t, err)
				return sealed
			},
			validate: func(t *testing.T, _ string, err error) {
				assert.ErrorIs(t, err, ErrInvalidCiphertext)
			},
		},
		{
			name:  "falha com base64 inválido",
			setup: func() string { return "%%%" },
			validate: func(t *testing.T, _ string, err error) {
				assert.ErrorIs(t, err, ErrInvalidCiphertext)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plain, err := box.Open(tt.setup())
			tt.validate(t, plain, err)
		})
	}
}

func TestNewBoxChaveVazia(t *testing.T) {
	_, err := NewBox("")
	assert.Error(t, err)
}
