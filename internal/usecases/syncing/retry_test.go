package syncing

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/traffic-stats-sync/internal/domain"
	"github.com/vfg2006/traffic-stats-sync/internal/metrics"
)

type recordingSleeper struct {
	delays []time.Duration
}

func (s *recordingSleeper) Sleep(_ context.Context, d time.Duration) error {
	s.delays = append(s.delays, d)
	return nil
}

func newTestRetryPolicy(maxAttempts int) (*RetryPolicy, *recordingSleeper) {
	sleeper := &recordingSleeper{}
	policy := &RetryPolicy{
		MaxAttempts: maxAttempts,
		Exponent:    2,
		Unit:        time.Second,
		metrics:     metrics.NewMetrics("test"),
	}
	return policy.WithSleeper(sleeper.Sleep), sleeper
}

func TestRetryPolicyRun(t *testing.T) {
	tests := []struct {
		name      string
		errs      []error
		wantCalls int
		wantErr   error
		wantWaits []time.Duration
	}{
		{
			name:      "sucesso na primeira tentativa",
			errs:      []error{nil},
			wantCalls: 1,
		},
		{
			name: "erro transitório é repetido até o sucesso",
			errs: []error{
				domain.NewSyncError(domain.ErrorKindTransientServer, "INTERNAL_ERROR", "", nil),
				domain.NewSyncError(domain.ErrorKindTransientServer, "INTERNAL_ERROR", "", nil),
				nil,
			},
			wantCalls: 3,
			wantWaits: []time.Duration{time.Second, 4 * time.Second},
		},
		{
			name: "erro transitório esgota o limite de tentativas",
			errs: []error{
				domain.ErrTransientServer,
				domain.ErrTransientServer,
				domain.ErrTransientServer,
				domain.ErrTransientServer,
				domain.ErrTransientServer,
			},
			wantCalls: 5,
			wantErr:   domain.ErrTransientServer,
			wantWaits: []time.Duration{time.Second, 4 * time.Second, 9 * time.Second, 16 * time.Second},
		},
		{
			name:      "erro desconhecido é tratado como transitório",
			errs:      []error{errors.New("falha inesperada"), nil},
			wantCalls: 2,
			wantWaits: []time.Duration{time.Second},
		},
		{
			name:      "tipo de relatório incompatível não é repetido",
			errs:      []error{domain.NewSyncError(domain.ErrorKindReportTypeMismatch, "QUERY_ERROR", "", nil)},
			wantCalls: 1,
			wantErr:   domain.ErrReportTypeMismatch,
		},
		{
			name:      "token revogado não é repetido",
			errs:      []error{domain.ErrTokenRevoked},
			wantCalls: 1,
			wantErr:   domain.ErrTokenRevoked,
		},
		{
			name:      "permissão negada não é repetida",
			errs:      []error{domain.ErrPermissionDenied},
			wantCalls: 1,
			wantErr:   domain.ErrPermissionDenied,
		},
		{
			name:      "limite de requisições volta direto sem espera",
			errs:      []error{domain.ErrRateExceeded},
			wantCalls: 1,
			wantErr:   domain.ErrRateExceeded,
		},
		{
			name:      "cancelamento não é repetido",
			errs:      []error{context.Canceled},
			wantCalls: 1,
			wantErr:   context.Canceled,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			policy, sleeper := newTestRetryPolicy(5)

			calls := 0
			err := policy.Run(context.Background(), func(context.Context) error {
				err := tt.errs[calls]
				calls++
				return err
			})

			assert.Equal(t, tt.wantCalls, calls)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.wantWaits, sleeper.delays)
		})
	}
}

func TestRunWithResult(t *testing.T) {
	policy, _ := newTestRetryPolicy(3)

	calls := 0
	result, err := RunWithResult(context.Background(), policy, func(context.Context) ([]string, error) {
		calls++
		if calls == 1 {
			return nil, domain.ErrTransientServer
		}
		return []string{"123"}, nil
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"123"}, result)
	assert.Equal(t, 2, calls)
}

func TestRetryPolicyInterrompidaPeloContexto(t *testing.T) {
	policy, _ := newTestRetryPolicy(5)
	policy.WithSleeper(func(ctx context.Context, _ time.Duration) error {
		return context.Canceled
	})

	calls := 0
	err := policy.Run(context.Background(), func(context.Context) error {
		calls++
		return domain.ErrTransientServer
	})

	assert.ErrorIs(t, err, domain.ErrTransientServer)
	assert.Equal(t, 1, calls)
}

func TestRetryPolicyDelay(t *testing.T) {
	policy := &RetryPolicy{Exponent: 2, Unit: time.Second}

	assert.Equal(t, time.Second, policy.Delay(1))
	assert.Equal(t, 4*time.Second, policy.Delay(2))
	assert.Equal(t, 9*time.Second, policy.Delay(3))
}
