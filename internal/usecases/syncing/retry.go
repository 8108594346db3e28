package syncing

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/vfg2006/traffic-stats-sync/internal/config"
	"github.com/vfg2006/traffic-stats-sync/internal/domain"
	"github.com/vfg2006/traffic-stats-sync/internal/metrics"
	"github.com/vfg2006/traffic-stats-sync/pkg/log"
)

// Sleeper bloqueia pela duração informada ou até o contexto ser cancelado
type Sleeper func(ctx context.Context, d time.Duration) error

func contextSleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// RetryPolicy repete uma operação com espera attempt^exponent * unit.
// MaxAttempts é o total de execuções, incluindo a primeira.
type RetryPolicy struct {
	MaxAttempts int
	Exponent    float64
	Unit        time.Duration

	sleep   Sleeper
	metrics *metrics.Metrics
}

func NewRetryPolicy(cfg config.Sync, m *metrics.Metrics) *RetryPolicy {
	return &RetryPolicy{
		MaxAttempts: cfg.MaxAttempts,
		Exponent:    cfg.BackoffExponent,
		Unit:        cfg.BackoffUnit,
		sleep:       contextSleep,
		metrics:     m,
	}
}

// WithSleeper troca a espera, usado em testes
func (p *RetryPolicy) WithSleeper(sleep Sleeper) *RetryPolicy {
	p.sleep = sleep
	return p
}

// Delay é a espera depois da tentativa informada (começando em 1)
func (p *RetryPolicy) Delay(attempt int) time.Duration {
	unit := p.Unit
	if unit <= 0 {
		unit = time.Second
	}
	return time.Duration(math.Pow(float64(attempt), p.Exponent) * float64(unit))
}

// Run executa op até ter sucesso, esgotar as tentativas ou receber um erro que não deve ser repetido
func (p *RetryPolicy) Run(ctx context.Context, op func(ctx context.Context) error) error {
	_, err := RunWithResult(ctx, p, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, op(ctx)
	})
	return err
}

// RunWithResult é a versão de Run para operações que retornam valor
func RunWithResult[T any](ctx context.Context, p *RetryPolicy, op func(ctx context.Context) (T, error)) (T, error) {
	maxAttempts := p.MaxAttempts
	if maxAttempts < 1 {
		maxAttempts = 1
	}

	var (
		result T
		err    error
	)

	for attempt := 1; ; attempt++ {
		result, err = op(ctx)
		if err == nil {
			return result, nil
		}

		if domain.IsCanceled(err) || ctx.Err() != nil {
			return result, err
		}

		// falhas de integridade são locais e já tiveram sua própria nova tentativa
		if errors.Is(err, domain.ErrIntegrityViolation) {
			return result, err
		}

		kind := domain.ClassifyError(err)
		if !kind.Retryable() {
			// RateExceeded, autenticação e tipo de relatório voltam direto para quem chamou
			return result, err
		}

		if attempt >= maxAttempts {
			log.ForContext(ctx).WithFields(log.Fields{
				"attempt":    attempt,
				"error_kind": kind,
			}).WithError(err).Warn("Tentativas esgotadas")
			return result, err
		}

		delay := p.Delay(attempt)
		log.ForContext(ctx).WithFields(log.Fields{
			"attempt":    attempt,
			"error_kind": kind,
			"sync_delay": delay.String(),
		}).WithError(err).Warn("Repetindo operação após falha")

		if p.metrics != nil {
			p.metrics.RecordRetry(string(kind))
		}

		if sleepErr := p.sleep(ctx, delay); sleepErr != nil {
			return result, err
		}
	}
}
