// Package enrich implements the batched, concurrent, resumable
// row-enrichment pipeline: per-row processing with failure isolation and a
// batch orchestrator that checkpoints each batch before starting the next.
package enrich

import (
	"context"

	"go.uber.org/zap"

	"github.com/sells-group/enrich-cli/internal/resilience"
	"github.com/sells-group/enrich-cli/pkg/gemini"
)

// Invoker sends one prompt to the configured model with bounded fixed-delay
// retries. Exhausting the attempts yields a terminal error the processor
// converts into a row-level failure.
type Invoker struct {
	client gemini.Client
	model  string
	retry  resilience.RetryConfig
	log    *zap.Logger
}

// NewInvoker wires a gemini client to the retry policy.
func NewInvoker(client gemini.Client, model string, retry resilience.RetryConfig, log *zap.Logger) *Invoker {
	return &Invoker{
		client: client,
		model:  model,
		retry:  retry,
		log:    log,
	}
}

// Invoke sends the prompt and returns the raw model text. Transient
// invocation failures are retried; credential and malformed-request errors
// are terminal immediately.
func (inv *Invoker) Invoke(ctx context.Context, prompt string) (string, error) {
	cfg := inv.retry
	if cfg.ShouldRetry == nil {
		cfg.ShouldRetry = func(err error) bool {
			return !gemini.IsPermanent(err) && !resilience.IsPermanent(err)
		}
	}
	if cfg.OnRetry == nil {
		cfg.OnRetry = resilience.RetryLogger(inv.log, "gemini.generate")
	}

	return resilience.DoVal(ctx, cfg, func(ctx context.Context) (string, error) {
		inv.log.Debug("calling model", zap.String("model", inv.model))
		return inv.client.Generate(ctx, inv.model, prompt)
	})
}
