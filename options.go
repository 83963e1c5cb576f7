package hirepg

import (
	"time"

	"github.com/hirepg/hirepg/compaction"
	"github.com/hirepg/hirepg/hooks"
)

// Option is a functional option for configuring a Supervisor
type Option func(*internalConfig) error

// WithTurnTimeout bounds every agent invocation. A turn that exceeds the
// timeout is aborted with ErrExternalTimeout and writes nothing.
func WithTurnTimeout(d time.Duration) Option {
	return func(c *internalConfig) error {
		if d <= 0 {
			return NewPipelineError("WithTurnTimeout", ErrInvalidConfig).
				WithContext("timeout", d.String())
		}
		c.turnTimeout = d
		return nil
	}
}

// WithTokenLimit sets the token budget that triggers a compaction pass at
// the end of a turn.
func WithTokenLimit(n int) Option {
	return func(c *internalConfig) error {
		if n <= 0 {
			return NewPipelineError("WithTokenLimit", ErrInvalidConfig).
				WithContext("token_limit", n)
		}
		c.tokenLimit = n
		return nil
	}
}

// WithCompactionRatio sets the fraction of the post-system history that a
// compaction pass summarizes. Must be in (0, 1).
func WithCompactionRatio(ratio float64) Option {
	return func(c *internalConfig) error {
		if ratio <= 0 || ratio >= 1 {
			return NewPipelineError("WithCompactionRatio", ErrInvalidConfig).
				WithContext("ratio", ratio)
		}
		c.compactionRatio = ratio
		return nil
	}
}

// WithSummarizerModel sets the model used for history summarization.
func WithSummarizerModel(model string) Option {
	return func(c *internalConfig) error {
		c.summarizerModel = model
		return nil
	}
}

// WithSummarizer replaces the default Anthropic summarizer, mainly for
// tests.
func WithSummarizer(s compaction.Summarizer) Option {
	return func(c *internalConfig) error {
		c.summarizer = s
		return nil
	}
}

// WithInvoker replaces the default Anthropic agent invoker.
func WithInvoker(inv AgentInvoker) Option {
	return func(c *internalConfig) error {
		c.invoker = inv
		return nil
	}
}

// WithRewriteRetries sets how many compare-and-swap conflicts a checkpoint
// rewrite tolerates before giving up.
func WithRewriteRetries(n int) Option {
	return func(c *internalConfig) error {
		if n < 0 {
			return NewPipelineError("WithRewriteRetries", ErrInvalidConfig).
				WithContext("retries", n)
		}
		c.rewriteRetries = n
		return nil
	}
}

// WithPassThreshold sets the minimum score for passing a screening phase.
func WithPassThreshold(threshold float64) Option {
	return func(c *internalConfig) error {
		c.passThreshold = threshold
		return nil
	}
}

// WithHooks replaces the hook registry.
func WithHooks(r *hooks.Registry) Option {
	return func(c *internalConfig) error {
		c.hooks = r
		return nil
	}
}

// WithLogger sets the logger used by the supervisor and the compactor.
func WithLogger(l compaction.Logger) Option {
	return func(c *internalConfig) error {
		c.logger = l
		return nil
	}
}
