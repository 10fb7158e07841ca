// Package docparser integrates the external document parsing collaborator
// used for non-tabular statement formats. Providers share one interface and
// are tried strictly in sequence, never in parallel, so a fallback can never
// duplicate side effects such as temp-file writes or subprocess spawns.
package docparser

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/brenkeeper/brenkeeper/internal/domain/statement"
)

// Provider extracts transaction-like records from a binary document payload.
type Provider interface {
	Name() string
	Parse(ctx context.Context, payload []byte, mimetype string) ([]statement.ExtractedRecord, error)
}

// Chain invokes providers in order until one succeeds. All failures collapse
// into a single ErrParserUnavailable carrying each provider's reason.
type Chain struct {
	providers []Provider
	logger    *slog.Logger
}

// NewChain builds a provider chain. The order of providers is the order of
// attempts.
func NewChain(logger *slog.Logger, providers ...Provider) *Chain {
	return &Chain{providers: providers, logger: logger}
}

// Parse runs the chain. Context cancellation aborts before the next attempt
// as well as within each provider call.
func (c *Chain) Parse(ctx context.Context, payload []byte, mimetype string) ([]statement.ExtractedRecord, error) {
	if len(c.providers) == 0 {
		return nil, fmt.Errorf("%w: no providers configured", statement.ErrParserUnavailable)
	}

	var failures []error
	for _, provider := range c.providers {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("%w: %v", statement.ErrParserUnavailable, err)
		}

		records, err := provider.Parse(ctx, payload, mimetype)
		if err == nil {
			return records, nil
		}

		c.logger.Warn("document parser provider failed",
			slog.String("provider", provider.Name()),
			slog.Any("error", err))
		failures = append(failures, fmt.Errorf("%s: %w", provider.Name(), err))
	}

	return nil, fmt.Errorf("%w: %v", statement.ErrParserUnavailable, failures)
}

// decodeRecords accepts both collaborator response shapes: an object with a
// "transactions" key, or a bare JSON array of records.
func decodeRecords(data []byte) ([]statement.ExtractedRecord, error) {
	var envelope struct {
		Transactions []statement.ExtractedRecord `json:"transactions"`
	}
	if err := json.Unmarshal(data, &envelope); err == nil {
		return envelope.Transactions, nil
	}

	var records []statement.ExtractedRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("unexpected parser response: %w", err)
	}
	return records, nil
}
