// Package service orchestrates the statement ingestion pipeline: detect the
// format, parse to raw records, normalize, categorize, aggregate, and
// regenerate exports. Each call is self-contained; no state is shared between
// requests.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/brenkeeper/brenkeeper/internal/domain/statement"
	"github.com/brenkeeper/brenkeeper/internal/domain/statement/adapter"
	"github.com/brenkeeper/brenkeeper/internal/domain/statement/cashflow"
	"github.com/brenkeeper/brenkeeper/internal/domain/statement/export"
	"github.com/brenkeeper/brenkeeper/internal/domain/statement/format"
	"github.com/brenkeeper/brenkeeper/internal/domain/statement/normalizer"
	"github.com/brenkeeper/brenkeeper/pkg/metrics"
)

// DocumentParser extracts transaction-like records from non-tabular formats.
type DocumentParser interface {
	Parse(ctx context.Context, payload []byte, mimetype string) ([]statement.ExtractedRecord, error)
}

// Result is the complete ingestion response: the canonical list plus every
// derived artifact. It is all-or-nothing; a fatal error never yields a
// partially populated Result.
type Result struct {
	Transactions []statement.Transaction   `json:"transactions"`
	Cashflow     statement.CashflowSummary `json:"cashflow"`
	CSVContent   string                    `json:"csvContent"`
	WorkbookB64  string                    `json:"workbookBase64"`
}

// Service runs the ingestion pipeline.
type Service struct {
	normalizer *normalizer.Normalizer
	docParser  DocumentParser // nil when no external parser is configured
	metrics    *metrics.Metrics
	logger     *slog.Logger
}

// New creates a statement service.
func New(n *normalizer.Normalizer, logger *slog.Logger) *Service {
	return &Service{normalizer: n, logger: logger}
}

// WithDocumentParser enables ingestion of non-tabular document formats.
func (s *Service) WithDocumentParser(parser DocumentParser) *Service {
	s.docParser = parser
	return s
}

// WithMetrics enables prometheus instrumentation.
func (s *Service) WithMetrics(m *metrics.Metrics) *Service {
	s.metrics = m
	return s
}

// Process ingests one statement payload. Steps run strictly in sequence;
// only the external document parser call may block for a non-trivial
// duration, and it honors the context.
func (s *Service) Process(ctx context.Context, payload []byte, mimetype, filename string) (*Result, error) {
	started := time.Now()

	kind := format.Detect(mimetype, filename)
	if kind == format.KindUnsupported {
		s.observe(kind, "unsupported", started)
		return nil, fmt.Errorf("%w (mimetype %q, filename %q)", statement.ErrUnsupportedFormat, mimetype, filename)
	}

	txns, rawCount, err := s.parse(ctx, kind, payload, mimetype)
	if err != nil {
		s.observe(kind, "error", started)
		return nil, err
	}

	summary := cashflow.Summarize(txns)

	csvContent, err := export.CSV(txns)
	if err != nil {
		s.observe(kind, "error", started)
		return nil, err
	}

	workbook, err := export.WorkbookBase64(txns)
	if err != nil {
		s.observe(kind, "error", started)
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.RowsParsed.Add(float64(len(txns)))
		s.metrics.RowsDropped.Add(float64(rawCount - len(txns)))
	}
	s.observe(kind, "ok", started)

	s.logger.Info("statement processed",
		slog.String("format", kind.String()),
		slog.String("filename", filename),
		slog.Int("rows_in", rawCount),
		slog.Int("transactions", len(txns)),
		slog.Int("rows_dropped", rawCount-len(txns)),
		slog.Duration("took", time.Since(started)))

	return &Result{
		Transactions: txns,
		Cashflow:     summary,
		CSVContent:   csvContent,
		WorkbookB64:  workbook,
	}, nil
}

// parse yields canonical transactions plus the raw row count before
// row-level drops.
func (s *Service) parse(ctx context.Context, kind format.Kind, payload []byte, mimetype string) ([]statement.Transaction, int, error) {
	switch kind {
	case format.KindDelimitedText:
		records, err := adapter.ParseCSV(payload)
		if err != nil {
			return nil, 0, err
		}
		return s.normalizer.NormalizeAll(records), len(records), nil

	case format.KindSpreadsheet:
		records, err := adapter.ParseXLSX(payload)
		if err != nil {
			return nil, 0, err
		}
		return s.normalizer.NormalizeAll(records), len(records), nil

	case format.KindExternalDocument:
		if s.docParser == nil {
			return nil, 0, fmt.Errorf("%w: no document parser configured", statement.ErrParserUnavailable)
		}
		records, err := s.docParser.Parse(ctx, payload, mimetype)
		if err != nil {
			return nil, 0, err
		}
		return s.normalizer.FromExtractedAll(records), len(records), nil

	default:
		return nil, 0, statement.ErrUnsupportedFormat
	}
}

func (s *Service) observe(kind format.Kind, outcome string, started time.Time) {
	if s.metrics == nil {
		return
	}
	s.metrics.IngestsTotal.WithLabelValues(kind.String(), outcome).Inc()
	s.metrics.IngestDuration.Observe(time.Since(started).Seconds())
}
