package enrich

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/sells-group/enrich-cli/internal/extract"
	"github.com/sells-group/enrich-cli/internal/model"
	"github.com/sells-group/enrich-cli/internal/prompt"
	"github.com/sells-group/enrich-cli/internal/table"
)

// TextFetcher fetches the visible text of a web page. Errors mean "no
// external content", nothing more.
type TextFetcher interface {
	VisibleText(ctx context.Context, url string) (string, error)
}

// Processor enriches one row at a time. A Processor is shared across the
// batch workers; everything mutable per row (the external context, the
// result) is built per call.
type Processor struct {
	fields   model.FieldSpec
	invoker  *Invoker
	fetcher  TextFetcher
	urlField string
	ext      model.ExternalContext
	log      *zap.Logger
}

// NewProcessor builds a row processor. urlField names the column holding a
// per-row URL to scrape before prompting; empty disables per-row scraping.
func NewProcessor(fields model.FieldSpec, invoker *Invoker, fetcher TextFetcher, urlField string, ext model.ExternalContext, log *zap.Logger) *Processor {
	return &Processor{
		fields:   fields,
		invoker:  invoker,
		fetcher:  fetcher,
		urlField: urlField,
		ext:      ext,
		log:      log,
	}
}

// Fields returns the target field specification.
func (p *Processor) Fields() model.FieldSpec {
	return p.fields
}

// Process enriches a single row. It never returns an error: every failure
// is contained here, producing an all-empty result tagged with the reason,
// so one bad row can never take down its batch.
func (p *Processor) Process(ctx context.Context, idx int, row table.Row, header []string) model.RowResult {
	res := model.NewRowResult(idx, p.fields)

	if p.complete(row) {
		for _, f := range p.fields {
			res.Fields[f.Name] = row[f.Name]
		}
		res.Status = model.RowStatusSkipped
		p.log.Debug("skipping already enriched row", zap.Int("row", idx))
		return res
	}

	// Per-row content goes into a clone: the shared run-level context must
	// never carry one row's scraped text into another row's prompt.
	ext := p.ext.Clone()
	if p.urlField != "" && p.fetcher != nil {
		if u := strings.TrimSpace(row[p.urlField]); u != "" {
			content, err := p.fetcher.VisibleText(ctx, u)
			if err != nil {
				p.log.Warn("row content fetch failed",
					zap.Int("row", idx),
					zap.String("url", u),
					zap.Error(err),
				)
			} else if content != "" {
				ext.URLContent = []string{content}
			}
		}
	}

	doc := prompt.Build(p.fields, p.rowData(row, header), ext)

	raw, err := p.invoker.Invoke(ctx, doc)
	if err != nil {
		res.Reason = err.Error()
		p.log.Error("row enrichment failed",
			zap.Int("row", idx),
			zap.Error(err),
		)
		return res
	}

	rec, ok := extract.First(raw)
	if !ok {
		// Not an error: "no record found" leaves the fields empty, so the
		// row stays eligible for the next run.
		res.Reason = "no JSON object in model response"
		p.log.Warn("no record extracted from model response", zap.Int("row", idx))
		return res
	}

	for _, f := range p.fields {
		res.Fields[f.Name] = flatten(rec[f.Name])
	}
	res.Status = model.RowStatusOK
	p.log.Info("row enriched", zap.Int("row", idx))
	return res
}

// complete is the per-row completion predicate: the last target field
// already holds a value. Isolated here so a stricter predicate (all fields,
// or a status column) is a one-function change.
func (p *Processor) complete(row table.Row) bool {
	last := p.fields.Last()
	return last != "" && strings.TrimSpace(row[last]) != ""
}

// rowData collects the row's non-target cells in column order.
func (p *Processor) rowData(row table.Row, header []string) []model.Cell {
	cells := make([]model.Cell, 0, len(header))
	for _, col := range header {
		if p.fields.Has(col) {
			continue
		}
		cells = append(cells, model.Cell{Column: col, Value: row[col]})
	}
	return cells
}

// flatten coerces an extracted JSON value to its cell text: lists become a
// comma-delimited string, scalars their textual form, absent values "".
func flatten(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case []any:
		parts := make([]string, len(val))
		for i, item := range val {
			parts[i] = flatten(item)
		}
		return strings.Join(parts, ", ")
	default:
		out, err := json.Marshal(val)
		if err != nil {
			return ""
		}
		return string(out)
	}
}
