// Package batch runs document extraction over many uploaded documents at
// once. Documents are independent, so they are processed in parallel with
// no shared mutable state; each document succeeds or fails on its own and
// one corrupt file never aborts the rest of the batch.
package batch

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/tsawler/hsereport/docx"
	"github.com/tsawler/hsereport/extract"
)

// DefaultConcurrency bounds parallel extractions when none is configured.
const DefaultConcurrency = 4

// Input is one uploaded document: its raw bytes plus its source name.
type Input struct {
	Name string
	Data []byte
}

// Result is the outcome for one document: either a Record or an error,
// never both.
type Result struct {
	Name   string
	Record extract.Record
	Err    error
}

// OK reports whether the document was extracted successfully.
func (r Result) OK() bool { return r.Err == nil }

// Processor runs batches with a fixed extraction configuration.
type Processor struct {
	fields      extract.FieldSet
	concurrency int
	log         *zap.Logger
}

// NewProcessor creates a batch processor. A non-positive concurrency falls
// back to DefaultConcurrency; a nil logger disables logging.
func NewProcessor(fields extract.FieldSet, concurrency int, log *zap.Logger) *Processor {
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Processor{fields: fields, concurrency: concurrency, log: log}
}

// Process extracts every input document and returns one Result per input,
// in input order. Per-document failures are carried in the Result; the
// returned error is non-nil only when the context is cancelled before the
// batch completes.
func (p *Processor) Process(ctx context.Context, inputs []Input) ([]Result, error) {
	results := make([]Result, len(inputs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(p.concurrency)

	for i, in := range inputs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = p.processOne(in)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// processOne extracts a single document.
func (p *Processor) processOne(in Input) Result {
	res := Result{Name: in.Name}

	doc, err := docx.ReadDocument(in.Data, in.Name)
	if err != nil {
		p.log.Warn("document unreadable", zap.String("file", in.Name), zap.Error(err))
		res.Err = err
		return res
	}

	rec, err := extract.Document(doc, p.fields)
	if err != nil {
		p.log.Warn("extraction failed", zap.String("file", in.Name), zap.Error(err))
		res.Err = err
		return res
	}

	p.log.Info("document extracted",
		zap.String("file", in.Name),
		zap.Int("tables", doc.TableCount()))
	res.Record = rec
	return res
}

// Succeeded filters a result list down to the successful records, in order.
func Succeeded(results []Result) []extract.Record {
	var recs []extract.Record
	for _, r := range results {
		if r.OK() {
			recs = append(recs, r.Record)
		}
	}
	return recs
}
