package xmlgen

import (
	"bytes"
	"context"
	"fmt"
	"iter"

	"github.com/google/uuid"

	"github.com/goliatone/go-offergen/pkg/offer"
)

// Item is one document of a batch. Key identifies it in the sink and in
// failure reports.
type Item struct {
	Key      string
	Document *offer.Document
}

// Items adapts a slice to the sequence GenerateBatch consumes.
func Items(items ...Item) iter.Seq[Item] {
	return func(yield func(Item) bool) {
		for _, item := range items {
			if !yield(item) {
				return
			}
		}
	}
}

// BatchFailure records a document that could not be generated or emitted.
type BatchFailure struct {
	Key string
	Err error
}

func (f BatchFailure) Error() string {
	return fmt.Sprintf("%s: %v", f.Key, f.Err)
}

// BatchReport summarises a batch run.
type BatchReport struct {
	RunID    string
	Emitted  []string
	Failures []BatchFailure
	// Err is set when the run stopped early, e.g. on context cancellation.
	Err error
}

// OK reports whether every document was emitted.
func (r BatchReport) OK() bool {
	return len(r.Failures) == 0 && r.Err == nil
}

// GenerateBatch generates documents one at a time and hands each to sink as
// its own entry. A failing document is recorded with its key and the batch
// continues; entries already emitted are never touched again.
func GenerateBatch(ctx context.Context, items iter.Seq[Item], sink Sink, options ...Option) BatchReport {
	report := BatchReport{RunID: uuid.NewString()}
	if sink == nil {
		report.Err = fmt.Errorf("xmlgen: batch sink is required")
		return report
	}
	if ctx == nil {
		ctx = context.Background()
	}

	var buf bytes.Buffer
	for item := range items {
		if err := ctx.Err(); err != nil {
			report.Err = err
			break
		}
		buf.Reset()
		if err := GenerateTo(&buf, item.Document, options...); err != nil {
			report.Failures = append(report.Failures, BatchFailure{Key: item.Key, Err: err})
			continue
		}
		if err := sink.Emit(ctx, item.Key, buf.Bytes()); err != nil {
			report.Failures = append(report.Failures, BatchFailure{Key: item.Key, Err: err})
			continue
		}
		report.Emitted = append(report.Emitted, item.Key)
	}
	return report
}
