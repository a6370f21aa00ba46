package reporter

import (
	"encoding/json"
	"fmt"
	"io"

	"tc-batch/internal/rename"
)

// BatchReport summarizes one model batch: rename counts, collection
// output and anything that went wrong.
type BatchReport struct {
	TSNumber   string   `json:"ts_number"`
	EditID     string   `json:"edit_id"`
	Code       string   `json:"code"`
	Processed  int      `json:"processed"`
	Skipped    int      `json:"skipped"`
	Failed     int      `json:"failed"`
	Collection string   `json:"collection,omitempty"`
	Items      int      `json:"items,omitempty"`
	Warnings   []string `json:"warnings,omitempty"`
	Error      string   `json:"error,omitempty"`
}

// RunResult is the whole invocation: one report per requested batch.
type RunResult struct {
	Platform string        `json:"platform"`
	Batches  []BatchReport `json:"batches"`
}

// NewBatchReport folds a rename result into a report. Per-file skips and
// failures become warnings; the batch itself still counts as succeeded.
func NewBatchReport(res *rename.BatchResult) BatchReport {
	rep := BatchReport{
		TSNumber:  res.Config.TSNumber,
		EditID:    res.Config.EditID,
		Code:      res.Config.Code,
		Processed: len(res.Renamed),
		Skipped:   len(res.Skipped),
		Failed:    len(res.Failed),
	}
	for _, s := range res.Skipped {
		rep.Warnings = append(rep.Warnings, fmt.Sprintf("skipped %s: %s", s.File, s.Reason))
	}
	for _, f := range res.Failed {
		rep.Warnings = append(rep.Warnings, fmt.Sprintf("failed %s: %s", f.File, f.Err))
	}
	return rep
}

// Succeeded reports whether every batch completed without a fatal error.
// Per-file skips do not fail a run; per-file copy failures do.
func (r *RunResult) Succeeded() bool {
	for _, b := range r.Batches {
		if b.Error != "" || b.Failed > 0 {
			return false
		}
	}
	return true
}

func (r *RunResult) Totals() (processed, skipped, failed int) {
	for _, b := range r.Batches {
		processed += b.Processed
		skipped += b.Skipped
		failed += b.Failed
	}
	return
}

// -------- JSON --------

func WriteJSON(w io.Writer, res *RunResult) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(res)
}

// -------- Text summary --------

// WriteSummary prints the end-of-run summary: per-batch counts, warnings
// and a grand total.
func WriteSummary(w io.Writer, res *RunResult) error {
	fmt.Fprintf(w, "Platform: %s\n", res.Platform)
	for _, b := range res.Batches {
		if b.Error != "" {
			fmt.Fprintf(w, "  TS%s (%s_%s): FAILED: %s\n", b.TSNumber, b.EditID, b.Code, b.Error)
			continue
		}
		fmt.Fprintf(w, "  TS%s (%s_%s): %d renamed, %d skipped, %d failed\n",
			b.TSNumber, b.EditID, b.Code, b.Processed, b.Skipped, b.Failed)
		if b.Collection != "" {
			fmt.Fprintf(w, "    collection: %s (%d items)\n", b.Collection, b.Items)
		}
		for _, warn := range b.Warnings {
			fmt.Fprintf(w, "    warning: %s\n", warn)
		}
	}
	p, s, f := res.Totals()
	fmt.Fprintf(w, "Total: %d renamed, %d skipped, %d failed across %d batches\n",
		p, s, f, len(res.Batches))
	return nil
}
