// Package history records conversion runs.
//
// Every flatten, nest, or verify invocation appends one [Record] to a
// journal file, so users can review what was converted, when, and whether
// it succeeded. Recording is best-effort: a failure to write the journal
// never fails the conversion itself.
//
// # Usage
//
// Open the journal and append a record:
//
//	log, err := history.Open("")  // Uses ~/.config/treegrid/history.jsonl
//	if err != nil {
//	    return err
//	}
//	rec := history.New("flatten")
//	rec.Source = "data.json"
//	rec.Dest = "data.xlsx"
//	rec.Finish(runErr)
//	log.Append(rec)
package history

import (
	"time"

	"github.com/google/uuid"
)

// Status reports how a recorded run ended.
type Status string

const (
	StatusOK    Status = "ok"
	StatusError Status = "error"
)

// Record describes one conversion run.
type Record struct {
	ID     string    `json:"id"`
	Time   time.Time `json:"time"`
	Op     string    `json:"op"`
	Source string    `json:"source,omitempty"`
	Dest   string    `json:"dest,omitempty"`
	Rows   int       `json:"rows,omitempty"`
	Depth  int       `json:"depth,omitempty"`
	Status Status    `json:"status"`
	Error  string    `json:"error,omitempty"`
}

// New creates a record for the given operation, stamped with the current
// time and a fresh ID. The caller fills in the remaining fields and calls
// [Record.Finish] before appending.
func New(op string) *Record {
	return &Record{
		ID:   uuid.NewString(),
		Time: time.Now().UTC(),
		Op:   op,
	}
}

// Finish sets the record status from the run outcome.
func (r *Record) Finish(err error) {
	if err != nil {
		r.Status = StatusError
		r.Error = err.Error()
		return
	}
	r.Status = StatusOK
}
