// Package pipeline patches the client skill tables: read the original
// container, decode, append synthetic rows, encode, write to the output
// directory. Each table runs on its own; one failing never stops the other.
package pipeline

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/udisondev/l2skilldata/internal/datfile"
	"github.com/udisondev/l2skilldata/internal/skilldata"
)

// Stage names reported in Result and StageError.
const (
	StageRead   = "read"
	StageDecode = "decode"
	StageEncode = "encode"
	StageWrite  = "write"
	StageDone   = "done"
)

// ErrOutputIsSource is returned when the output path resolves to the
// original file.
var ErrOutputIsSource = errors.New("output path is the original file")

// StageError reports the stage and table a run failed at.
type StageError struct {
	Table skilldata.Table
	Stage string
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Table, e.Stage, e.Err)
}

func (e *StageError) Unwrap() error { return e.Err }

// Result is the outcome of one table run.
type Result struct {
	Table    skilldata.Table
	Source   string
	Output   string
	Stage    string // last stage reached; StageDone on success
	Before   int    // records in the original file
	Appended int
	Skipped  int // blocks whose row already existed
	Elapsed  time.Duration
	Err      error
}

// OK reports whether the run succeeded.
func (r Result) OK() bool { return r.Err == nil }

// Apply appends the rows of blocks for table t to doc, in order. Blocks
// whose skill id and level already exist in doc are left out, so running
// on an already patched file adds nothing twice. Existing records are never
// touched.
func Apply(t skilldata.Table, doc *datfile.Document, blocks []skilldata.Block) (appended, skipped int) {
	existing := make(map[skilldata.Key]struct{})
	for _, r := range doc.Records {
		if k, ok := skilldata.RowKey(r.Text); ok {
			if _, synthetic := skilldata.CategoryBySkillID(k.SkillID); synthetic {
				existing[k] = struct{}{}
			}
		}
	}

	for _, b := range blocks {
		if _, dup := existing[b.Key()]; dup {
			skipped++
			continue
		}
		existing[b.Key()] = struct{}{}
		doc.Append(t.Render(b))
		appended++
	}
	return appended, skipped
}

// Runner runs the pipeline against files on disk.
type Runner struct {
	OriginalDir string
	OutputDir   string
	Codec       *datfile.Codec
	Logger      *slog.Logger
}

// RunAll runs every table with the same blocks. All tables are attempted
// regardless of earlier failures.
func (r *Runner) RunAll(blocks []skilldata.Block) []Result {
	results := make([]Result, 0, len(skilldata.Tables))
	for _, t := range skilldata.Tables {
		results = append(results, r.RunTable(t, blocks))
	}
	return results
}

// RunTable patches one table. The original file is only read; on any error
// nothing is written to the output path.
func (r *Runner) RunTable(t skilldata.Table, blocks []skilldata.Block) Result {
	start := time.Now()
	res := Result{
		Table:  t,
		Source: filepath.Join(r.OriginalDir, t.FileName()),
		Output: filepath.Join(r.OutputDir, t.FileName()),
	}
	logger := r.logger().With("table", t.FileName())
	logger.Info("updating table", "source", res.Source)

	fail := func(stage string, err error) Result {
		res.Stage = stage
		res.Err = &StageError{Table: t, Stage: stage, Err: err}
		res.Elapsed = time.Since(start)
		logger.Error("table update failed", "stage", stage, "err", err)
		return res
	}

	res.Stage = StageRead
	raw, err := datfile.ReadRaw(res.Source)
	if err != nil {
		return fail(StageRead, err)
	}

	res.Stage = StageDecode
	doc, err := r.Codec.Decode(raw)
	if err != nil {
		return fail(StageDecode, fmt.Errorf("%s: %w", res.Source, err))
	}
	res.Before = doc.Len()

	res.Appended, res.Skipped = Apply(t, doc, blocks)
	if res.Skipped > 0 {
		logger.Warn("rows already present, not appended again", "count", res.Skipped)
	}

	res.Stage = StageEncode
	out, err := r.Codec.Encode(doc)
	if err != nil {
		return fail(StageEncode, err)
	}

	res.Stage = StageWrite
	if same, err := samePath(res.Source, res.Output); err != nil {
		return fail(StageWrite, err)
	} else if same {
		return fail(StageWrite, fmt.Errorf("%s: %w", res.Output, ErrOutputIsSource))
	}
	if err := datfile.WriteRaw(res.Output, out); err != nil {
		return fail(StageWrite, err)
	}

	res.Stage = StageDone
	res.Elapsed = time.Since(start)
	logger.Info("table updated",
		"output", res.Output,
		"records_before", res.Before,
		"appended", res.Appended,
		"elapsed", res.Elapsed.Round(time.Millisecond))
	return res
}

// samePath reports whether a and b name the same file, by absolute path or,
// when both exist, by identity (symlinks, hard links).
func samePath(a, b string) (bool, error) {
	absA, err := filepath.Abs(a)
	if err != nil {
		return false, err
	}
	absB, err := filepath.Abs(b)
	if err != nil {
		return false, err
	}
	if absA == absB {
		return true, nil
	}

	infoA, err := os.Stat(absA)
	if err != nil {
		return false, nil
	}
	infoB, err := os.Stat(absB)
	if err != nil {
		return false, nil
	}
	return os.SameFile(infoA, infoB), nil
}

func (r *Runner) logger() *slog.Logger {
	if r.Logger != nil {
		return r.Logger
	}
	return slog.Default()
}

// Build synthesizes blocks from npcs once and runs every table with them.
func (r *Runner) Build(s *skilldata.Synthesizer, npcs []skilldata.NpcInfo) []Result {
	blocks := s.Synthesize(npcs)
	r.logger().Info("records synthesized", "npcs", len(npcs), "records_per_table", len(blocks))
	return r.RunAll(blocks)
}

// Err joins the errors of failed results, nil if every table succeeded.
func Err(results []Result) error {
	var errs []error
	for _, res := range results {
		if res.Err != nil {
			errs = append(errs, res.Err)
		}
	}
	return errors.Join(errs...)
}
