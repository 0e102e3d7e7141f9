package export

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// BatchResult summarizes a batch. Books that succeeded are fully written
// even when others failed.
type BatchResult struct {
	RunID     string
	Total     int
	Succeeded int
	Failures  []Failure
}

// Err is a *BatchError when any book failed, nil otherwise.
func (r BatchResult) Err() error {
	if len(r.Failures) == 0 {
		return nil
	}
	return &BatchError{Failures: r.Failures}
}

// ExportBatch exports every id, continuing past failed books. With workers
// above one, independent books are exported concurrently; failures are
// still reported in input order.
func (e *Exporter) ExportBatch(ctx context.Context, ids []int, workers int) BatchResult {
	if workers < 1 {
		workers = 1
	}
	res := BatchResult{RunID: uuid.NewString(), Total: len(ids)}
	e.logger.Printf("Batch %s: %d book(s), %d worker(s)", res.RunID, len(ids), workers)

	dirs, errs := e.planDirs(ctx, ids)
	var g errgroup.Group
	g.SetLimit(workers)
	for i, id := range ids {
		if errs[i] != nil {
			e.logger.Printf("[%d/%d]   Error: %v", i+1, len(ids), errs[i])
			continue
		}
		i, id := i, id // per-iteration copies; go directive is below 1.22
		g.Go(func() error {
			progress := fmt.Sprintf("[%d/%d] ", i+1, len(ids))
			if _, err := e.exportBook(ctx, id, progress, dirs[i]); err != nil {
				e.logger.Printf("  Error: %v", err)
				errs[i] = err
			}
			return nil
		})
	}
	_ = g.Wait()

	for i, err := range errs {
		if err != nil {
			res.Failures = append(res.Failures, Failure{BookID: ids[i], Message: err.Error()})
			continue
		}
		res.Succeeded++
	}

	e.logger.Printf("\nExport complete! %d/%d books exported.", res.Succeeded, res.Total)
	e.logger.Printf("Output directory: %s", e.root)
	return res
}

// planDirs assigns every book of a batch its own directory before any export
// starts, so the result does not depend on which worker finishes first. The
// first book in input order keeps its plain name; later books with the same
// name get their id appended. A book listed twice fails its later entries.
// Books whose catalog entry cannot be read get no directory here and fail
// during export.
func (e *Exporter) planDirs(ctx context.Context, ids []int) ([]string, []error) {
	dirs := make([]string, len(ids))
	errs := make([]error, len(ids))
	owner := make(map[string]int)
	for i, id := range ids {
		info, err := e.catalog.BookInfo(ctx, id)
		if err != nil {
			continue
		}
		name := SafeName(info.Name, id)
		if j, taken := owner[name]; taken {
			if ids[j] == id {
				errs[i] = fmt.Errorf("book %d is listed more than once in the batch", id)
				continue
			}
			renamed := fmt.Sprintf("%s (%d)", name, id)
			if k, taken := owner[renamed]; taken {
				errs[i] = fmt.Errorf("directory %q is already used by book %d", renamed, ids[k])
				continue
			}
			e.logger.Printf("Book %d shares the directory name %q with book %d; writing to %q",
				id, name, ids[j], renamed)
			name = renamed
		}
		owner[name] = i
		dirs[i] = name
	}
	return dirs, errs
}
