package driver

import (
	"context"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"runtime"
	"sort"
	"strconv"
	"strings"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"ngmigrate/internal/diag"
	"ngmigrate/internal/migrate"
	"ngmigrate/internal/observ"
	"ngmigrate/internal/project"
	"ngmigrate/internal/source"
)

// Status classifies the outcome for one file in a batch run.
type Status uint8

const (
	// StatusClean means the file needed no rewrite.
	StatusClean Status = iota
	// StatusChanged means the file was rewritten.
	StatusChanged
	// StatusCached means the cache knew the file was clean; it was not
	// processed at all.
	StatusCached
	// StatusError means the file failed to load or parse.
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusChanged:
		return "changed"
	case StatusCached:
		return "cached"
	case StatusError:
		return "error"
	default:
		return "clean"
	}
}

// FileReport is the per-file outcome of a batch run.
type FileReport struct {
	Path     string
	Status   Status
	Migrated int
	// NewContent holds the rewritten text for changed files on dry runs;
	// nil once written to disk or for clean files.
	NewContent []byte
	Bag        *diag.Bag
	Err        error
}

// BatchOptions configures a batch run over a directory tree.
type BatchOptions struct {
	Dir            string
	Jobs           int
	MaxDiagnostics int
	// Write applies rewrites in place; otherwise the run is a dry run and
	// rewritten text stays in the reports.
	Write   bool
	Exclude []string
	Migrate migrate.Options
	// Cache, when non-nil, skips files recorded clean under ConfigDigest.
	Cache        *CleanCache
	ConfigDigest project.Digest
	// Progress, when set, is called after each file completes. Calls may
	// come from any worker goroutine.
	Progress func(done, total int, report *FileReport)
	// Timer, when set, records the discover/load/migrate phases.
	Timer *observ.Timer
}

// BatchResult aggregates a whole run.
type BatchResult struct {
	Reports []FileReport // file order, deterministic
	// FileSet holds every file the run loaded; diagnostic spans in the
	// reports resolve against it.
	FileSet *source.FileSet
	Changed int
	Clean   int
	Cached  int
	Errors  int
}

// Bag merges all per-file diagnostics into one sorted bag.
func (r *BatchResult) Bag(maxDiagnostics int) *diag.Bag {
	merged := diag.NewBag(maxDiagnostics)
	for i := range r.Reports {
		merged.Merge(r.Reports[i].Bag)
	}
	merged.Sort()
	return merged
}

// ListSourceFiles returns all migratable *.ts files under dir, sorted.
// Declaration files, node_modules, hidden directories and configured
// exclude globs are skipped.
func ListSourceFiles(dir string, exclude []string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		name := d.Name()
		if d.IsDir() {
			if p != dir && (name == "node_modules" || strings.HasPrefix(name, ".")) {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(name, ".ts") || strings.HasSuffix(name, ".d.ts") {
			return nil
		}
		if excluded(dir, p, exclude) {
			return nil
		}
		files = append(files, p)
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

func excluded(dir, p string, patterns []string) bool {
	if len(patterns) == 0 {
		return false
	}
	rel, err := filepath.Rel(dir, p)
	if err != nil {
		rel = p
	}
	rel = filepath.ToSlash(rel)
	for _, pat := range patterns {
		if ok, _ := path.Match(pat, rel); ok {
			return true
		}
		// allow directory-prefix patterns like "legacy/**" to match deeply
		if prefix, found := strings.CutSuffix(pat, "/**"); found {
			if rel == prefix || strings.HasPrefix(rel, prefix+"/") {
				return true
			}
		}
	}
	return false
}

// Run migrates every matching file under opts.Dir. Files are processed by
// parallel workers; each worker owns all of its per-file state, and a
// failure in one file never stops the rest.
func Run(ctx context.Context, opts BatchOptions) (*BatchResult, error) {
	discover := -1
	if opts.Timer != nil {
		discover = opts.Timer.Begin("discover")
	}
	files, err := ListSourceFiles(opts.Dir, opts.Exclude)
	if opts.Timer != nil {
		opts.Timer.End(discover, strconv.Itoa(len(files))+" files")
	}
	if err != nil {
		return nil, err
	}
	fileSet := source.NewFileSetWithBase(opts.Dir)
	result := &BatchResult{Reports: make([]FileReport, len(files)), FileSet: fileSet}
	if len(files) == 0 {
		return result, nil
	}

	load := -1
	if opts.Timer != nil {
		load = opts.Timer.Begin("load")
	}
	fileIDs := make(map[string]source.FileID, len(files))
	loadErrors := make(map[string]error, len(files))
	for _, p := range files {
		id, err := fileSet.Load(p)
		if err != nil {
			loadErrors[p] = err
			continue
		}
		fileIDs[p] = id
	}
	if opts.Timer != nil {
		opts.Timer.End(load, "")
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	var done atomic.Int64

	work := -1
	if opts.Timer != nil {
		work = opts.Timer.Begin("migrate")
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))
	for i, p := range files {
		i, p := i, p
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			report := runOne(fileSet, p, fileIDs, loadErrors, &opts)
			result.Reports[i] = report
			if opts.Progress != nil {
				opts.Progress(int(done.Add(1)), len(files), &result.Reports[i])
			}
			return nil
		})
	}
	err = g.Wait()
	if opts.Timer != nil {
		opts.Timer.End(work, "")
	}
	if err != nil {
		return result, err
	}

	for i := range result.Reports {
		switch result.Reports[i].Status {
		case StatusChanged:
			result.Changed++
		case StatusCached:
			result.Cached++
		case StatusError:
			result.Errors++
		default:
			result.Clean++
		}
	}
	return result, nil
}

func runOne(
	fileSet *source.FileSet,
	p string,
	fileIDs map[string]source.FileID,
	loadErrors map[string]error,
	opts *BatchOptions,
) FileReport {
	report := FileReport{Path: p, Bag: diag.NewBag(opts.MaxDiagnostics)}

	if loadErr, ok := loadErrors[p]; ok {
		report.Status = StatusError
		report.Err = loadErr
		report.Bag.Add(diag.Diagnostic{
			Severity: diag.SevError,
			Code:     diag.IOLoadFileError,
			Message:  "failed to load file: " + loadErr.Error(),
		})
		return report
	}

	fileID := fileIDs[p]
	file := fileSet.Get(fileID)
	key := project.Combine(project.Digest(file.Hash), opts.ConfigDigest)

	if opts.Cache.Known(key) {
		report.Status = StatusCached
		return report
	}

	res := Process(fileSet, fileID, opts.Migrate, opts.MaxDiagnostics)
	report.Bag = res.Bag
	report.Migrated = res.Migrated

	switch {
	case res.Bag.HasErrors():
		report.Status = StatusError
	case !res.Changed:
		report.Status = StatusClean
		_ = opts.Cache.Remember(key, p)
	default:
		report.Status = StatusChanged
		if opts.Write {
			if err := writeInPlace(p, res.NewContent); err != nil {
				report.Status = StatusError
				report.Err = err
				report.Bag.Add(diag.Diagnostic{
					Severity: diag.SevError,
					Code:     diag.IOWriteFileError,
					Message:  "failed to write file: " + err.Error(),
				})
				return report
			}
		} else {
			report.NewContent = res.NewContent
		}
	}
	return report
}

func writeInPlace(p string, content []byte) error {
	mode := os.FileMode(0o644)
	if info, err := os.Stat(p); err == nil {
		mode = info.Mode().Perm()
	}
	return os.WriteFile(p, content, mode)
}
