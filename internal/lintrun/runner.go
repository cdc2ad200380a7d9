package lintrun

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/okian/codearena/internal/domain/lint"
	"github.com/okian/codearena/internal/domain/model"
	"github.com/okian/codearena/pkg/logger"
	"github.com/okian/codearena/pkg/metrics"
)

// WorkerChannelMultiplier sizes the job channel relative to the worker count.
const WorkerChannelMultiplier = 2

type job struct {
	path string
}

type result struct {
	path     string
	findings []Finding
	err      error
}

// Run lints every file under config.Paths and writes findings to out, then
// unreadable files sorted by path. It returns ErrUnreadable when any file
// could not be read, else ErrFindings when any error-severity annotation was
// reported.
func Run(ctx context.Context, config *Config, out io.Writer) (Stats, error) {
	var stats Stats
	log := logger.Named("lintrun")

	files, err := collect(config.Paths)
	if err != nil {
		return stats, err
	}
	if len(files) == 0 {
		return stats, ErrNoInput
	}

	workers := config.Workers
	if workers < 1 {
		workers = 1
	}
	if workers > len(files) {
		workers = len(files)
	}
	minRank := config.MinSeverity.Rank()

	log.Info(ctx, "starting lint run",
		logger.Int("files", len(files)),
		logger.Int("workers", workers),
		logger.String("minSeverity", string(config.MinSeverity)))
	start := time.Now()

	jobs := make(chan job, workers*WorkerChannelMultiplier)
	results := make(chan result, workers*WorkerChannelMultiplier)
	var wg sync.WaitGroup

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			for j := range jobs {
				select {
				case <-ctx.Done():
					results <- result{path: j.path, err: ctx.Err()}
					continue
				default:
				}
				findings, err := lintFile(j.path, minRank)
				log.Debug(ctx, "linted file",
					logger.Int("worker", workerID),
					logger.String("file", j.path),
					logger.Int("findings", len(findings)))
				results <- result{path: j.path, findings: findings, err: err}
			}
		}(i)
	}

	go func() {
		defer close(jobs)
		for _, f := range files {
			jobs <- job{path: f}
		}
	}()
	go func() {
		wg.Wait()
		close(results)
	}()

	var all []Finding
	var failed []result
	for r := range results {
		stats.Files++
		if r.err != nil {
			stats.Failed++
			log.Error(ctx, "failed to lint file", logger.String("file", r.path), logger.Error(r.err))
			failed = append(failed, r)
			continue
		}
		all = append(all, r.findings...)
	}

	sortFindings(all)
	for _, f := range all {
		switch f.Annotation.Severity {
		case model.SeverityError:
			stats.Errors++
		case model.SeverityWarning:
			stats.Warnings++
		default:
			stats.Infos++
		}
		_, _ = fmt.Fprintln(out, Format(f))
	}
	sort.Slice(failed, func(i, j int) bool { return failed[i].path < failed[j].path })
	for _, r := range failed {
		_, _ = fmt.Fprintf(out, "%s: %v\n", r.path, r.err)
	}

	log.Info(ctx, "lint run completed",
		logger.Int("files", stats.Files),
		logger.Int("errors", stats.Errors),
		logger.Int("warnings", stats.Warnings),
		logger.Int("infos", stats.Infos),
		logger.Duration("duration", time.Since(start)))

	if err := ctx.Err(); err != nil {
		return stats, err
	}
	// Unreadable files outrank findings: the run is incomplete.
	if stats.Failed > 0 {
		return stats, fmt.Errorf("%w: %d of %d files", ErrUnreadable, stats.Failed, stats.Files)
	}
	if stats.Errors > 0 {
		return stats, fmt.Errorf("%w: %d", ErrFindings, stats.Errors)
	}
	return stats, nil
}

// Format renders a finding as file:line:col: severity: message with 1-based positions.
func Format(f Finding) string {
	a := f.Annotation
	return fmt.Sprintf("%s:%d:%d: %s: %s", f.File, a.From.Line+1, a.From.Col+1, a.Severity, a.Message)
}

func lintFile(path string, minRank int) ([]Finding, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}
	// Sources with CRLF endings would otherwise carry '\r' into every line.
	text := strings.ReplaceAll(string(data), "\r\n", "\n")

	begin := time.Now()
	anns := lint.Lint(text)
	metrics.RecordLintRun(float64(time.Since(begin).Microseconds()) / 1000)

	findings := make([]Finding, 0, len(anns))
	for _, a := range anns {
		metrics.RecordLintAnnotation(string(a.Severity))
		if a.Severity.Rank() < minRank {
			continue
		}
		findings = append(findings, Finding{File: path, Annotation: a})
	}
	return findings, nil
}

// collect expands directories into their *.py files and keeps explicit files as given.
func collect(paths []string) ([]string, error) {
	seen := map[string]bool{}
	var files []string
	add := func(p string) {
		if !seen[p] {
			seen[p] = true
			files = append(files, p)
		}
	}
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", p, err)
		}
		if !info.IsDir() {
			add(p)
			continue
		}
		err = filepath.WalkDir(p, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && strings.HasSuffix(d.Name(), ".py") {
				add(path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walk %s: %w", p, err)
		}
	}
	return files, nil
}

// sortFindings orders by file, then position; ties keep lint order.
func sortFindings(found []Finding) {
	sort.SliceStable(found, func(i, j int) bool {
		a, b := found[i], found[j]
		if a.File != b.File {
			return a.File < b.File
		}
		if a.Annotation.From.Line != b.Annotation.From.Line {
			return a.Annotation.From.Line < b.Annotation.From.Line
		}
		return a.Annotation.From.Col < b.Annotation.From.Col
	})
}
