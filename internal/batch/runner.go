package batch

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/Faultbox/objkit/internal/logger"
)

// Config holds the settings for one batch run.
type Config struct {
	Processor   Processor
	OutputDir   string
	NamePattern string // used for split output: base name, 1-based segment number
	Workers     int    // 0 = one per CPU
	FailFast    bool
	// Stdout, when set, receives every output document in input order
	// instead of writing files.
	Stdout io.Writer
}

// Result holds the outcome of processing one file.
type Result struct {
	Input   string
	Outputs []string // written paths, empty when writing to Stdout
	Docs    int      // number of documents produced
	Elapsed time.Duration
	Skipped bool // not attempted because an earlier file failed with FailFast
	Err     error

	texts []string
}

// Run processes every input path with cfg.Processor using a worker pool.
// Results are returned in input order. The returned error combines the
// failure of every file; a failing file does not stop the others unless
// FailFast is set.
func Run(ctx context.Context, cfg Config, inputs []string) ([]Result, error) {
	if cfg.Processor == nil {
		return nil, fmt.Errorf("batch: no processor")
	}
	if cfg.Stdout == nil {
		if err := checkOutputNames(inputs); err != nil {
			return nil, err
		}
	}
	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > len(inputs) {
		workers = len(inputs)
	}

	log := logger.Named("batch").With(zap.String("op", cfg.Processor.Name()))
	log.Debug("batch started", zap.Int("files", len(inputs)), zap.Int("workers", workers))

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	results := make([]Result, len(inputs))
	var processed atomic.Int64
	start := time.Now()

	jobs := make(chan int, workers*2)
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				if ctx.Err() != nil {
					results[idx] = Result{Input: inputs[idx], Skipped: true, Err: ctx.Err()}
					continue
				}
				results[idx] = processFile(cfg, inputs[idx])
				processed.Add(1)

				r := results[idx]
				if r.Err != nil {
					log.Warn("file failed", zap.String("file", r.Input), zap.Error(r.Err))
					if cfg.FailFast {
						cancel()
					}
					continue
				}
				log.Info("file done",
					zap.String("file", r.Input),
					zap.Int("documents", r.Docs),
					zap.Duration("elapsed", r.Elapsed))
			}
		}()
	}

	for i := range inputs {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	var errs error
	for i := range results {
		r := &results[i]
		if r.Err != nil {
			if !r.Skipped {
				errs = multierr.Append(errs, fmt.Errorf("%s: %w", r.Input, r.Err))
			}
			continue
		}
		if cfg.Stdout != nil {
			for _, text := range r.texts {
				if err := writeText(cfg.Stdout, text); err != nil {
					errs = multierr.Append(errs, fmt.Errorf("writing output of %s: %w", r.Input, err))
				}
			}
		}
		r.texts = nil
	}

	log.Debug("batch finished",
		zap.Int64("processed", processed.Load()),
		zap.Int("failed", len(multierr.Errors(errs))),
		zap.Duration("elapsed", time.Since(start)))

	return results, errs
}

func processFile(cfg Config, path string) Result {
	start := time.Now()
	res := Result{Input: path}

	data, err := os.ReadFile(path)
	if err != nil {
		res.Err = err
		return res
	}

	docs, err := cfg.Processor.Execute(string(data))
	if err != nil {
		res.Err = err
		return res
	}
	res.Docs = len(docs)

	if cfg.Stdout != nil {
		res.texts = docs
	} else {
		res.Outputs, res.Err = writeOutputs(cfg, path, docs)
	}

	res.Elapsed = time.Since(start)
	return res
}

// checkOutputNames rejects inputs that would write to the same output files.
// Output names only keep the input's base name, so a/mesh.obj and
// b/mesh.obj collide.
func checkOutputNames(inputs []string) error {
	owner := make(map[string]string, len(inputs))
	for _, in := range inputs {
		stem := outputStem(in)
		if prev, ok := owner[stem]; ok {
			return fmt.Errorf("batch: %s and %s map to the same output name %q", prev, in, stem)
		}
		owner[stem] = in
	}
	return nil
}

func outputStem(input string) string {
	return strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
}

// OutputPaths returns the file names that cfg assigns to n documents
// produced from input.
func OutputPaths(cfg Config, input string, n int) []string {
	base := outputStem(input)
	if !cfg.Processor.Splits() {
		return []string{filepath.Join(cfg.OutputDir, base+".obj")}
	}
	paths := make([]string, n)
	for i := range paths {
		paths[i] = filepath.Join(cfg.OutputDir, fmt.Sprintf(cfg.NamePattern, base, i+1))
	}
	return paths
}

func writeOutputs(cfg Config, input string, docs []string) ([]string, error) {
	if len(docs) == 0 {
		return nil, nil
	}
	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	paths := OutputPaths(cfg, input, len(docs))
	inAbs, _ := filepath.Abs(input)
	for i, p := range paths {
		if outAbs, _ := filepath.Abs(p); outAbs == inAbs {
			return paths[:i], fmt.Errorf("refusing to overwrite input %s", input)
		}
		if err := os.WriteFile(p, []byte(withNewline(docs[i])), 0644); err != nil {
			return paths[:i], err
		}
	}
	return paths, nil
}

func writeText(w io.Writer, text string) error {
	_, err := io.WriteString(w, withNewline(text))
	return err
}

func withNewline(text string) string {
	if strings.HasSuffix(text, "\n") {
		return text
	}
	return text + "\n"
}
