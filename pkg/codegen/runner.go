package codegen

import (
	"context"
	"os/exec"
	"runtime"
	"sort"
	"strings"

	"github.com/jensneuse/abstractlogger"
	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"go.uber.org/atomic"
	"golang.org/x/sync/errgroup"

	"github.com/wundergraph/graphql-ts-codegen/pkg/document"
	"github.com/wundergraph/graphql-ts-codegen/pkg/gqlconfig"
	"github.com/wundergraph/graphql-ts-codegen/pkg/sourcecache"
	"github.com/wundergraph/graphql-ts-codegen/pkg/writer"
)

// Runner drives a full generation run from a loaded configuration: it
// loads the schema, collects documents, generates every output and
// writes the files, skipping outputs whose content is already on disk.
type Runner struct {
	fs          afero.Fs
	out         writer.Writer
	log         abstractlogger.Logger
	workerCount int
	dryRun      bool
}

type RunnerOption func(*Runner)

// WithFS sets the filesystem schema and documents are read from.
func WithFS(fsys afero.Fs) RunnerOption {
	return func(r *Runner) {
		r.fs = fsys
	}
}

// WithWriter sets the destination for generated files. The default
// writes to the runner filesystem.
func WithWriter(out writer.Writer) RunnerOption {
	return func(r *Runner) {
		r.out = out
	}
}

func WithLogger(logger abstractlogger.Logger) RunnerOption {
	return func(r *Runner) {
		r.log = logger
	}
}

func WithWorkerCount(count int) RunnerOption {
	return func(r *Runner) {
		r.workerCount = count
	}
}

// WithDryRun generates everything but writes nothing and runs no hooks.
func WithDryRun(dryRun bool) RunnerOption {
	return func(r *Runner) {
		r.dryRun = dryRun
	}
}

func NewRunner(options ...RunnerOption) *Runner {
	runner := &Runner{
		fs:  afero.NewOsFs(),
		log: abstractlogger.Noop{},
	}
	for _, option := range options {
		option(runner)
	}
	if runner.out == nil {
		runner.out = writer.NewFSWriter(runner.fs)
	}
	return runner
}

// RunReport summarizes a finished run.
type RunReport struct {
	// Files are the output paths written in this run.
	Files []string
	// Skipped are the output paths left untouched because their content
	// already matched.
	Skipped []string
	// Warnings are the non-fatal problems hit while collecting documents.
	Warnings []string

	Operations int
	Fragments  int
}

// Run executes the configured generation end to end. Warnings do not
// fail the run; the first fatal error aborts it with nothing reported.
func (r *Runner) Run(ctx context.Context, cfg *gqlconfig.Config) (*RunReport, error) {
	schema, err := cfg.LoadSchema(r.fs)
	if err != nil {
		return nil, err
	}

	docs := document.NewDocuments()
	if len(cfg.Documents) > 0 {
		cache, err := sourcecache.New(sourcecache.DefaultSize)
		if err != nil {
			return nil, err
		}
		collector := document.NewCollector(r.fs,
			document.WithLogger(r.log),
			document.WithSourceCache(cache),
		)
		docs, err = collector.Collect(cfg.Documents)
		if err != nil {
			return nil, err
		}
	}

	result, err := Generate(ctx, Config{
		Schema:      schema,
		Documents:   docs,
		Outputs:     configOutputs(cfg),
		Options:     cfg.Options,
		Logger:      r.log,
		WorkerCount: r.workerCount,
	})
	if err != nil {
		return nil, err
	}

	written, skipped, err := r.writeFiles(ctx, result.Files)
	if err != nil {
		return nil, err
	}

	report := &RunReport{
		Files:      written,
		Skipped:    skipped,
		Warnings:   result.Warnings,
		Operations: len(docs.Operations()),
		Fragments:  len(docs.Fragments()),
	}

	if !r.dryRun && len(written) > 0 {
		if err := r.runAfterGenerate(ctx, cfg.Hooks.AfterGenerate, written); err != nil {
			return nil, err
		}
	}
	return report, nil
}

// configOutputs translates the configured outputs into generation order.
// The map iteration order is randomized, so outputs run sorted by path.
func configOutputs(cfg *gqlconfig.Config) []Output {
	paths := make([]string, 0, len(cfg.Outputs))
	for path := range cfg.Outputs {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	outputs := make([]Output, 0, len(paths))
	for _, path := range paths {
		output := Output{Path: path}
		if outputCfg := cfg.Outputs[path]; outputCfg != nil {
			output.Generators = generatorSpecs(outputCfg.Generators)
			output.Prelude = outputCfg.Prelude
			output.Config = outputCfg.Options
		}
		outputs = append(outputs, output)
	}
	return outputs
}

func generatorSpecs(list gqlconfig.GeneratorList) []GeneratorSpec {
	specs := make([]GeneratorSpec, 0, len(list))
	for _, entry := range list {
		specs = append(specs, GeneratorSpec{Name: entry.Name, Config: entry.Options})
	}
	return specs
}

// writeFiles writes the generated files concurrently. Unchanged files are
// skipped when the writer can compare against existing content.
func (r *Runner) writeFiles(ctx context.Context, files []GeneratedFile) (written, skipped []string, err error) {
	comparer, canCompare := r.out.(writer.Comparer)

	limit := r.workerCount
	if limit <= 0 {
		limit = runtime.GOMAXPROCS(0)
	}

	unchanged := make([]bool, len(files))
	bytesWritten := atomic.NewInt64(0)

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(limit)
	for i, file := range files {
		i, file := i, file
		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}
			content := []byte(file.Content)
			if canCompare && comparer.MatchesExisting(file.Path, content) {
				unchanged[i] = true
				r.log.Debug("codegen.Runner: output unchanged",
					abstractlogger.String("path", file.Path),
				)
				return nil
			}
			if !r.dryRun {
				if err := r.out.Write(file.Path, content); err != nil {
					return err
				}
			}
			bytesWritten.Add(int64(len(content)))
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, nil, err
	}

	for i, file := range files {
		if unchanged[i] {
			skipped = append(skipped, file.Path)
			continue
		}
		written = append(written, file.Path)
	}
	r.log.Debug("codegen.Runner: run finished",
		abstractlogger.Int("written", len(written)),
		abstractlogger.Int("skipped", len(skipped)),
		abstractlogger.Int64("bytesWritten", bytesWritten.Load()),
	)
	return written, skipped, nil
}

// runAfterGenerate runs each configured hook command once, appending the
// written file paths to its arguments.
func (r *Runner) runAfterGenerate(ctx context.Context, commands []string, files []string) error {
	for _, command := range commands {
		parts := strings.Fields(command)
		if len(parts) == 0 {
			continue
		}
		args := make([]string, 0, len(parts)-1+len(files))
		args = append(args, parts[1:]...)
		args = append(args, files...)

		output, err := exec.CommandContext(ctx, parts[0], args...).CombinedOutput()
		if err != nil {
			return errors.Wrapf(err, "afterGenerate hook %q failed: %s", command, strings.TrimSpace(string(output)))
		}
		r.log.Debug("codegen.Runner: afterGenerate hook finished",
			abstractlogger.String("command", command),
		)
	}
	return nil
}
