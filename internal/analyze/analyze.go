// Package analyze runs discovery, line counting and encoding detection
// over a target path and aggregates the results.
package analyze

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/phobologic/nloc/internal/charset"
	"github.com/phobologic/nloc/internal/discover"
	"github.com/phobologic/nloc/internal/model"
	"github.com/phobologic/nloc/internal/sloc"
)

var (
	// ErrNoTarget is returned when Options.Target is empty.
	ErrNoTarget = errors.New("No target specified!")
	// ErrNotExist is returned when the resolved target does not exist.
	ErrNotExist = errors.New("No such file or directory!")
)

// Logger receives progress messages. *logger.ConsoleLogger satisfies it.
type Logger interface {
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Debugf(format string, args ...any)
}

// Options configures a Run.
type Options struct {
	Target  string
	Exclude []string // substrings; empty keeps the walker defaults
	Types   []string // extension allow-list such as ".go"; empty allows all

	WithEncoding     bool
	RespectGitignore bool
	// MaxDepth is the number of directory levels below Target to descend
	// into; 0 means unlimited.
	MaxDepth    int
	MaxFileSize int64 // bytes; 0 disables the limit

	Logger Logger
}

// Done receives the outcome of a Run.
type Done func(err error, res *model.Result)

// Run analyzes opts.Target. The outcome is always returned; when done is
// non-nil it also receives the same outcome.
func Run(opts Options, done Done) (*model.Result, error) {
	res, err := run(opts)
	if done != nil {
		done(err, res)
	}
	return res, err
}

func run(opts Options) (*model.Result, error) {
	log := opts.Logger
	if log == nil {
		log = nopLogger{}
	}

	if opts.Target == "" {
		return nil, ErrNoTarget
	}

	target, err := Resolve(opts.Target)
	if err != nil {
		return nil, err
	}
	log.Infof("Checking: %s", target)

	if _, ok := discover.CheckPath(target); !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotExist, target)
	}

	fd, err := discover.Describe(target)
	if err != nil {
		return nil, err
	}

	found := model.DiscoveryResult{}
	if fd.IsDir() {
		found, err = discover.FindInPath(target, walkConfig(target, opts))
		if err != nil {
			return nil, err
		}
	} else {
		found[target] = fd
	}

	res := &model.Result{
		Target: target,
		Files:  make(map[string]*model.Record, len(found)),
	}

	for _, path := range found.Paths() {
		fd := found[path]
		if opts.MaxFileSize > 0 && fd.Info != nil && fd.Info.Size() > opts.MaxFileSize {
			log.Warnf("%s: skipped (>%d bytes)", path, opts.MaxFileSize)
			continue
		}

		rec := &model.Record{FileDescriptor: fd}
		if rec.Analyze, err = File(path, opts); err != nil {
			return nil, err
		}
		if rec.Sloc, err = Sloc(fd); err != nil {
			return nil, err
		}
		log.Debugf("%s: %d lines", path, rec.Sloc.Total)

		res.Files[path] = rec
		res.Summary.Fold(rec)
	}

	return res, nil
}

func walkConfig(root string, opts Options) discover.Config {
	cfg := discover.Config{Recursive: true, Depth: -1}
	if opts.MaxDepth > 0 {
		cfg.Depth = opts.MaxDepth
	}
	if len(opts.Exclude) > 0 {
		cfg.Exclude = opts.Exclude
	}

	var matchers []discover.Matcher
	if len(opts.Types) > 0 {
		matchers = append(matchers, discover.AllowExtensions(opts.Types))
	}
	if opts.RespectGitignore {
		matchers = append(matchers, discover.IgnoreFile(root))
	}
	switch len(matchers) {
	case 0:
		cfg.Matcher = discover.NotDirectory()
	case 1:
		cfg.Matcher = matchers[0]
	default:
		cfg.Matcher = discover.All(matchers...)
	}
	return cfg
}

// File runs the per-file analysis. Loc is left zero; encoding is detected
// only when opts.WithEncoding is set.
func File(path string, opts Options) (model.Analysis, error) {
	var a model.Analysis
	if opts.WithEncoding {
		content, err := os.ReadFile(path)
		if err != nil {
			return a, fmt.Errorf("reading %s: %w", path, err)
		}
		a.Encoding = charset.Detect(content)
	}
	return a, nil
}

// Sloc counts the lines of fd. Extensions the counter does not know yield
// the unsupported sentinel rather than an error.
func Sloc(fd model.FileDescriptor) (model.LineCount, error) {
	content, err := os.ReadFile(fd.Path)
	if err != nil {
		return model.LineCount{}, fmt.Errorf("reading %s: %w", fd.Path, err)
	}
	count, err := sloc.Count(content, strings.TrimPrefix(fd.Ext, "."))
	if errors.Is(err, sloc.ErrUnsupported) {
		return model.UnsupportedCount(), nil
	}
	return count, err
}

// IsAbsolute reports whether p is already an absolute, clean path.
func IsAbsolute(p string) bool {
	return filepath.IsAbs(p) && filepath.Clean(p) == p
}

// Resolve makes target absolute against the working directory.
// Resolving an already resolved path returns it unchanged.
func Resolve(target string) (string, error) {
	if IsAbsolute(target) {
		return target, nil
	}
	abs, err := filepath.Abs(target)
	if err != nil {
		return "", fmt.Errorf("resolving target: %w", err)
	}
	return abs, nil
}

type nopLogger struct{}

func (nopLogger) Infof(string, ...any)  {}
func (nopLogger) Warnf(string, ...any)  {}
func (nopLogger) Debugf(string, ...any) {}
