// Package discover finds files below a search path.
package discover

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	ignore "github.com/sabhiram/go-gitignore"

	"github.com/phobologic/nloc/internal/model"
)

// DefaultExclude lists the substrings excluded when Config.Exclude is nil.
var DefaultExclude = []string{".git", "node_modules", "bower_components"}

// Config controls a FindInPath walk.
//
// Start from DefaultConfig. The zero Config has Depth 0, which never
// descends even with Recursive set; only Exclude and Matcher default
// from their zero values.
type Config struct {
	Recursive bool
	// Exclude drops any file whose path contains one of these substrings.
	// nil selects DefaultExclude; a non-nil slice (even empty) replaces it.
	Exclude []string
	// Matcher decides which non-directory entries are kept.
	// The zero Matcher behaves like NotDirectory().
	Matcher Matcher
	// Depth bounds recursion: -1 is unlimited, 0 stays in the search path.
	// It is not defaulted: a zero Depth means top level only.
	Depth int
}

// DefaultConfig returns a non-recursive, unlimited-depth config.
func DefaultConfig() Config {
	return Config{Depth: -1}
}

func (c Config) exclude() []string {
	if c.Exclude == nil {
		return DefaultExclude
	}
	return c.Exclude
}

func (c Config) descend(depth int) bool {
	return c.Recursive && (c.Depth == -1 || c.Depth > depth)
}

// Describe builds the descriptor for path. Stat failures are returned as-is.
func Describe(path string) (model.FileDescriptor, error) {
	info, err := os.Lstat(path)
	if err != nil {
		return model.FileDescriptor{}, err
	}
	name := filepath.Base(path)
	ext := filepath.Ext(path)
	return model.FileDescriptor{
		Path: path,
		Name: name,
		Ext:  ext,
		Base: strings.TrimSuffix(name, ext),
		Info: info,
	}, nil
}

// CheckPath reports whether path exists. With extensions, it tries
// path+ext for each in order and returns the first that exists.
func CheckPath(path string, extensions ...string) (string, bool) {
	if len(extensions) == 0 {
		if exists(path) {
			return path, true
		}
		return "", false
	}
	for _, ext := range extensions {
		if exists(path + ext) {
			return path + ext, true
		}
	}
	return "", false
}

// linksToFile reports whether the symlink at path resolves to a
// non-directory.
func linksToFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// NotIn reports whether none of patterns occurs in value.
func NotIn(patterns []string, value string) bool {
	for _, p := range patterns {
		if strings.Contains(value, p) {
			return false
		}
	}
	return true
}

// FindInPath collects the files below searchPath that pass cfg, keyed by
// absolute path. A searchPath that does not exist yields an empty result.
// Directories are only ever descended into, never returned. Symlinks to
// directories and dangling symlinks are skipped.
func FindInPath(searchPath string, cfg Config) (model.DiscoveryResult, error) {
	root, err := filepath.Abs(searchPath)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", searchPath, err)
	}

	found := model.DiscoveryResult{}
	if _, ok := CheckPath(root); !ok {
		return found, nil
	}

	type pending struct {
		dir   string
		depth int
	}
	stack := []pending{{dir: root}}
	exclude := cfg.exclude()

	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		// Dangling entries (broken symlinks, races) are skipped.
		if _, ok := CheckPath(cur.dir); !ok {
			continue
		}

		entries, err := os.ReadDir(cur.dir)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", cur.dir, err)
		}

		var subdirs []pending
		for _, entry := range entries {
			fd, err := Describe(filepath.Join(cur.dir, entry.Name()))
			if err != nil {
				if errors.Is(err, fs.ErrNotExist) {
					continue
				}
				return nil, fmt.Errorf("describing %s: %w", entry.Name(), err)
			}

			if fd.Info.Mode()&fs.ModeSymlink != 0 && !linksToFile(fd.Path) {
				continue
			}

			if fd.IsDir() {
				if cfg.descend(cur.depth) {
					subdirs = append(subdirs, pending{dir: fd.Path, depth: cur.depth + 1})
				}
				continue
			}

			if cfg.Matcher.Match(fd) && NotIn(exclude, fd.Path) {
				found[fd.Path] = fd
			}
		}

		// Push in reverse so the first subdirectory is drained first.
		for i := len(subdirs) - 1; i >= 0; i-- {
			stack = append(stack, subdirs[i])
		}
	}

	return found, nil
}

// Matcher decides whether a discovered file is kept.
type Matcher struct {
	kind matcherKind
	fn   func(model.FileDescriptor) bool
}

type matcherKind int

const (
	matchNotDirectory matcherKind = iota
	matchAlways
	matchNever
	matchFunc
)

// NotDirectory keeps every entry that is not a directory.
func NotDirectory() Matcher { return Matcher{kind: matchNotDirectory} }

// Always keeps every entry.
func Always() Matcher { return Matcher{kind: matchAlways} }

// Never keeps nothing.
func Never() Matcher { return Matcher{kind: matchNever} }

// Func wraps a predicate. A nil predicate behaves like Never.
func Func(fn func(model.FileDescriptor) bool) Matcher {
	if fn == nil {
		return Never()
	}
	return Matcher{kind: matchFunc, fn: fn}
}

// Match applies the matcher to fd.
func (m Matcher) Match(fd model.FileDescriptor) bool {
	switch m.kind {
	case matchAlways:
		return true
	case matchNever:
		return false
	case matchFunc:
		return m.fn(fd)
	default:
		return !fd.IsDir()
	}
}

// All keeps an entry only when every matcher keeps it.
func All(matchers ...Matcher) Matcher {
	return Func(func(fd model.FileDescriptor) bool {
		for _, m := range matchers {
			if !m.Match(fd) {
				return false
			}
		}
		return true
	})
}

// AllowExtensions keeps non-directories whose extension appears in types.
// Entries of types are matched as substrings of the extension, so ".js"
// also admits ".json".
func AllowExtensions(types []string) Matcher {
	return Func(func(fd model.FileDescriptor) bool {
		return !fd.IsDir() && !NotIn(types, fd.Ext)
	})
}

// IgnoreFile keeps non-directories not matched by root/.gitignore.
// Without a readable .gitignore it behaves like NotDirectory.
func IgnoreFile(root string) Matcher {
	if abs, err := filepath.Abs(root); err == nil {
		root = abs
	}
	gi := loadGitignore(root)
	if gi == nil {
		return NotDirectory()
	}
	return Func(func(fd model.FileDescriptor) bool {
		if fd.IsDir() {
			return false
		}
		rel, err := filepath.Rel(root, fd.Path)
		if err != nil {
			return true
		}
		return !gi.MatchesPath(filepath.ToSlash(rel))
	})
}

func loadGitignore(root string) *ignore.GitIgnore {
	path := filepath.Join(root, ".gitignore")
	gi, err := ignore.CompileIgnoreFile(path)
	if err != nil {
		return nil
	}
	return gi
}
