// Package model defines core data structures for nloc.
package model

import (
	"encoding/json"
	"io/fs"
	"sort"
)

// NotSupported is the value reported for every count of a file whose
// extension has no line-counting rules.
const NotSupported = "not supported"

// FileDescriptor is the metadata recorded for a discovered path.
type FileDescriptor struct {
	Path string      // Absolute path
	Name string      // Base name
	Ext  string      // Extension including the leading dot, or ""
	Base string      // Name without Ext
	Info fs.FileInfo // Lstat result
}

// IsDir reports whether the descriptor refers to a directory.
func (fd FileDescriptor) IsDir() bool {
	return fd.Info != nil && fd.Info.IsDir()
}

// MarshalJSON flattens the stat info into the fields callers care about.
func (fd FileDescriptor) MarshalJSON() ([]byte, error) {
	type stats struct {
		IsDirectory bool   `json:"isDirectory"`
		Size        int64  `json:"size"`
		Mode        string `json:"mode"`
		Mtime       string `json:"mtime"`
	}
	out := struct {
		Path     string `json:"path"`
		Name     string `json:"name"`
		Extname  string `json:"extname"`
		Basename string `json:"basename"`
		Stats    *stats `json:"stats,omitempty"`
	}{
		Path:     fd.Path,
		Name:     fd.Name,
		Extname:  fd.Ext,
		Basename: fd.Base,
	}
	if fd.Info != nil {
		out.Stats = &stats{
			IsDirectory: fd.Info.IsDir(),
			Size:        fd.Info.Size(),
			Mode:        fd.Info.Mode().String(),
			Mtime:       fd.Info.ModTime().UTC().Format("2006-01-02T15:04:05Z"),
		}
	}
	return json.Marshal(out)
}

// LineCount holds total, empty and comment line counts.
// Unsupported marks a file the counter has no rules for; such a count
// contributes nothing to an aggregate.
type LineCount struct {
	Total       int
	Empty       int
	Comment     int
	Unsupported bool
}

// UnsupportedCount returns the sentinel count.
func UnsupportedCount() LineCount {
	return LineCount{Unsupported: true}
}

// Add folds other into c. Unsupported counts add zero.
func (c *LineCount) Add(other LineCount) {
	if other.Unsupported {
		return
	}
	c.Total += other.Total
	c.Empty += other.Empty
	c.Comment += other.Comment
}

// MarshalJSON encodes each field as a number, or as NotSupported for the
// sentinel count.
func (c LineCount) MarshalJSON() ([]byte, error) {
	if c.Unsupported {
		return json.Marshal(map[string]string{
			"total":   NotSupported,
			"empty":   NotSupported,
			"comment": NotSupported,
		})
	}
	return json.Marshal(struct {
		Total   int `json:"total"`
		Empty   int `json:"empty"`
		Comment int `json:"comment"`
	}{c.Total, c.Empty, c.Comment})
}

// Analysis is the analyzer's output for one file.
// Loc is always zero: intrinsic line counting is not performed here,
// see Record.Sloc for the counter's result.
type Analysis struct {
	Loc      LineCount `json:"loc"`
	Encoding string    `json:"encoding,omitempty"`
}

// Record is the full per-file result.
type Record struct {
	FileDescriptor
	Analyze Analysis
	Sloc    LineCount
}

// MarshalJSON merges descriptor fields with the analysis fields.
func (r Record) MarshalJSON() ([]byte, error) {
	fd, err := json.Marshal(r.FileDescriptor)
	if err != nil {
		return nil, err
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(fd, &fields); err != nil {
		return nil, err
	}
	if fields["analyze"], err = json.Marshal(r.Analyze); err != nil {
		return nil, err
	}
	if fields["sloc"], err = json.Marshal(r.Sloc); err != nil {
		return nil, err
	}
	return json.Marshal(fields)
}

// Summary is the run-wide aggregate.
type Summary struct {
	Files int       `json:"files"`
	Loc   LineCount `json:"loc"`
}

// Fold adds one record to the summary.
func (s *Summary) Fold(r *Record) {
	s.Files++
	s.Loc.Add(r.Sloc)
}

// Result is everything one run produced, keyed by absolute path.
type Result struct {
	Target  string
	Files   map[string]*Record
	Summary Summary
}

// Sorted returns the records ordered by path.
func (r *Result) Sorted() []*Record {
	out := make([]*Record, 0, len(r.Files))
	for _, rec := range r.Files {
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Path < out[j].Path
	})
	return out
}

// MarshalJSON emits the path-keyed map with a reserved "summary" key.
func (r *Result) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(r.Files)+1)
	for path, rec := range r.Files {
		out[path] = rec
	}
	out["summary"] = r.Summary
	return json.Marshal(out)
}

// DiscoveryResult maps absolute paths to the descriptors found by a walk.
type DiscoveryResult map[string]FileDescriptor

// Paths returns the keys in sorted order.
func (d DiscoveryResult) Paths() []string {
	paths := make([]string, 0, len(d))
	for p := range d {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}
