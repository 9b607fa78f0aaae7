// Package sysfs reads kernel pseudo-files and configuration files relative
// to a root directory. Every read is one-shot and best-effort: a missing or
// unreadable source yields ok=false or an empty result, never an error.
package sysfs

import (
	"bufio"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

type FS struct {
	root string
}

func New(root string) FS {
	if root == "" {
		root = "/"
	}
	return FS{root: filepath.Clean(root)}
}

// Path maps an absolute system path onto the root.
func (f FS) Path(p string) string {
	return filepath.Join(f.root, p)
}

func (f FS) ReadBytes(p string) ([]byte, bool) {
	b, err := os.ReadFile(f.Path(p))
	if err != nil {
		return nil, false
	}
	return b, true
}

// ReadString returns the trimmed file contents.
func (f FS) ReadString(p string) (string, bool) {
	b, ok := f.ReadBytes(p)
	if !ok {
		return "", false
	}
	return strings.TrimSpace(string(b)), true
}

// ReadLines returns every line of the file, nil when unreadable.
func (f FS) ReadLines(p string) []string {
	file, err := os.Open(f.Path(p))
	if err != nil {
		return nil
	}
	defer file.Close()

	var lines []string
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	return lines
}

func (f FS) ReadUint(p string) (uint64, bool) {
	s, ok := f.ReadString(p)
	if !ok {
		return 0, false
	}
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

func (f FS) ReadFloat(p string) (float64, bool) {
	s, ok := f.ReadString(p)
	if !ok {
		return 0, false
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// ReadDir returns the sorted entry names of a directory.
func (f FS) ReadDir(p string) []string {
	entries, err := os.ReadDir(f.Path(p))
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names
}

func (f FS) Readlink(p string) (string, bool) {
	target, err := os.Readlink(f.Path(p))
	if err != nil {
		return "", false
	}
	return target, true
}

func (f FS) Exists(p string) bool {
	_, err := os.Stat(f.Path(p))
	return err == nil
}

func (f FS) IsDir(p string) bool {
	info, err := os.Stat(f.Path(p))
	return err == nil && info.IsDir()
}

func (f FS) Open(p string) (io.ReadCloser, error) {
	return os.Open(f.Path(p))
}

// Glob returns matches as system paths (without the root prefix).
func (f FS) Glob(pattern string) []string {
	matches, err := filepath.Glob(f.Path(pattern))
	if err != nil {
		return nil
	}
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		rel, err := filepath.Rel(f.root, m)
		if err != nil {
			continue
		}
		out = append(out, "/"+filepath.ToSlash(rel))
	}
	return out
}

// ParseKeyValue parses KEY=value lines such as /etc/os-release. Quotes are
// stripped; comments and malformed lines are skipped.
func ParseKeyValue(lines []string) map[string]string {
	out := make(map[string]string)
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		value = strings.TrimSpace(value)
		if len(value) >= 2 && (value[0] == '"' || value[0] == '\'') && value[len(value)-1] == value[0] {
			value = value[1 : len(value)-1]
		}
		out[strings.TrimSpace(key)] = value
	}
	return out
}

// ParseColonValue parses "key: value" / "key\t: value" lines as found in
// /proc/cpuinfo and /proc/meminfo.
func ParseColonValue(line string) (string, string, bool) {
	key, value, ok := strings.Cut(line, ":")
	if !ok {
		return "", "", false
	}
	return strings.TrimSpace(key), strings.TrimSpace(value), true
}
