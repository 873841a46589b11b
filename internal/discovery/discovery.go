// SPDX-License-Identifier: MPL-2.0

package discovery

import (
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"grip-cli/internal/platform"

	"github.com/charmbracelet/log"
)

const (
	// CommandPrefix is the filename prefix shared by all plugin executables.
	CommandPrefix = "grip-"

	// libDirName is the sibling directory searched before the binary's own
	// directory (<exedir>/../lib/grip).
	libDirName = "grip"
)

type (
	// Predicate decides whether a file can serve as a plugin executable.
	// The default is platform-specific (execute permission bits on POSIX,
	// the .exe extension on Windows); tests inject their own.
	Predicate func(path string, info fs.FileInfo) bool

	// Finder enumerates and resolves plugin executables across the ordered
	// search directories. The zero value is not usable; construct with New.
	Finder struct {
		prefix    string
		exeSuffix string
		exeDir    string
		pathList  string
		isExec    Predicate
		logger    *log.Logger
	}

	// Option customizes a Finder.
	Option func(*Finder)
)

// WithExeDir overrides the directory of the running binary.
func WithExeDir(dir string) Option {
	return func(f *Finder) { f.exeDir = dir }
}

// WithPathList overrides the raw search-path variable value
// (the platform's list separator applies).
func WithPathList(paths string) Option {
	return func(f *Finder) { f.pathList = paths }
}

// WithPredicate overrides the executable-file predicate.
func WithPredicate(p Predicate) Option {
	return func(f *Finder) { f.isExec = p }
}

// WithLogger sets the logger used for verbose scan diagnostics.
func WithLogger(l *log.Logger) Option {
	return func(f *Finder) { f.logger = l }
}

// New creates a Finder seeded from the running process: the executable's
// directory and the PATH environment variable. Failure to determine the
// executable path just removes the two fixed locations from the search.
func New(opts ...Option) *Finder {
	f := &Finder{
		prefix:    CommandPrefix,
		exeSuffix: platform.ExeSuffix(),
		pathList:  os.Getenv("PATH"),
		isExec:    isExecutable,
		logger:    log.New(io.Discard),
	}

	if exe, err := os.Executable(); err == nil {
		f.exeDir = filepath.Dir(exe)
	}

	for _, opt := range opts {
		opt(f)
	}
	return f
}

// SearchDirs returns the ordered candidate directories:
// <exedir>/../lib/grip, <exedir>, then each PATH entry in original order.
func (f *Finder) SearchDirs() []string {
	var dirs []string
	if f.exeDir != "" {
		dirs = append(dirs,
			filepath.Join(f.exeDir, "..", "lib", libDirName),
			f.exeDir,
		)
	}
	dirs = append(dirs, filepath.SplitList(f.pathList)...)
	return dirs
}

// Resolve returns the path of the first executable in search order whose
// filename is the plugin name for cmd. The boolean is false when no
// directory holds a matching executable; that is an absence, not an error.
func (f *Finder) Resolve(cmd string) (string, bool) {
	filename := f.prefix + cmd + f.exeSuffix
	for _, dir := range f.SearchDirs() {
		path := filepath.Join(dir, filename)
		info, err := os.Stat(path)
		if err != nil || !f.isExec(path, info) {
			continue
		}
		f.logger.Debug("resolved plugin", "command", cmd, "path", path)
		return path, true
	}
	return "", false
}

// List scans every search directory for plugin executables, strips the
// naming convention, and unions the result with the given builtin names.
// The returned set is deduplicated and sorted lexicographically regardless
// of directory scan order. Directories that fail to open contribute nothing.
func (f *Finder) List(builtins []string) []string {
	seen := make(map[string]struct{}, len(builtins))
	for _, name := range builtins {
		seen[name] = struct{}{}
	}

	for _, dir := range f.SearchDirs() {
		entries, err := os.ReadDir(dir)
		if err != nil {
			f.logger.Debug("skipping unreadable plugin directory", "dir", dir, "error", err)
			continue
		}
		for _, entry := range entries {
			name, ok := f.pluginName(dir, entry)
			if !ok {
				continue
			}
			seen[name] = struct{}{}
		}
	}

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// pluginName extracts the command name from a directory entry, or reports
// false when the entry does not follow the plugin naming convention or is
// not an executable regular file.
func (f *Finder) pluginName(dir string, entry fs.DirEntry) (string, bool) {
	filename := entry.Name()
	if !strings.HasPrefix(filename, f.prefix) || !strings.HasSuffix(filename, f.exeSuffix) {
		return "", false
	}
	name := filename[len(f.prefix) : len(filename)-len(f.exeSuffix)]
	if name == "" {
		return "", false
	}
	if runtime.GOOS == platform.Windows && platform.IsWindowsReservedName(name) {
		return "", false
	}

	info, err := entry.Info()
	if err != nil {
		return "", false
	}
	if !f.isExec(filepath.Join(dir, filename), info) {
		return "", false
	}
	return name, true
}
