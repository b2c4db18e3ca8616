package preflight

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"filesorter/internal/config"
)

// Result describes one check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// Access modes for CheckDirectoryAccess.
const (
	Read = 1 << iota
	Write
)

// RunAll runs every applicable check for the given roots and configuration.
func RunAll(cfg *config.Config, source, destination string) []Result {
	results := []Result{
		CheckDirectoryAccess("Source", source, Read),
		CheckDestination("Destination", destination, source),
	}
	if cfg == nil {
		return results
	}
	results = append(results,
		CheckDirectoryAccess("Log directory", cfg.Paths.LogDir, Read|Write),
		CheckDirectoryAccess("State directory", cfg.Paths.StateDir, Read|Write),
	)
	if cfg.History.Enabled {
		results = append(results, CheckDirectoryAccess("History directory", filepath.Dir(cfg.History.Path), Read|Write))
	}
	return results
}

// Failed returns the results that did not pass.
func Failed(results []Result) []Result {
	var failed []Result
	for _, r := range results {
		if !r.Passed {
			failed = append(failed, r)
		}
	}
	return failed
}

// CheckDirectoryAccess verifies that path is an existing directory with the
// requested access.
func CheckDirectoryAccess(name, path string, mode int) Result {
	path = strings.TrimSpace(path)
	if path == "" {
		return Result{Name: name, Detail: "not configured"}
	}
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := access(path, mode); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (%s ok)", path, modeLabel(mode))}
}

// CheckDestination verifies that destination differs from source and is
// writable, or that its nearest existing ancestor is writable so the run can
// create it.
func CheckDestination(name, destination, source string) Result {
	destination = strings.TrimSpace(destination)
	if destination == "" {
		return Result{Name: name, Detail: "not configured"}
	}
	if source != "" && resolvePath(destination) == resolvePath(source) {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: same as source)", destination)}
	}
	if _, err := os.Stat(destination); err == nil {
		return CheckDirectoryAccess(name, destination, Read|Write)
	}
	ancestor := filepath.Dir(destination)
	for {
		info, err := os.Stat(ancestor)
		if err == nil {
			if !info.IsDir() {
				return Result{Name: name, Detail: fmt.Sprintf("%s (error: %s is not a directory)", destination, ancestor)}
			}
			if err := access(ancestor, Write); err != nil {
				return Result{Name: name, Detail: fmt.Sprintf("%s (error: cannot create under %s: %v)", destination, ancestor, err)}
			}
			return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (will be created)", destination)}
		}
		parent := filepath.Dir(ancestor)
		if parent == ancestor {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: no existing ancestor)", destination)}
		}
		ancestor = parent
	}
}

// resolvePath cleans path and follows symlinks when it exists.
func resolvePath(path string) string {
	if resolved, err := filepath.EvalSymlinks(path); err == nil {
		return resolved
	}
	return filepath.Clean(path)
}

func modeLabel(mode int) string {
	switch {
	case mode&Read != 0 && mode&Write != 0:
		return "read/write"
	case mode&Write != 0:
		return "write"
	default:
		return "read"
	}
}
