package core

import (
	"os"
	"path/filepath"
	"strings"
)

// CleanString trims all leading and trailing whitespace in `s` and optionally lowers it.
func CleanString(s string, lower ...bool) string {
	s = strings.TrimSpace(s)
	if len(lower) > 0 && lower[0] {
		return strings.ToLower(s)
	}
	return s
}

// SplitClean splits `s` around `sep`, trims every item and drops the empty ones.
func SplitClean(s, sep string) []string {
	parts := strings.Split(s, sep)
	items := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = CleanString(p); p != "" {
			items = append(items, p)
		}
	}
	return items
}

// CleanStrings applies CleanString to every item and drops the empty ones.
func CleanStrings(items []string) []string {
	if items == nil {
		return nil
	}
	cleaned := make([]string, 0, len(items))
	for _, it := range items {
		if it = CleanString(it); it != "" {
			cleaned = append(cleaned, it)
		}
	}
	return cleaned
}

// Getwd returns the project root: the closest parent directory holding a go.mod.
// go-test changes the working directory to the package being tested, config files live at the root.
// Outside a source checkout (e.g. a deployed binary) the working directory is returned as is.
func Getwd() string {
	wd, err := os.Getwd()
	if err != nil {
		return "."
	}
	currDir := wd
	for {
		if fi, err := os.Stat(filepath.Join(currDir, "go.mod")); err == nil && !fi.IsDir() {
			return currDir
		}
		newDir := filepath.Dir(currDir)
		if newDir == currDir {
			return wd
		}
		currDir = newDir
	}
}
