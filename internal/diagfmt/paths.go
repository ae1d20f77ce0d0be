package diagfmt

import (
	"path/filepath"
	"strings"
)

func formatPath(path string, mode PathMode, baseDir string) string {
	if path == "" {
		return path
	}
	switch mode {
	case PathModeBasename:
		return filepath.Base(path)
	case PathModeAbsolute:
		if abs, err := filepath.Abs(path); err == nil {
			return abs
		}
		return path
	case PathModeRelative:
		return relativeTo(path, baseDir)
	default:
		rel := relativeTo(path, baseDir)
		if strings.HasPrefix(rel, "..") {
			if abs, err := filepath.Abs(path); err == nil {
				return abs
			}
		}
		return rel
	}
}

func relativeTo(path, baseDir string) string {
	if baseDir == "" {
		return path
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	absBase, err := filepath.Abs(baseDir)
	if err != nil {
		return path
	}
	rel, err := filepath.Rel(absBase, absPath)
	if err != nil {
		return path
	}
	return rel
}
