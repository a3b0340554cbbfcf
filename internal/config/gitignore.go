package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Per-user data files kept under the ecotrip directory.
const (
	historyJSONFile = "history.json"
	historyDBFile   = "history.db"
	themeFileName   = "theme.json"
)

// gitignoreContent lists every file the CLI writes next to config.yaml,
// including the lock and temp files written alongside them.
//
//nolint:gochecknoglobals // Built once from the file name constants.
var gitignoreContent = buildGitignore()

func buildGitignore() string {
	var b strings.Builder
	b.WriteString("# ecotrip project-local data (auto-generated)\n")
	b.WriteString("# config.yaml is tracked; trip history and preferences are not.\n")
	for _, name := range []string{
		historyJSONFile, historyJSONFile + ".lock", historyJSONFile + ".tmp",
		historyDBFile, historyDBFile + "-*", historyDBFile + ".corrupt",
		themeFileName, themeFileName + ".tmp",
		"*.log",
	} {
		b.WriteString(name)
		b.WriteByte('\n')
	}
	return b.String()
}

// GitignoreContent returns the .gitignore written into project directories.
func GitignoreContent() string {
	return gitignoreContent
}

// EnsureGitignore creates dir/.gitignore and reports whether it did. An
// existing file is left alone.
func EnsureGitignore(dir string) (bool, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return false, fmt.Errorf("creating directory %s: %w", dir, err)
	}

	path := filepath.Join(dir, ".gitignore")
	//nolint:gosec // Checked into git, so it is world-readable.
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if errors.Is(err, fs.ErrExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("creating %s: %w", path, err)
	}

	_, err = f.WriteString(gitignoreContent)
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return false, fmt.Errorf("writing %s: %w", path, err)
	}
	return true, nil
}
