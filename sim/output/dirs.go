// Package output persists run results: one directory per repeat holding
// lattice snapshots, scalar logs, the sample CSV and the run summary.
package output

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"
)

// timestampLayout names run directories, e.g. 20261019_153045.
const timestampLayout = "20060102_150405"

// RunDirName returns the directory name for a repeat started at now.
func RunDirName(now time.Time, repeat int) string {
	return fmt.Sprintf("%s_rep%d", now.Format(timestampLayout), repeat)
}

// CreateRunDir creates base/<timestamp>_rep<N>. An existing directory is
// reused with a warning.
func CreateRunDir(base string, repeat int, now time.Time) (string, error) {
	dir := filepath.Join(base, RunDirName(now, repeat))
	info, err := os.Stat(dir)
	switch {
	case err == nil && info.IsDir():
		logrus.Warnf("Output directory %s already exists, reusing it", dir)
		return dir, nil
	case err == nil:
		return "", fmt.Errorf("%s exists and is not a directory", dir)
	case !errors.Is(err, fs.ErrNotExist):
		return "", fmt.Errorf("checking %s: %w", dir, err)
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}
	logrus.Infof("Created output directory %s", dir)
	return dir, nil
}
