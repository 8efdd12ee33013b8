// Package fsutil provides filesystem lookups shared by probes.
package fsutil

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

const defaultCADir = "/etc/grid-security/certificates"

// TempDirCandidates are tried in order by TempDir.
var TempDirCandidates = []string{"/var/tmp/osgrsv", "/tmp/osgrsv"}

// TempDir returns a directory for data kept across probe executions,
// creating it if needed. It falls back to /tmp.
func TempDir() string {
	for _, dir := range TempDirCandidates {
		if isDir(dir) {
			return dir
		}
		if err := os.Mkdir(dir, 0755); err == nil || isDir(dir) {
			return dir
		}
	}
	return "/tmp"
}

// CADir returns the CA certificate directory of a Pacman or RPM installation.
func CADir() string {
	var candidates []string
	if loc := os.Getenv("OSG_LOCATION"); loc != "" {
		candidates = append(candidates, filepath.Join(loc, "globus", "TRUSTED_CA"))
	}
	if loc := os.Getenv("VDT_LOCATION"); loc != "" {
		candidates = append(candidates, filepath.Join(loc, "globus", "TRUSTED_CA"))
	}
	if loc := os.Getenv("GLOBUS_LOCATION"); loc != "" {
		candidates = append(candidates, filepath.Join(loc, "TRUSTED_CA"))
	}
	for _, dir := range candidates {
		if isDir(dir) {
			return dir
		}
	}
	return defaultCADir
}

// Which returns the path of an executable, or "" if it cannot be found.
func Which(program string) string {
	path, err := exec.LookPath(program)
	if err != nil {
		return ""
	}
	return path
}

// ListDirectory returns the files in dir whose extension is one of exts
// (for example ".pem").
func ListDirectory(dir string, exts []string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var files []string
	for _, entry := range entries {
		ext := filepath.Ext(entry.Name())
		for _, want := range exts {
			if strings.EqualFold(ext, want) {
				files = append(files, filepath.Join(dir, entry.Name()))
				break
			}
		}
	}
	return files, nil
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
