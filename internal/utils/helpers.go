// Package utils provides small helpers shared by qlapps packages.
package utils

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// CommandExists проверява дали команда съществува в PATH
func CommandExists(cmd string) bool {
	_, err := exec.LookPath(cmd)
	return err == nil
}

// ExpandPath разширява ~ и environment variables в път
func ExpandPath(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			path = filepath.Join(home, path[1:])
		}
	}
	return os.ExpandEnv(path)
}
