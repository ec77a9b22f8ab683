// Package config resolves hyf-plan settings from flags, the environment,
// .env files and an optional hyf-plan.yaml.
package config

import (
	"os"
	"path/filepath"
	"runtime"
)

const appName = "hyf-plan"

// Dir returns the hyf-plan configuration directory.
//
// Resolution:
//   - $HYF_PLAN_CONFIG_HOME if set
//   - $XDG_CONFIG_HOME/hyf-plan if set
//   - %AppData%/hyf-plan on Windows
//   - ~/.config/hyf-plan elsewhere
//
// The env file and hyf-plan.yaml are looked up here after the working
// directory.
func Dir() string {
	// Explicit override, used by tests and CI
	if dir := os.Getenv("HYF_PLAN_CONFIG_HOME"); dir != "" {
		return dir
	}

	// XDG wins on every platform, Windows included
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, appName)
	}

	if runtime.GOOS == "windows" {
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, appName)
		}
	}

	// macOS and Linux
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", appName)
}
