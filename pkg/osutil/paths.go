/*
Copyright 2011 Google Inc.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

     http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package osutil provides operating system-specific path information.
package osutil

import (
	"os"
	"path/filepath"
	"runtime"
)

// HomeDir returns the path to the user's home directory.
// It returns the empty string if the value isn't known.
func HomeDir() string {
	if runtime.GOOS == "windows" {
		return os.Getenv("HOMEPATH")
	}
	return os.Getenv("HOME")
}

// ConfigDir returns the directory decapad's TOML config file lives in by
// default, honoring DECAPAD_CONFIG_DIR and the platform's usual convention
// otherwise.
func ConfigDir() string {
	if d := os.Getenv("DECAPAD_CONFIG_DIR"); d != "" {
		return d
	}
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "decapad")
	case "darwin":
		return filepath.Join(HomeDir(), "Library", "Application Support", "decapad")
	}
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "decapad")
	}
	return filepath.Join(HomeDir(), ".config", "decapad")
}

// DataDir returns the directory decapad stores saved pads in by default,
// honoring DECAPAD_DATA_DIR and the platform's usual convention otherwise.
func DataDir() string {
	if d := os.Getenv("DECAPAD_DATA_DIR"); d != "" {
		return d
	}
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "decapad", "pads")
	case "darwin":
		return filepath.Join(HomeDir(), "Library", "Application Support", "decapad", "pads")
	}
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "decapad", "pads")
	}
	return filepath.Join(HomeDir(), ".local", "share", "decapad", "pads")
}

// DefaultConfigPath returns the full path to decapad's default config file.
func DefaultConfigPath() string {
	return filepath.Join(ConfigDir(), "decapad.toml")
}
