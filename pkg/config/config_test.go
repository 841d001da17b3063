/*
Copyright 2026 The Decapad Authors

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

package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileYieldsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "does-not-exist.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg != Default() {
		t.Fatalf("Load(missing) = %+v, want Default() = %+v", cfg, Default())
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "decapad.toml")
	body := `
pad = "scratch"
pad_dir = "/var/lib/decapad/pads"
resend_interval_ms = 5000
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Pad != "scratch" || cfg.PadDir != "/var/lib/decapad/pads" || cfg.ResendIntervalMS != 5000 {
		t.Fatalf("Load overrides = %+v", cfg)
	}
	// Fields the TOML file doesn't mention keep their defaults.
	if cfg.FontPath != Default().FontPath {
		t.Fatalf("FontPath = %q, want default %q", cfg.FontPath, Default().FontPath)
	}
}

func TestLoadMalformedFileIsFatal(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "decapad.toml")
	if err := os.WriteFile(path, []byte("this is not = = valid toml {{{"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatalf("Load(malformed) should return an error")
	}
}
