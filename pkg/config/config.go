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

// Package config loads decapad's TOML configuration file. Missing is not
// fatal — defaults apply — but a present, malformed file is: config
// errors belong to the fatal-at-boot category, the same posture the
// teacher's own config loader takes for its JSON tree.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/metaplinius/decapad/pkg/osutil"
)

// Config is decapad's full set of startup knobs.
type Config struct {
	PipeHostToJoiner string `toml:"pipe_host_to_joiner"`
	PipeJoinerToHost string `toml:"pipe_joiner_to_host"`
	Pad              string `toml:"pad"`
	PadDir           string `toml:"pad_dir"`
	FontPath         string `toml:"font_path"`
	ResendIntervalMS int    `toml:"resend_interval_ms"`
	TickIntervalMS   int    `toml:"tick_interval_ms"`
}

// Default returns the configuration decapad runs with when no config file
// is present.
func Default() Config {
	return Config{
		PipeHostToJoiner: "/tmp/decapad_channel_1",
		PipeJoinerToHost: "/tmp/decapad_channel_2",
		Pad:              "",
		PadDir:           osutil.DataDir(),
		FontPath:         "./assets/editor.ttf",
		ResendIntervalMS: 10000,
		TickIntervalMS:   30,
	}
}

// ResendInterval returns ResendIntervalMS as a time.Duration.
func (c Config) ResendInterval() time.Duration {
	return time.Duration(c.ResendIntervalMS) * time.Millisecond
}

// TickInterval returns TickIntervalMS as a time.Duration.
func (c Config) TickInterval() time.Duration {
	return time.Duration(c.TickIntervalMS) * time.Millisecond
}

// Load reads path and decodes it over Default(); a missing file is not an
// error and simply yields the defaults unchanged. Any other read error,
// or any decode error, is returned and is fatal for the caller to treat
// as a boot failure.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("config: reading %s: %w", path, err)
	}
	if _, err := toml.Decode(string(data), &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parsing %s: %w", path, err)
	}
	return cfg, nil
}
