// Copyright 2025 Arcade Team
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package conf

import (
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/go-arcade/socd/pkg/log"
	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
)

const redacted = "******"

// Load reads the TOML file at path into out, which must be a pointer. Keys present
// in the file can be overridden by <envPrefix>_<SECTION>_<KEY> variables.
func Load(path, envPrefix string, out any) (*viper.Viper, error) {
	if v := reflect.ValueOf(out); v.Kind() != reflect.Ptr || v.IsNil() {
		return nil, errors.New("cfg must be a pointer")
	}

	vCfg := viper.New()
	vCfg.SetConfigFile(path)
	vCfg.SetConfigType("toml")
	if envPrefix != "" {
		vCfg.SetEnvPrefix(envPrefix)
	}
	vCfg.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	vCfg.AutomaticEnv()

	if err := vCfg.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read configuration file: %w", err)
	}
	if err := vCfg.Unmarshal(out); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration file: %w", err)
	}

	log.Infow("configuration file loaded", "path", path)
	return vCfg, nil
}

// Watch decodes the file again on every change and passes the result to apply.
// A file that no longer decodes is logged and ignored.
func Watch[T any](vCfg *viper.Viper, apply func(*T)) {
	vCfg.OnConfigChange(func(e fsnotify.Event) {
		next := new(T)
		if err := vCfg.Unmarshal(next); err != nil {
			log.Errorw("failed to reload configuration file", "file", e.Name, "error", err)
			return
		}
		log.Infow("configuration file changed", "file", e.Name, "op", e.Op.String())
		apply(next)
	})
	vCfg.WatchConfig()
}

// Dump writes the effective settings as TOML with secrets masked.
func Dump(w io.Writer, vCfg *viper.Viper) error {
	enc := toml.NewEncoder(w)
	enc.SetIndentTables(true)
	return enc.Encode(redact(vCfg.AllSettings()))
}

func redact(settings map[string]any) map[string]any {
	out := make(map[string]any, len(settings))
	for k, v := range settings {
		switch val := v.(type) {
		case map[string]any:
			out[k] = redact(val)
		default:
			if secretKey(k) && fmt.Sprint(val) != "" {
				out[k] = redacted
				continue
			}
			out[k] = v
		}
	}
	return out
}

func secretKey(k string) bool {
	k = strings.ToLower(k)
	for _, s := range []string{"password", "secret", "apikey", "token"} {
		if strings.Contains(k, s) {
			return true
		}
	}
	return false
}
