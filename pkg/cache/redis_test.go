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

package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedis_SetDefaults(t *testing.T) {
	r := Redis{}
	r.SetDefaults()
	assert.Equal(t, "single", r.Mode)
	assert.Equal(t, "127.0.0.1:6379", r.Address)
	assert.Equal(t, 20, r.PoolSize)
	assert.Equal(t, time.Duration(5), r.DialTimeout)
}

func TestNewRedis_UnsupportedMode(t *testing.T) {
	client, err := NewRedis(Redis{Mode: "cluster"})
	assert.Nil(t, client)
	assert.EqualError(t, err, `unsupported redis mode "cluster"`)
}

func TestProvideICache_Memory(t *testing.T) {
	c, cleanup, err := ProvideICache(&Redis{Mode: ModeMemory}, nil)
	require.NoError(t, err)
	defer cleanup()
	assert.IsType(t, &MemoryCache{}, c)
}
