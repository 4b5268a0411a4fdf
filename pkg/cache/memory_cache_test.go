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
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCache_Expiry(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	c := NewMemoryCache()
	c.now = func() time.Time { return now }

	require.NoError(t, c.SetTTL(ctx, "k", []byte("v"), time.Minute))
	got, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), got)

	now = now.Add(time.Minute)
	_, err = c.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrMiss)
	ok, err := c.Exists(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryCache_KeysAndDelete(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()
	require.NoError(t, c.SetTTL(ctx, "s:u1:a", []byte("1"), time.Hour))
	require.NoError(t, c.SetTTL(ctx, "s:u1:b", []byte("2"), time.Hour))
	require.NoError(t, c.SetTTL(ctx, "s:u2:a", []byte("3"), time.Hour))

	keys, err := c.Keys(ctx, "s:u1:")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"s:u1:a", "s:u1:b"}, keys)

	n, err := c.Delete(ctx, append(keys, "missing")...)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	left, err := c.Keys(ctx, "s:")
	require.NoError(t, err)
	assert.Equal(t, []string{"s:u2:a"}, left)
}

func TestMemoryCache_RejectsNonPositiveTTL(t *testing.T) {
	assert.Error(t, NewMemoryCache().SetTTL(context.Background(), "k", nil, 0))
}

func TestMemoryCache_GetReturnsCopy(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()
	require.NoError(t, c.SetTTL(ctx, "k", []byte("abc"), time.Hour))
	got, err := c.Get(ctx, "k")
	require.NoError(t, err)
	got[0] = 'x'
	again, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("abc"), again)
}
