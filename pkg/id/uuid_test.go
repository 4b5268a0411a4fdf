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

package id

import (
	"strings"
	"testing"

	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetUUID(t *testing.T) {
	assert.Len(t, GetUUID(), 36)
	assert.NotEqual(t, GetUUID(), GetUUID())
}

func TestGetUUIDWithoutDashes(t *testing.T) {
	id := GetUUIDWithoutDashes()
	assert.Len(t, id, 32)
	assert.False(t, strings.Contains(id, "-"))
}

func TestGetUlid(t *testing.T) {
	a := GetUlid()
	b := GetUlid()

	_, err := ulid.ParseStrict(a)
	require.NoError(t, err)
	assert.Len(t, a, 26)
	assert.Less(t, a, b)
}
