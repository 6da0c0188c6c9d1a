/*
 * Copyright (c) 2025-2026, OpenHRMS Project.
 *
 * OpenHRMS licenses this file to you under the Apache License,
 * Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing,
 * software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
 * KIND, either express or implied.  See the License for the
 * specific language governing permissions and limitations
 * under the License.
 */

package identity

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/openhrms/employee-profile-engine/internal/profile/model"
)

func TestStoreRoundTrip(t *testing.T) {
	s := NewStore()

	_, ok := s.Load()
	assert.False(t, ok)

	record := model.ProfileRecord{Email: "jane@acme.test", Name: "Jane Doe"}
	s.Save(record)

	loaded, ok := s.Load()
	assert.True(t, ok)
	assert.Equal(t, record, loaded)
}

func TestStoreClear(t *testing.T) {
	s := NewStore()
	s.Save(model.ProfileRecord{Email: "jane@acme.test"})

	s.Clear()

	_, ok := s.Load()
	assert.False(t, ok)
}
