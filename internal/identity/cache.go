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

// Package identity is the persisted identity cache: a single
// process-local key holding the last-known canonical profile snapshot.
// Read on mount and on cancel, written on successful save.
package identity

import (
	"github.com/openhrms/employee-profile-engine/internal/profile/model"
	"github.com/openhrms/employee-profile-engine/internal/system/cache"
)

const userInfoKey = "userInfo"

type Store struct {
	cache *cache.Cache
}

// NewStore creates an identity cache. Entries never expire; the cache
// always reflects the last confirmed canonical state.
func NewStore() *Store {
	return &Store{cache: cache.NewCache(0)}
}

// Save records the canonical snapshot after a confirmed save.
func (s *Store) Save(record model.ProfileRecord) {
	s.cache.Set(userInfoKey, record)
}

// Load returns the last canonical snapshot, when one exists.
func (s *Store) Load() (model.ProfileRecord, bool) {
	value, ok := s.cache.Get(userInfoKey)
	if !ok {
		return model.ProfileRecord{}, false
	}
	record, ok := value.(model.ProfileRecord)
	return record, ok
}

// Clear drops the cached snapshot.
func (s *Store) Clear() {
	s.cache.Delete(userInfoKey)
}
