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

package store

import (
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/openhrms/employee-profile-engine/internal/system/config"
	"github.com/openhrms/employee-profile-engine/internal/system/errors"
)

// FileStore writes uploaded binaries under the configured directory and
// hands back the URL they are served from. File names are randomized;
// the original name only contributes its extension.
type FileStore struct {
	dir       string
	urlPrefix string
}

func NewFileStore(cfg config.UploadConfig) (*FileStore, error) {
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, errors.NewServerError(errors.FILE_STORAGE_FAILED, err)
	}
	return &FileStore{dir: cfg.Dir, urlPrefix: cfg.URLPrefix}, nil
}

// Save persists the payload and returns its serving URL.
func (s *FileStore) Save(originalName string, data []byte) (string, error) {
	name := uuid.NewString() + filepath.Ext(originalName)
	if err := os.WriteFile(filepath.Join(s.dir, name), data, 0o644); err != nil {
		return "", errors.NewServerError(errors.FILE_STORAGE_FAILED, err)
	}
	return s.urlPrefix + "/" + name, nil
}

// Dir exposes the storage directory for the static file handler.
func (s *FileStore) Dir() string {
	return s.dir
}
