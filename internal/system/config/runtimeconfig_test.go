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

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

const deploymentYAML = `
remote:
  base_url: ${EPE_TEST_REMOTE_URL}
  timeout_seconds: 15
session:
  status_clear_seconds: 3
log:
  log_level: debug
`

func TestRuntimeCarriesRemoteAndSessionConfig(t *testing.T) {
	engineHome := t.TempDir()
	configDir := filepath.Join(engineHome, "config")
	assert.NoError(t, os.MkdirAll(configDir, 0o755))
	assert.NoError(t, os.WriteFile(
		filepath.Join(configDir, "deployment.yaml"), []byte(deploymentYAML), 0o644))

	t.Setenv("EPE_TEST_REMOTE_URL", "http://hrms.internal:8080")

	cfg, err := LoadConfig(engineHome, "config/deployment.yaml")
	assert.NoError(t, err)

	OverrideEngineRuntime(*cfg)
	runtime := GetEngineRuntime()

	assert.Equal(t, "http://hrms.internal:8080", runtime.Config.Remote.BaseURL)
	assert.Equal(t, 15, runtime.Config.Remote.TimeoutSeconds)
	assert.Equal(t, 3, runtime.Config.Session.StatusClearSeconds)
	assert.Equal(t, "debug", runtime.Config.Log.LogLevel)
}
