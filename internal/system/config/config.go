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

type AddrConfig struct {
	Port int    `yaml:"port"`
	Host string `yaml:"host"`
}

type LogConfig struct {
	LogLevel string `yaml:"log_level"`
}

// RemoteConfig points the sync gateway at the HRMS backend.
type RemoteConfig struct {
	BaseURL        string `yaml:"base_url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// SessionConfig tunes edit-session behaviour.
type SessionConfig struct {
	StatusClearSeconds int `yaml:"status_clear_seconds"`
}

// DataSourceConfig is the Postgres document store of the dev backend.
type DataSourceConfig struct {
	Hostname string `yaml:"hostname"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"sslmode"`
}

// MongoConfig is the profile store of the dev backend. An empty URI
// selects the in-memory store.
type MongoConfig struct {
	URI      string `yaml:"uri"`
	Database string `yaml:"database"`
}

// UploadConfig controls where the dev backend keeps uploaded files and
// under which URL prefix it serves them back.
type UploadConfig struct {
	Dir       string `yaml:"dir"`
	URLPrefix string `yaml:"url_prefix"`
}

type Config struct {
	Addr       AddrConfig       `yaml:"addr"`
	Log        LogConfig        `yaml:"log"`
	Remote     RemoteConfig     `yaml:"remote"`
	Session    SessionConfig    `yaml:"session"`
	DataSource DataSourceConfig `yaml:"datasource"`
	Mongo      MongoConfig      `yaml:"mongo"`
	Upload     UploadConfig     `yaml:"upload"`
}
