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

// devserver is the reference HRMS backend the profile engine syncs
// against: employee profiles plus categorized documents, served over
// the same HTTP surface the engine's gateway expects.
package main

import (
	"context"
	"flag"
	"fmt"
	stdlog "log"
	"net"
	"net/http"
	"path/filepath"

	"github.com/joho/godotenv"

	"github.com/openhrms/employee-profile-engine/internal/backend/handler"
	"github.com/openhrms/employee-profile-engine/internal/backend/service"
	"github.com/openhrms/employee-profile-engine/internal/backend/store"
	"github.com/openhrms/employee-profile-engine/internal/system/config"
	"github.com/openhrms/employee-profile-engine/internal/system/log"
)

const (
	configFile  = "config/deployment.yaml"
	apiBasePath = "/api"
)

func main() {
	engineHome := getEngineHome()

	envFiles, _ := filepath.Glob("config/*.env")
	if len(envFiles) > 0 {
		_ = godotenv.Load(envFiles...)
	}

	loaded, err := config.LoadConfig(engineHome, configFile)
	if err != nil {
		stdlog.Fatalf("Failed to load configuration: %v", err)
	}
	if err := config.InitializeEngineRuntime(engineHome, loaded); err != nil {
		stdlog.Fatalf("Failed to initialize engine runtime: %v", err)
	}
	engineConfig := &config.GetEngineRuntime().Config
	if err := log.Init(engineConfig.Log.LogLevel); err != nil {
		stdlog.Fatalf("Failed to initialize logger: %v", err)
	}
	logger := log.GetLogger()

	ctx := context.Background()

	employees, err := newEmployeeStore(ctx, engineConfig)
	if err != nil {
		logger.Fatal("Failed to initialize employee store", log.Error(err))
	}
	documents, err := newDocumentStore(ctx, engineConfig)
	if err != nil {
		logger.Fatal("Failed to initialize document store", log.Error(err))
	}
	files, err := store.NewFileStore(engineConfig.Upload)
	if err != nil {
		logger.Fatal("Failed to initialize file store", log.Error(err))
	}

	backendService := service.NewBackendService(employees, documents, files)

	mux := http.NewServeMux()
	handler.NewEmployeeHandler(backendService).RegisterRoutes(mux, apiBasePath)
	mux.Handle(fmt.Sprintf("GET %s/", engineConfig.Upload.URLPrefix),
		http.StripPrefix(engineConfig.Upload.URLPrefix+"/",
			http.FileServer(http.Dir(files.Dir()))))

	serverAddr := fmt.Sprintf("%s:%d", engineConfig.Addr.Host, engineConfig.Addr.Port)
	ln, err := net.Listen("tcp", serverAddr)
	if err != nil {
		logger.Fatal("Failed to start listener", log.String("addr", serverAddr), log.Error(err))
	}
	logger.Info("HRMS dev backend started", log.String("addr", serverAddr))

	server := &http.Server{Handler: mux}
	if err := server.Serve(ln); err != nil {
		logger.Fatal("Failed to serve requests", log.Error(err))
	}
}

// newEmployeeStore picks MongoDB when a URI is configured, otherwise
// the in-memory store.
func newEmployeeStore(ctx context.Context, cfg *config.Config) (service.EmployeeRepository, error) {
	if cfg.Mongo.URI == "" {
		log.GetLogger().Warn("No MongoDB URI configured; using the in-memory employee store")
		return store.NewMemoryEmployeeStore(), nil
	}
	return store.NewMongoEmployeeStore(ctx, cfg.Mongo.URI, cfg.Mongo.Database)
}

// newDocumentStore picks Postgres when a datasource is configured,
// otherwise the in-memory store.
func newDocumentStore(ctx context.Context, cfg *config.Config) (service.DocumentRepository, error) {
	if cfg.DataSource.Hostname == "" {
		log.GetLogger().Warn("No datasource configured; using the in-memory document store")
		return store.NewMemoryDocumentStore(), nil
	}
	return store.NewDocumentStore(ctx, cfg.DataSource)
}

func getEngineHome() string {
	engineHomeFlag := flag.String("engineHome", ".", "Path to the engine home directory")
	flag.Parse()
	return *engineHomeFlag
}
