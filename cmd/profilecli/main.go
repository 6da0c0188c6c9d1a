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

// profilecli is a non-interactive consumer of the profile engine: it
// fetches a profile, applies field edits, saves, and optionally uploads
// or deletes one document. It stands in for a UI when smoke-testing a
// backend.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	stdlog "log"
	"mime"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/openhrms/employee-profile-engine/internal/document/index"
	documentModel "github.com/openhrms/employee-profile-engine/internal/document/model"
	"github.com/openhrms/employee-profile-engine/internal/gateway"
	"github.com/openhrms/employee-profile-engine/internal/identity"
	"github.com/openhrms/employee-profile-engine/internal/session"
	"github.com/openhrms/employee-profile-engine/internal/system/config"
	"github.com/openhrms/employee-profile-engine/internal/system/log"
)

func main() {
	engineHome := flag.String("engineHome", ".", "path to the engine home directory")
	baseURL := flag.String("base-url", "", "HRMS backend base URL (overrides the deployment config)")
	email := flag.String("email", "", "employee email (required)")
	logLevel := flag.String("log-level", "warn", "log level (debug|info|warn|error)")
	set := flag.String("set", "", "comma-separated path=value field edits, e.g. phone=+14155552671")
	upload := flag.String("upload", "", "upload a document: <category>=<file path>")
	remove := flag.String("delete", "", "delete the document of a category")
	timeout := flag.Duration("timeout", 30*time.Second, "overall operation timeout")
	flag.Parse()

	if *email == "" {
		stdlog.Fatal("flag -email is required")
	}
	if err := log.Init(*logLevel); err != nil {
		stdlog.Fatalf("Failed to initialize logger: %v", err)
	}

	if err := config.InitializeEngineRuntime(*engineHome, loadDeployment(*engineHome)); err != nil {
		stdlog.Fatalf("Failed to initialize engine runtime: %v", err)
	}
	runtime := config.GetEngineRuntime()

	remote := runtime.Config.Remote
	if *baseURL != "" {
		remote.BaseURL = *baseURL
	}
	if remote.BaseURL == "" {
		remote.BaseURL = "http://localhost:8080"
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	client := gateway.NewClient(remote)
	controller := session.NewController(client, identity.NewStore(), runtime.Config.Session)
	documents := index.NewIndex(client)

	controller.Mount(*email)
	if err := controller.Refresh(ctx); err != nil {
		stdlog.Fatalf("Profile fetch failed: %v", err)
	}

	if *set != "" {
		controller.BeginEdit()
		for _, edit := range strings.Split(*set, ",") {
			path, value, ok := strings.Cut(edit, "=")
			if !ok {
				stdlog.Fatalf("Invalid -set entry %q; expected path=value", edit)
			}
			if err := controller.SetField(strings.TrimSpace(path), value); err != nil {
				stdlog.Fatalf("Edit %q rejected: %v", path, err)
			}
		}
		if err := controller.Save(ctx); err != nil {
			stdlog.Fatalf("Save failed: %v", err)
		}
		fmt.Println(controller.Status().Text)
	}

	employeeID := controller.EmployeeID()
	documents.Reset(employeeID)

	if *upload != "" {
		category, path, ok := strings.Cut(*upload, "=")
		if !ok {
			stdlog.Fatal("Invalid -upload value; expected <category>=<file path>")
		}
		data, err := os.ReadFile(path)
		if err != nil {
			stdlog.Fatalf("Cannot read %s: %v", path, err)
		}
		file := documentModel.File{
			Name:        filepath.Base(path),
			ContentType: mime.TypeByExtension(filepath.Ext(path)),
			Data:        data,
		}
		ref, err := documents.Upsert(ctx, employeeID, documentModel.Category(category), file)
		if err != nil {
			stdlog.Fatalf("Upload failed: %v", err)
		}
		fmt.Printf("Uploaded %s document: %s\n", ref.Category, ref.FileURL)
	}

	if *remove != "" {
		if err := documents.Remove(ctx, employeeID, documentModel.Category(*remove)); err != nil {
			stdlog.Fatalf("Delete failed: %v", err)
		}
		fmt.Printf("Deleted %s document\n", *remove)
	}

	if _, err := documents.FetchAll(ctx, employeeID); err != nil {
		stdlog.Fatalf("Document listing failed: %v", err)
	}

	out := struct {
		Profile   interface{} `json:"profile"`
		Documents interface{} `json:"documents"`
	}{
		Profile:   controller.Record(),
		Documents: documents.Snapshot(),
	}
	encoded, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		stdlog.Fatalf("Cannot render output: %v", err)
	}
	fmt.Println(string(encoded))
}

// loadDeployment reads config/deployment.yaml under the engine home.
// A missing file is fine; flags and defaults cover that case.
func loadDeployment(engineHome string) *config.Config {
	if envFiles, _ := filepath.Glob(filepath.Join(engineHome, "config", "*.env")); len(envFiles) > 0 {
		_ = godotenv.Load(envFiles...)
	}

	cfg, err := config.LoadConfig(engineHome, "config/deployment.yaml")
	if err != nil {
		if os.IsNotExist(err) {
			return &config.Config{}
		}
		stdlog.Fatalf("Failed to load configuration: %v", err)
	}
	return cfg
}
