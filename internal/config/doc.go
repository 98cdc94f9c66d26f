// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides unified configuration loading and management for twin.
//
// # Key Types
//
//   - Config: Root configuration with Backend, Dashboard, UI, Upload and Logging sections
//   - Duration: time.Duration that round-trips as "5s" through TOML, YAML, JSON and env
//   - ValidateErrors: Field-level validation failures
//
// # Sources
//
// Values are layered in this order, later sources winning:
//
//  1. Built-in defaults (Default)
//  2. The config file (~/.twin/config.toml, .yaml/.yml or .json, or --config)
//  3. Variables from a .env file (LoadDotEnv), which never replace real ones
//  4. TWIN_* environment variables (ApplyEnvOverrides)
//
// TWIN_API_URL is the single setting that selects the backend.
//
// # Usage
//
//	_ = config.LoadDotEnv()
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Backend.BaseURL)
//
// Dot-notation access for the "twin config" command:
//
//	cfg.Set("ui.theme", "dark")
//	v, _ := cfg.Get("dashboard.poll_interval")
package config
