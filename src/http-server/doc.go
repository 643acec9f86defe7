// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package httpserver serves the prompt library over a small JSON API.
//
// Routes:
//
//	GET /api/v1/prompts              {"prompts": ["create_prd", ...]}
//	GET /api/v1/prompts/{task_name}  {"prompt_text": "..."}
//	GET /healthz                     {"status": "ok"}
//	GET /metrics                     Prometheus exposition
//
// Failures carry a {"detail": "..."} body with status 400 (invalid name),
// 404 (no such prompt) or 500 (unreadable file or unexpected failure).
//
// The task name is taken from the escaped request path and percent-decoded
// exactly once before validation, so "%2E%2E%2F" and "../" are rejected alike.
package httpserver
