// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package metrics

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMiddleware(t *testing.T) {
	tests := []struct {
		name   string
		path   string
		status int
		label  string
	}{
		{name: "OK", path: "/api/v1/prompts/create_prd", status: http.StatusOK, label: "/api/v1/prompts/{task_name}"},
		{name: "NotFound", path: "/api/v1/prompts/missing_task", status: http.StatusNotFound, label: "/api/v1/prompts/{task_name}"},
		{name: "List", path: "/api/v1/prompts", status: http.StatusOK, label: "/api/v1/prompts"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues(http.MethodGet, tt.label, strconv.Itoa(tt.status)))

			handler := Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte("ok"))
			}))

			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))

			assert.Equal(t, tt.status, rec.Code)
			after := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues(http.MethodGet, tt.label, strconv.Itoa(tt.status)))
			assert.Equal(t, before+1, after)
		})
	}
}

func TestHandler(t *testing.T) {
	PromptRequestsTotal.WithLabelValues("list", "ok").Inc()

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "mcp_prompts_prompt_requests_total")
}

func TestNormalizePath(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"", "/"},
		{"/", "/"},
		{"/healthz", "/healthz"},
		{"/metrics", "/metrics"},
		{"/api/v1/prompts", "/api/v1/prompts"},
		{"/api/v1/prompts/create_prd", "/api/v1/prompts/{task_name}"},
		{"/api/v1/prompts/../another_prompt", "/api/v1/prompts/{task_name}"},
		{"/api/v2/other/deep/path", "/api/v2/other"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, normalizePath(tt.input), "normalizePath(%q)", tt.input)
	}
}

func TestResponseWriterStatus(t *testing.T) {
	tests := []struct {
		name  string
		write func(rw *responseWriter)
		want  int
	}{
		{name: "Default", write: func(rw *responseWriter) { _, _ = rw.Write([]byte("x")) }, want: http.StatusOK},
		{name: "Explicit", write: func(rw *responseWriter) { rw.WriteHeader(http.StatusNotFound) }, want: http.StatusNotFound},
		{name: "FirstWins", write: func(rw *responseWriter) {
			rw.WriteHeader(http.StatusBadRequest)
			rw.WriteHeader(http.StatusInternalServerError)
		}, want: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rw := &responseWriter{ResponseWriter: httptest.NewRecorder(), statusCode: http.StatusOK}
			tt.write(rw)
			assert.Equal(t, tt.want, rw.statusCode)
		})
	}
}
