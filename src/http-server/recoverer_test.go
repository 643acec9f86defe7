// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package httpserver

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/H0llyW00dzZ/mcp-prompt-server/src/logger"
	"github.com/stretchr/testify/assert"
)

func TestRecoverer(t *testing.T) {
	tests := []struct {
		name       string
		handler    http.HandlerFunc
		wantStatus int
		wantBody   string
	}{
		{
			name:       "BeforeResponse",
			handler:    func(http.ResponseWriter, *http.Request) { panic("early") },
			wantStatus: http.StatusInternalServerError,
			wantBody:   `{"detail":"Unexpected error: early"}` + "\n",
		},
		{
			name: "AfterHeaders",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
				panic("late")
			},
			wantStatus: http.StatusOK,
			wantBody:   `{"status":"ok"}` + "\n",
		},
		{
			name: "AfterWriteHeaderOnly",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusNoContent)
				panic("late")
			},
			wantStatus: http.StatusNoContent,
			wantBody:   "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var logs bytes.Buffer
			s := &Server{log: logger.NewStructuredLogger(&logs, "http", false)}

			rec := httptest.NewRecorder()
			s.recoverer(tt.handler).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantBody, rec.Body.String())
			assert.Contains(t, logs.String(), "panic serving GET /")
		})
	}
}

func TestRecoverer_AbortHandler(t *testing.T) {
	s := &Server{log: logger.NewStructuredLogger(nil, "", true)}
	h := s.recoverer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) { panic(http.ErrAbortHandler) }))

	assert.PanicsWithValue(t, http.ErrAbortHandler, func() {
		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	})
}
