// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package httpserver

import (
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/H0llyW00dzZ/mcp-prompt-server/src/internal/prompt"
	"github.com/H0llyW00dzZ/mcp-prompt-server/src/internal/prompt/dispatch"
)

// InvalidNameDetail is the 400 body detail for names failing validation.
const InvalidNameDetail = "Task name contains invalid characters"

type promptResponse struct {
	PromptText string `json:"prompt_text"`
}

type listResponse struct {
	Prompts []string `json:"prompts"`
}

type detailResponse struct {
	Detail string `json:"detail"`
}

func cutPromptPrefix(escapedPath string) (string, bool) {
	return strings.CutPrefix(escapedPath, promptPrefix)
}

// handlePrompt serves one prompt. rawName is still percent-encoded.
func (s *Server) handlePrompt(w http.ResponseWriter, rawName string) {
	name, err := url.PathUnescape(rawName)
	if err != nil || !prompt.IsValidName(name) {
		writeDetail(w, http.StatusBadRequest, InvalidNameDetail)
		return
	}

	res := s.dispatcher.FetchByName(name)
	switch res.Outcome {
	case dispatch.OutcomeOK:
		writeJSON(w, http.StatusOK, promptResponse{PromptText: res.Content})
	case dispatch.OutcomeInvalidIdentifier, dispatch.OutcomeMissingParameter:
		writeDetail(w, http.StatusBadRequest, InvalidNameDetail)
	case dispatch.OutcomeNotFound:
		writeDetail(w, http.StatusNotFound, res.Err.Error())
	case dispatch.OutcomeIOError:
		s.log.Errorf("read prompt %q: %v", name, cause(res.Err))
		writeDetail(w, http.StatusInternalServerError, res.Err.Error())
	default:
		s.log.Errorf("fetch prompt %q: %s", name, res.Text)
		writeDetail(w, http.StatusInternalServerError, res.Text)
	}
}

func (s *Server) handleList(w http.ResponseWriter, _ *http.Request) {
	res := s.dispatcher.ListAvailable()
	writeJSON(w, http.StatusOK, listResponse{Prompts: res.Names})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// cause returns the filesystem error behind a prompt error, or err itself.
func cause(err error) error {
	var pe *prompt.Error
	if errors.As(err, &pe) && pe.Err != nil {
		return pe.Err
	}
	return err
}
