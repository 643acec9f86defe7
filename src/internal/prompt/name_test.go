// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package prompt_test

import (
	"testing"

	"github.com/H0llyW00dzZ/mcp-prompt-server/src/internal/prompt"
	"github.com/stretchr/testify/assert"
)

func TestIsValidName(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{name: "Simple", input: "task_1", want: true},
		{name: "Letters", input: "create_prd", want: true},
		{name: "Digits", input: "123", want: true},
		{name: "Underscore", input: "_", want: true},
		{name: "MixedCase", input: "ReviewTasks", want: true},
		{name: "Empty", input: "", want: false},
		{name: "Slash", input: "a/b", want: false},
		{name: "Backslash", input: `a\b`, want: false},
		{name: "DoubleDot", input: "a..b", want: false},
		{name: "Traversal", input: "../etc/passwd", want: false},
		{name: "EncodedTraversal", input: "%2E%2E%2Fanother_prompt", want: false},
		{name: "Bang", input: "invalid!name", want: false},
		{name: "Hyphen", input: "create-prd", want: false},
		{name: "Space", input: "create prd", want: false},
		{name: "LeadingSpace", input: " create_prd", want: false},
		{name: "TrailingNewline", input: "create_prd\n", want: false},
		{name: "Dot", input: "create.prd", want: false},
		{name: "Extension", input: "create_prd.txt", want: false},
		{name: "NonASCIILetter", input: "tâche", want: false},
		{name: "NulByte", input: "task\x00", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, prompt.IsValidName(tt.input), "IsValidName(%q)", tt.input)
		})
	}
}
