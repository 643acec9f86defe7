// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package prompt implements the file-backed prompt library shared by the MCP and HTTP servers.
//
// A prompt is a "<name>.txt" file in a single directory. Names are untrusted input and
// must satisfy [IsValidName] before any filesystem access happens:
//
//	lib := prompt.NewLibrary("/srv/prompts")
//	names := lib.List() // ["create_prd", "review_tasks"]
//
//	text, err := lib.Load("create_prd")
//	switch prompt.KindOf(err) {
//	case prompt.KindInvalidName, prompt.KindNotFound, prompt.KindIO:
//		// report err.Error() to the caller
//	}
//
// The library holds no state beyond its directory; every List call rescans the
// filesystem, so prompts added or removed at runtime are picked up immediately.
package prompt
