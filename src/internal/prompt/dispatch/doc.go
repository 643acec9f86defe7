// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package dispatch maps tool invocations onto the prompt library.
//
// Three operations are exposed regardless of transport:
//
//   - list_available_prompts: enumerate the catalog
//   - get_prompt_by_name: fetch one prompt named by the "task_name" argument
//   - get_prompt_<name>: fetch the prompt whose name follows the prefix
//
// An invoked tool name is resolved once into a [Decision] and then executed.
// The per-prompt tool names are derived from the catalog on every [Dispatcher.Tools]
// call, so the dispatcher holds no registry of its own.
//
// Every failure, including panics raised by the catalog or loader, comes back as a
// [Result] with a user-facing message. Nothing below [Dispatcher.Call] can terminate
// the caller's request loop.
package dispatch
