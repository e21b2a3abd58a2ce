// Package model defines the provider‑agnostic abstractions for talking to
// hosted language models.
//
// Core goals:
//   - Hide every vendor SDK behind a single Model interface
//   - Keep request/response shapes minimal and transport independent
//   - Facilitate lightweight mocking for tests (MockModel)
//
// Providers (OpenAI, Anthropic, Gemini) implement the Model interface in
// sub-packages. Each adapter owns its call shape: how Instructions reach the
// vendor (system message, system parameter, or inlined into the prompt) is an
// adapter decision, not a caller decision.
package model
