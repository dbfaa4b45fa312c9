// Package model defines the provider‑agnostic abstractions and concrete
// helpers for interacting with chat completion models.
//
// Core goals:
//   - Unify streaming + non‑streaming generation behind a single interface
//   - Keep request/response shapes minimal and transport independent
//   - Facilitate lightweight mocking for tests (MockModel)
//
// Providers (OpenAI and OpenAI-compatible endpoints such as Groq, Anthropic)
// implement the Model interface from this package so agents remain decoupled
// from vendor SDKs.
package model
