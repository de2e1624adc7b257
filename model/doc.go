// Package model defines the provider‑agnostic abstractions for language
// models taking part in ELIZA conversations.
//
// Core goals:
//   - Unify streaming + non‑streaming generation behind a single interface
//   - Keep request/response shapes minimal and transport independent
//   - Facilitate lightweight mocking for tests (MockModel)
//
// Providers (see the openai and anthropic subpackages) implement Model so
// that Participant can put any of them into a conversation.GroupChat, for
// example as the patient talking to the DOCTOR script.
package model
