// Copyright 2026 Teradata
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.

// Package providers declares the tool-calling conventions of the LLM
// provider families the chat client can talk to. The engine never calls a
// vendor API itself; it only needs to know each family's structural rules
// for tool calls so batches can be validated before execution.
//
// Provider tool-call conventions differ in three ways:
//   - OpenAI- and Mistral-style APIs require a call id on every tool call;
//     Anthropic- and Ollama-style APIs do not.
//   - Ollama-style APIs may deliver arguments as a JSON-encoded string;
//     the others require a native object.
//   - Most hosted APIs restrict tool names (Bedrock: ^[a-zA-Z0-9_-]{1,64}$,
//     Azure OpenAI: ^[a-zA-Z0-9_.\-]+$, Gemini: ^[a-zA-Z_][a-zA-Z0-9_]*$).
//     Bobbin enforces the common denominator [A-Za-z0-9_-] plus a
//     per-provider length cap.
package providers

import "strings"

// Convention describes one provider family's structural tool-call rules.
type Convention struct {
	// ID is the lowercase provider identifier ("openai", "anthropic", ...).
	ID string

	// DisplayName is the user-facing provider name used in validation
	// error messages.
	DisplayName string

	// RequiresCallID indicates that every tool call must carry an id.
	RequiresCallID bool

	// AcceptsStringArguments indicates that arguments may arrive as a
	// JSON-encoded string. When false, a string-form argument bag is a
	// structural violation.
	AcceptsStringArguments bool

	// MaxToolNameLength caps tool name length. Zero means no cap.
	MaxToolNameLength int
}

// Conventions is an explicitly constructed convention table. It replaces
// any process-wide registry: whoever builds the validator owns the table.
type Conventions map[string]Convention

// Defaults returns the convention table for the provider families the chat
// client ships with.
func Defaults() Conventions {
	list := []Convention{
		{ID: "openai", DisplayName: "OpenAI", RequiresCallID: true, MaxToolNameLength: 64},
		{ID: "azureopenai", DisplayName: "Azure OpenAI", RequiresCallID: true, MaxToolNameLength: 64},
		{ID: "mistral", DisplayName: "Mistral", RequiresCallID: true, MaxToolNameLength: 64},
		{ID: "anthropic", DisplayName: "Anthropic", MaxToolNameLength: 64},
		{ID: "bedrock", DisplayName: "Bedrock", MaxToolNameLength: 64},
		{ID: "gemini", DisplayName: "Gemini", MaxToolNameLength: 64},
		{ID: "ollama", DisplayName: "Ollama", AcceptsStringArguments: true},
	}

	table := make(Conventions, len(list))
	for _, c := range list {
		table[c.ID] = c
	}
	return table
}

// Lookup resolves a provider id (case-insensitive) to its convention.
// Unknown providers get a permissive default so validation degrades to the
// universal rules (name charset) rather than rejecting the batch.
func (t Conventions) Lookup(providerID string) Convention {
	id := strings.ToLower(strings.TrimSpace(providerID))
	if c, ok := t[id]; ok {
		return c
	}
	return Convention{
		ID:                     id,
		DisplayName:            displayNameFor(providerID),
		AcceptsStringArguments: true,
	}
}

func displayNameFor(providerID string) string {
	id := strings.TrimSpace(providerID)
	if id == "" {
		return "Unknown"
	}
	return strings.ToUpper(id[:1]) + id[1:]
}
