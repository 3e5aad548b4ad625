// Copyright 2026 Teradata
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
package providers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaults_IDRequirements(t *testing.T) {
	table := Defaults()

	assert.True(t, table.Lookup("openai").RequiresCallID)
	assert.True(t, table.Lookup("mistral").RequiresCallID)
	assert.False(t, table.Lookup("anthropic").RequiresCallID)
	assert.False(t, table.Lookup("ollama").RequiresCallID)
}

func TestDefaults_ArgumentShape(t *testing.T) {
	table := Defaults()

	assert.True(t, table.Lookup("ollama").AcceptsStringArguments)
	assert.False(t, table.Lookup("openai").AcceptsStringArguments)
	assert.False(t, table.Lookup("anthropic").AcceptsStringArguments)
}

func TestLookup_CaseInsensitive(t *testing.T) {
	table := Defaults()

	c := table.Lookup("OpenAI")
	assert.Equal(t, "openai", c.ID)
	assert.Equal(t, "OpenAI", c.DisplayName)
}

func TestLookup_UnknownProviderIsPermissive(t *testing.T) {
	table := Defaults()

	c := table.Lookup("llamafile")
	assert.False(t, c.RequiresCallID)
	assert.True(t, c.AcceptsStringArguments)
	assert.Zero(t, c.MaxToolNameLength)
	assert.Equal(t, "Llamafile", c.DisplayName)
}
