// Copyright 2026 Teradata
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
package weft

import (
	"sync"

	"github.com/pkoukk/tiktoken-go"
)

// TokenCounter estimates token counts for formatted summaries so callers
// can see what a summary costs before injecting it into model context.
// Uses tiktoken with cl100k_base encoding (Claude-compatible
// approximation).
type TokenCounter struct {
	encoder *tiktoken.Tiktoken
	mu      sync.Mutex
}

// NewTokenCounter creates a token counter. If the tiktoken encoding is
// unavailable (e.g. offline with no cached BPE file), counting falls back
// to a chars/4 estimate.
func NewTokenCounter() *TokenCounter {
	tkm, err := tiktoken.GetEncoding("cl100k_base")
	if err != nil {
		return &TokenCounter{encoder: nil}
	}
	return &TokenCounter{encoder: tkm}
}

// CountTokens returns the token count for the given text.
func (tc *TokenCounter) CountTokens(text string) int {
	if tc.encoder == nil {
		return len(text) / 4
	}

	tc.mu.Lock()
	defer tc.mu.Unlock()

	return len(tc.encoder.Encode(text, nil, nil))
}
