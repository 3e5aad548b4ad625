// Copyright © 2026 Teradata Corporation - All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.

package weft

import (
	"fmt"
	"strings"
)

// ErrorCategory classifies a tool execution failure for user-facing
// reporting.
type ErrorCategory string

const (
	CategoryNetwork            ErrorCategory = "network"
	CategoryToolUnavailable    ErrorCategory = "tool_unavailable"
	CategoryAuthentication     ErrorCategory = "authentication"
	CategoryRateLimit          ErrorCategory = "rate_limit"
	CategoryInvalidArguments   ErrorCategory = "invalid_arguments"
	CategoryServiceUnavailable ErrorCategory = "service_unavailable"
	CategoryMalformedResponse  ErrorCategory = "malformed_response"
	CategoryTimeout            ErrorCategory = "timeout"
	CategoryGeneric            ErrorCategory = "generic"
)

// categoryRule maps raw error substrings to a category. Rules are applied
// in declaration order, first match wins, so more specific phrases must
// precede broader ones.
type categoryRule struct {
	category   ErrorCategory
	substrings []string
}

var categoryRules = []categoryRule{
	{CategoryNetwork, []string{
		"connection refused", "connection reset", "no such host",
		"dial tcp", "broken pipe", "network", "connection",
	}},
	{CategoryToolUnavailable, []string{
		"tool not found", "unknown tool", "no such tool", "not registered",
	}},
	{CategoryAuthentication, []string{
		"unauthorized", "authentication", "permission denied",
		"access denied", "forbidden", "api key",
	}},
	{CategoryRateLimit, []string{
		"rate limit", "too many requests", "429", "quota exceeded",
	}},
	{CategoryInvalidArguments, []string{
		"invalid argument", "invalid arguments", "missing required",
		"bad request", "validation failed",
	}},
	{CategoryServiceUnavailable, []string{
		"service unavailable", "unavailable", "503", "overloaded",
	}},
	{CategoryMalformedResponse, []string{
		"unmarshal", "malformed", "unexpected end of json",
		"invalid json", "parse error",
	}},
	{CategoryTimeout, []string{
		"timeout", "timed out", "deadline exceeded",
	}},
}

// CategorizeError maps a raw execution error to exactly one user-facing
// category and returns the message to surface in the failed result.
// The raw error text is preserved in the message so callers can still see
// what actually happened. For invalid-argument failures the supplied args
// are echoed back for debuggability.
func CategorizeError(toolName, rawError string, args map[string]interface{}) (ErrorCategory, string) {
	category := classify(rawError)

	switch category {
	case CategoryNetwork:
		return category, fmt.Sprintf("Connection error executing '%s': %s", toolName, rawError)
	case CategoryToolUnavailable:
		return category, fmt.Sprintf("Tool '%s' is not available: %s", toolName, rawError)
	case CategoryAuthentication:
		return category, fmt.Sprintf("Authentication or permission error executing '%s': %s", toolName, rawError)
	case CategoryRateLimit:
		return category, fmt.Sprintf("Rate limited while executing '%s': %s", toolName, rawError)
	case CategoryInvalidArguments:
		return category, fmt.Sprintf("Invalid arguments for '%s' (args: %v): %s", toolName, args, rawError)
	case CategoryServiceUnavailable:
		return category, fmt.Sprintf("Service unavailable for '%s': %s", toolName, rawError)
	case CategoryMalformedResponse:
		return category, fmt.Sprintf("Malformed response from '%s': %s", toolName, rawError)
	case CategoryTimeout:
		return category, fmt.Sprintf("Timed out executing '%s': %s", toolName, rawError)
	default:
		return CategoryGeneric, fmt.Sprintf("Tool execution failed for '%s': %s", toolName, rawError)
	}
}

func classify(rawError string) ErrorCategory {
	lower := strings.ToLower(rawError)
	for _, rule := range categoryRules {
		for _, substr := range rule.substrings {
			if strings.Contains(lower, substr) {
				return rule.category
			}
		}
	}
	return CategoryGeneric
}
