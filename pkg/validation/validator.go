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

// Package validation checks batches of proposed tool calls against the
// target provider's calling convention before they are executed.
//
// Validation informs, it does not gate: a batch that fails validation is
// still executable, and the caller decides what to do with the accumulated
// errors. All violations in a batch are reported, not just the first.
package validation

import (
	"encoding/json"
	"fmt"
	"regexp"

	"github.com/xeipuuv/gojsonschema"
	"go.uber.org/zap"

	"github.com/teradata-labs/bobbin/pkg/providers"
	"github.com/teradata-labs/bobbin/pkg/shuttle"
	"github.com/teradata-labs/bobbin/pkg/types"
)

// toolNamePattern is the common-denominator tool name charset across the
// supported provider families.
var toolNamePattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// Validator validates tool call batches per provider convention.
type Validator struct {
	conventions providers.Conventions
	schemas     map[string]*shuttle.JSONSchema
	logger      *zap.Logger
}

// Config configures a Validator.
type Config struct {
	// Conventions is the provider convention table
	// (default: providers.Defaults()).
	Conventions providers.Conventions

	// Schemas optionally maps tool names to their input schemas. When a
	// call's tool has a schema here, its decoded arguments are also
	// checked against it.
	Schemas map[string]*shuttle.JSONSchema

	// Logger (default: zap.NewNop()).
	Logger *zap.Logger
}

// NewValidator creates a validator.
func NewValidator(config Config) *Validator {
	if config.Conventions == nil {
		config.Conventions = providers.Defaults()
	}
	if config.Logger == nil {
		config.Logger = zap.NewNop()
	}
	return &Validator{
		conventions: config.Conventions,
		schemas:     config.Schemas,
		logger:      config.Logger,
	}
}

// ValidateForProvider validates every call in the batch against the
// provider's convention, accumulating all violations in call order.
// A batch with zero violations is valid.
func (v *Validator) ValidateForProvider(calls []types.ToolCall, providerID string) types.ValidationResult {
	conv := v.conventions.Lookup(providerID)

	var errs []string
	for i := range calls {
		errs = append(errs, v.validateCall(&calls[i], conv)...)
	}

	if len(errs) > 0 {
		v.logger.Warn("Tool call batch failed validation",
			zap.String("provider", conv.ID),
			zap.Int("calls", len(calls)),
			zap.Int("violations", len(errs)))
	}

	return types.ValidationResult{
		Valid:  len(errs) == 0,
		Errors: errs,
	}
}

// validateCall applies the convention's rules to one call.
func (v *Validator) validateCall(call *types.ToolCall, conv providers.Convention) []string {
	var errs []string

	if conv.RequiresCallID && call.ID == "" {
		errs = append(errs, fmt.Sprintf("%s tool call missing required id: %s", conv.DisplayName, call.Name))
	}

	if call.ArgumentsAreString() {
		if !conv.AcceptsStringArguments {
			errs = append(errs, fmt.Sprintf("%s tool call arguments must be object: %s", conv.DisplayName, call.Name))
		} else if !json.Valid([]byte(call.RawArguments)) {
			errs = append(errs, fmt.Sprintf("%s tool call has invalid JSON arguments: %s", conv.DisplayName, call.Name))
		}
	}

	if call.Name == "" {
		errs = append(errs, "Tool call missing name")
	} else {
		if conv.MaxToolNameLength > 0 && len(call.Name) > conv.MaxToolNameLength {
			errs = append(errs, fmt.Sprintf("Tool name too long (%d > %d): %s",
				len(call.Name), conv.MaxToolNameLength, call.Name))
		}
		if !toolNamePattern.MatchString(call.Name) {
			errs = append(errs, fmt.Sprintf("Tool name contains invalid characters: %s", call.Name))
		}
	}

	if schemaErr := v.validateAgainstSchema(call); schemaErr != "" {
		errs = append(errs, schemaErr)
	}

	return errs
}

// validateAgainstSchema checks decoded arguments against the tool's input
// schema when one is known. Undecodable arguments are skipped here; the
// argument-shape rules above already report them.
func (v *Validator) validateAgainstSchema(call *types.ToolCall) string {
	if len(v.schemas) == 0 {
		return ""
	}
	schema, ok := v.schemas[call.Name]
	if !ok {
		return ""
	}
	args, err := call.Args()
	if err != nil {
		return ""
	}
	return validateArguments(call.Name, schema, args)
}

func validateArguments(toolName string, schema *shuttle.JSONSchema, args map[string]interface{}) string {
	schemaJSON, err := schema.ToJSON()
	if err != nil {
		return ""
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewBytesLoader(schemaJSON),
		gojsonschema.NewGoLoader(args),
	)
	if err != nil {
		return ""
	}

	if !result.Valid() {
		details := make([]string, len(result.Errors()))
		for i, resultErr := range result.Errors() {
			details[i] = resultErr.String()
		}
		return fmt.Sprintf("Tool call arguments do not match schema for %s: %v", toolName, details)
	}
	return ""
}
