// Copyright © 2026 Teradata Corporation - All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.

package builtin

import (
	"context"
	"fmt"
	"time"

	"github.com/teradata-labs/bobbin/pkg/shuttle"
)

// DateTimeTool reports the current date and time, optionally in a named
// IANA timezone.
type DateTimeTool struct {
	// now is swappable for tests.
	now func() time.Time
}

// NewDateTimeTool creates a datetime tool using the system clock.
func NewDateTimeTool() *DateTimeTool {
	return &DateTimeTool{now: time.Now}
}

func (t *DateTimeTool) Name() string {
	return "datetime"
}

func (t *DateTimeTool) Description() string {
	return "Returns the current date and time, optionally in a given IANA timezone."
}

func (t *DateTimeTool) InputSchema() *shuttle.JSONSchema {
	return shuttle.NewObjectSchema(
		"Parameters for the datetime tool",
		map[string]*shuttle.JSONSchema{
			"timezone": shuttle.NewStringSchema("IANA timezone name (default: UTC), e.g. 'America/New_York'"),
		},
		nil,
	)
}

func (t *DateTimeTool) Execute(ctx context.Context, params map[string]interface{}) (interface{}, error) {
	loc := time.UTC
	if tz, ok := params["timezone"].(string); ok && tz != "" {
		parsed, err := time.LoadLocation(tz)
		if err != nil {
			return nil, fmt.Errorf("invalid arguments: unknown timezone %q", tz)
		}
		loc = parsed
	}

	now := t.now().In(loc)
	return map[string]interface{}{
		"datetime": now.Format(time.RFC3339),
		"date":     now.Format("2006-01-02"),
		"time":     now.Format("15:04:05"),
		"timezone": loc.String(),
		"weekday":  now.Weekday().String(),
	}, nil
}
