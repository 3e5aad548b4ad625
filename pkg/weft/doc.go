// Copyright © 2026 Teradata Corporation - All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.

// Package weft is the agentic execution engine of the chat client: given
// the tool calls a model requested during a turn, it executes them
// concurrently against a shuttle.Backend, recovers from partial failure,
// chains bounded follow-up calls suggested by earlier results, and
// synthesizes the aggregate back into a single model-consumable summary.
//
// The weft is the thread the shuttle carries across the loom; this
// package drives batch after batch of tool calls across the tool bus
// until the turn's fabric is complete.
package weft
