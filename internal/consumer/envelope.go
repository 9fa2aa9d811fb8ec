// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package consumer

import (
	"encoding/json"
	"fmt"

	"github.com/catalogsync/sir/internal/router"
)

// reserved are the envelope keys treated as structured fields rather than
// row columns.
var reserved = map[string]bool{
	"_table":      true,
	"operation":   true,
	"sequence_id": true,
	"changed":     true,
}

// decodeEnvelope parses a message body in either the minimal form
// (`{ "_table": ..., <pk column>: <value>, ... }`) or the richer structured
// form (`sequence_id`, `table`/`_table`, `columns`, `operation`, `changed`
// all present as top-level keys), and returns the [router.Message] the
// change router expects.
//
// The queue a message arrived on, not the body, is authoritative for
// whether this is an upsert or a delete; callers set msg.Operation
// accordingly after decoding when the body itself is silent.
func decodeEnvelope(body []byte) (router.Message, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return router.Message{}, fmt.Errorf("consumer: malformed message body: %w", err)
	}

	msg := router.Message{Columns: map[string]any{}}

	if v, ok := raw["_table"]; ok {
		if err := json.Unmarshal(v, &msg.Table); err != nil {
			return router.Message{}, fmt.Errorf("consumer: decode _table: %w", err)
		}
	} else if v, ok := raw["table"]; ok {
		if err := json.Unmarshal(v, &msg.Table); err != nil {
			return router.Message{}, fmt.Errorf("consumer: decode table: %w", err)
		}
	}
	if msg.Table == "" {
		return router.Message{}, fmt.Errorf("consumer: message carries no table name")
	}

	if v, ok := raw["operation"]; ok {
		var op string
		if err := json.Unmarshal(v, &op); err != nil {
			return router.Message{}, fmt.Errorf("consumer: decode operation: %w", err)
		}
		msg.Operation = router.Operation(op)
	}

	if v, ok := raw["sequence_id"]; ok {
		if err := json.Unmarshal(v, &msg.SequenceID); err != nil {
			return router.Message{}, fmt.Errorf("consumer: decode sequence_id: %w", err)
		}
	}

	if v, ok := raw["changed"]; ok {
		if err := json.Unmarshal(v, &msg.Changed); err != nil {
			return router.Message{}, fmt.Errorf("consumer: decode changed: %w", err)
		}
	}

	// The richer structured form nests row data under "columns"; the
	// minimal form spreads it at the top level alongside "_table".
	if v, ok := raw["columns"]; ok {
		var cols map[string]any
		if err := json.Unmarshal(v, &cols); err != nil {
			return router.Message{}, fmt.Errorf("consumer: decode columns: %w", err)
		}
		msg.Columns = cols
		return msg, nil
	}

	for k, v := range raw {
		if reserved[k] || k == "table" {
			continue
		}
		var val any
		if err := json.Unmarshal(v, &val); err != nil {
			return router.Message{}, fmt.Errorf("consumer: decode column %q: %w", k, err)
		}
		msg.Columns[k] = val
	}

	return msg, nil
}
