// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package consumer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/catalogsync/sir/internal/router"
)

func TestDecodeEnvelopeMinimalForm(t *testing.T) {
	msg, err := decodeEnvelope([]byte(`{"_table":"artist","id":7}`))
	require.NoError(t, err)

	assert.Equal(t, "artist", msg.Table)
	assert.Equal(t, float64(7), msg.Columns["id"])
	assert.Empty(t, msg.Operation)
}

func TestDecodeEnvelopeStructuredForm(t *testing.T) {
	body := `{
		"sequence_id": 42,
		"table": "area_alias",
		"operation": "delete",
		"changed": ["area"],
		"columns": {"id": 1, "area": 2}
	}`
	msg, err := decodeEnvelope([]byte(body))
	require.NoError(t, err)

	assert.Equal(t, int64(42), msg.SequenceID)
	assert.Equal(t, "area_alias", msg.Table)
	assert.Equal(t, router.OpDelete, msg.Operation)
	assert.Equal(t, []string{"area"}, msg.Changed)
	assert.Equal(t, float64(1), msg.Columns["id"])
	assert.Equal(t, float64(2), msg.Columns["area"])
}

func TestDecodeEnvelopeRejectsMissingTable(t *testing.T) {
	_, err := decodeEnvelope([]byte(`{"id":7}`))
	require.Error(t, err)
}

func TestDecodeEnvelopeRejectsMalformedJSON(t *testing.T) {
	_, err := decodeEnvelope([]byte(`not json`))
	require.Error(t, err)
}

func TestDecodeEnvelopeGidIsPreservedAsColumn(t *testing.T) {
	msg, err := decodeEnvelope([]byte(`{"_table":"artist","gid":"90d7709d-feba-47e6-a2d1-8770da3c3d9c"}`))
	require.NoError(t, err)
	assert.Equal(t, "90d7709d-feba-47e6-a2d1-8770da3c3d9c", msg.Columns["gid"])
}
