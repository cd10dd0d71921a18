package parser

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize_StripsFences(t *testing.T) {
	raw := "```json\n{\"table1\": {\"rows\": []}}\n```"
	got := Normalize(raw)
	assert.Equal(t, `{"table1": {"rows": []}}`, got)

	// Idempotence: re-normalizing the output is a no-op.
	assert.Equal(t, got, Normalize(got))
}

func TestNormalize_StripsUntaggedFences(t *testing.T) {
	raw := "```\n{\"a\": 1}\n```"
	assert.Equal(t, `{"a": 1}`, Normalize(raw))
}

func TestNormalize_DiscardsPreambleAndTrailingChatter(t *testing.T) {
	raw := "Sure! Here is the JSON you asked for:\n{\"a\": 1}\nLet me know if you need anything else."
	assert.Equal(t, `{"a": 1}`, Normalize(raw))
}

func TestNormalize_RemovesTrailingComma(t *testing.T) {
	assert.Equal(t, `{"a": 1}`, Normalize(`{"a": 1,}`))
	assert.Equal(t, `[1, 2]`, Normalize(`[1, 2,]`))
	assert.Equal(t, `{"a": [1, 2]}`, Normalize("{\"a\": [1, 2,\n]}"))
}

func TestNormalize_CollapsesThousandsSeparators(t *testing.T) {
	assert.Equal(t, `{"sqft": 181000}`, Normalize(`{"sqft": 181,000}`))
	assert.Equal(t, `{"sqft": 181000, "acres": 4}`, Normalize(`{"sqft": 181,000, "acres": 4}`))
	assert.Equal(t, `[43560, 1]`, Normalize(`[43,560, 1]`))
	assert.Equal(t, `{"n": 1234567}`, Normalize(`{"n": 1,234,567}`))

	// Commas separating fields or elements stay put.
	assert.Equal(t, `{"a": 1, "b": 2}`, Normalize(`{"a": 1, "b": 2}`))
	// Digit groups inside prose, not before a delimiter, stay put.
	assert.Equal(t, `{"note": "about 181,000 sqft total"}`, Normalize(`{"note": "about 181,000 sqft total"}`))
}

func TestNormalize_ReplacesLanguageLiterals(t *testing.T) {
	got := Normalize(`{"a": None, "b": True, "c": False}`)
	assert.Equal(t, `{"a": null, "b": true, "c": false}`, got)

	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(got), &doc))
	assert.Nil(t, doc["a"])
	assert.Equal(t, true, doc["b"])
	assert.Equal(t, false, doc["c"])
}

func TestNormalize_CombinedDefects(t *testing.T) {
	raw := "Here you go:\n```json\n{\"sqft\": 43,560, \"found\": True, \"rows\": [1, 2,],}\n```\nDone!"
	got := Normalize(raw)

	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(got), &doc))
	assert.Equal(t, float64(43560), doc["sqft"])
	assert.Equal(t, true, doc["found"])
}

func TestIsTruncated(t *testing.T) {
	assert.True(t, IsTruncated(`{"a": 1, "b": [1,2`))
	assert.False(t, IsTruncated(`{"a": 1}`))
	assert.False(t, IsTruncated(``))
	assert.True(t, IsTruncated(`{"a": {"b": 1}`))
}
