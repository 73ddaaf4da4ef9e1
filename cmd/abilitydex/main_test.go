package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/monbattle/internal/game/ability"
)

func registry(t *testing.T) *ability.Registry {
	t.Helper()
	reg, err := ability.BuildRegistry(ability.Options{})
	require.NoError(t, err)
	return reg
}

func TestList_TableByKey(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, list(&buf, registry(t), filter{key: "Water Absorb"}, "table"))
	out := buf.String()
	assert.Contains(t, out, "water_absorb")
	assert.Contains(t, out, "Water Absorb (P)")
	assert.Contains(t, out, "type_immunity_heal")
	assert.Contains(t, out, "1 of 310 abilities")
}

func TestList_YAMLByGeneration(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, list(&buf, registry(t), filter{generation: 3}, "yaml"))
	var entries []entry
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &entries))
	require.NotEmpty(t, entries)
	for _, e := range entries {
		assert.Equal(t, 3, e.Generation, e.Key)
	}
}

func TestList_ByKind(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, list(&buf, registry(t), filter{kind: "type_immunity_heal"}, "yaml"))
	var entries []entry
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &entries))
	require.NotEmpty(t, entries)
	for _, e := range entries {
		assert.Contains(t, e.Attrs, "type_immunity_heal", e.Key)
	}
}

func TestList_UnknownFormat(t *testing.T) {
	err := list(&bytes.Buffer{}, registry(t), filter{}, "xml")
	assert.Error(t, err)
}

func TestList_TableFooter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, list(&buf, registry(t), filter{}, "table"))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Equal(t, "310 of 310 abilities", lines[len(lines)-1])
}
