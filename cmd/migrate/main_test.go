package main

import (
	"bytes"
	"testing"

	"github.com/golang-migrate/migrate/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeMigrator records calls and reports a fixed version.
type fakeMigrator struct {
	calls   []string
	steps   int
	err     error
	version uint
	verErr  error
}

func (f *fakeMigrator) Up() error   { f.calls = append(f.calls, "up"); return f.err }
func (f *fakeMigrator) Down() error { f.calls = append(f.calls, "down"); return f.err }
func (f *fakeMigrator) Steps(n int) error {
	f.calls = append(f.calls, "steps")
	f.steps = n
	return f.err
}
func (f *fakeMigrator) Version() (uint, bool, error) { return f.version, false, f.verErr }

func TestRun_Up(t *testing.T) {
	m := &fakeMigrator{version: 2}
	var out bytes.Buffer
	require.NoError(t, run(&out, m, "up", 0))
	assert.Equal(t, []string{"up"}, m.calls)
	assert.Contains(t, out.String(), "migrated up to version 2")
}

func TestRun_DownSteps(t *testing.T) {
	m := &fakeMigrator{version: 1}
	var out bytes.Buffer
	require.NoError(t, run(&out, m, "down", 1))
	assert.Equal(t, []string{"steps"}, m.calls)
	assert.Equal(t, -1, m.steps)
}

func TestRun_NoChangeIsNotAnError(t *testing.T) {
	m := &fakeMigrator{version: 2, err: migrate.ErrNoChange}
	var out bytes.Buffer
	require.NoError(t, run(&out, m, "up", 0))
	assert.Contains(t, out.String(), "schema at version 2")
}

func TestRun_StatusOnEmptySchema(t *testing.T) {
	m := &fakeMigrator{verErr: migrate.ErrNilVersion}
	var out bytes.Buffer
	require.NoError(t, run(&out, m, "status", 0))
	assert.Empty(t, m.calls)
	assert.Contains(t, out.String(), "schema empty")
}

func TestRun_Failures(t *testing.T) {
	var out bytes.Buffer
	assert.Error(t, run(&out, &fakeMigrator{}, "sideways", 0))
	assert.ErrorIs(t, run(&out, &fakeMigrator{err: assert.AnError}, "up", 0), assert.AnError)
	assert.ErrorIs(t, run(&out, &fakeMigrator{verErr: assert.AnError}, "status", 0), assert.AnError)
}
