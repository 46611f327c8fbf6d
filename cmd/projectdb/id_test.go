package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amirhosseinghanipour/projectdb/internal/domain/ident"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestIDNew(t *testing.T) {
	out, err := run(t, "id", "new", "-n", "5")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 5)
	seen := map[string]bool{}
	for _, id := range lines {
		assert.True(t, ident.IsValidProjectID(id), id)
		seen[id] = true
	}
	assert.Len(t, seen, 5)
}

func TestIDNew_Default(t *testing.T) {
	out, err := run(t, "id", "new")
	require.NoError(t, err)
	assert.True(t, ident.IsValidProjectID(strings.TrimSpace(out)), out)
}

func TestIDNew_BadCount(t *testing.T) {
	_, err := run(t, "id", "new", "-n", "0")
	assert.Error(t, err)
}

func TestIDValidate(t *testing.T) {
	out, err := run(t, "id", "validate", "p_123456789012", "p_abcDEF-_xyz9")
	require.NoError(t, err)
	assert.Equal(t, "p_123456789012\tvalid\np_abcDEF-_xyz9\tvalid\n", out)

	out, err = run(t, "id", "validate", "p_123456789012", "p_12345678901!", "")
	assert.ErrorIs(t, err, errInvalidIDs)
	assert.Equal(t, "p_123456789012\tvalid\np_12345678901!\tinvalid\n\tinvalid\n", out)
}

func TestIDValidate_NoArgs(t *testing.T) {
	_, err := run(t, "id", "validate")
	assert.Error(t, err)
}

func TestIDSchemaKey(t *testing.T) {
	out, err := run(t, "id", "schema-key", "p_a1b2c3d4e5f6", "posts")
	require.NoError(t, err)
	assert.Equal(t, "p_a1b2c3d4e5f6_posts\n", out)

	out, err = run(t, "id", "schema-key", "", "")
	require.NoError(t, err)
	assert.Equal(t, "_\n", out)

	_, err = run(t, "id", "schema-key", "only-one")
	assert.Error(t, err)
}

func TestMigrate_RequiresDatabaseURL(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("DATABASE_URL", "")
	_, err := run(t, "migrate")
	assert.EqualError(t, err, "migrate requires DATABASE_URL")
}
