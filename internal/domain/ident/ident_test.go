package ident

import (
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProjectID_Format(t *testing.T) {
	for i := 0; i < 1000; i++ {
		id := NewProjectID()
		require.Len(t, id, 14)
		require.True(t, strings.HasPrefix(id, "p_"), id)
		require.Regexp(t, `^p_[A-Za-z0-9_-]{12}$`, id)
		require.True(t, IsValidProjectID(id), id)
	}
}

func TestNewProjectID_NoCollisions(t *testing.T) {
	seen := make(map[string]struct{}, 10000)
	for i := 0; i < 10000; i++ {
		id := NewProjectID()
		_, dup := seen[id]
		require.False(t, dup, "duplicate id %s", id)
		seen[id] = struct{}{}
	}
}

func TestNewProjectID_Concurrent(t *testing.T) {
	const workers, perWorker = 8, 500
	var (
		mu   sync.Mutex
		seen = make(map[string]struct{}, workers*perWorker)
		wg   sync.WaitGroup
	)
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			local := make([]string, 0, perWorker)
			for i := 0; i < perWorker; i++ {
				local = append(local, NewProjectID())
			}
			mu.Lock()
			for _, id := range local {
				seen[id] = struct{}{}
			}
			mu.Unlock()
		}()
	}
	wg.Wait()
	assert.Len(t, seen, workers*perWorker)
}

func TestGenerator_UsesSource(t *testing.T) {
	var gotAlphabet string
	var gotSize int
	g := NewGenerator(func(alphabet string, size int) (string, error) {
		gotAlphabet, gotSize = alphabet, size
		return "abcdefABCDEF", nil
	})
	id, err := g.Generate()
	require.NoError(t, err)
	assert.Equal(t, "p_abcdefABCDEF", id)
	assert.Equal(t, Alphabet, gotAlphabet)
	assert.Equal(t, 12, gotSize)
	assert.Len(t, Alphabet, 64)
}

func TestGenerator_SourceError(t *testing.T) {
	g := NewGenerator(func(string, int) (string, error) {
		return "", errors.New("no entropy")
	})
	id, err := g.Generate()
	assert.Error(t, err)
	assert.Empty(t, id)
}

func TestIsValidProjectID(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"", false},
		{"p_", false},
		{"p_123456789012", true},
		{"p_abcDEF-_xyz9", true},
		{"p_------------", true},
		{"p_12345678901", false},
		{"p_1234567890123", false},
		{"x_123456789012", false},
		{"P_123456789012", false},
		{"p-123456789012", false},
		{"p_12345678901!", false},
		{"p_12345678901 ", false},
		{" p_12345678901", false},
		{"p_12345678901\n", false},
		{"p_1234567890é", false},
		{"xp_123456789012", false},
		{"p_123456789012_posts", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, IsValidProjectID(tt.in), "IsValidProjectID(%q)", tt.in)
	}
}

func TestSchemaKey(t *testing.T) {
	assert.Equal(t, "p_a1b2c3d4e5f6_posts", SchemaKey("p_a1b2c3d4e5f6", "posts"))
	assert.Equal(t, "_", SchemaKey("", ""))
	assert.Equal(t, "p_a1b2c3d4e5f6_", SchemaKey("p_a1b2c3d4e5f6", ""))
	assert.Equal(t, "Weird ID_ Posts ", SchemaKey("Weird ID", " Posts "))
}
