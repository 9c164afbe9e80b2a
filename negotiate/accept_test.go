package negotiate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// NewMatcher Tests
// =============================================================================

func TestNewMatcher(t *testing.T) {
	t.Run("valid types", func(t *testing.T) {
		m, err := NewMatcher([]string{"text/html", "application/json"})
		require.NoError(t, err)
		assert.Equal(t, []string{"text/html", "application/json"}, m.Types())
	})

	t.Run("empty list", func(t *testing.T) {
		m, err := NewMatcher(nil)
		require.NoError(t, err)
		assert.Empty(t, m.Types())
	})

	t.Run("missing subtype", func(t *testing.T) {
		_, err := NewMatcher([]string{"text"})
		assert.Error(t, err)
	})

	t.Run("empty subtype", func(t *testing.T) {
		_, err := NewMatcher([]string{"text/"})
		assert.Error(t, err)
	})

	t.Run("empty type", func(t *testing.T) {
		_, err := NewMatcher([]string{"/html"})
		assert.Error(t, err)
	})
}

// =============================================================================
// Accepts Tests
// =============================================================================

func TestMatcher_Accepts(t *testing.T) {
	t.Run("absent header always passes", func(t *testing.T) {
		m, err := NewMatcher([]string{"text/html"})
		require.NoError(t, err)
		assert.True(t, m.Accepts(""))
	})

	t.Run("no configured types always pass", func(t *testing.T) {
		m, err := NewMatcher(nil)
		require.NoError(t, err)
		assert.True(t, m.Accepts("application/json"))
	})

	t.Run("nil matcher passes", func(t *testing.T) {
		var m *Matcher
		assert.True(t, m.Accepts("application/json"))
	})

	t.Run("exact type match", func(t *testing.T) {
		m, err := NewMatcher([]string{"text/html"})
		require.NoError(t, err)
		assert.True(t, m.Accepts("text/html"))
	})

	t.Run("subtype wildcard in header", func(t *testing.T) {
		m, err := NewMatcher([]string{"text/html"})
		require.NoError(t, err)
		assert.True(t, m.Accepts("text/*"))
	})

	t.Run("full wildcard satisfies anything", func(t *testing.T) {
		m, err := NewMatcher([]string{"application/vnd.api+json"})
		require.NoError(t, err)
		assert.True(t, m.Accepts("*/*"))
		assert.True(t, m.Accepts("text/plain, */*;q=0.1"))
	})

	t.Run("no acceptable entry fails", func(t *testing.T) {
		m, err := NewMatcher([]string{"text/html"})
		require.NoError(t, err)
		assert.False(t, m.Accepts("application/json"))
	})

	t.Run("whitespace is stripped", func(t *testing.T) {
		m, err := NewMatcher([]string{"application/json"})
		require.NoError(t, err)
		assert.True(t, m.Accepts("text/plain , application/json ; q=0.8"))
	})

	t.Run("quality zero excludes the entry", func(t *testing.T) {
		m, err := NewMatcher([]string{"text/html"})
		require.NoError(t, err)
		assert.False(t, m.Accepts("text/html;q=0.0"))
	})

	t.Run("only literal 0.0 excludes", func(t *testing.T) {
		m, err := NewMatcher([]string{"text/html"})
		require.NoError(t, err)

		// Any other quality value, however low, still passes.
		assert.True(t, m.Accepts("text/html;q=0.001"))
		assert.True(t, m.Accepts("text/html;q=0"))
	})

	t.Run("first acceptable configured type wins", func(t *testing.T) {
		m, err := NewMatcher([]string{"text/html", "application/json"})
		require.NoError(t, err)

		// html excluded, json present: second configured type passes.
		assert.True(t, m.Accepts("text/html;q=0.0,application/json"))

		// Both excluded: fail.
		assert.False(t, m.Accepts("text/html;q=0.0,application/json;q=0.0"))
	})

	t.Run("quality ordering is ignored", func(t *testing.T) {
		m, err := NewMatcher([]string{"text/html"})
		require.NoError(t, err)

		// A competing higher-quality entry does not matter; the
		// configured type is present and not excluded.
		assert.True(t, m.Accepts("application/json;q=1.0,text/html;q=0.2"))
	})

	t.Run("case insensitive", func(t *testing.T) {
		m, err := NewMatcher([]string{"text/html"})
		require.NoError(t, err)
		assert.True(t, m.Accepts("Text/HTML"))
	})

	t.Run("media type metacharacters are escaped", func(t *testing.T) {
		m, err := NewMatcher([]string{"application/vnd.api+json"})
		require.NoError(t, err)
		assert.True(t, m.Accepts("application/vnd.api+json"))
		assert.False(t, m.Accepts("application/vndxapi+json"))
	})
}

// =============================================================================
// Benchmark Tests
// =============================================================================

func BenchmarkMatcher_Accepts(b *testing.B) {
	m, err := NewMatcher([]string{"text/html", "application/json"})
	if err != nil {
		b.Fatal(err)
	}
	header := "text/plain;q=0.5, application/xml, application/json;q=0.9"

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		m.Accepts(header)
	}
}
