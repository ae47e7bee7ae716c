package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "veridoc/pkg/domain-errors"
)

func TestParseVersion(t *testing.T) {
	t.Run("parses major.minor", func(t *testing.T) {
		major, minor, err := ParseVersion("2.17")
		require.NoError(t, err)
		assert.Equal(t, 2, major)
		assert.Equal(t, 17, minor)
	})

	t.Run("rejects malformed labels", func(t *testing.T) {
		for _, label := range []string{"", "1", "1.2.3", "a.b", "1.x", "x.1"} {
			_, _, err := ParseVersion(label)
			require.Error(t, err, "label %q", label)
			assert.True(t, dErrors.HasCode(err, dErrors.CodeMalformed), "label %q", label)
		}
	})
}

func TestNextMinorVersion(t *testing.T) {
	t.Run("increments the minor component", func(t *testing.T) {
		next, err := NextMinorVersion(InitialVersion)
		require.NoError(t, err)
		assert.Equal(t, "1.1", next)

		next, err = NextMinorVersion("1.9")
		require.NoError(t, err)
		assert.Equal(t, "1.10", next)

		next, err = NextMinorVersion("3.0")
		require.NoError(t, err)
		assert.Equal(t, "3.1", next)
	})

	t.Run("propagates malformed labels", func(t *testing.T) {
		_, err := NextMinorVersion("not-a-version")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeMalformed))
	})
}
