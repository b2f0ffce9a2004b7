package convert

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestToValueWithDefault(t *testing.T) {
	t.Run("WithValue", func(t *testing.T) {
		expected := "value"
		require.Equal(t, expected, ToValueWithDefault(&expected, "default"))
	})

	t.Run("WithNil", func(t *testing.T) {
		require.Equal(t, "default", ToValueWithDefault[string](nil, "default"))
	})

	t.Run("WithEmptyString", func(t *testing.T) {
		empty := ""
		require.Equal(t, "default", ToValueWithDefault(&empty, "default"))
	})
}
