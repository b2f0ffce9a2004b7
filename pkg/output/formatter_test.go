package output

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewFormatter(t *testing.T) {
	for _, format := range []string{"json", "text", "none"} {
		formatter, err := NewFormatter(format)
		require.NoError(t, err)
		require.Equal(t, Format(format), formatter.Kind())
	}

	_, err := NewFormatter("yaml")
	require.Error(t, err)
}

func TestJsonFormatter(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &JsonFormatter{}

	err := formatter.Format(map[string]string{"status": "Created"}, buf, nil)
	require.NoError(t, err)
	require.JSONEq(t, `{"status": "Created"}`, buf.String())
}

func TestNoneFormatter(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &NoneFormatter{}

	err := formatter.Format("anything", buf, nil)
	require.NoError(t, err)
	require.Empty(t, buf.String())
}
