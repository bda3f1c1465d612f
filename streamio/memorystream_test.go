package streamio

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStreamWriteReadRoundTrip(t *testing.T) {
	m := NewMemoryStream()
	n, err := m.Write([]byte{1, 2, 3})
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Equal(t, int64(3), m.Tell())

	require.NoError(t, m.Seek(0))
	b, err := m.Read(3)
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3}, b)
}

func TestMemoryStreamFromBytes(t *testing.T) {
	m := NewMemoryStreamFromBytes([]byte{9, 8, 7})
	assert.Equal(t, 3, m.Available())
	b, err := m.Read(2)
	require.NoError(t, err)
	assert.Equal(t, []byte{9, 8}, b)
	assert.Equal(t, 1, m.Available())
}

func TestMemoryStreamReadPastEndFails(t *testing.T) {
	m := NewMemoryStreamFromBytes([]byte{1})
	_, err := m.Read(5)
	require.Error(t, err)
}

func TestMemoryStreamSeekOutOfRangeFails(t *testing.T) {
	m := NewMemoryStreamFromBytes([]byte{1, 2})
	require.Error(t, m.Seek(-1))
	require.Error(t, m.Seek(3))
}

func TestMemoryStreamFlushToResets(t *testing.T) {
	m := NewMemoryStream()
	_, err := m.Write([]byte("hello"))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, m.FlushTo(&buf))
	assert.Equal(t, "hello", buf.String())
	assert.Equal(t, 0, m.Available())
}
