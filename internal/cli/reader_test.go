package cli

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadLineTrims(t *testing.T) {
	r := NewLineReader(strings.NewReader("  hello world  \n"))

	line, err := r.ReadLine(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "hello world", line)
}

func TestReadLineSequential(t *testing.T) {
	r := NewLineReader(strings.NewReader("first\nsecond\n"))
	ctx := context.Background()

	first, err := r.ReadLine(ctx)
	require.NoError(t, err)
	second, err := r.ReadLine(ctx)
	require.NoError(t, err)

	assert.Equal(t, "first", first)
	assert.Equal(t, "second", second)
}

func TestReadLineUnterminatedFinalLine(t *testing.T) {
	r := NewLineReader(strings.NewReader("no newline"))

	line, err := r.ReadLine(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "no newline", line)
}

func TestReadLineEOF(t *testing.T) {
	r := NewLineReader(strings.NewReader(""))

	_, err := r.ReadLine(context.Background())

	require.ErrorIs(t, err, io.EOF)
}

func TestReadLineCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// A blocked reader must not hold up the caller after cancellation.
	blocked, _ := io.Pipe()
	r := NewLineReader(blocked)

	done := make(chan error, 1)
	go func() {
		_, err := r.ReadLine(ctx)
		done <- err
	}()

	select {
	case err := <-done:
		require.ErrorIs(t, err, ErrInputCancelled)
	case <-time.After(time.Second):
		t.Fatal("ReadLine did not return after context cancellation")
	}
}
