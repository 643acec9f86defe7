// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package gc

import (
	"bytes"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// errorReader is an io.Reader that always fails.
type errorReader struct{ err error }

func (e *errorReader) Read(p []byte) (int, error) { return 0, e.err }

// foreignBuffer satisfies Buffer but is not pool-owned.
type foreignBuffer struct{ bytes.Buffer }

func TestDefaultPool(t *testing.T) {
	tests := []struct {
		name  string
		write func(buf Buffer)
		want  string
	}{
		{
			name:  "Write",
			write: func(buf Buffer) { buf.Write([]byte("hello")) },
			want:  "hello",
		},
		{
			name:  "WriteString and WriteByte",
			write: func(buf Buffer) { buf.WriteString("task"); buf.WriteByte('_'); buf.WriteString("1") },
			want:  "task_1",
		},
		{
			name: "ReadFrom",
			write: func(buf Buffer) {
				_, err := buf.ReadFrom(strings.NewReader("This is a test prompt."))
				require.NoError(t, err)
			},
			want: "This is a test prompt.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := Default.Get()
			defer Default.Put(buf)

			tt.write(buf)
			assert.Equal(t, tt.want, buf.String())
			assert.Equal(t, len(tt.want), buf.Len())
			assert.Equal(t, []byte(tt.want), buf.Bytes())
		})
	}
}

func TestPutResetsBuffer(t *testing.T) {
	buf := Default.Get()
	buf.WriteString("leftover")
	Default.Put(buf)

	assert.Zero(t, buf.Len(), "Put must reset the buffer before pooling it")
}

func TestPutIgnoresForeignBuffer(t *testing.T) {
	fb := &foreignBuffer{}
	fb.WriteString("keep")

	assert.NotPanics(t, func() { Default.Put(fb) })
	assert.Equal(t, "keep", fb.String())
}

func TestReadString(t *testing.T) {
	t.Run("copies contents", func(t *testing.T) {
		got, err := ReadString(strings.NewReader("Another one here."))
		require.NoError(t, err)

		// Reuse the pool; the earlier result must not change.
		other := Default.Get()
		other.WriteString("overwritten!!!!!!")
		Default.Put(other)

		assert.Equal(t, "Another one here.", got)
	})

	t.Run("propagates read error", func(t *testing.T) {
		readErr := errors.New("disk gone")
		_, err := ReadString(&errorReader{err: readErr})
		assert.ErrorIs(t, err, readErr)
	})
}

func TestDefaultPoolConcurrent(t *testing.T) {
	var wg sync.WaitGroup
	for i := range 32 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			want := strings.Repeat("x", i+1)
			got, err := ReadString(strings.NewReader(want))
			assert.NoError(t, err)
			assert.Equal(t, want, got)
		}()
	}
	wg.Wait()
}
