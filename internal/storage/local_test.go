package storage

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStorage(t *testing.T) *LocalStorage {
	s, err := NewLocalStorage(Config{
		BasePath: t.TempDir(),
		BaseURL:  "/api/v1/files",
	})
	require.NoError(t, err)
	return s
}

func TestLocalStorage_SaveGetDelete(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	err := s.Save(ctx, "resumes/u1_123.pdf", strings.NewReader("resume body"))
	require.NoError(t, err)

	exists, err := s.Exists(ctx, "resumes/u1_123.pdf")
	require.NoError(t, err)
	assert.True(t, exists)

	size, err := s.GetSize(ctx, "resumes/u1_123.pdf")
	require.NoError(t, err)
	assert.Equal(t, int64(len("resume body")), size)

	reader, err := s.Get(ctx, "resumes/u1_123.pdf")
	require.NoError(t, err)
	data, err := io.ReadAll(reader)
	require.NoError(t, err)
	reader.Close()
	assert.Equal(t, "resume body", string(data))

	require.NoError(t, s.Delete(ctx, "resumes/u1_123.pdf"))

	exists, err = s.Exists(ctx, "resumes/u1_123.pdf")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestLocalStorage_DeleteMissingIsNoop(t *testing.T) {
	s := newTestStorage(t)
	assert.NoError(t, s.Delete(context.Background(), "resumes/ghost.pdf"))
}

func TestLocalStorage_GetURL(t *testing.T) {
	s := newTestStorage(t)
	assert.Equal(t, "/api/v1/files/resumes/u1.pdf", s.GetURL("resumes/u1.pdf"))
	assert.Equal(t, "/api/v1/files/resumes/u1.pdf", s.GetURL("/resumes/u1.pdf"))
}
