package blob

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feedbackloop/interviewd/internal/domain"
)

type testDoc struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestLocalStorePutGet(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	in := testDoc{Name: "anna", Count: 3}
	require.NoError(t, store.Put(ctx, "scenarios/ab12cd34", in))

	var out testDoc
	require.NoError(t, store.Get(ctx, "scenarios/ab12cd34", &out))
	assert.Equal(t, in, out)
}

func TestLocalStoreGetAbsent(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)

	var out testDoc
	err = store.Get(context.Background(), "scenarios/missing", &out)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestLocalStoreOverwrite(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "k", testDoc{Name: "v1"}))
	require.NoError(t, store.Put(ctx, "k", testDoc{Name: "v2"}))

	var out testDoc
	require.NoError(t, store.Get(ctx, "k", &out))
	assert.Equal(t, "v2", out.Name)
}

func TestLocalStoreListPrefix(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "transcripts/s1_transcript", testDoc{Name: "one"}))
	require.NoError(t, store.Put(ctx, "transcripts/s2_transcript", testDoc{Name: "two"}))
	require.NoError(t, store.Put(ctx, "scenarios/s1", testDoc{Name: "other"}))

	docs, err := store.List(ctx, "transcripts/")
	require.NoError(t, err)
	assert.Len(t, docs, 2)

	// Filename-level prefix narrowing.
	docs, err = store.List(ctx, "transcripts/s1")
	require.NoError(t, err)
	assert.Len(t, docs, 1)
}

func TestLocalStoreListEmptyPrefix(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)

	docs, err := store.List(context.Background(), "nothing/")
	require.NoError(t, err)
	assert.Empty(t, docs)
}
