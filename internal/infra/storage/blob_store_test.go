package storage

import (
	"context"
	"io"
	"strings"
	"testing"

	domainerrors "medico/internal/domain/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gocloud.dev/blob/memblob"
)

func TestBucketStore_PutOpenDelete(t *testing.T) {
	bucket := memblob.OpenBucket(nil)
	t.Cleanup(func() { _ = bucket.Close() })

	store := NewBucketStore(bucket)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "files/abc", "application/pdf", strings.NewReader("%PDF-1.4")))

	ok, err := store.Exists(ctx, "files/abc")
	require.NoError(t, err)
	assert.True(t, ok)

	r, err := store.Open(ctx, "files/abc")
	require.NoError(t, err)
	body, err := io.ReadAll(r)
	require.NoError(t, err)
	require.NoError(t, r.Close())
	assert.Equal(t, "%PDF-1.4", string(body))

	attrs, err := bucket.Attributes(ctx, "files/abc")
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", attrs.ContentType)

	require.NoError(t, store.Delete(ctx, "files/abc"))

	_, err = store.Open(ctx, "files/abc")
	assert.ErrorIs(t, err, domainerrors.ErrFileNotFound)
	assert.ErrorIs(t, store.Delete(ctx, "files/abc"), domainerrors.ErrFileNotFound)
}

func TestRedactedScheme(t *testing.T) {
	assert.Equal(t, "s3", redactedScheme("s3://bucket?region=ap-south-1&awssdk=v2"))
	assert.Equal(t, "mem", redactedScheme("mem://"))
	assert.Equal(t, "unknown", redactedScheme("bucket"))
}
