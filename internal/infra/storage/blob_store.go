// Package storage keeps uploaded files and generated documents in a gocloud.dev bucket.
package storage

import (
	"context"
	"io"
	"log/slog"
	"strings"

	"medico/config"
	domainerrors "medico/internal/domain/errors"
	"medico/internal/domain/service"
	"medico/internal/errors"

	"go.uber.org/fx"
	"gocloud.dev/blob"
	_ "gocloud.dev/blob/fileblob" // file:// buckets for local runs
	_ "gocloud.dev/blob/gcsblob" // gs:// buckets
	_ "gocloud.dev/blob/memblob" // mem:// buckets for tests and throwaway setups
	_ "gocloud.dev/blob/s3blob"  // s3:// buckets
	"gocloud.dev/gcerrors"
)

// Params defines the required parameters
type Params struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	Logger *slog.Logger
}

type bucketStore struct {
	bucket *blob.Bucket
}

// New opens the configured bucket and closes it when the application stops.
func New(params Params) (service.BlobStore, error) {
	url := "mem://"
	if params.Config.Storage != nil && params.Config.Storage.BucketURL != "" {
		url = params.Config.Storage.BucketURL
	}

	bucket, err := blob.OpenBucket(context.Background(), url)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open %s bucket", redactedScheme(url))
	}

	params.Logger.Info("blob store opened", slog.String("bucket", redactedScheme(url)))
	params.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return bucket.Close()
		},
	})

	return NewBucketStore(bucket), nil
}

// NewBucketStore wraps an already opened bucket.
func NewBucketStore(bucket *blob.Bucket) service.BlobStore {
	return &bucketStore{bucket: bucket}
}

func (s *bucketStore) Put(ctx context.Context, key, contentType string, r io.Reader) error {
	w, err := s.bucket.NewWriter(ctx, key, &blob.WriterOptions{ContentType: contentType})
	if err != nil {
		return errors.Wrapf(err, "failed to open blob %s for writing", key)
	}

	if _, err := io.Copy(w, r); err != nil {
		_ = w.Close()

		return errors.Wrapf(err, "failed to write blob %s", key)
	}

	if err := w.Close(); err != nil {
		return errors.Wrapf(err, "failed to commit blob %s", key)
	}

	return nil
}

func (s *bucketStore) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	r, err := s.bucket.NewReader(ctx, key, nil)
	if err != nil {
		if gcerrors.Code(err) == gcerrors.NotFound {
			return nil, domainerrors.ErrFileNotFound.WrapMessage("blob " + key)
		}

		return nil, errors.Wrapf(err, "failed to open blob %s", key)
	}

	return r, nil
}

func (s *bucketStore) Exists(ctx context.Context, key string) (bool, error) {
	ok, err := s.bucket.Exists(ctx, key)
	if err != nil {
		return false, errors.Wrapf(err, "failed to stat blob %s", key)
	}

	return ok, nil
}

func (s *bucketStore) Delete(ctx context.Context, key string) error {
	if err := s.bucket.Delete(ctx, key); err != nil {
		if gcerrors.Code(err) == gcerrors.NotFound {
			return domainerrors.ErrFileNotFound.WrapMessage("blob " + key)
		}

		return errors.Wrapf(err, "failed to delete blob %s", key)
	}

	return nil
}

// redactedScheme keeps only the scheme of a bucket URL so credentials in query strings stay out of logs.
func redactedScheme(url string) string {
	scheme, _, ok := strings.Cut(url, "://")
	if !ok {
		return "unknown"
	}

	return scheme
}
