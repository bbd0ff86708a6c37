package pipeline

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// OpenInput opens path for a stage's `< path` redirection (spec §4.6).
// A bare path opens a local file; an `s3://bucket/key` target is
// generalized (SPEC_FULL.md's "redirect" domain-stack addition) to
// stream the object through minio-go instead.
func OpenInput(path string) (io.ReadCloser, error) {
	if bucket, key, ok := parseS3URL(path); ok {
		client, err := s3Client()
		if err != nil {
			return nil, err
		}
		obj, err := client.GetObject(contextBackground(), bucket, key, minio.GetObjectOptions{})
		if err != nil {
			return nil, fmt.Errorf("pipeline: s3 get %s: %w", path, err)
		}
		return obj, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("pipeline: open %s: %w", path, err)
	}
	return f, nil
}

// OpenOutput opens path for a stage's `> path` redirection. It
// returns an io.WriteCloser the caller must Close once the stage has
// finished writing (spec §5's "reverted on every exit path").
func OpenOutput(path string) (io.WriteCloser, error) {
	if bucket, key, ok := parseS3URL(path); ok {
		client, err := s3Client()
		if err != nil {
			return nil, err
		}
		return newS3Sink(client, bucket, key), nil
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("pipeline: create %s: %w", path, err)
	}
	return f, nil
}

func parseS3URL(path string) (bucket, key string, ok bool) {
	const scheme = "s3://"
	if !strings.HasPrefix(path, scheme) {
		return "", "", false
	}
	rest := strings.TrimPrefix(path, scheme)
	idx := strings.Index(rest, "/")
	if idx < 0 {
		return rest, "", true
	}
	return rest[:idx], rest[idx+1:], true
}

// s3Client lazily builds a minio client from the S3_ENDPOINT/
// S3_ACCESS_KEY/S3_SECRET_KEY environment, mirroring the teacher's S3
// backend's own credential handling (spec's redirect sink has no
// config object of its own to thread through, per §4.6's one-shot
// redirection use).
func s3Client() (*minio.Client, error) {
	endpoint := os.Getenv("S3_ENDPOINT")
	if endpoint == "" {
		return nil, fmt.Errorf("pipeline: S3_ENDPOINT not set for s3:// redirection")
	}
	secure := os.Getenv("S3_SECURE") != "false"

	return minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(os.Getenv("S3_ACCESS_KEY"), os.Getenv("S3_SECRET_KEY"), ""),
		Secure: secure,
	})
}
