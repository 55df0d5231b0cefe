// util/input.go
// Copyright(c) 2024-2026 aircheck contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package util

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"strings"

	"github.com/klauspost/compress/zstd"
)

// InputConfig carries what's needed to fetch remote inputs.
type InputConfig struct {
	GCS GCSClientConfig
	S3  S3ClientConfig
}

// SplitObjectURL splits URLs of the form gs://bucket/object or
// s3://bucket/key into their scheme, bucket and object parts. ok is false
// for anything else, which is then taken to be a local path.
func SplitObjectURL(u string) (scheme, bucket, object string, ok bool) {
	for _, s := range []string{"gs", "s3"} {
		if rest, found := strings.CutPrefix(u, s+"://"); found {
			bucket, object, _ = strings.Cut(rest, "/")
			return s, bucket, object, true
		}
	}
	return "", "", "", false
}

// ReadInput returns the contents of the named input, which may be a local
// file or an object in GCS or S3. Inputs with a .zst extension are
// decompressed transparently.
func ReadInput(ctx context.Context, name string, cfg InputConfig) ([]byte, error) {
	r, err := openInput(ctx, name, cfg)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	b, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}

	if path.Ext(name) == ".zst" {
		if b, err = DecompressZstd(b); err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
	}
	return b, nil
}

func openInput(ctx context.Context, name string, cfg InputConfig) (io.ReadCloser, error) {
	scheme, bucket, object, ok := SplitObjectURL(name)
	if !ok {
		return os.Open(name)
	}

	switch scheme {
	case "gs":
		gcs, err := MakeGCSClient(ctx, bucket, cfg.GCS)
		if err != nil {
			return nil, err
		}
		return gcs.GetReader(ctx, object)

	case "s3":
		s3, err := MakeS3Client(ctx, bucket, cfg.S3)
		if err != nil {
			return nil, err
		}
		return s3.GetReader(ctx, object)

	default:
		return nil, fmt.Errorf("%s: unsupported URL scheme", scheme)
	}
}

func DecompressZstd(b []byte) ([]byte, error) {
	zr, err := zstd.NewReader(bytes.NewReader(b), zstd.WithDecoderConcurrency(0))
	if err != nil {
		return nil, err
	}
	defer zr.Close()

	return io.ReadAll(zr)
}

func CompressZstd(b []byte) ([]byte, error) {
	var buf bytes.Buffer
	zw, err := zstd.NewWriter(&buf)
	if err != nil {
		return nil, err
	}
	if _, err := zw.Write(b); err != nil {
		zw.Close()
		return nil, err
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
