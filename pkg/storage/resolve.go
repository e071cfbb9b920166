package storage

import (
	"context"
	"fmt"
	"net/url"
	"path"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/config"
)

// Resolver maps a location to a backend and key. Locations of the form
// s3://bucket/key go to S3; anything else is a local path.
type Resolver struct {
	// S3Endpoint overrides the S3 endpoint, e.g. for LocalStack.
	S3Endpoint string
	// Region overrides the region from the shared AWS config.
	Region string
}

// Resolve returns the store holding loc and the key to use with it.
func (r Resolver) Resolve(ctx context.Context, loc string) (BlobStore, string, error) {
	if !strings.HasPrefix(loc, "s3://") {
		return NewLocalStore(filepath.Dir(loc)), filepath.Base(loc), nil
	}

	u, err := url.Parse(loc)
	if err != nil {
		return nil, "", fmt.Errorf("invalid s3 location %q: %w", loc, err)
	}
	key := strings.TrimPrefix(u.Path, "/")
	if u.Host == "" || key == "" {
		return nil, "", fmt.Errorf("invalid s3 location %q: want s3://bucket/key", loc)
	}

	var opts []func(*config.LoadOptions) error
	if r.Region != "" {
		opts = append(opts, config.WithRegion(r.Region))
	}
	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, "", fmt.Errorf("failed to load aws config: %w", err)
	}

	dir, base := path.Split(key)
	return NewS3Store(cfg, u.Host, strings.TrimSuffix(dir, "/"), r.S3Endpoint), base, nil
}
