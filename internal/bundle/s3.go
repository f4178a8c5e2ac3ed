// Where: internal/bundle/s3.go
// What: S3-backed pipeline config bundle fetcher.
// Why: Workstations pull templates.yml and pipeline.yml from the studio config bucket.
package bundle

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3API is the slice of the S3 client the fetcher needs. *s3.Client
// satisfies it.
type S3API interface {
	ListObjectsV2(ctx context.Context, input *s3.ListObjectsV2Input, opts ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
	GetObject(ctx context.Context, input *s3.GetObjectInput, opts ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// S3Fetcher downloads every object under Prefix in Bucket into a project
// directory, preserving relative paths.
type S3Fetcher struct {
	Client S3API
	Bucket string
	Prefix string
}

// Fetch implements ports.BundleFetcher.
func (f S3Fetcher) Fetch(ctx context.Context, destDir string) ([]string, error) {
	if f.Client == nil {
		return nil, fmt.Errorf("s3 client is nil")
	}
	if f.Bucket == "" {
		return nil, fmt.Errorf("sync bucket is not configured")
	}

	prefix := f.Prefix
	if prefix != "" && !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}

	var written []string
	var continuation *string
	for {
		out, err := f.Client.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
			Bucket:            aws.String(f.Bucket),
			Prefix:            aws.String(prefix),
			ContinuationToken: continuation,
		})
		if err != nil {
			return nil, fmt.Errorf("list s3://%s/%s: %w", f.Bucket, prefix, err)
		}

		for _, object := range out.Contents {
			key := aws.ToString(object.Key)
			rel := strings.TrimPrefix(key, prefix)
			if rel == "" || strings.HasSuffix(rel, "/") {
				continue
			}
			if err := f.download(ctx, key, filepath.Join(destDir, filepath.FromSlash(rel))); err != nil {
				return written, err
			}
			written = append(written, rel)
		}

		if out.NextContinuationToken == nil {
			break
		}
		continuation = out.NextContinuationToken
	}
	return written, nil
}

func (f S3Fetcher) download(ctx context.Context, key, dest string) error {
	out, err := f.Client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(f.Bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("get s3://%s/%s: %w", f.Bucket, key, err)
	}
	defer out.Body.Close()

	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return err
	}
	file, err := os.Create(dest)
	if err != nil {
		return err
	}
	defer file.Close()

	if _, err := io.Copy(file, out.Body); err != nil {
		return fmt.Errorf("write %s: %w", dest, err)
	}
	return nil
}
