// Where: internal/bundle/aws_factory.go
// What: AWS client factory for the config bucket.
// Why: Encapsulate SDK configuration for the studio S3 endpoint.
package bundle

import (
	"context"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

const defaultAWSRegion = "us-west-2"

// NewS3Client builds an S3 client for the config bucket. An empty
// endpoint uses default AWS resolution; studio-local object stores set
// one and get path-style addressing.
func NewS3Client(ctx context.Context, endpoint string) (S3API, error) {
	region := os.Getenv("AWS_REGION")
	if region == "" {
		region = defaultAWSRegion
	}

	creds := credentials.NewStaticCredentialsProvider(bundleAccessKey(), bundleSecretKey(), "")
	cfg, err := config.LoadDefaultConfig(
		ctx,
		config.WithRegion(region),
		config.WithCredentialsProvider(creds),
	)
	if err != nil {
		return nil, err
	}

	client := s3.NewFromConfig(cfg, func(options *s3.Options) {
		if endpoint != "" {
			options.BaseEndpoint = aws.String(endpoint)
			options.UsePathStyle = true
		}
	})
	return client, nil
}

func bundleAccessKey() string {
	if value := os.Getenv("BUNDLE_ACCESS_KEY"); value != "" {
		return value
	}
	return "dummy"
}

func bundleSecretKey() string {
	if value := os.Getenv("BUNDLE_SECRET_KEY"); value != "" {
		return value
	}
	return "dummy"
}
