// Where: internal/tracking/aws_factory.go
// What: AWS client factory for the tracking mirror.
// Why: Encapsulate SDK configuration for the studio-local endpoints.
package tracking

import (
	"context"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
)

const defaultAWSRegion = "us-west-2"

// NewDynamoClient builds a DynamoDB client for the tracking mirror. An
// empty endpoint uses the default AWS resolution, which lets production
// point at the real regional tables while workstations use a local mirror.
func NewDynamoClient(ctx context.Context, endpoint string) (DynamoAPI, error) {
	cfg, err := loadAWSConfig(ctx, trackingAccessKey(), trackingSecretKey())
	if err != nil {
		return nil, err
	}
	client := dynamodb.NewFromConfig(cfg, func(options *dynamodb.Options) {
		if endpoint != "" {
			options.BaseEndpoint = aws.String(endpoint)
		}
	})
	return client, nil
}

func loadAWSConfig(
	ctx context.Context,
	accessKey string,
	secretKey string,
) (aws.Config, error) {
	region := os.Getenv("AWS_REGION")
	if region == "" {
		region = defaultAWSRegion
	}

	creds := credentials.NewStaticCredentialsProvider(accessKey, secretKey, "")
	cfg, err := config.LoadDefaultConfig(
		ctx,
		config.WithRegion(region),
		config.WithCredentialsProvider(creds),
	)
	if err != nil {
		return aws.Config{}, err
	}
	return cfg, nil
}

func trackingAccessKey() string {
	if value := os.Getenv("TRACKING_ACCESS_KEY"); value != "" {
		return value
	}
	return "dummy"
}

func trackingSecretKey() string {
	if value := os.Getenv("TRACKING_SECRET_KEY"); value != "" {
		return value
	}
	return "dummy"
}
