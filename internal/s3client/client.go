// Package s3client builds S3 API clients from resolved connection
// settings.
package s3client

import (
	"context"
	"fmt"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/datashelf/shelf/internal/resolve"
)

// New builds an S3 client from resolved connection settings. No network
// traffic happens here; the client dials lazily on first use.
func New(ctx context.Context, settings resolve.S3Settings) (*s3.Client, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(settings.Region),
		awsconfig.WithCredentialsProvider(settings.Credentials),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	endpoint := settings.Endpoint.String()
	return s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = &endpoint
	}), nil
}
