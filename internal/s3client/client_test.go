package s3client

import (
	"context"
	"net/url"
	"testing"

	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/datashelf/shelf/internal/resolve"
)

func TestNewCarriesResolvedSettings(t *testing.T) {
	endpoint, err := url.Parse("https://my-bucket.minio.local:9000")
	require.NoError(t, err)

	settings := resolve.S3Settings{
		Credentials: credentials.NewStaticCredentialsProvider("resolved-access", "resolved-secret", ""),
		Region:      "eu-west-1",
		Endpoint:    endpoint,
	}

	client, err := New(context.Background(), settings)
	require.NoError(t, err)

	opts := client.Options()
	assert.Equal(t, "eu-west-1", opts.Region)
	require.NotNil(t, opts.BaseEndpoint)
	assert.Equal(t, "https://my-bucket.minio.local:9000", *opts.BaseEndpoint)

	creds, err := opts.Credentials.Retrieve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "resolved-access", creds.AccessKeyID)
	assert.Equal(t, "resolved-secret", creds.SecretAccessKey)
}
