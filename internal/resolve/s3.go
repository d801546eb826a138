// Package resolve computes effective connection parameters from a storage
// definition plus the process-wide defaults.
//
// Every function here is pure: total over well-formed input, deterministic,
// no I/O, and safe for concurrent use without coordination. Only decoding
// can fail; resolution never does.
package resolve

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"

	"github.com/datashelf/shelf/internal/config"
	"github.com/datashelf/shelf/pkg/storage"
)

const (
	// DefaultRegion is used when no region can be derived from the storage
	// definition.
	DefaultRegion = "us-east-1"

	// GlobalRegion marks third-party endpoints where no region-specific
	// request signing applies.
	GlobalRegion = "aws-global"

	awsHostSuffix = "amazonaws.com"
)

// S3Settings are the effective connection parameters for an S3 storage.
type S3Settings struct {
	Credentials aws.CredentialsProvider
	Region      string
	Endpoint    *url.URL
}

// BucketAddress computes the bucket-scoped endpoint URL. The three branches
// are mutually exclusive and exhaustive over (endpoint presence, scheme
// presence). A scheme-less host:port pair parses under net/url as an opaque
// URL; it counts as scheme-less here.
func BucketAddress(bucket string, endpoint *url.URL, region storage.RegionID) *url.URL {
	switch {
	case endpoint != nil && endpoint.Scheme != "" && endpoint.Opaque == "":
		host := bucket + "." + endpoint.Hostname()
		if port := endpoint.Port(); port != "" {
			host += ":" + port
		}
		addr := *endpoint
		addr.Host = host
		return &addr

	case endpoint != nil:
		// Scheme-less endpoints are bare hosts.
		return &url.URL{Scheme: "https", Host: bucket + "." + bareHost(endpoint)}

	case region != "":
		return &url.URL{Scheme: "https", Host: fmt.Sprintf("%s.s3.%s.%s", bucket, region, awsHostSuffix)}

	default:
		return &url.URL{Scheme: "https", Host: fmt.Sprintf("%s.s3.%s", bucket, awsHostSuffix)}
	}
}

// S3ConnectionSettings resolves credentials, region and endpoint URL for an
// S3 storage against the global defaults.
//
// Each of the access and secret keys falls back independently: the explicit
// value wins, and the global default applies only when the endpoint is
// trusted. Both keys resolved means static credentials; anything less means
// anonymous access.
func S3ConnectionSettings(s storage.S3, defaults config.S3Defaults) S3Settings {
	trusted := isTrustedEndpoint(s.Endpoint, defaults.Endpoints)

	accessKey := s.AccessKey
	if accessKey.IsZero() && trusted {
		accessKey = defaults.AccessKey
	}
	secretKey := s.SecretKey
	if secretKey.IsZero() && trusted {
		secretKey = defaults.SecretKey
	}

	var creds aws.CredentialsProvider = aws.AnonymousCredentials{}
	if !accessKey.IsZero() && !secretKey.IsZero() {
		creds = credentials.NewStaticCredentialsProvider(accessKey.Reveal(), secretKey.Reveal(), "")
	}

	return S3Settings{
		Credentials: creds,
		Region:      resolveRegion(s),
		Endpoint:    BucketAddress(s.Bucket, s.Endpoint, s.Region),
	}
}

// isTrustedEndpoint reports whether fallback credentials may be applied.
// An absent endpoint means AWS proper and is trusted; otherwise the
// endpoint must equal one of the configured default endpoints. Keeping this
// a named predicate keeps the anti-leak rule auditable.
func isTrustedEndpoint(endpoint *url.URL, trusted []*url.URL) bool {
	if endpoint == nil {
		return true
	}
	for _, t := range trusted {
		if sameEndpoint(endpoint, t) {
			return true
		}
	}
	return false
}

func sameEndpoint(a, b *url.URL) bool {
	return normalizeEndpoint(a) == normalizeEndpoint(b)
}

func normalizeEndpoint(u *url.URL) string {
	return strings.TrimSuffix(u.String(), "/")
}

// resolveRegion picks the signing region. Endpoints whose host contains the
// canonical AWS domain suffix are treated as AWS; this is a substring
// check, not structured host parsing, so a third-party host embedding the
// suffix also matches.
func resolveRegion(s storage.S3) string {
	if s.Region != "" {
		return string(s.Region)
	}
	if s.Endpoint == nil {
		return DefaultRegion
	}
	if strings.Contains(endpointHost(s.Endpoint), awsHostSuffix) {
		return DefaultRegion
	}
	return GlobalRegion
}

func endpointHost(u *url.URL) string {
	if u.Scheme != "" && u.Opaque == "" {
		return u.Hostname()
	}
	return bareHost(u)
}

// bareHost extracts the host from a scheme-less endpoint. url.Parse leaves a
// bare host in the path component and a host:port pair in scheme plus
// opaque.
func bareHost(u *url.URL) string {
	if u.Opaque != "" {
		return u.Scheme + ":" + u.Opaque
	}
	if u.Host != "" {
		return u.Host
	}
	return strings.TrimSuffix(u.Path, "/")
}
