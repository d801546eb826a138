package retry

import (
	"net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"
)

// NewHTTPClient configures a retrying HTTP client according to the given
// strategy. The decoded policy is configuration; this is the execution
// machinery that consumes it.
func NewHTTPClient(strategy Strategy) *retryablehttp.Client {
	client := retryablehttp.NewClient()
	client.Logger = nil

	switch p := strategy.(type) {
	case GiveUp:
		client.RetryMax = 0

	case Once:
		client.RetryMax = 1
		client.RetryWaitMin = p.Delay
		client.RetryWaitMax = p.Delay
		client.Backoff = fixedBackoff(p.Delay)

	case Constant:
		client.RetryMax = p.MaxRetries
		client.RetryWaitMin = p.Delay
		client.RetryWaitMax = p.Delay
		client.Backoff = fixedBackoff(p.Delay)

	case Exponential:
		client.RetryMax = p.MaxRetries
		client.RetryWaitMin = p.Delay
		client.RetryWaitMax = p.MaxDelay
		client.Backoff = retryablehttp.DefaultBackoff
	}

	return client
}

func fixedBackoff(delay time.Duration) retryablehttp.Backoff {
	return func(min, max time.Duration, attemptNum int, resp *http.Response) time.Duration {
		return delay
	}
}
