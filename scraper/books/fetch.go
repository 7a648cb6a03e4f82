package books

import (
	"time"

	"github.com/go-resty/resty/v2"
)

// Some catalog servers reject requests with empty or default client
// identities, so every request carries a fixed browser-like User-Agent.
const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) " +
	"AppleWebKit/537.36 (KHTML, like Gecko) " +
	"Chrome/91.0.4472.124 Safari/537.36"

// fetchOutcome classifies the result of a single page fetch.
type fetchOutcome int

const (
	// fetchOK: HTTP 200, body available.
	fetchOK fetchOutcome = iota
	// fetchAbsent: any non-200 status. The page is treated as missing,
	// not retried.
	fetchAbsent
	// fetchFailed: network-level failure (DNS, timeout, reset).
	fetchFailed
)

type fetcher struct {
	client *resty.Client
}

func newFetcher(timeout time.Duration) *fetcher {
	client := resty.New().
		SetTimeout(timeout).
		SetHeader("User-Agent", userAgent).
		SetRetryCount(0)

	return &fetcher{client: client}
}

// fetchPage issues exactly one GET against url. The returned error is only
// set for fetchFailed outcomes.
func (f *fetcher) fetchPage(url string) (string, fetchOutcome, error) {
	resp, err := f.client.R().Get(url)
	if err != nil {
		return "", fetchFailed, err
	}
	if resp.StatusCode() != 200 {
		return "", fetchAbsent, nil
	}
	return resp.String(), fetchOK, nil
}
