package pubsub

import (
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"
)

const maxRetries = 3

type client struct {
	*retryablehttp.Client
}

func newHTTPClient(requestTimeout time.Duration) *client {
	retryClient := retryablehttp.NewClient()
	retryClient.Logger = nil
	retryClient.RetryMax = maxRetries
	retryClient.RetryWaitMin = 100 * time.Millisecond
	retryClient.RetryWaitMax = time.Second
	retryClient.HTTPClient.Timeout = requestTimeout
	return &client{retryClient}
}

func (c *client) post(
	url, bodyString string, header map[string]string,
) (int, string, error) {
	req, err := retryablehttp.NewRequest(
		http.MethodPost, url, strings.NewReader(bodyString),
	)
	if err != nil {
		return 0, "", err
	}

	for key, value := range header {
		req.Header.Set(key, value)
	}

	rs, err := c.Do(req)
	if err != nil {
		return 0, "", err
	}
	defer rs.Body.Close()

	bodyBytes, err := io.ReadAll(rs.Body)
	if err != nil {
		return -1, "", err
	}
	return rs.StatusCode, string(bodyBytes), nil
}
