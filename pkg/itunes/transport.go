package itunes

import (
	"bytes"
	"context"
	"io/ioutil"
	"net/http"
	"time"

	"github.com/awa/go-iap/appstore"
	"github.com/calmisland/go-errors"
	"github.com/valyala/fasthttp"
)

const defaultTimeout = 30 * time.Second

// Transport posts an encoded request to a verifyReceipt url and returns the status code and raw body
type Transport interface {
	Post(ctx context.Context, url string, body []byte) (int, []byte, error)
}

// HTTPTransport is a Transport backed by net/http
type HTTPTransport struct {
	Client *http.Client
}

// NewHTTPTransport creates a net/http transport with the given timeout
func NewHTTPTransport(timeout time.Duration) *HTTPTransport {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &HTTPTransport{Client: &http.Client{Timeout: timeout}}
}

// Post implements Transport
func (transport *HTTPTransport) Post(ctx context.Context, url string, body []byte) (int, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return 0, nil, errors.Wrap(err, "failed to create request")
	}
	req.Header.Set("Content-Type", appstore.ContentType)

	resp, err := transport.Client.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	raw, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, errors.Wrap(err, "failed to read response body")
	}
	return resp.StatusCode, raw, nil
}

// FastHTTPTransport is a Transport backed by fasthttp
type FastHTTPTransport struct {
	Client  *fasthttp.Client
	Timeout time.Duration
}

// NewFastHTTPTransport creates a fasthttp transport with the given timeout
func NewFastHTTPTransport(timeout time.Duration) *FastHTTPTransport {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &FastHTTPTransport{
		Client:  &fasthttp.Client{Name: "store-receipt-validator"},
		Timeout: timeout,
	}
}

type fastHTTPResult struct {
	status int
	body   []byte
	err    error
}

// Post implements Transport. The context deadline, when earlier, replaces the configured timeout,
// and a cancelled context returns immediately while the exchange is abandoned in the background.
func (transport *FastHTTPTransport) Post(ctx context.Context, url string, body []byte) (int, []byte, error) {
	if err := ctx.Err(); err != nil {
		return 0, nil, err
	}

	deadline := time.Now().Add(transport.Timeout)
	if ctxDeadline, ok := ctx.Deadline(); ok && ctxDeadline.Before(deadline) {
		deadline = ctxDeadline
	}

	done := make(chan fastHTTPResult, 1)
	go func() {
		req := fasthttp.AcquireRequest()
		resp := fasthttp.AcquireResponse()
		defer fasthttp.ReleaseRequest(req)
		defer fasthttp.ReleaseResponse(resp)

		req.SetRequestURI(url)
		req.Header.SetMethod(fasthttp.MethodPost)
		req.Header.SetContentType(appstore.ContentType)
		req.SetBody(body)

		if err := transport.Client.DoDeadline(req, resp, deadline); err != nil {
			done <- fastHTTPResult{err: err}
			return
		}
		done <- fastHTTPResult{status: resp.StatusCode(), body: append([]byte(nil), resp.Body()...)}
	}()

	select {
	case result := <-done:
		return result.status, result.body, result.err
	case <-ctx.Done():
		return 0, nil, ctx.Err()
	}
}
