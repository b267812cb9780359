package gateway

import (
	"compress/gzip"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"
)

// NewHTTPClient builds the backend HTTP client: optional proxy, gzip
// decoding and a request timeout (0 disables it).
func NewHTTPClient(timeout time.Duration, proxy string, logger *zap.Logger) *http.Client {
	transport := &http.Transport{
		MaxIdleConns:        100,
		IdleConnTimeout:     30 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
	}

	if proxy != "" {
		proxyURL, err := url.Parse(proxy)
		if err != nil {
			logger.Warn("invalid api proxy, connecting directly", zap.String("proxy", proxy), zap.Error(err))
		} else {
			transport.Proxy = http.ProxyURL(proxyURL)
			logger.Info("api client using proxy", zap.String("proxy", proxy))
		}
	}

	return &http.Client{
		Timeout:   timeout,
		Transport: &gzipTransport{next: transport, logger: logger},
	}
}

type gzipTransport struct {
	next   http.RoundTripper
	logger *zap.Logger
}

func (t *gzipTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req.Header.Set("Accept-Encoding", "gzip")
	resp, err := t.next.RoundTrip(req)
	if err != nil {
		return nil, err
	}

	if resp.Header.Get("Content-Encoding") == "gzip" {
		zr, err := gzip.NewReader(resp.Body)
		if err != nil {
			t.logger.Warn("gzip decode failed, passing body through", zap.Error(err))
			return resp, nil
		}
		resp.Body = &gzipReadCloser{Reader: zr, body: resp.Body}
		resp.Header.Del("Content-Encoding")
		resp.ContentLength = -1
	}
	return resp, nil
}

type gzipReadCloser struct {
	*gzip.Reader
	body io.ReadCloser
}

func (g *gzipReadCloser) Close() error {
	if err := g.Reader.Close(); err != nil {
		_ = g.body.Close()
		return err
	}
	return g.body.Close()
}
