package datapackage

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
)

// A StatusError reports an HTTP response outside the 2xx range.
type StatusError struct {
	URL        string
	StatusCode int
	Status     string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("GET %s: %s", e.URL, e.Status)
}

// open returns the contents of a local file or an http(s) URL.
func (r *Reader) open(ctx context.Context, address string) (io.ReadCloser, error) {

	if !isURL(address) {
		return os.Open(strings.TrimPrefix(address, "file://"))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, address, nil)
	if err != nil {
		return nil, err
	}
	if r.UserAgent != "" {
		req.Header.Set("User-Agent", r.UserAgent)
	}

	resp, err := r.client().Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		resp.Body.Close()
		return nil, &StatusError{URL: address, StatusCode: resp.StatusCode, Status: resp.Status}
	}

	return resp.Body, nil
}

// multiReadCloser reads the parts of a resource one after another.
type multiReadCloser struct {
	io.Reader
	closers []io.Closer
}

func (m *multiReadCloser) Close() error {
	var first error
	for _, c := range m.closers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// openParts opens every part of a resource.  Parts are separated by a
// line break so that a part without a trailing newline does not run
// into the next one.
func (r *Reader) openParts(ctx context.Context, addresses []string) (io.ReadCloser, error) {

	if len(addresses) == 1 {
		return r.open(ctx, addresses[0])
	}

	m := &multiReadCloser{}
	readers := make([]io.Reader, 0, 2*len(addresses))
	for i, a := range addresses {
		rc, err := r.open(ctx, a)
		if err != nil {
			m.Close()
			return nil, err
		}
		m.closers = append(m.closers, rc)
		if i > 0 {
			readers = append(readers, strings.NewReader("\n"))
		}
		readers = append(readers, rc)
	}
	m.Reader = io.MultiReader(readers...)

	return m, nil
}
