package rankings

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rotisserie/eris"
)

// DefaultURL is the CSV export of the NPDL TOC points sheet.
const DefaultURL = "https://docs.google.com/spreadsheets/d/1oz6E9Bxw7d__DmNWJykS3VcRvJivffX7y_Jqtw7YxcU/export?format=csv&gid=887118024"

// Source supplies raw ranking CSV text.
type Source interface {
	FetchCSV(ctx context.Context) (string, error)
}

// FetchError is a transport failure while fetching rankings. StatusCode is
// set for non-2xx responses, Err for network failures.
type FetchError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch rankings: HTTP %d", e.StatusCode)
	}
	return fmt.Sprintf("fetch rankings: %v", e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// HTTPSource fetches the ranking CSV with a plain GET.
type HTTPSource struct {
	url        string
	httpClient *http.Client
}

// NewHTTPSource returns a source for url with the given request timeout.
func NewHTTPSource(url string, timeout time.Duration) *HTTPSource {
	if url == "" {
		url = DefaultURL
	}
	return &HTTPSource{
		url: url,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// URL returns the address the source fetches.
func (s *HTTPSource) URL() string {
	return s.url
}

func (s *HTTPSource) FetchCSV(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return "", eris.Wrap(err, "rankings: build request")
	}
	req.Header.Set("Accept", "text/csv")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", &FetchError{URL: s.url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &FetchError{URL: s.url, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &FetchError{URL: s.url, Err: err}
	}
	return string(body), nil
}
