package netutil

import (
	"bufio"
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// HTTPTimeout bounds a document download.
var HTTPTimeout = 60 * time.Second

// GetHTTPDoc downloads a document and returns its lines. With quote set the
// path of the URL (everything after scheme://host/) is escaped first.
func GetHTTPDoc(ctx context.Context, docURL string, quote bool) ([]string, error) {
	if quote {
		docURL = quotePath(docURL)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, docURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	client := &http.Client{Timeout: HTTPTimeout}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", docURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return nil, fmt.Errorf("get %s: %s", docURL, resp.Status)
	}

	var lines []string
	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", docURL, err)
	}
	return lines, nil
}

func quotePath(docURL string) string {
	parts := strings.SplitN(docURL, "/", 4)
	if len(parts) < 4 {
		return docURL
	}
	segments := strings.Split(parts[3], "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	parts[3] = strings.Join(segments, "/")
	return strings.Join(parts, "/")
}
