// Package ingest retrieves a job posting from a URL and reduces it to the
// plain text the analysis pipeline consumes. Static HTML is fetched over
// plain HTTP; pages that render client-side fall back to a headless
// browser.
package ingest

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"github.com/jonathan/smartmatch-advisor/internal/apperrors"
)

const (
	defaultTimeout   = 30 * time.Second
	defaultUserAgent = "Mozilla/5.0 (compatible; SmartMatchAdvisor/1.0)"
)

// contentSelectors are tried in order; the first match is taken as the
// posting body. The trailing body fallback always matches.
var contentSelectors = []string{
	"main",
	"article",
	".job-description",
	"#job-description",
	".description",
	".content",
	"#content",
	"body",
}

var whitespaceRun = regexp.MustCompile(`[ \t]+`)
var blankLines = regexp.MustCompile(`\n{3,}`)

// Fetcher retrieves job postings. The zero timeout means defaultTimeout.
type Fetcher struct {
	client  *http.Client
	browser bool
	log     *zap.Logger
}

// NewFetcher builds a Fetcher. browser enables the headless rendering
// fallback for pages whose static HTML carries too little text.
func NewFetcher(timeout time.Duration, browser bool, log *zap.Logger) *Fetcher {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Fetcher{
		client:  &http.Client{Timeout: timeout},
		browser: browser,
		log:     log,
	}
}

// JobText fetches the posting at rawURL and returns its plain text. When
// the static fetch yields too little content and browser rendering is
// enabled, the page is re-rendered headlessly before extraction.
func (f *Fetcher) JobText(ctx context.Context, rawURL string) (string, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return "", &apperrors.ValidationError{Field: "job_url", Message: "not a valid absolute URL"}
	}

	html, err := f.fetchHTML(ctx, rawURL)
	if err != nil {
		return "", err
	}

	text, err := ExtractText(html)
	if err != nil {
		return "", &apperrors.ExternalServiceError{Service: "job posting", Cause: err}
	}

	if f.browser && ShouldUseBrowser(text) {
		f.log.Info("static fetch too thin, rendering in browser", zap.String("url", rawURL))
		rendered, renderErr := renderHTML(ctx, rawURL, f.client.Timeout)
		if renderErr != nil {
			f.log.Warn("browser rendering failed, keeping static text", zap.Error(renderErr))
			return text, nil
		}
		if renderedText, extractErr := ExtractText(rendered); extractErr == nil && len(renderedText) > len(text) {
			text = renderedText
		}
	}

	return text, nil
}

func (f *Fetcher) fetchHTML(ctx context.Context, rawURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", &apperrors.ExternalServiceError{Service: "job posting", Cause: err}
	}
	req.Header.Set("User-Agent", defaultUserAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return "", &apperrors.ExternalServiceError{Service: "job posting", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", &apperrors.ExternalServiceError{
			Service: "job posting",
			Cause:   fmt.Errorf("HTTP status %d from %s", resp.StatusCode, rawURL),
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &apperrors.ExternalServiceError{Service: "job posting", Cause: err}
	}
	return string(body), nil
}

// ExtractText parses HTML, strips navigation and boilerplate elements,
// and returns the cleaned text of the first matching content selector.
func ExtractText(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("parse HTML: %w", err)
	}

	doc.Find("nav, footer, header, script, style, noscript, .ad, .ads, .sidebar, .cookie-banner, .popup").Remove()

	for _, selector := range contentSelectors {
		if selection := doc.Find(selector); selection.Length() > 0 {
			return cleanWhitespace(selection.First().Text()), nil
		}
	}
	return "", nil
}

func cleanWhitespace(text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(whitespaceRun.ReplaceAllString(line, " "))
	}
	text = strings.Join(lines, "\n")
	text = blankLines.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}
