package services

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// MinContentLength is the smallest corpus worth analyzing. The orchestrator
// re-checks this independently on whatever text reaches it.
const MinContentLength = 50

// maxCorpusLength bounds the scraped text to keep downstream prompts small.
const maxCorpusLength = 15000

// Many sites reject default/blank user agents outright.
const browserUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

var youtubeRegex = regexp.MustCompile(`(?:youtube\.com/(?:watch\?v=|embed/|shorts/)|youtu\.be/)([\w-]{11})`)

var whitespaceRegex = regexp.MustCompile(`\s+`)

// Tags that never carry article text.
const boilerplateSelector = "script, style, nav, footer, header, noscript, iframe, svg, button, input, form"

type transcriptFetcher interface {
	GetTranscript(videoID string) (string, error)
}

// ScraperService turns a URL into a plain-text corpus: caption transcripts
// for video hosts (with a page-metadata fallback), goquery article extraction
// for everything else.
type ScraperService struct {
	httpClient  *http.Client
	transcripts transcriptFetcher
}

func NewScraperService(transcripts transcriptFetcher) *ScraperService {
	return &ScraperService{
		httpClient:  &http.Client{Timeout: 30 * time.Second},
		transcripts: transcripts,
	}
}

// Scrape fetches and extracts analyzable text from a URL. All failures come
// back as *AcquisitionError.
func (s *ScraperService) Scrape(ctx context.Context, pageURL string) (string, error) {
	if pageURL == "" {
		return "", &AcquisitionError{Reason: AcquireReasonNetwork, Message: "URL is empty."}
	}

	if matches := youtubeRegex.FindStringSubmatch(pageURL); len(matches) >= 2 {
		return s.scrapeVideo(ctx, pageURL, matches[1])
	}

	return s.scrapeArticle(ctx, pageURL)
}

func (s *ScraperService) scrapeVideo(ctx context.Context, pageURL, videoID string) (string, error) {
	transcript, err := s.transcripts.GetTranscript(videoID)
	if err == nil {
		return truncate(transcript, maxCorpusLength), nil
	}

	log.Printf("Transcript fetch failed for %s, falling back to metadata: %v", videoID, err)

	doc, ferr := s.fetchDocument(ctx, pageURL)
	if ferr != nil {
		return "", ferr
	}

	title := strings.TrimSpace(doc.Find("meta[name='title']").AttrOr("content", ""))
	if title == "" {
		title = strings.TrimSpace(doc.Find("title").First().Text())
	}
	description := strings.TrimSpace(doc.Find("meta[name='description']").AttrOr("content", ""))
	if description == "" {
		description = strings.TrimSpace(doc.Find("meta[property='og:description']").AttrOr("content", ""))
	}

	if title == "" && description == "" {
		return "", &AcquisitionError{
			Reason:  AcquireReasonNoMetadata,
			Message: "No transcript is available and the video page exposes no metadata. Please paste the text manually.",
			Err:     err,
		}
	}

	return fmt.Sprintf("[TRANSCRIPT UNAVAILABLE] Analysis based on metadata:\n\nTitle: %s\nDescription: %s", title, description), nil
}

func (s *ScraperService) scrapeArticle(ctx context.Context, pageURL string) (string, error) {
	doc, err := s.fetchDocument(ctx, pageURL)
	if err != nil {
		return "", err
	}

	doc.Find(boilerplateSelector).Remove()

	// Prefer a dedicated article container before falling back to the body.
	content := doc.Find("article").Text()
	if strings.TrimSpace(content) == "" {
		content = doc.Find("main").Text()
	}
	if strings.TrimSpace(content) == "" {
		content = doc.Find("div.content").Text()
	}
	if strings.TrimSpace(content) == "" {
		content = doc.Find("body").Text()
	}

	content = strings.TrimSpace(whitespaceRegex.ReplaceAllString(content, " "))

	if len(content) < MinContentLength {
		return "", &AcquisitionError{
			Reason:  AcquireReasonTooShort,
			Message: "Could not extract meaningful text from this URL. It might be protected or empty. Please paste the text manually.",
		}
	}

	return truncate(content, maxCorpusLength), nil
}

func (s *ScraperService) fetchDocument(ctx context.Context, pageURL string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, &AcquisitionError{
			Reason:  AcquireReasonNetwork,
			Message: "The URL is not valid. Please check it or paste the text manually.",
			Err:     err,
		}
	}
	req.Header.Set("User-Agent", browserUserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, &AcquisitionError{
			Reason:  AcquireReasonNetwork,
			Message: "Server could not access this URL (network error). Please paste the text manually.",
			Err:     err,
		}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &AcquisitionError{
			Reason:  AcquireReasonNetwork,
			Message: fmt.Sprintf("Failed to fetch URL: %s. Please paste the text manually.", resp.Status),
		}
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, &AcquisitionError{
			Reason:  AcquireReasonNetwork,
			Message: "Could not parse the fetched page. Please paste the text manually.",
			Err:     err,
		}
	}

	return doc, nil
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
