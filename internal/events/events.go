// Package events talks to the Perplexity chat-completions API. One query is
// one stateless network call: no retries, no caching, no client-side
// deadline beyond the transport's own timeout. The reply comes back as raw
// text; interpreting it is the normalize package's job.
package events

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const defaultBaseURL = "https://api.perplexity.ai"

// ErrNoAPIKey means no credential is configured. It is returned before any
// network I/O so the caller can show a configuration hint instead of a
// transport failure.
var ErrNoAPIKey = errors.New("no API key configured (set PPLX_API_KEY or api_key in the config file)")

// TransportError wraps a network, auth, or HTTP-status failure talking to
// the remote endpoint.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string { return "events API: " + e.Err.Error() }
func (e *TransportError) Unwrap() error { return e.Err }

// Options configures a Client. Zero values fall back to sane defaults;
// Place and Domains come from the config file.
type Options struct {
	Model   string
	BaseURL string
	Place   string   // short place name used in query strings, e.g. "Logan"
	Region  string   // full region label for the system prompt
	Domains []string // allowed source domains
}

// Client issues event queries against the remote completion endpoint.
type Client struct {
	apiKey  string
	model   string
	baseURL string
	place   string
	region  string
	domains []string
	client  *http.Client
}

// New builds a Client. An empty API key is a configuration error and no
// Client is returned.
func New(apiKey string, opts Options) (*Client, error) {
	if apiKey == "" {
		return nil, ErrNoAPIKey
	}
	model := opts.Model
	if model == "" {
		model = "sonar-pro"
	}
	baseURL := opts.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	place := opts.Place
	if place == "" {
		place = "Logan"
	}
	region := opts.Region
	if region == "" {
		region = "Logan, Utah and Cache County"
	}
	return &Client{
		apiKey:  apiKey,
		model:   model,
		baseURL: baseURL,
		place:   place,
		region:  region,
		domains: opts.Domains,
		client:  &http.Client{Timeout: 30 * time.Second},
	}, nil
}

const systemPromptFormat = `**ROLE**: You are a local events assistant for %s, tasked with providing current community information exclusively from official city/county sources and trusted local organizations.

**CORE FUNCTION**: Retrieve and present event details, news updates, and official announcements that reflect authentic local programming and community initiatives.

**SEARCH PROTOCOL**:
1. **Scope**:
   - Search ONLY within these domains:
%s   - Include subdomains where applicable.
2. **Query Execution**:
   - For the user's query: *"%s"*, prioritize:
      - **Recency**: Events occurring in the next 90 days or news from the past 3 months. If insufficient, include older content with clear date labeling.
      - **Relevance**: Official city announcements, festival details, community meetings, and local business initiatives.
   - Use domain-specific search operators to maintain focus.
3. **Content Filtering**:
   - **Exclude**:
      - Virtual/national events not specific to the area
      - Classifieds/job postings unless explicitly requested
      - Duplicate listings across domains
   - **Flag**: Expired events with original dates and archive notices

**OUTPUT REQUIREMENTS**:
- **OUTPUT FORMAT**: **IMPORTANT:** Return the results as a JSON array, where each item is a JSON object with the following keys: "title", "dates", "location", "description", and "source".
- Include essential details: event dates/times, registration requirements, primary organizers, news article publication dates.
- If no valid results: return an empty JSON array.

If there is news to report in addition to events, include a special object in the JSON array with "type": "news" and "content": containing the news text.`

func (c *Client) systemPrompt(query string) string {
	var domains strings.Builder
	for _, d := range c.domains {
		fmt.Fprintf(&domains, "      - %q\n", d)
	}
	return fmt.Sprintf(systemPromptFormat, c.region, domains.String(), query)
}

// Today queries today's events and news.
func (c *Client) Today(ctx context.Context) (string, error) {
	return c.Fetch(ctx, fmt.Sprintf("What news and events do we have for today in %s?", c.place))
}

// Upcoming queries events over the next days days.
func (c *Client) Upcoming(ctx context.Context, days int) (string, error) {
	return c.Fetch(ctx, fmt.Sprintf("What events are happening in %s in the next %d days?", c.place, days))
}

// ByCategory queries events in one category, e.g. "music".
func (c *Client) ByCategory(ctx context.Context, category string) (string, error) {
	return c.Fetch(ctx, fmt.Sprintf("What %s events are happening in %s?", strings.ToLower(category), c.place))
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Fetch performs one chat-completion call with the given user query and
// returns the raw reply text.
func (c *Client) Fetch(ctx context.Context, query string) (string, error) {
	if c.apiKey == "" {
		return "", ErrNoAPIKey
	}

	body, _ := json.Marshal(chatRequest{
		Model:       c.model,
		Temperature: 0,
		Messages: []chatMessage{
			{Role: "system", Content: c.systemPrompt(query)},
			{Role: "user", Content: query},
		},
	})

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", &TransportError{Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", &TransportError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return "", &TransportError{Err: fmt.Errorf("%d: %s", resp.StatusCode, string(b))}
	}

	var cr chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&cr); err != nil {
		return "", &TransportError{Err: err}
	}
	if len(cr.Choices) == 0 {
		return "", &TransportError{Err: errors.New("empty completion response")}
	}
	return cr.Choices[0].Message.Content, nil
}
