// Package reddit retrieves document batches for analysis. It prefers
// the PullPush archive API, which does not block cloud IPs, and falls
// back to the public Reddit JSON listings when PullPush is unreachable.
// The rest of the pipeline only ever sees the provider-agnostic
// core.Document records this package produces.
package reddit

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"redlens/internal/core"
	"redlens/internal/logger"
)

const (
	// DefaultPullPushURL is the PullPush API root.
	DefaultPullPushURL = "https://api.pullpush.io/reddit"
	// DefaultRedditURL is the public Reddit fallback root.
	DefaultRedditURL = "https://old.reddit.com"

	userAgent = "redlens/0.1 (product insight analyzer)"

	// maxCommentFetchPosts bounds how many posts get their comments
	// fetched, keeping a run's request count predictable.
	maxCommentFetchPosts = 10
)

// Client fetches posts and comments from a subreddit.
type Client struct {
	httpClient  *http.Client
	pullPushURL string
	redditURL   string
	delay       time.Duration // Pause between comment requests
}

// NewClient creates a retrieval client with the given per-request
// timeout.
func NewClient(timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		httpClient:  &http.Client{Timeout: timeout},
		pullPushURL: DefaultPullPushURL,
		redditURL:   DefaultRedditURL,
		delay:       300 * time.Millisecond,
	}
}

// FetchPosts retrieves up to limit posts from a subreddit, optionally
// with up to commentsPerPost comments each. Bounds are clamped to the
// provider limits (1-100 posts, 0-50 comments).
func (c *Client) FetchPosts(ctx context.Context, subreddit string, limit, commentsPerPost int) ([]core.Document, error) {
	subreddit = strings.TrimSpace(subreddit)
	if subreddit == "" {
		return nil, core.ErrNoTarget
	}

	limit = clamp(limit, 1, 100)
	commentsPerPost = clamp(commentsPerPost, 0, 50)

	docs, err := c.fetchFromPullPush(ctx, subreddit, limit)
	if err != nil {
		logger.Warn("PullPush fetch failed, falling back to Reddit", "error", err.Error())
		docs, err = c.fetchFromReddit(ctx, subreddit, limit)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch posts for r/%s: %w", subreddit, err)
		}
	}

	if commentsPerPost > 0 {
		c.attachComments(ctx, subreddit, docs, commentsPerPost)
	}

	return docs, nil
}

// pullPushSubmission is one PullPush search result.
type pullPushSubmission struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Selftext    string  `json:"selftext"`
	Score       int     `json:"score"`
	NumComments int     `json:"num_comments"`
	CreatedUTC  float64 `json:"created_utc"`
}

func (c *Client) fetchFromPullPush(ctx context.Context, subreddit string, limit int) ([]core.Document, error) {
	endpoint := fmt.Sprintf("%s/search/submission/", c.pullPushURL)
	params := url.Values{
		"subreddit": {subreddit},
		"size":      {strconv.Itoa(limit)},
		"sort":      {"desc"},
		"sort_type": {"created_utc"},
	}

	body, err := c.get(ctx, endpoint+"?"+params.Encode())
	if err != nil {
		return nil, err
	}

	var payload struct {
		Data []pullPushSubmission `json:"data"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("failed to decode PullPush response: %w", err)
	}

	docs := make([]core.Document, 0, len(payload.Data))
	for _, item := range payload.Data {
		docs = append(docs, core.Document{
			ID:           item.ID,
			Title:        item.Title,
			Body:         item.Selftext,
			Score:        item.Score,
			CommentCount: item.NumComments,
			CreatedUTC:   item.CreatedUTC,
		})
	}
	return docs, nil
}

// redditListing is the public Reddit JSON listing envelope.
type redditListing struct {
	Data struct {
		Children []struct {
			Kind string `json:"kind"`
			Data struct {
				ID          string  `json:"id"`
				Title       string  `json:"title"`
				Selftext    string  `json:"selftext"`
				Body        string  `json:"body"`
				Score       int     `json:"score"`
				NumComments int     `json:"num_comments"`
				CreatedUTC  float64 `json:"created_utc"`
				Stickied    bool    `json:"stickied"`
			} `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

func (c *Client) fetchFromReddit(ctx context.Context, subreddit string, limit int) ([]core.Document, error) {
	endpoint := fmt.Sprintf("%s/r/%s/new.json?limit=%d", c.redditURL, subreddit, limit)

	body, err := c.get(ctx, endpoint)
	if err != nil {
		return nil, err
	}

	var listing redditListing
	if err := json.Unmarshal(body, &listing); err != nil {
		return nil, fmt.Errorf("failed to decode Reddit listing: %w", err)
	}

	var docs []core.Document
	for _, child := range listing.Data.Children {
		if child.Data.Stickied {
			continue
		}
		docs = append(docs, core.Document{
			ID:           child.Data.ID,
			Title:        child.Data.Title,
			Body:         child.Data.Selftext,
			Score:        child.Data.Score,
			CommentCount: child.Data.NumComments,
			CreatedUTC:   child.Data.CreatedUTC,
		})
	}
	return docs, nil
}

// attachComments enriches the first posts with top comments. Comment
// retrieval is best effort: any failure leaves the post without
// comments rather than failing the batch.
func (c *Client) attachComments(ctx context.Context, subreddit string, docs []core.Document, perPost int) {
	for i := range docs {
		if i >= maxCommentFetchPosts {
			break
		}
		if docs[i].CommentCount == 0 {
			continue
		}

		comments, err := c.fetchCommentsPullPush(ctx, docs[i].ID, perPost)
		if err != nil {
			comments, err = c.fetchCommentsReddit(ctx, subreddit, docs[i].ID, perPost)
			if err != nil {
				logger.Debug("comment fetch failed", "post", docs[i].ID, "error", err.Error())
				continue
			}
		}
		docs[i].Comments = comments

		if c.delay > 0 && i < len(docs)-1 {
			time.Sleep(c.delay)
		}
	}
}

func (c *Client) fetchCommentsPullPush(ctx context.Context, postID string, limit int) ([]string, error) {
	endpoint := fmt.Sprintf("%s/search/comment/", c.pullPushURL)
	params := url.Values{
		"link_id":   {"t3_" + postID},
		"size":      {strconv.Itoa(limit)},
		"sort":      {"desc"},
		"sort_type": {"score"},
	}

	body, err := c.get(ctx, endpoint+"?"+params.Encode())
	if err != nil {
		return nil, err
	}

	var payload struct {
		Data []struct {
			Body string `json:"body"`
		} `json:"data"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("failed to decode PullPush comments: %w", err)
	}

	var comments []string
	for _, item := range payload.Data {
		if skipComment(item.Body) {
			continue
		}
		comments = append(comments, item.Body)
		if len(comments) >= limit {
			break
		}
	}
	return comments, nil
}

func (c *Client) fetchCommentsReddit(ctx context.Context, subreddit, postID string, limit int) ([]string, error) {
	endpoint := fmt.Sprintf("%s/r/%s/comments/%s.json?limit=%d&depth=1", c.redditURL, subreddit, postID, limit)

	body, err := c.get(ctx, endpoint)
	if err != nil {
		return nil, err
	}

	// The comments endpoint returns two listings: the post itself and
	// its comment tree.
	var listings []redditListing
	if err := json.Unmarshal(body, &listings); err != nil {
		return nil, fmt.Errorf("failed to decode Reddit comments: %w", err)
	}
	if len(listings) < 2 {
		return nil, nil
	}

	var comments []string
	for _, child := range listings[1].Data.Children {
		if child.Kind != "t1" || skipComment(child.Data.Body) {
			continue
		}
		comments = append(comments, child.Data.Body)
		if len(comments) >= limit {
			break
		}
	}
	return comments, nil
}

// get performs one GET with the client's user agent and returns the
// response body for 200s.
func (c *Client) get(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("subreddit not found (404)")
	case resp.StatusCode == http.StatusForbidden:
		return nil, fmt.Errorf("subreddit not accessible (403)")
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	return io.ReadAll(resp.Body)
}

func skipComment(body string) bool {
	return body == "" || body == "[deleted]" || body == "[removed]"
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
