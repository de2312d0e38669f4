package reddit

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"redlens/internal/core"
)

func newTestClient(pullPushURL, redditURL string) *Client {
	return &Client{
		httpClient:  &http.Client{Timeout: 5 * time.Second},
		pullPushURL: pullPushURL,
		redditURL:   redditURL,
		delay:       0,
	}
}

func TestFetchPosts_NoSubreddit(t *testing.T) {
	c := newTestClient("http://unused", "http://unused")
	if _, err := c.FetchPosts(context.Background(), "   ", 10, 0); !errors.Is(err, core.ErrNoTarget) {
		t.Errorf("err = %v, want ErrNoTarget", err)
	}
}

func TestFetchPosts_PullPush(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.URL.Path, "/search/submission/") {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("subreddit"); got != "gadgets" {
			t.Errorf("subreddit param = %q", got)
		}
		if got := r.Header.Get("User-Agent"); !strings.HasPrefix(got, "redlens/") {
			t.Errorf("User-Agent = %q", got)
		}
		w.Write([]byte(`{"data":[
			{"id":"p1","title":"Battery drain","selftext":"drains fast","score":12,"num_comments":4,"created_utc":1700000000},
			{"id":"p2","title":"Camera test","selftext":"","score":3,"num_comments":0,"created_utc":1700000100}
		]}`))
	}))
	defer server.Close()

	c := newTestClient(server.URL, "http://unused")
	docs, err := c.FetchPosts(context.Background(), "gadgets", 10, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(docs) != 2 {
		t.Fatalf("got %d docs, want 2", len(docs))
	}
	if docs[0].ID != "p1" || docs[0].Title != "Battery drain" || docs[0].Body != "drains fast" {
		t.Errorf("docs[0] = %+v", docs[0])
	}
	if docs[0].Score != 12 || docs[0].CommentCount != 4 {
		t.Errorf("docs[0] counters = %+v", docs[0])
	}
}

func TestFetchPosts_FallsBackToReddit(t *testing.T) {
	pullPush := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer pullPush.Close()

	reddit := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/r/gadgets/new.json" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Write([]byte(`{"data":{"children":[
			{"kind":"t3","data":{"id":"s1","title":"Pinned megathread","stickied":true}},
			{"kind":"t3","data":{"id":"p1","title":"Screen cracked","selftext":"sad","score":7,"num_comments":2}}
		]}}`))
	}))
	defer reddit.Close()

	c := newTestClient(pullPush.URL, reddit.URL)
	docs, err := c.FetchPosts(context.Background(), "gadgets", 10, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(docs) != 1 {
		t.Fatalf("got %d docs, want 1 (stickied skipped)", len(docs))
	}
	if docs[0].ID != "p1" || docs[0].Title != "Screen cracked" {
		t.Errorf("docs[0] = %+v", docs[0])
	}
}

func TestFetchPosts_BothProvidersDown(t *testing.T) {
	down := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer down.Close()

	c := newTestClient(down.URL, down.URL)
	_, err := c.FetchPosts(context.Background(), "doesnotexist", 10, 0)
	if err == nil {
		t.Fatal("expected an error when both providers fail")
	}
	if !strings.Contains(err.Error(), "r/doesnotexist") {
		t.Errorf("error should name the subreddit: %v", err)
	}
}

func TestFetchPosts_AttachesComments(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasPrefix(r.URL.Path, "/search/submission/"):
			w.Write([]byte(`{"data":[{"id":"p1","title":"Battery drain","num_comments":3}]}`))
		case strings.HasPrefix(r.URL.Path, "/search/comment/"):
			if got := r.URL.Query().Get("link_id"); got != "t3_p1" {
				t.Errorf("link_id = %q", got)
			}
			w.Write([]byte(`{"data":[
				{"body":"same here, drains overnight"},
				{"body":"[deleted]"},
				{"body":"a firmware update helped me"}
			]}`))
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
	defer server.Close()

	c := newTestClient(server.URL, "http://unused")
	docs, err := c.FetchPosts(context.Background(), "gadgets", 10, 5)
	if err != nil {
		t.Fatal(err)
	}
	if len(docs) != 1 {
		t.Fatalf("got %d docs", len(docs))
	}
	want := []string{"same here, drains overnight", "a firmware update helped me"}
	if len(docs[0].Comments) != len(want) {
		t.Fatalf("comments = %v, want %v", docs[0].Comments, want)
	}
	for i := range want {
		if docs[0].Comments[i] != want[i] {
			t.Errorf("comments[%d] = %q, want %q", i, docs[0].Comments[i], want[i])
		}
	}
}

func TestFetchPosts_CommentFailureIsBestEffort(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/search/submission/") {
			w.Write([]byte(`{"data":[{"id":"p1","title":"Battery drain","num_comments":3}]}`))
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	c := newTestClient(server.URL, server.URL)
	docs, err := c.FetchPosts(context.Background(), "gadgets", 10, 5)
	if err != nil {
		t.Fatalf("comment failures must not fail the batch: %v", err)
	}
	if len(docs) != 1 || len(docs[0].Comments) != 0 {
		t.Errorf("docs = %+v, want the post without comments", docs)
	}
}

func TestFetchCommentsReddit_ParsesListingPair(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/r/gadgets/comments/p1.json" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Write([]byte(`[
			{"data":{"children":[{"kind":"t3","data":{"id":"p1","title":"post"}}]}},
			{"data":{"children":[
				{"kind":"t1","data":{"body":"top comment"}},
				{"kind":"more","data":{}},
				{"kind":"t1","data":{"body":"[removed]"}},
				{"kind":"t1","data":{"body":"second comment"}}
			]}}
		]`))
	}))
	defer server.Close()

	c := newTestClient("http://unused", server.URL)
	comments, err := c.fetchCommentsReddit(context.Background(), "gadgets", "p1", 5)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"top comment", "second comment"}
	if len(comments) != 2 || comments[0] != want[0] || comments[1] != want[1] {
		t.Errorf("comments = %v, want %v", comments, want)
	}
}

func TestClamp(t *testing.T) {
	cases := []struct {
		v, lo, hi, want int
	}{
		{0, 1, 100, 1},
		{250, 1, 100, 100},
		{25, 1, 100, 25},
		{-5, 0, 50, 0},
	}
	for _, tc := range cases {
		if got := clamp(tc.v, tc.lo, tc.hi); got != tc.want {
			t.Errorf("clamp(%d, %d, %d) = %d, want %d", tc.v, tc.lo, tc.hi, got, tc.want)
		}
	}
}
