package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/connectpro/connectpro/api"
	dbfs "github.com/connectpro/connectpro/db"
	"github.com/connectpro/connectpro/internal/config"
	"github.com/connectpro/connectpro/internal/db"
	"github.com/connectpro/connectpro/pkg/models"
)

// startServer wires the full router against a fresh in-memory database.
func startServer(t *testing.T) (*httptest.Server, *http.Client) {
	t.Helper()
	ctx := context.Background()

	database, err := db.New(ctx, "file::memory:?cache=shared")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	if err := db.Migrate(ctx, database, dbfs.Migrations); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	cfg := &config.Config{
		JWTSecret:     "testsecret",
		TokenDuration: time.Hour,
	}
	srv := httptest.NewServer(api.SetupRoutes(cfg, "test", "now", database, nil))
	t.Cleanup(srv.Close)

	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("cookie jar: %v", err)
	}
	client := &http.Client{Jar: jar}
	return srv, client
}

func postJSON(t *testing.T, client *http.Client, url string, body any) *http.Response {
	t.Helper()
	b, _ := json.Marshal(body)
	resp, err := client.Post(url, "application/json", bytes.NewReader(b))
	if err != nil {
		t.Fatalf("POST %s: %v", url, err)
	}
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}

// TestJobOrderLifecycle walks a business account from signup through managing
// a job order against the real router, middleware and database.
func TestJobOrderLifecycle(t *testing.T) {
	srv, client := startServer(t)

	// Protected routes reject anonymous requests.
	resp := postJSON(t, client, srv.URL+"/api/job-orders", map[string]string{"title": "T", "description": "D"})
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("anonymous create: expected 401, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	// Signup installs the session cookie on the client jar.
	resp = postJSON(t, client, srv.URL+"/api/signup", map[string]string{
		"email": "biz@x.com", "password": "pw123456", "firstName": "Bea",
		"lastName": "Zane", "userType": "business", "companyName": "Zane Builds",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("signup: expected 200, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	// Session is live: /api/user resolves the account.
	userResp, err := client.Get(srv.URL + "/api/user")
	if err != nil {
		t.Fatalf("GET /api/user: %v", err)
	}
	if userResp.StatusCode != http.StatusOK {
		t.Fatalf("current user: expected 200, got %d", userResp.StatusCode)
	}
	var current struct {
		User models.User `json:"user"`
	}
	decodeBody(t, userResp, &current)
	if current.User.Email != "biz@x.com" {
		t.Fatalf("unexpected session user: %#v", current.User)
	}

	// Create a job order; status defaults to open.
	resp = postJSON(t, client, srv.URL+"/api/job-orders", map[string]any{
		"title":       "Kitchen remodel",
		"description": "Full kitchen renovation including cabinets",
		"projectSize": "medium",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("create job order: expected 200, got %d", resp.StatusCode)
	}
	var created struct {
		JobOrder models.JobOrder `json:"jobOrder"`
	}
	decodeBody(t, resp, &created)
	if created.JobOrder.Status != models.JobStatusOpen {
		t.Fatalf("expected default status open, got %q", created.JobOrder.Status)
	}

	// Move it to in_progress.
	b, _ := json.Marshal(map[string]string{"status": "in_progress"})
	req, _ := http.NewRequest(http.MethodPut, srv.URL+"/api/job-orders/1", bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	resp, err = client.Do(req)
	if err != nil {
		t.Fatalf("PUT job order: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("update job order: expected 200, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	// Filtered listing returns exactly the updated order.
	listResp, err := client.Get(srv.URL + "/api/job-orders?status=in_progress")
	if err != nil {
		t.Fatalf("GET job orders: %v", err)
	}
	var listed struct {
		JobOrders []models.JobOrder `json:"jobOrders"`
	}
	decodeBody(t, listResp, &listed)
	if len(listed.JobOrders) != 1 {
		t.Fatalf("expected exactly one in_progress order, got %d", len(listed.JobOrders))
	}
	if listed.JobOrders[0].Title != "Kitchen remodel" || listed.JobOrders[0].Status != models.JobStatusInProgress {
		t.Fatalf("unexpected order: %#v", listed.JobOrders[0])
	}
}

// TestVerificationFlow exercises signup, OTP issuance in development mode and
// verification through the full router.
func TestVerificationFlow(t *testing.T) {
	srv, client := startServer(t)

	resp := postJSON(t, client, srv.URL+"/api/signup", map[string]string{
		"email": "pat@example.com", "password": "pw123456", "firstName": "Pat",
		"lastName": "Lee", "userType": "contractor",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("signup: expected 200, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	// No mail provider configured, so the code comes back in the response.
	resp = postJSON(t, client, srv.URL+"/api/send-otp", map[string]string{"email": "pat@example.com"})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("send-otp: expected 200, got %d", resp.StatusCode)
	}
	var sent struct {
		DevelopmentOtp string `json:"developmentOtp"`
	}
	decodeBody(t, resp, &sent)
	if len(sent.DevelopmentOtp) != 6 {
		t.Fatalf("expected a 6-digit dev code, got %q", sent.DevelopmentOtp)
	}

	resp = postJSON(t, client, srv.URL+"/api/verify-otp", map[string]string{
		"email": "pat@example.com", "otp": sent.DevelopmentOtp,
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("verify-otp: expected 200, got %d", resp.StatusCode)
	}
	var verified struct {
		User models.User `json:"user"`
	}
	decodeBody(t, resp, &verified)
	if !verified.User.IsVerified {
		t.Fatalf("user should be verified: %#v", verified.User)
	}

	// The code is consumed; a replay fails.
	resp = postJSON(t, client, srv.URL+"/api/verify-otp", map[string]string{
		"email": "pat@example.com", "otp": sent.DevelopmentOtp,
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("replayed otp: expected 400, got %d", resp.StatusCode)
	}
	resp.Body.Close()
}

// TestFeedThroughRouter covers post creation, the public feed and the
// authorized feed end to end.
func TestFeedThroughRouter(t *testing.T) {
	srv, client := startServer(t)

	signup := func(t *testing.T, c *http.Client, email string) {
		t.Helper()
		resp := postJSON(t, c, srv.URL+"/api/signup", map[string]string{
			"email": email, "password": "pw123456", "firstName": "F",
			"lastName": "L", "userType": "contractor",
		})
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("signup %s: got %d", email, resp.StatusCode)
		}
		resp.Body.Close()
	}

	signup(t, client, "author@example.com")

	resp := postJSON(t, client, srv.URL+"/api/posts", map[string]any{
		"postType": "text", "content": "Finished a bathroom tiling job today", "tags": []string{"tiling"},
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("create post: expected 200, got %d", resp.StatusCode)
	}
	var created struct {
		Post models.Post `json:"post"`
	}
	decodeBody(t, resp, &created)
	if created.Post.User == nil || created.Post.User.FirstName != "F" {
		t.Fatalf("post should carry its author: %#v", created.Post)
	}

	// Public feed needs no session.
	anon := &http.Client{}
	listResp, err := anon.Get(srv.URL + "/api/posts")
	if err != nil {
		t.Fatalf("GET /api/posts: %v", err)
	}
	var listed struct {
		Posts []models.Post `json:"posts"`
	}
	decodeBody(t, listResp, &listed)
	if len(listed.Posts) != 1 {
		t.Fatalf("expected 1 post in public feed, got %d", len(listed.Posts))
	}

	// A second account likes the post; the counter comes back updated.
	jar, _ := cookiejar.New(nil)
	other := &http.Client{Jar: jar}
	signup(t, other, "reader@example.com")

	resp = postJSON(t, other, srv.URL+"/api/posts/1/like", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("like: expected 200, got %d", resp.StatusCode)
	}
	var likeResp struct {
		Liked      bool  `json:"liked"`
		LikesCount int64 `json:"likesCount"`
	}
	decodeBody(t, resp, &likeResp)
	if !likeResp.Liked || likeResp.LikesCount != 1 {
		t.Fatalf("unexpected like result: %#v", likeResp)
	}

	// The reader's for-you feed carries the author's post.
	feedResp, err := other.Get(srv.URL + "/api/posts/for-you")
	if err != nil {
		t.Fatalf("GET for-you: %v", err)
	}
	var feed struct {
		Posts []models.Post `json:"posts"`
	}
	decodeBody(t, feedResp, &feed)
	if len(feed.Posts) != 1 || feed.Posts[0].LikesCount != 1 {
		t.Fatalf("unexpected for-you feed: %#v", feed.Posts)
	}
}
