package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/connectpro/connectpro/api"
	"github.com/connectpro/connectpro/pkg/models"
	"github.com/connectpro/connectpro/pkg/repository/mock"
)

func seedDirectory(t *testing.T) *mock.Mocks {
	t.Helper()
	ctx := context.Background()
	mocks := mock.NewMocks()

	users := []models.User{
		{
			Email: "sarah@example.com", FirstName: "Sarah", LastName: "Johnson",
			UserType: models.UserTypeBusiness, CompanyName: strPtr("Johnson Construction Co."),
			BusinessType: strPtr("construction"), Location: strPtr("Austin, TX"),
			Tags: []string{"residential"},
		},
		{
			Email: "michael@example.com", FirstName: "Michael", LastName: "Chen",
			UserType: models.UserTypeBusiness, CompanyName: strPtr("Chen Property Development"),
			BusinessType: strPtr("real_estate"), Location: strPtr("Seattle, WA"),
		},
		{
			Email: "carlos@example.com", FirstName: "Carlos", LastName: "Ramirez",
			UserType: models.UserTypeContractor, Location: strPtr("Austin, TX"),
			Skills: []string{"Plumbing", "Electrical Work"}, Bio: strPtr("Experienced plumber."),
		},
		{
			Email: "emma@example.com", FirstName: "Emma", LastName: "Thompson",
			UserType: models.UserTypeContractor, Location: strPtr("Seattle, WA"),
			Skills: []string{"HVAC"},
		},
	}
	for i := range users {
		users[i].PasswordHash = "$2a$10$notarealhash"
		if _, err := mocks.UserRepo.CreateUser(ctx, &users[i]); err != nil {
			t.Fatalf("seed user: %v", err)
		}
	}
	return mocks
}

func TestGetBusinesses(t *testing.T) {
	mocks := seedDirectory(t)
	h := api.NewDirectoryHandler(mocks.UserRepo)

	list := func(t *testing.T, url string) []models.User {
		t.Helper()
		w := httptest.NewRecorder()
		h.GetBusinesses(w, httptest.NewRequest(http.MethodGet, url, nil))
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d body=%s", w.Code, w.Body.String())
		}
		if bytes.Contains(w.Body.Bytes(), []byte("notarealhash")) {
			t.Fatalf("password hash leaked: %s", w.Body.String())
		}
		var resp struct {
			Businesses []models.User `json:"businesses"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		return resp.Businesses
	}

	if got := list(t, "/businesses"); len(got) != 2 {
		t.Fatalf("expected 2 businesses, got %d", len(got))
	}
	if got := list(t, "/businesses?businessType=construction"); len(got) != 1 || got[0].FirstName != "Sarah" {
		t.Fatalf("businessType filter: %#v", got)
	}
	if got := list(t, "/businesses?location=seattle"); len(got) != 1 || got[0].FirstName != "Michael" {
		t.Fatalf("location filter should be case-insensitive substring: %#v", got)
	}
	if got := list(t, "/businesses?search=johnson"); len(got) != 1 {
		t.Fatalf("search filter: %#v", got)
	}
	if got := list(t, "/businesses?tags=residential"); len(got) != 1 {
		t.Fatalf("tags filter: %#v", got)
	}
	// Filters are conjunctive.
	if got := list(t, "/businesses?businessType=construction&location=seattle"); len(got) != 0 {
		t.Fatalf("conjunction should match nothing: %#v", got)
	}
}

func TestGetContractors(t *testing.T) {
	mocks := seedDirectory(t)
	h := api.NewDirectoryHandler(mocks.UserRepo)

	list := func(t *testing.T, url string) []models.User {
		t.Helper()
		w := httptest.NewRecorder()
		h.GetContractors(w, httptest.NewRequest(http.MethodGet, url, nil))
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d body=%s", w.Code, w.Body.String())
		}
		var resp struct {
			Contractors []models.User `json:"contractors"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		return resp.Contractors
	}

	if got := list(t, "/contractors"); len(got) != 2 {
		t.Fatalf("expected 2 contractors, got %d", len(got))
	}
	// Skill membership is exact, any-of.
	if got := list(t, "/contractors?skills=HVAC&skills=Plumbing"); len(got) != 2 {
		t.Fatalf("any-of skills filter: %#v", got)
	}
	if got := list(t, "/contractors?skills=Roofing"); len(got) != 0 {
		t.Fatalf("unknown skill should match nothing: %#v", got)
	}
	if got := list(t, "/contractors?search=plumber"); len(got) != 1 || got[0].FirstName != "Carlos" {
		t.Fatalf("search should cover bio: %#v", got)
	}
}

func TestGetProfile(t *testing.T) {
	mocks := seedDirectory(t)
	h := api.NewDirectoryHandler(mocks.UserRepo)

	t.Run("InvalidID", func(t *testing.T) {
		req := withVars(httptest.NewRequest(http.MethodGet, "/profile/abc", nil), map[string]string{"id": "abc"})
		w := httptest.NewRecorder()
		h.GetProfile(w, req)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("NotFound", func(t *testing.T) {
		req := withVars(httptest.NewRequest(http.MethodGet, "/profile/999", nil), map[string]string{"id": "999"})
		w := httptest.NewRecorder()
		h.GetProfile(w, req)
		if w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", w.Code)
		}
	})

	t.Run("Success", func(t *testing.T) {
		req := withVars(httptest.NewRequest(http.MethodGet, "/profile/1", nil), map[string]string{"id": "1"})
		w := httptest.NewRecorder()
		h.GetProfile(w, req)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d body=%s", w.Code, w.Body.String())
		}
		if bytes.Contains(w.Body.Bytes(), []byte("notarealhash")) {
			t.Fatalf("password hash leaked: %s", w.Body.String())
		}
		var resp struct {
			User models.User `json:"user"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if resp.User.ID != 1 {
			t.Fatalf("unexpected user: %#v", resp.User)
		}
	})
}
