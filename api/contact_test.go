package api_test

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/connectpro/connectpro/api"
	"github.com/connectpro/connectpro/pkg/repository/mock"
)

func TestSubmitContact(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantStatus int
	}{
		{"InvalidJSON", "not a json", http.StatusBadRequest},
		{"MissingMessage", `{"name":"A","email":"a@example.com","userType":"business"}`, http.StatusBadRequest},
		{"InvalidUserType", `{"name":"A","email":"a@example.com","userType":"other","message":"hi"}`, http.StatusBadRequest},
		{"Success", `{"name":"A","email":"a@example.com","userType":"business","message":"Please call me."}`, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mocks := mock.NewMocks()
			h := api.NewContactHandler(mocks.ContactRepo)
			w := httptest.NewRecorder()
			h.SubmitContact(w, httptest.NewRequest(http.MethodPost, "/contact", strings.NewReader(tt.body)))
			if w.Code != tt.wantStatus {
				t.Fatalf("expected %d, got %d body=%s", tt.wantStatus, w.Code, w.Body.String())
			}
			if tt.wantStatus == http.StatusOK {
				if len(mocks.ContactRepo.Submissions) != 1 {
					t.Fatalf("expected 1 stored submission, got %d", len(mocks.ContactRepo.Submissions))
				}
				if !bytes.Contains(w.Body.Bytes(), []byte(`"id"`)) {
					t.Fatalf("expected id in response: %s", w.Body.String())
				}
			}
		})
	}
}

func TestSubscribeNewsletter(t *testing.T) {
	mocks := mock.NewMocks()
	h := api.NewContactHandler(mocks.ContactRepo)

	subscribe := func(body string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		h.SubscribeNewsletter(w, httptest.NewRequest(http.MethodPost, "/newsletter", strings.NewReader(body)))
		return w
	}

	if w := subscribe(`{}`); w.Code != http.StatusBadRequest {
		t.Fatalf("missing email: expected 400, got %d", w.Code)
	}
	if w := subscribe(`{"email":"news@example.com"}`); w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", w.Code, w.Body.String())
	}
	w := subscribe(`{"email":"news@example.com"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("duplicate: expected 400, got %d", w.Code)
	}
	if !bytes.Contains(w.Body.Bytes(), []byte("Email already subscribed")) {
		t.Fatalf("unexpected body: %s", w.Body.String())
	}
}
