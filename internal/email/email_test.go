package email_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/connectpro/connectpro/internal/config"
	"github.com/connectpro/connectpro/internal/email"
)

func testConfig(baseURL string) config.EmailConfig {
	return config.EmailConfig{
		BaseURL:    baseURL,
		APIKey:     "test-key",
		Sender:     "noreply@connectpro.app",
		SenderName: "ConnectPro",
		Timeout:    5 * time.Second,
	}
}

func TestEnabled(t *testing.T) {
	if email.NewClient(config.EmailConfig{}, nil).Enabled() {
		t.Fatalf("client without api key must be disabled")
	}
	if !email.NewClient(config.EmailConfig{APIKey: "k"}, nil).Enabled() {
		t.Fatalf("client with api key must be enabled")
	}
}

func TestSend(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		var got struct {
			Sender struct {
				Name  string `json:"name"`
				Email string `json:"email"`
			} `json:"sender"`
			To []struct {
				Email string `json:"email"`
			} `json:"to"`
			Subject     string `json:"subject"`
			HTMLContent string `json:"htmlContent"`
		}
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost || r.URL.Path != "/v3/smtp/email" {
				t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
			}
			if r.Header.Get("api-key") != "test-key" {
				t.Errorf("missing api-key header")
			}
			if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
				t.Errorf("decode payload: %v", err)
			}
			w.WriteHeader(http.StatusCreated)
		}))
		defer srv.Close()

		c := email.NewClient(testConfig(srv.URL), srv.Client())
		if err := c.Send(ctx, "to@example.com", "Hello", "<p>Hi</p>"); err != nil {
			t.Fatalf("Send error: %v", err)
		}
		if got.Sender.Email != "noreply@connectpro.app" || got.Sender.Name != "ConnectPro" {
			t.Fatalf("wrong sender: %#v", got.Sender)
		}
		if len(got.To) != 1 || got.To[0].Email != "to@example.com" {
			t.Fatalf("wrong recipient: %#v", got.To)
		}
		if got.Subject != "Hello" || got.HTMLContent != "<p>Hi</p>" {
			t.Fatalf("wrong content: %#v", got)
		}
	})

	t.Run("APIErrorIncludesBody", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, `{"message":"unauthorized"}`, http.StatusUnauthorized)
		}))
		defer srv.Close()

		c := email.NewClient(testConfig(srv.URL), srv.Client())
		err := c.Send(ctx, "to@example.com", "Hello", "body")
		if err == nil {
			t.Fatalf("expected error on 401")
		}
		if !strings.Contains(err.Error(), "401") || !strings.Contains(err.Error(), "unauthorized") {
			t.Fatalf("error should carry status and body excerpt: %v", err)
		}
	})

	t.Run("DisabledRefusesToSend", func(t *testing.T) {
		c := email.NewClient(config.EmailConfig{BaseURL: "http://unused.invalid"}, nil)
		if err := c.Send(ctx, "to@example.com", "Hello", "body"); err == nil {
			t.Fatalf("disabled client must refuse to send")
		}
	})

	t.Run("ContextCancelled", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			<-r.Context().Done()
		}))
		defer srv.Close()

		c := email.NewClient(testConfig(srv.URL), srv.Client())
		cctx, cancel := context.WithTimeout(ctx, 50*time.Millisecond)
		defer cancel()
		if err := c.Send(cctx, "to@example.com", "Hello", "body"); err == nil {
			t.Fatalf("expected error on cancelled context")
		}
	})
}

func TestGenerateOTP(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		code, err := email.GenerateOTP()
		if err != nil {
			t.Fatalf("GenerateOTP error: %v", err)
		}
		if len(code) != 6 {
			t.Fatalf("expected 6 digits, got %q", code)
		}
		for _, r := range code {
			if r < '0' || r > '9' {
				t.Fatalf("non-digit in code %q", code)
			}
		}
		if code[0] == '0' {
			t.Fatalf("code must not have a leading zero: %q", code)
		}
		seen[code] = true
	}
	// Not a randomness test, just a sanity check that codes vary.
	if len(seen) < 2 {
		t.Fatalf("all %d codes identical", len(seen))
	}
}

func TestOTPTemplate(t *testing.T) {
	body := email.OTPTemplate("123456", "Alice")
	if !strings.Contains(body, "123456") {
		t.Fatalf("template missing code")
	}
	if !strings.Contains(body, "Alice") {
		t.Fatalf("template missing first name")
	}
	if !strings.Contains(body, "10 minutes") {
		t.Fatalf("template missing expiry note")
	}
}
