// Package email sends transactional mail through the Brevo HTTP API.
package email

import (
	"bytes"
	"context"
	"crypto/rand"
	"encoding/json"
	"fmt"
	"io"
	"math/big"
	"net/http"

	"github.com/connectpro/connectpro/internal/config"
)

// Client wraps the Brevo SMTP API. A client with an empty API key is in
// development mode and refuses to send; callers fall back to echoing OTP
// codes in responses.
type Client struct {
	cfg    config.EmailConfig
	client *http.Client
}

func NewClient(cfg config.EmailConfig, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	return &Client{cfg: cfg, client: httpClient}
}

// Enabled reports whether the client can actually deliver mail.
func (c *Client) Enabled() bool {
	return c.cfg.APIKey != ""
}

type sendRequest struct {
	Sender      sendAddress   `json:"sender"`
	To          []sendAddress `json:"to"`
	Subject     string        `json:"subject"`
	HTMLContent string        `json:"htmlContent"`
}

type sendAddress struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email"`
}

// Send posts one transactional email. Failures are returned, not retried;
// OTP delivery is best-effort like the rest of the request path.
func (c *Client) Send(ctx context.Context, to, subject, htmlContent string) error {
	if !c.Enabled() {
		return fmt.Errorf("email client disabled: no API key configured")
	}

	body := sendRequest{
		Sender:      sendAddress{Name: c.cfg.SenderName, Email: c.cfg.Sender},
		To:          []sendAddress{{Email: to}},
		Subject:     subject,
		HTMLContent: htmlContent,
	}
	b, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal email request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+"/v3/smtp/email", bytes.NewReader(b))
	if err != nil {
		return fmt.Errorf("build email request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("api-key", c.cfg.APIKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("send email: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("email API status %d: %s", resp.StatusCode, string(msg))
	}

	return nil
}

// GenerateOTP returns a 6-digit numeric code from crypto/rand.
func GenerateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", fmt.Errorf("generate otp: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}

// OTPTemplate renders the verification email body.
func OTPTemplate(otp, firstName string) string {
	return fmt.Sprintf(`<html><body style="font-family: Arial, sans-serif;">
<div style="max-width: 600px; margin: 0 auto; padding: 40px;">
<h1 style="color: #1e40af;">ConnectPro</h1>
<h2>Verify Your Account</h2>
<p>Hi %s,</p>
<p>Thank you for signing up! To complete your account verification, please use the following 6-digit code:</p>
<div style="font-size: 32px; font-weight: bold; letter-spacing: 4px; color: #1e40af;">%s</div>
<p>This code will expire in 10 minutes.</p>
<p style="color: #6b7280;">If you didn't request this verification, please ignore this email.</p>
</div>
</body></html>`, firstName, otp)
}
