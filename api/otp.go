package api

import (
	"encoding/json"
	"net/http"
	"time"

	"log/slog"

	"github.com/connectpro/connectpro/internal/email"
	"github.com/connectpro/connectpro/pkg/models"
	"github.com/connectpro/connectpro/pkg/repository"
)

// otpTTL is how long an issued code stays valid.
const otpTTL = 10 * time.Minute

type OtpHandler struct {
	userRepo repository.UserRepo
	otpRepo  repository.OtpRepo
	mailer   *email.Client
}

func NewOtpHandler(ur repository.UserRepo, or repository.OtpRepo, mailer *email.Client) *OtpHandler {
	return &OtpHandler{userRepo: ur, otpRepo: or, mailer: mailer}
}

type sendOtpRequest struct {
	Email string `json:"email"`
}

type verifyOtpRequest struct {
	Email string `json:"email"`
	Otp   string `json:"otp"`
}

func (h *OtpHandler) SendOtp(w http.ResponseWriter, r *http.Request) {
	var req sendOtpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" {
		writeError(w, "Email is required", http.StatusBadRequest)
		return
	}

	ctx := r.Context()

	user, err := h.userRepo.GetUserByEmail(ctx, req.Email)
	if err != nil {
		writeError(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	if user == nil {
		writeError(w, "User not found", http.StatusNotFound)
		return
	}
	if user.IsVerified {
		writeError(w, "User already verified", http.StatusBadRequest)
		return
	}

	code, err := email.GenerateOTP()
	if err != nil {
		writeError(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	record := models.OtpVerification{
		Email:     req.Email,
		Otp:       code,
		ExpiresAt: time.Now().UTC().Add(otpTTL).UnixMilli(),
	}
	if _, err := h.otpRepo.CreateOtp(ctx, &record); err != nil {
		writeError(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	resp := map[string]any{
		"success": true,
		"message": "Verification code generated",
	}

	if h.mailer != nil && h.mailer.Enabled() {
		if err := h.mailer.Send(ctx, req.Email, "Verify Your ConnectPro Account", email.OTPTemplate(code, user.FirstName)); err != nil {
			logger.Error("send otp email", slog.Any("err", err), slog.String("email", req.Email))
			writeError(w, "Failed to send verification email", http.StatusInternalServerError)
			return
		}
	} else {
		// Development mode: no mail provider configured, echo the code.
		resp["developmentOtp"] = code
	}

	writeJSON(w, resp, http.StatusOK)
}

func (h *OtpHandler) VerifyOtp(w http.ResponseWriter, r *http.Request) {
	var req verifyOtpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" || req.Otp == "" {
		writeError(w, "Email and OTP are required", http.StatusBadRequest)
		return
	}

	ctx := r.Context()

	record, err := h.otpRepo.GetValidOtp(ctx, req.Email, req.Otp)
	if err != nil {
		writeError(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	if record == nil {
		writeError(w, "Invalid or expired OTP", http.StatusBadRequest)
		return
	}

	user, err := h.userRepo.GetUserByEmail(ctx, req.Email)
	if err != nil {
		writeError(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	if user == nil {
		writeError(w, "User not found", http.StatusNotFound)
		return
	}

	// One-time consumption: mark used before reporting success so a second
	// verify with the same code fails.
	if err := h.otpRepo.MarkOtpUsed(ctx, record.ID); err != nil {
		writeError(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	if err := h.userRepo.SetUserVerified(ctx, user.ID, true); err != nil {
		writeError(w, "Failed to update user verification", http.StatusInternalServerError)
		return
	}
	user.IsVerified = true

	writeJSON(w, map[string]any{"success": true, "user": user, "message": "Account verified successfully"}, http.StatusOK)
}
