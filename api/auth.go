package api

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/connectpro/connectpro/pkg/models"
	"github.com/connectpro/connectpro/pkg/repository"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

type AuthHandler struct {
	userRepo      repository.UserRepo
	jwtSecret     string
	tokenDuration time.Duration
}

// NewAuthHandler creates a new AuthHandler with required dependencies.
func NewAuthHandler(ur repository.UserRepo, jwtSecret string, tokenDuration time.Duration) *AuthHandler {
	return &AuthHandler{userRepo: ur, jwtSecret: jwtSecret, tokenDuration: tokenDuration}
}

type signupRequest struct {
	Email          string   `json:"email"`
	Password       string   `json:"password"`
	FirstName      string   `json:"firstName"`
	LastName       string   `json:"lastName"`
	UserType       string   `json:"userType"`
	CompanyName    *string  `json:"companyName"`
	BusinessType   *string  `json:"businessType"`
	PhoneNumber    *string  `json:"phoneNumber"`
	Location       *string  `json:"location"`
	Skills         []string `json:"skills"`
	Certifications []string `json:"certifications"`
	Tags           []string `json:"tags"`
	Bio            *string  `json:"bio"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, "Invalid request", http.StatusBadRequest)
		return
	}
	if !validateBody(r.Context(), w, signupSchema, body) {
		return
	}

	var req signupRequest
	if err := json.Unmarshal(body, &req); err != nil {
		writeError(w, "Invalid request", http.StatusBadRequest)
		return
	}

	ctx := r.Context()

	existing, err := h.userRepo.GetUserByEmail(ctx, req.Email)
	if err != nil {
		writeError(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	if existing != nil {
		writeError(w, "Email already registered", http.StatusBadRequest)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		writeError(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	user := models.User{
		Email:          req.Email,
		PasswordHash:   string(hash),
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		UserType:       req.UserType,
		CompanyName:    req.CompanyName,
		BusinessType:   req.BusinessType,
		PhoneNumber:    req.PhoneNumber,
		Location:       req.Location,
		Skills:         req.Skills,
		Certifications: req.Certifications,
		Tags:           req.Tags,
		Bio:            req.Bio,
		IsVerified:     false,
	}

	id, err := h.userRepo.CreateUser(ctx, &user)
	if err != nil {
		writeError(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	user.ID = id

	token, err := h.issueSession(w, id)
	if err != nil {
		writeError(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, map[string]any{"success": true, "user": user, "token": token}, http.StatusOK)
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "Invalid request", http.StatusBadRequest)
		return
	}
	if req.Email == "" || req.Password == "" {
		writeError(w, "Email and password are required", http.StatusBadRequest)
		return
	}

	ctx := r.Context()

	// Identical message for unknown email and wrong password: no
	// user-existence oracle.
	user, err := h.userRepo.GetUserByEmail(ctx, req.Email)
	if err != nil {
		writeError(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	if user == nil {
		writeError(w, "Invalid email or password", http.StatusUnauthorized)
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		writeError(w, "Invalid email or password", http.StatusUnauthorized)
		return
	}

	token, err := h.issueSession(w, user.ID)
	if err != nil {
		writeError(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, map[string]any{"success": true, "user": user, "token": token}, http.StatusOK)
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
		SameSite: http.SameSiteLaxMode,
	})

	writeJSON(w, map[string]any{"success": true, "message": "signed out"}, http.StatusOK)
}

// CurrentUser returns the account behind the session token.
func (h *AuthHandler) CurrentUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := sessionUserID(r)
	if !ok {
		writeError(w, "Not authenticated", http.StatusUnauthorized)
		return
	}

	user, err := h.userRepo.GetUserByID(r.Context(), userID)
	if err != nil {
		writeError(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	if user == nil {
		writeError(w, "User not found", http.StatusNotFound)
		return
	}

	writeJSON(w, map[string]any{"success": true, "user": user}, http.StatusOK)
}

// issueSession signs a token for userID and installs it as the session
// cookie. The token is also returned for clients that prefer Bearer headers.
func (h *AuthHandler) issueSession(w http.ResponseWriter, userID int64) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
		"exp":     time.Now().Add(h.tokenDuration).Unix(),
	})
	tokenStr, err := token.SignedString([]byte(h.jwtSecret))
	if err != nil {
		return "", err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    tokenStr,
		Path:     "/",
		HttpOnly: true,
		MaxAge:   int(h.tokenDuration.Seconds()),
		SameSite: http.SameSiteLaxMode,
	})

	return tokenStr, nil
}
