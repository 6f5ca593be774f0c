package api

import (
	"encoding/json"
	"net/http"
	"time"

	"log/slog"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jobport/jobport/internal/models"
	"github.com/jobport/jobport/internal/session"
	"github.com/jobport/jobport/pkg/repository"
)

type AuthHandler struct {
	userRepo      repository.UserRepo
	sessions      *session.Registry
	jwtSecret     string
	tokenDuration time.Duration
}

// NewAuthHandler creates a new AuthHandler with required dependencies.
func NewAuthHandler(ur repository.UserRepo, sessions *session.Registry, jwtSecret string, tokenDuration time.Duration) *AuthHandler {
	return &AuthHandler{userRepo: ur, sessions: sessions, jwtSecret: jwtSecret, tokenDuration: tokenDuration}
}

type signupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type signinRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	if req.Name == "" || req.Email == "" || req.Password == "" {
		http.Error(w, "Missing fields", http.StatusBadRequest)
		return
	}

	ctx := r.Context()

	if existing, err := h.userRepo.GetUserByEmail(ctx, req.Email); err != nil {
		http.Error(w, "Error creating user", http.StatusInternalServerError)
		return
	} else if existing != nil {
		http.Error(w, "Email already registered", http.StatusConflict)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		http.Error(w, "Error hashing password", http.StatusInternalServerError)
		return
	}

	user := &models.User{
		ID:           "user_" + uuid.NewString(),
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
	}
	if err := h.userRepo.CreateUser(ctx, user); err != nil {
		http.Error(w, "Error creating user", http.StatusInternalServerError)
		return
	}

	h.openSession(w, r, user)
}

func (h *AuthHandler) Signin(w http.ResponseWriter, r *http.Request) {
	var req signinRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	if req.Email == "" || req.Password == "" {
		http.Error(w, "Missing fields", http.StatusBadRequest)
		return
	}

	ctx := r.Context()

	user, err := h.userRepo.GetUserByEmail(ctx, req.Email)
	if err != nil || user == nil {
		http.Error(w, "Credentials not found", http.StatusUnauthorized)
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		http.Error(w, "Credentials not found", http.StatusUnauthorized)
		return
	}

	h.openSession(w, r, user)
}

// openSession creates the identity cell and issues a JWT naming it. The
// token is the claim to the session; the cell holds the user object.
func (h *AuthHandler) openSession(w http.ResponseWriter, r *http.Request, user *models.User) {
	sid := uuid.NewString()
	if _, err := h.sessions.Create(r.Context(), sid, user); err != nil {
		http.Error(w, "Error creating session", http.StatusInternalServerError)
		return
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sid":   sid,
		"sub":   user.ID,
		"email": user.Email,
		"exp":   time.Now().Add(h.tokenDuration).Unix(),
	})
	tokenStr, err := token.SignedString([]byte(h.jwtSecret))
	if err != nil {
		h.sessions.Delete(sid)
		http.Error(w, "Error signing token", http.StatusInternalServerError)
		return
	}

	logger.Info("session opened", slog.String("user_id", user.ID))
	writeJSON(w, authResponse{Token: tokenStr, User: user}, http.StatusOK)
}

// Signout ends the server-side session; the token stops resolving even
// before it expires.
func (h *AuthHandler) Signout(w http.ResponseWriter, r *http.Request) {
	sid, _ := r.Context().Value(CtxSessionID).(string)
	if sid != "" {
		h.sessions.Delete(sid)
	}

	writeJSON(w, map[string]string{"message": "signed out"}, http.StatusOK)
}
