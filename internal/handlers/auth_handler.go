package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/BruksfildServices01/booking-slots/internal/domain/user"
	"github.com/BruksfildServices01/booking-slots/internal/httperr"
	"github.com/BruksfildServices01/booking-slots/internal/models"
	"github.com/BruksfildServices01/booking-slots/internal/usecase/catalog"
	"github.com/BruksfildServices01/booking-slots/internal/validators"
)

type AuthHandler struct {
	users   user.Repository
	catalog *catalog.Catalog
	secret  string
	ttl     time.Duration
	logger  *zap.Logger

	// EmailCheck rejects addresses whose domain cannot receive mail.
	EmailCheck func(email string) bool
}

func NewAuthHandler(
	users user.Repository,
	catalog *catalog.Catalog,
	secret string,
	ttl time.Duration,
	logger *zap.Logger,
) *AuthHandler {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &AuthHandler{
		users:      users,
		catalog:    catalog,
		secret:     secret,
		ttl:        ttl,
		logger:     logger,
		EmailCheck: validators.IsEmailDomainValid,
	}
}

// --------- Requests ---------

// RegisterRequest: a business name makes the new user an owner of a new
// business; without it the user is a customer.
type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Phone    string `json:"phone"`

	BusinessName string `json:"business_name"`
	BusinessSlug string `json:"business_slug"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// --------- Handlers ---------

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if !bindJSON(c, &req) {
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if h.EmailCheck != nil && !h.EmailCheck(email) {
		httperr.BadRequest(c, "invalid_email_domain", "The email domain does not look valid.")
		return
	}

	if _, err := h.users.FindByEmail(c.Request.Context(), email); err == nil {
		httperr.BadRequest(c, "email_already_registered", "Email already registered.")
		return
	} else if !errors.Is(err, user.ErrNotFound) {
		httperr.Respond(c, err)
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		httperr.Internal(c, "failed_to_hash_password", "Could not process password.")
		return
	}

	owner := strings.TrimSpace(req.BusinessName) != ""
	u := models.User{
		Name:         strings.TrimSpace(req.Name),
		Email:        email,
		PasswordHash: string(hashed),
		Phone:        req.Phone,
		Role:         models.RoleCustomer,
	}
	if owner {
		u.Role = models.RoleOwner
	}

	if err := h.users.Create(c.Request.Context(), &u); err != nil {
		httperr.Respond(c, err)
		return
	}

	resp := gin.H{"user": userView(&u)}

	if owner {
		business, err := h.catalog.CreateBusiness(c.Request.Context(), u.ID, catalog.BusinessInput{
			Name: req.BusinessName,
			Slug: req.BusinessSlug,
		})
		if err != nil {
			httperr.Respond(c, err)
			return
		}
		resp["business"] = business
	}

	token, err := h.generateToken(&u)
	if err != nil {
		httperr.Internal(c, "failed_to_generate_token", "Could not issue token.")
		return
	}
	resp["token"] = token

	h.logger.Info("user registered",
		zap.String("user_id", u.ID),
		zap.String("role", u.Role),
	)

	c.JSON(http.StatusCreated, resp)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	found, err := h.users.FindByEmail(c.Request.Context(), email)
	if errors.Is(err, user.ErrNotFound) {
		httperr.Unauthorized(c, "invalid_credentials", "Invalid email or password.")
		return
	}
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(found.PasswordHash), []byte(req.Password)); err != nil {
		httperr.Unauthorized(c, "invalid_credentials", "Invalid email or password.")
		return
	}

	token, err := h.generateToken(found)
	if err != nil {
		httperr.Internal(c, "failed_to_generate_token", "Could not issue token.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":  userView(found),
		"token": token,
	})
}

func userView(u *models.User) gin.H {
	return gin.H{
		"id":    u.ID,
		"name":  u.Name,
		"email": u.Email,
		"phone": u.Phone,
		"role":  u.Role,
	}
}

// --------- JWT ---------

func (h *AuthHandler) generateToken(u *models.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  u.ID,
		"role": u.Role,
		"exp":  now.Add(h.ttl).Unix(),
		"iat":  now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.secret))
}
