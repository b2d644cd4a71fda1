package controllers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"transport-report-be/middlewares"
	"transport-report-be/models"
	"transport-report-be/services"
	"transport-report-be/session"
	"transport-report-be/utils"

	"github.com/gin-gonic/gin"
)

// CookieSettings controls the auth cookie set at login
type CookieSettings struct {
	Domain string
	Secure bool
}

type AuthController struct {
	sessions *session.Manager
	timeout  time.Duration
	cookie   CookieSettings
}

func NewAuthController(sessions *session.Manager, timeout time.Duration, cookie CookieSettings) *AuthController {
	return &AuthController{sessions: sessions, timeout: timeout, cookie: cookie}
}

type loginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role" validate:"required,oneof=traffic_police bus_station_manager transportation_office"`
}

// LoginUser handles staff login against the demo directory
func (h *AuthController) LoginUser(c *gin.Context) {
	var input loginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := services.Validate(input); err != nil {
		respondError(c, err)
		return
	}

	sess, err := utils.Call(c.Request.Context(), h.timeout, "login", func(ctx context.Context) (*session.Session, error) {
		return h.sessions.Login(ctx, input.Email, input.Password, models.Role(input.Role))
	})
	if err != nil {
		if errors.Is(err, session.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		}
		respondError(c, err)
		return
	}

	h.setCookie(c, sess.Token, int(h.sessions.TTL().Seconds()))
	c.JSON(http.StatusOK, sess)
}

// GetMe returns the identity of the current session
func (h *AuthController) GetMe(c *gin.Context) {
	identity, ok := middlewares.CurrentIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}
	c.JSON(http.StatusOK, identity)
}

// LogoutUser clears the stored session and the auth cookie
func (h *AuthController) LogoutUser(c *gin.Context) {
	token := middlewares.CurrentToken(c)
	_, err := utils.Call(c.Request.Context(), h.timeout, "logout", func(ctx context.Context) (struct{}, error) {
		return struct{}{}, h.sessions.Logout(ctx, token)
	})
	if err != nil {
		respondError(c, err)
		return
	}

	h.setCookie(c, "", -1)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}

func (h *AuthController) setCookie(c *gin.Context, value string, maxAge int) {
	sameSite := http.SameSiteLaxMode
	if h.cookie.Secure {
		// Required for cross-origin cookies in production
		sameSite = http.SameSiteNoneMode
	}
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     middlewares.AuthCookie,
		Value:    value,
		MaxAge:   maxAge,
		Path:     "/",
		Domain:   h.cookie.Domain,
		Secure:   h.cookie.Secure,
		HttpOnly: true,
		SameSite: sameSite,
	})
}
