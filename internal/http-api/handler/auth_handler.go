package handler

import (
	"errors"
	"net/http"

	"shelfmark/internal/http-api/dto"
	"shelfmark/internal/http-api/service"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authService service.AuthService
}

func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// RegisterRoutes wires the credential endpoints. loginLimiter throttles the
// two endpoints that accept credentials; requireAuth guards /me.
func (h *AuthHandler) RegisterRoutes(rg *gin.RouterGroup, loginLimiter, requireAuth gin.HandlerFunc) {
	rg.POST("/register", loginLimiter, h.Register)
	rg.POST("/login", loginLimiter, h.Login)
	rg.POST("/refresh", h.RefreshToken)
	rg.GET("/me", requireAuth, h.Me)
}

// Register creates a user account.
// POST /api/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.Fail(err.Error()))
		return
	}

	user, err := h.authService.Register(req.Email, req.Username, req.Name, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrEmailInUse) || errors.Is(err, service.ErrNameInUse) {
			c.JSON(http.StatusConflict, dto.Fail(err.Error()))
			return
		}
		c.JSON(http.StatusInternalServerError, dto.Fail("Internal Server Error"))
		return
	}

	// legacy shape: the created user, never the password hash
	c.JSON(http.StatusCreated, dto.FromModelToUserResponse(user))
}

// Login authenticates and issues a token pair.
// POST /api/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.Fail(err.Error()))
		return
	}

	accessToken, refreshToken, user, err := h.authService.Login(req.Username, req.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, dto.Fail("invalid credentials"))
		return
	}

	c.JSON(http.StatusOK, dto.Success(dto.LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         dto.FromModelToUserResponse(user),
	}))
}

// RefreshToken rotates an access token from a valid refresh token.
// POST /api/refresh
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var req dto.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.Fail(err.Error()))
		return
	}

	newAccessToken, err := h.authService.RefreshAccessToken(req.RefreshToken)
	if err != nil {
		c.JSON(http.StatusUnauthorized, dto.Fail("invalid refresh token"))
		return
	}

	c.JSON(http.StatusOK, dto.Success(dto.RefreshResponse{
		AccessToken: newAccessToken,
	}))
}

// Me returns the caller's profile.
// GET /api/me
func (h *AuthHandler) Me(c *gin.Context) {
	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, dto.Fail("user not authenticated"))
		return
	}

	user, err := h.authService.GetUser(userID.(string))
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.Fail("Internal Server Error"))
		return
	}

	c.JSON(http.StatusOK, dto.Success(dto.FromModelToUserResponse(user)))
}
