package handler

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mahmoud-sadrian/Bsc-project/internal/apperr"
	"github.com/mahmoud-sadrian/Bsc-project/internal/model"
	"github.com/mahmoud-sadrian/Bsc-project/internal/service"
	"github.com/mahmoud-sadrian/Bsc-project/internal/session"
)

// AuthHandler handles signup, signin and logout
type AuthHandler struct {
	authService *service.AuthService
}

func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// Signup godoc
// @Summary Register a new user
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body model.SignupRequest true "Signup request"
// @Success 201 {object} model.SignupResponse
// @Failure 400 {object} model.ErrorResponse
// @Failure 409 {object} model.ErrorResponse
// @Router /api.php?action=signup [post]
func (h *AuthHandler) Signup(c *gin.Context) {
	// A body that fails to decode, including one wrongly typed field, counts as empty
	var req model.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		req = model.SignupRequest{}
	}

	user, err := h.authService.Signup(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, model.SignupResponse{
		Message:  "User registered successfully",
		UserID:   user.ID,
		Username: user.Username,
	})
}

// Signin godoc
// @Summary Login with username and password
// @Description Starts a session; the cookie is set on the response
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body model.SigninRequest true "Signin request"
// @Success 200 {object} model.SigninResponse
// @Failure 401 {object} model.ErrorResponse
// @Router /api.php?action=signin [post]
func (h *AuthHandler) Signin(c *gin.Context) {
	var req model.SigninRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		req = model.SigninRequest{}
	}

	ctx := c.Request.Context()
	user, err := h.authService.Signin(ctx, req)
	if err != nil {
		respondError(c, err)
		return
	}

	err = session.FromContext(c).SetCurrentUser(ctx, session.Identity{
		UserID:    user.ID,
		Username:  user.Username,
		LoginTime: time.Now(),
	})
	if err != nil {
		respondError(c, apperr.Storage("Login failed", err))
		return
	}

	c.JSON(http.StatusOK, user.ToSigninResponse())
}

// Logout godoc
// @Summary Logout
// @Description Destroys the current session, if any
// @Tags Auth
// @Produce json
// @Success 200 {object} model.SuccessResponse
// @Router /api.php?action=logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := session.FromContext(c).Destroy(c.Request.Context()); err != nil {
		log.Printf("⚠️  Failed to delete session on logout: %v", err)
	}

	c.JSON(http.StatusOK, model.SuccessResponse{Message: "Logout successful"})
}
