package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/encadra/encadra/internal/middleware"
	"github.com/encadra/encadra/internal/modules/serializer"
	"github.com/encadra/encadra/internal/modules/service"
)

type AuthHandler struct {
	svc service.AuthService
}

func NewAuthHandler(svc service.AuthService) *AuthHandler {
	return &AuthHandler{svc: svc}
}

type RegisterReq struct {
	Username string `json:"username" binding:"required,min=3"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Role     string `json:"role"`
}

// Register godoc
//
//	@Summary		Register a user
//	@Description	Create a new account. Role defaults to ETUDIANT.
//	@Tags			auth
//	@Accept			json
//	@Produce		json
//	@Param			payload	body		handler.RegisterReq	true	"Register payload"
//	@Success		201		{object}	model.PublicUser
//	@Failure		400		{object}	serializer.ErrorResponse
//	@Router			/auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	req := RegisterReq{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ValidationErr("Validation failed", err))
		return
	}

	user, err := h.svc.Register(c.Request.Context(), service.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		// Duplicate emails surface here as a generic creation failure.
		c.JSON(http.StatusBadRequest, serializer.Err("Failed to register user"))
		return
	}

	c.JSON(http.StatusCreated, user)
}

type LoginReq struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type LoginResp struct {
	Token string `json:"token"`
}

// Login godoc
//
//	@Summary		Log in
//	@Description	Exchange credentials for a bearer token valid for one hour.
//	@Tags			auth
//	@Accept			json
//	@Produce		json
//	@Param			payload	body		handler.LoginReq	true	"Login payload"
//	@Success		200		{object}	handler.LoginResp
//	@Failure		401		{object}	serializer.ErrorResponse
//	@Router			/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	req := LoginReq{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ValidationErr("Validation failed", err))
		return
	}

	tok, err := h.svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, serializer.Err("Internal server error"))
		return
	}
	if tok == "" {
		// Same body for unknown email and wrong password.
		c.JSON(http.StatusUnauthorized, serializer.Err("Invalid credentials"))
		return
	}

	c.JSON(http.StatusOK, LoginResp{Token: tok})
}

// Profile godoc
//
//	@Summary	Current profile
//	@Tags		auth
//	@Produce	json
//	@Security	BearerAuth
//	@Success	200	{object}	map[string]model.CurrentUser
//	@Failure	401	{object}	serializer.ErrorResponse
//	@Router		/auth/profile [get]
func (h *AuthHandler) Profile(c *gin.Context) {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, serializer.Err("Missing or malformed token"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"profile": u})
}
