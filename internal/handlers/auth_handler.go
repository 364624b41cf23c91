package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	"social-feed-api/internal/services"
	"social-feed-api/pkg/lambda"
)

// AuthHandler handles registration and authentication HTTP requests
type AuthHandler struct {
	authService services.AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// @Summary Sign up
// @Description Register a new account with an optional avatar image
// @Tags auth
// @Accept multipart/form-data
// @Produce json
// @Param name formData string true "Display name"
// @Param email formData string true "Email address"
// @Param password formData string true "Password"
// @Param file formData file false "Avatar image"
// @Success 201 {object} map[string]string
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /auth/signup [post]
func (h *AuthHandler) SignUp(c *gin.Context) {
	req := &services.SignUpRequest{
		Name:     c.PostForm("name"),
		Email:    c.PostForm("email"),
		Password: c.PostForm("password"),
	}

	avatar, err := formFile(c, "file")
	if err != nil {
		respondError(c, "signup", err)
		return
	}
	req.Avatar = avatar

	if err := h.authService.SignUp(c.Request.Context(), req); err != nil {
		respondError(c, "signup", err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "user created"})
}

// @Summary Confirm email
// @Description Confirm a registration with the emailed code
// @Tags auth
// @Accept json
// @Produce json
// @Param request body services.ConfirmEmailRequest true "Confirmation"
// @Success 200 {object} map[string]string
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /auth/confirm-email [post]
func (h *AuthHandler) ConfirmEmail(c *gin.Context) {
	var req services.ConfirmEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	if err := h.authService.ConfirmEmail(c.Request.Context(), &req); err != nil {
		respondError(c, "confirm email", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "email confirmed"})
}

// forgotPasswordRequest carries a password recovery start submission
type forgotPasswordRequest struct {
	Email string `json:"email" binding:"required"`
}

// @Summary Forgot password
// @Description Start a password recovery flow
// @Tags auth
// @Accept json
// @Produce json
// @Param request body forgotPasswordRequest true "Account email"
// @Success 200 {object} map[string]string
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /auth/forgot-password [post]
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req forgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	if err := h.authService.ForgotPassword(c.Request.Context(), req.Email); err != nil {
		respondError(c, "forgot password", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "recovery code sent"})
}

// @Summary Confirm password
// @Description Complete a password recovery flow
// @Tags auth
// @Accept json
// @Produce json
// @Param request body services.ConfirmPasswordRequest true "Recovery confirmation"
// @Success 200 {object} map[string]string
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /auth/confirm-password [post]
func (h *AuthHandler) ConfirmPassword(c *gin.Context) {
	var req services.ConfirmPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	if err := h.authService.ConfirmPassword(c.Request.Context(), &req); err != nil {
		respondError(c, "confirm password", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "password changed"})
}

// @Summary Login
// @Description Authenticate credentials and return the token pair
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body services.LoginRequest true "Login credentials"
// @Success 200 {object} identity.Session
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req services.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	session, err := h.authService.Login(c.Request.Context(), &req)
	if err != nil {
		respondError(c, "login", err)
		return
	}

	c.JSON(http.StatusOK, session)
}

// Lambda-compatible handler methods

// HandleSignUp handles signup for Lambda
func (h *AuthHandler) HandleSignUp(ctx context.Context, req *lambda.Request) (*lambda.Response, error) {
	form, err := req.ParseForm()
	if err != nil {
		return lambda.Error(http.StatusBadRequest, "invalid form body"), nil
	}

	signUpReq := &services.SignUpRequest{
		Name:     form.Value("name"),
		Email:    form.Value("email"),
		Password: form.Value("password"),
	}
	signUpReq.Avatar = lambdaFile(form, "file")

	if err := h.authService.SignUp(ctx, signUpReq); err != nil {
		return errorResponse("signup", err), nil
	}

	return lambda.Message(http.StatusCreated, "user created"), nil
}

// HandleConfirmEmail handles email confirmation for Lambda
func (h *AuthHandler) HandleConfirmEmail(ctx context.Context, req *lambda.Request) (*lambda.Response, error) {
	var confirmReq services.ConfirmEmailRequest
	if err := json.Unmarshal(req.Body, &confirmReq); err != nil {
		return lambda.Error(http.StatusBadRequest, "invalid request body"), nil
	}

	if err := h.authService.ConfirmEmail(ctx, &confirmReq); err != nil {
		return errorResponse("confirm email", err), nil
	}

	return lambda.Message(http.StatusOK, "email confirmed"), nil
}

// HandleForgotPassword handles password recovery start for Lambda
func (h *AuthHandler) HandleForgotPassword(ctx context.Context, req *lambda.Request) (*lambda.Response, error) {
	var forgotReq forgotPasswordRequest
	if err := json.Unmarshal(req.Body, &forgotReq); err != nil {
		return lambda.Error(http.StatusBadRequest, "invalid request body"), nil
	}

	if err := h.authService.ForgotPassword(ctx, forgotReq.Email); err != nil {
		return errorResponse("forgot password", err), nil
	}

	return lambda.Message(http.StatusOK, "recovery code sent"), nil
}

// HandleConfirmPassword handles password recovery completion for Lambda
func (h *AuthHandler) HandleConfirmPassword(ctx context.Context, req *lambda.Request) (*lambda.Response, error) {
	var confirmReq services.ConfirmPasswordRequest
	if err := json.Unmarshal(req.Body, &confirmReq); err != nil {
		return lambda.Error(http.StatusBadRequest, "invalid request body"), nil
	}

	if err := h.authService.ConfirmPassword(ctx, &confirmReq); err != nil {
		return errorResponse("confirm password", err), nil
	}

	return lambda.Message(http.StatusOK, "password changed"), nil
}

// HandleLogin handles login for Lambda
func (h *AuthHandler) HandleLogin(ctx context.Context, req *lambda.Request) (*lambda.Response, error) {
	var loginReq services.LoginRequest
	if err := json.Unmarshal(req.Body, &loginReq); err != nil {
		return lambda.Error(http.StatusBadRequest, "invalid request body"), nil
	}

	session, err := h.authService.Login(ctx, &loginReq)
	if err != nil {
		return errorResponse("login", err), nil
	}

	return lambda.JSON(http.StatusOK, session), nil
}
