package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"social-feed-api/internal/repositories"
	"social-feed-api/internal/services"
	"social-feed-api/pkg/lambda"
)

// UserHandler handles profile and social graph HTTP requests
type UserHandler struct {
	userService services.UserService
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService services.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

// @Summary Get own profile
// @Description Get the authenticated user's record with a signed avatar URL
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.User
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /users/me [get]
func (h *UserHandler) Me(c *gin.Context) {
	user, err := h.userService.Me(c.Request.Context(), c.GetString("user_id"))
	if err != nil {
		respondError(c, "get profile", err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// @Summary Update profile
// @Description Change the display name and/or replace the avatar image
// @Tags users
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param name formData string false "Display name"
// @Param file formData file false "Avatar image"
// @Success 200 {object} map[string]string
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /users/me [put]
func (h *UserHandler) Update(c *gin.Context) {
	avatar, err := formFile(c, "file")
	if err != nil {
		respondError(c, "update profile", err)
		return
	}

	req := &services.UpdateProfileRequest{
		Name:   c.PostForm("name"),
		Avatar: avatar,
	}

	if err := h.userService.UpdateProfile(c.Request.Context(), c.GetString("user_id"), req); err != nil {
		respondError(c, "update profile", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "user updated"})
}

// @Summary Delete avatar
// @Description Remove the stored avatar image
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]string
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /users/me/avatar [delete]
func (h *UserHandler) DeleteAvatar(c *gin.Context) {
	if err := h.userService.DeleteAvatar(c.Request.Context(), c.GetString("user_id")); err != nil {
		respondError(c, "delete avatar", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "avatar deleted"})
}

// @Summary Search users
// @Description Page through users whose name contains the query string
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param name query string true "Name substring"
// @Param cognitoId query string false "Pagination cursor"
// @Success 200 {object} repositories.UserPage
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /users/search [get]
func (h *UserHandler) Search(c *gin.Context) {
	var cursor *repositories.UserCursor
	if id := c.Query("cognitoId"); id != "" {
		cursor = &repositories.UserCursor{CognitoID: id}
	}

	page, err := h.userService.Search(c.Request.Context(), c.Query("name"), cursor)
	if err != nil {
		respondError(c, "search users", err)
		return
	}

	c.JSON(http.StatusOK, page)
}

// @Summary Toggle follow
// @Description Follow or unfollow a user
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path string true "User id to follow or unfollow"
// @Success 200 {object} map[string]string
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /users/{id}/follow [post]
func (h *UserHandler) ToggleFollow(c *gin.Context) {
	following, err := h.userService.ToggleFollow(c.Request.Context(), c.GetString("user_id"), c.Param("id"))
	if err != nil {
		respondError(c, "toggle follow", err)
		return
	}

	message := "user unfollowed"
	if following {
		message = "user followed"
	}
	c.JSON(http.StatusOK, gin.H{"message": message})
}

// Lambda-compatible handler methods

// HandleMe handles profile retrieval for Lambda
func (h *UserHandler) HandleMe(ctx context.Context, req *lambda.Request) (*lambda.Response, error) {
	user, err := h.userService.Me(ctx, req.Identity)
	if err != nil {
		return errorResponse("get profile", err), nil
	}

	return lambda.JSON(http.StatusOK, user), nil
}

// HandleUpdate handles profile updates for Lambda
func (h *UserHandler) HandleUpdate(ctx context.Context, req *lambda.Request) (*lambda.Response, error) {
	form, err := req.ParseForm()
	if err != nil {
		return lambda.Error(http.StatusBadRequest, "invalid form body"), nil
	}

	updateReq := &services.UpdateProfileRequest{
		Name:   form.Value("name"),
		Avatar: lambdaFile(form, "file"),
	}

	if err := h.userService.UpdateProfile(ctx, req.Identity, updateReq); err != nil {
		return errorResponse("update profile", err), nil
	}

	return lambda.Message(http.StatusOK, "user updated"), nil
}

// HandleDeleteAvatar handles avatar deletion for Lambda
func (h *UserHandler) HandleDeleteAvatar(ctx context.Context, req *lambda.Request) (*lambda.Response, error) {
	if err := h.userService.DeleteAvatar(ctx, req.Identity); err != nil {
		return errorResponse("delete avatar", err), nil
	}

	return lambda.Message(http.StatusOK, "avatar deleted"), nil
}

// HandleSearch handles user search for Lambda
func (h *UserHandler) HandleSearch(ctx context.Context, req *lambda.Request) (*lambda.Response, error) {
	var cursor *repositories.UserCursor
	if id := req.QueryParam("cognitoId"); id != "" {
		cursor = &repositories.UserCursor{CognitoID: id}
	}

	page, err := h.userService.Search(ctx, req.QueryParam("name"), cursor)
	if err != nil {
		return errorResponse("search users", err), nil
	}

	return lambda.JSON(http.StatusOK, page), nil
}

// HandleToggleFollow handles follow toggling for Lambda
func (h *UserHandler) HandleToggleFollow(ctx context.Context, req *lambda.Request) (*lambda.Response, error) {
	following, err := h.userService.ToggleFollow(ctx, req.Identity, req.PathParam("id"))
	if err != nil {
		return errorResponse("toggle follow", err), nil
	}

	message := "user unfollowed"
	if following {
		message = "user followed"
	}
	return lambda.Message(http.StatusOK, message), nil
}
