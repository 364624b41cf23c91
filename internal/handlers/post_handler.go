package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	"social-feed-api/internal/services"
	"social-feed-api/pkg/lambda"
)

// PostHandler handles publication HTTP requests
type PostHandler struct {
	postService services.PostService
}

// NewPostHandler creates a new post handler
func NewPostHandler(postService services.PostService) *PostHandler {
	return &PostHandler{
		postService: postService,
	}
}

// commentRequest carries a comment submission
type commentRequest struct {
	Text string `json:"text" binding:"required"`
}

// @Summary Create post
// @Description Publish a post with a description and an image
// @Tags posts
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param description formData string true "Post description"
// @Param file formData file true "Post image"
// @Success 201 {object} models.Post
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /posts [post]
func (h *PostHandler) Create(c *gin.Context) {
	image, err := formFile(c, "file")
	if err != nil {
		respondError(c, "create post", err)
		return
	}

	req := &services.CreatePostRequest{
		Description: c.PostForm("description"),
		Image:       image,
	}

	post, err := h.postService.CreatePost(c.Request.Context(), c.GetString("user_id"), req)
	if err != nil {
		respondError(c, "create post", err)
		return
	}

	c.JSON(http.StatusCreated, post)
}

// @Summary Get post
// @Description Get a post with its image resolved to a signed URL
// @Tags posts
// @Produce json
// @Security BearerAuth
// @Param id path string true "Post id"
// @Success 200 {object} models.Post
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /posts/{id} [get]
func (h *PostHandler) Get(c *gin.Context) {
	post, err := h.postService.GetPost(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, "get post", err)
		return
	}

	c.JSON(http.StatusOK, post)
}

// @Summary Toggle like
// @Description Like or unlike a post
// @Tags posts
// @Produce json
// @Security BearerAuth
// @Param id path string true "Post id"
// @Success 200 {object} map[string]string
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /posts/{id}/like [post]
func (h *PostHandler) ToggleLike(c *gin.Context) {
	liked, err := h.postService.ToggleLike(c.Request.Context(), c.GetString("user_id"), c.Param("id"))
	if err != nil {
		respondError(c, "toggle like", err)
		return
	}

	message := "like removed"
	if liked {
		message = "post liked"
	}
	c.JSON(http.StatusOK, gin.H{"message": message})
}

// @Summary Comment
// @Description Append a comment to a post
// @Tags posts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Post id"
// @Param request body commentRequest true "Comment text"
// @Success 201 {object} map[string]string
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /posts/{id}/comment [post]
func (h *PostHandler) Comment(c *gin.Context) {
	var req commentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	if err := h.postService.AddComment(c.Request.Context(), c.GetString("user_id"), c.Param("id"), req.Text); err != nil {
		respondError(c, "add comment", err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "comment added"})
}

// Lambda-compatible handler methods

// HandleCreate handles post creation for Lambda
func (h *PostHandler) HandleCreate(ctx context.Context, req *lambda.Request) (*lambda.Response, error) {
	form, err := req.ParseForm()
	if err != nil {
		return lambda.Error(http.StatusBadRequest, "invalid form body"), nil
	}

	createReq := &services.CreatePostRequest{
		Description: form.Value("description"),
		Image:       lambdaFile(form, "file"),
	}

	post, err := h.postService.CreatePost(ctx, req.Identity, createReq)
	if err != nil {
		return errorResponse("create post", err), nil
	}

	return lambda.JSON(http.StatusCreated, post), nil
}

// HandleGet handles post retrieval for Lambda
func (h *PostHandler) HandleGet(ctx context.Context, req *lambda.Request) (*lambda.Response, error) {
	post, err := h.postService.GetPost(ctx, req.PathParam("id"))
	if err != nil {
		return errorResponse("get post", err), nil
	}

	return lambda.JSON(http.StatusOK, post), nil
}

// HandleToggleLike handles like toggling for Lambda
func (h *PostHandler) HandleToggleLike(ctx context.Context, req *lambda.Request) (*lambda.Response, error) {
	liked, err := h.postService.ToggleLike(ctx, req.Identity, req.PathParam("id"))
	if err != nil {
		return errorResponse("toggle like", err), nil
	}

	message := "like removed"
	if liked {
		message = "post liked"
	}
	return lambda.Message(http.StatusOK, message), nil
}

// HandleComment handles comment creation for Lambda
func (h *PostHandler) HandleComment(ctx context.Context, req *lambda.Request) (*lambda.Response, error) {
	var commentReq commentRequest
	if err := json.Unmarshal(req.Body, &commentReq); err != nil {
		return lambda.Error(http.StatusBadRequest, "invalid request body"), nil
	}

	if err := h.postService.AddComment(ctx, req.Identity, req.PathParam("id"), commentReq.Text); err != nil {
		return errorResponse("add comment", err), nil
	}

	return lambda.Message(http.StatusCreated, "comment added"), nil
}
