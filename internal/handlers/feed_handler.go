package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"social-feed-api/internal/repositories"
	"social-feed-api/internal/services"
	"social-feed-api/pkg/lambda"
)

// FeedHandler handles feed HTTP requests
type FeedHandler struct {
	feedService services.FeedService
}

// NewFeedHandler creates a new feed handler
func NewFeedHandler(feedService services.FeedService) *FeedHandler {
	return &FeedHandler{
		feedService: feedService,
	}
}

// @Summary Author feed
// @Description Get one page of a single author's posts, newest first
// @Tags feed
// @Produce json
// @Security BearerAuth
// @Param userId path string true "Author id"
// @Param id query string false "Cursor post id"
// @Param userId query string false "Cursor author id"
// @Param date query string false "Cursor post date"
// @Success 200 {object} repositories.PostPage
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /feed/user/{userId} [get]
func (h *FeedHandler) ByUser(c *gin.Context) {
	var cursor *repositories.PostCursor
	if c.Query("id") != "" || c.Query("userId") != "" || c.Query("date") != "" {
		cursor = &repositories.PostCursor{
			ID:     c.Query("id"),
			UserID: c.Query("userId"),
			Date:   c.Query("date"),
		}
	}

	page, err := h.feedService.ByAuthor(c.Request.Context(), c.Param("userId"), cursor)
	if err != nil {
		respondError(c, "author feed", err)
		return
	}

	c.JSON(http.StatusOK, page)
}

// @Summary Home feed
// @Description Get one page of posts by the viewer and everyone they follow
// @Tags feed
// @Produce json
// @Security BearerAuth
// @Param id query string false "Cursor post id"
// @Success 200 {object} repositories.PostScanPage
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /feed/home [get]
func (h *FeedHandler) Home(c *gin.Context) {
	var cursor *repositories.ScanCursor
	if id := c.Query("id"); id != "" {
		cursor = &repositories.ScanCursor{ID: id}
	}

	page, err := h.feedService.Home(c.Request.Context(), c.GetString("user_id"), cursor)
	if err != nil {
		respondError(c, "home feed", err)
		return
	}

	c.JSON(http.StatusOK, page)
}

// Lambda-compatible handler methods

// HandleByUser handles the single-author feed for Lambda
func (h *FeedHandler) HandleByUser(ctx context.Context, req *lambda.Request) (*lambda.Response, error) {
	var cursor *repositories.PostCursor
	if req.QueryParam("id") != "" || req.QueryParam("userId") != "" || req.QueryParam("date") != "" {
		cursor = &repositories.PostCursor{
			ID:     req.QueryParam("id"),
			UserID: req.QueryParam("userId"),
			Date:   req.QueryParam("date"),
		}
	}

	page, err := h.feedService.ByAuthor(ctx, req.PathParam("userId"), cursor)
	if err != nil {
		return errorResponse("author feed", err), nil
	}

	return lambda.JSON(http.StatusOK, page), nil
}

// HandleHome handles the home feed for Lambda
func (h *FeedHandler) HandleHome(ctx context.Context, req *lambda.Request) (*lambda.Response, error) {
	var cursor *repositories.ScanCursor
	if id := req.QueryParam("id"); id != "" {
		cursor = &repositories.ScanCursor{ID: id}
	}

	page, err := h.feedService.Home(ctx, req.Identity, cursor)
	if err != nil {
		return errorResponse("home feed", err), nil
	}

	return lambda.JSON(http.StatusOK, page), nil
}
