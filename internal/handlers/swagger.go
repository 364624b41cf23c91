package handlers

// @title Social Feed API
// @version 1.0
// @description Serverless backend for a social feed: accounts, profiles, posts, likes, comments and paginated feeds

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8081
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the access token.

// @tag.name auth
// @tag.description Registration and authentication operations

// @tag.name users
// @tag.description Profile and social graph operations

// @tag.name posts
// @tag.description Post publication operations

// @tag.name feed
// @tag.description Paginated feed operations
