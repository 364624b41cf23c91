package main

import (
	"context"
	"strings"

	"social-feed-api/internal/config"
	"social-feed-api/internal/handlers"
	"social-feed-api/pkg/lambda"
	"social-feed-api/pkg/server"

	"github.com/aws/aws-lambda-go/events"
	awslambda "github.com/aws/aws-lambda-go/lambda"
)

func init() {
	cfg, err := config.GetOptimizedConfig()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	if err := server.Warm(cfg); err != nil {
		panic("Failed to initialize container: " + err.Error())
	}
}

func handler(ctx context.Context, event events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	req, err := lambda.FromAPIGatewayRequest(event)
	if err != nil {
		return lambda.ToAPIGatewayResponse(lambda.Error(400, "invalid request")), nil
	}

	container, err := server.Shared()
	if err != nil {
		return lambda.ToAPIGatewayResponse(lambda.Error(500, "internal server error")), nil
	}

	authHandler := handlers.NewAuthHandler(container.AuthService)

	var resp *lambda.Response
	switch {
	case req.Method == "POST" && strings.HasSuffix(req.Path, "/signup"):
		resp, err = authHandler.HandleSignUp(ctx, req)
	case req.Method == "POST" && strings.HasSuffix(req.Path, "/confirm-email"):
		resp, err = authHandler.HandleConfirmEmail(ctx, req)
	case req.Method == "POST" && strings.HasSuffix(req.Path, "/forgot-password"):
		resp, err = authHandler.HandleForgotPassword(ctx, req)
	case req.Method == "POST" && strings.HasSuffix(req.Path, "/confirm-password"):
		resp, err = authHandler.HandleConfirmPassword(ctx, req)
	case req.Method == "POST" && strings.HasSuffix(req.Path, "/login"):
		resp, err = authHandler.HandleLogin(ctx, req)
	default:
		resp = lambda.Error(404, "not found")
	}

	if err != nil {
		return lambda.ToAPIGatewayResponse(lambda.Error(500, "internal server error")), nil
	}

	return lambda.ToAPIGatewayResponse(resp), nil
}

func main() {
	awslambda.Start(handler)
}
