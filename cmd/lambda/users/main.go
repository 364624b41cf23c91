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
	if req.Identity == "" {
		return lambda.ToAPIGatewayResponse(lambda.Error(401, "unauthorized")), nil
	}

	container, err := server.Shared()
	if err != nil {
		return lambda.ToAPIGatewayResponse(lambda.Error(500, "internal server error")), nil
	}

	userHandler := handlers.NewUserHandler(container.UserService)

	var resp *lambda.Response
	switch {
	case req.Method == "GET" && strings.HasSuffix(req.Path, "/me"):
		resp, err = userHandler.HandleMe(ctx, req)
	case req.Method == "PUT" && strings.HasSuffix(req.Path, "/me"):
		resp, err = userHandler.HandleUpdate(ctx, req)
	case req.Method == "DELETE" && strings.HasSuffix(req.Path, "/me/avatar"):
		resp, err = userHandler.HandleDeleteAvatar(ctx, req)
	case req.Method == "GET" && strings.HasSuffix(req.Path, "/search"):
		resp, err = userHandler.HandleSearch(ctx, req)
	case req.Method == "POST" && req.PathParam("id") != "":
		resp, err = userHandler.HandleToggleFollow(ctx, req)
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
