package main

import (
	"context"

	awslambda "github.com/aws/aws-lambda-go/lambda"

	"plantcare-advisor-api/internal/config"
	"plantcare-advisor-api/internal/handlers"
	"plantcare-advisor-api/pkg/server"
)

var container *server.Container

func init() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	container, err = server.NewContainer(context.Background(), cfg)
	if err != nil {
		panic("Failed to initialize container: " + err.Error())
	}
}

func main() {
	handler := handlers.NewLambdaHandler(container.Agent, container.Logger)
	awslambda.Start(handler.Handle)
}
