package main

import (
	"context"

	awslambda "github.com/aws/aws-lambda-go/lambda"

	"clubdvigi-api/internal/handlers"
	"clubdvigi-api/pkg/lambda"
	"clubdvigi-api/pkg/server"
)

func handle(ctx context.Context, container *server.Container, req *lambda.Request) (*lambda.Response, error) {
	h := handlers.NewRegistrationHandler(container.RegistrationService, container.Logger)
	return h.HandleUpsert(ctx, req)
}

func main() {
	awslambda.Start(lambda.Adapt(lambda.GetConnectionManager(), handle))
}
