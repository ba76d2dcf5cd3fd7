package lambda

import (
	"context"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
	"github.com/sirupsen/logrus"

	"clubdvigi-api/internal/middleware"
	"clubdvigi-api/pkg/server"
)

// ContextHandler serves a converted request with the warm container
type ContextHandler func(ctx context.Context, container *server.Container, req *Request) (*Response, error)

// ContainerSource yields the container for an invocation
type ContainerSource interface {
	GetContainer() (*server.Container, error)
}

var serverErrorBody = []byte(`{"error":"Server error"}`)

// Adapt turns a ContextHandler into an API Gateway proxy handler.
// Failures never escape as Lambda errors; they become a 500 with CORS headers.
func Adapt(source ContainerSource, handler ContextHandler) func(context.Context, events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	return func(ctx context.Context, event events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
		req, err := FromAPIGateway(event)
		if err != nil {
			logrus.WithError(err).Error("Failed to convert API Gateway event")
			return serverError(event.Headers).ToAPIGateway(), nil
		}

		container, err := source.GetContainer()
		if err != nil {
			logrus.WithError(err).Error("Failed to initialize container")
			return serverError(req.Headers).ToAPIGateway(), nil
		}

		resp, err := handler(ctx, container, req)
		if err != nil {
			container.Logger.WithFields(logrus.Fields{
				"request_id": req.RequestID,
				"path":       req.Path,
				"error":      err.Error(),
			}).Error("Handler failed")
			return serverError(req.Headers).ToAPIGateway(), nil
		}

		return resp.ToAPIGateway(), nil
	}
}

func serverError(headers map[string]string) *Response {
	origin := (&Request{Headers: headers}).Header("Origin")

	h := middleware.CORSHeaders(origin)
	h["Content-Type"] = "application/json; charset=utf-8"
	return &Response{
		StatusCode: http.StatusInternalServerError,
		Headers:    h,
		Body:       serverErrorBody,
	}
}
