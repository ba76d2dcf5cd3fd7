package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"clubdvigi-api/internal/middleware"
	"clubdvigi-api/internal/models"
	"clubdvigi-api/internal/services"
	"clubdvigi-api/pkg/lambda"
)

// RegistrationHandler handles the Club Dvigi upsert and lookup requests
type RegistrationHandler struct {
	registrationService services.RegistrationService
	logger              *logrus.Logger
}

// NewRegistrationHandler creates a new registration handler
func NewRegistrationHandler(registrationService services.RegistrationService, logger *logrus.Logger) *RegistrationHandler {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &RegistrationHandler{
		registrationService: registrationService,
		logger:              logger,
	}
}

// @Summary Register a Club Dvigi customer
// @Description Create or update the Shopify customer for an email, merge its tags and record the purchased product in the warranty list
// @Tags clubdvigi
// @Accept json
// @Produce json
// @Param registration body models.RegistrationRequest true "Registration form"
// @Success 200 {object} models.RegistrationResult
// @Success 204 "CORS preflight"
// @Failure 400 {object} ErrorResponse
// @Failure 405 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /clubdvigi-upsert [post]
func (h *RegistrationHandler) Upsert(c *gin.Context) {
	status, payload, err := h.upsert(c.Request.Context(), c.Request.Method, readBody(c))
	writeGin(c, status, payload, err)
}

// @Summary Look up a Club Dvigi customer
// @Description Return the contact fields of the Shopify customer registered with an email
// @Tags clubdvigi
// @Accept json
// @Produce json
// @Param lookup body models.LookupRequest true "Email to look up"
// @Success 200 {object} models.ContactDetails
// @Success 204 "CORS preflight"
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} EmptyResponse
// @Failure 405 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /lookup [post]
func (h *RegistrationHandler) Lookup(c *gin.Context) {
	status, payload, err := h.lookup(c.Request.Context(), c.Request.Method, readBody(c))
	writeGin(c, status, payload, err)
}

// HandleUpsert serves the upsert endpoint as a Lambda function
func (h *RegistrationHandler) HandleUpsert(ctx context.Context, req *lambda.Request) (*lambda.Response, error) {
	status, payload, err := h.upsert(ctx, req.Method, req.Body)
	if err != nil {
		h.logFailure(req, "Registration failed", err)
	}
	return newLambdaResponse(req.Header("Origin"), status, payload)
}

// HandleLookup serves the lookup endpoint as a Lambda function
func (h *RegistrationHandler) HandleLookup(ctx context.Context, req *lambda.Request) (*lambda.Response, error) {
	status, payload, err := h.lookup(ctx, req.Method, req.Body)
	if err != nil {
		h.logFailure(req, "Lookup failed", err)
	}
	return newLambdaResponse(req.Header("Origin"), status, payload)
}

func (h *RegistrationHandler) upsert(ctx context.Context, method string, body []byte) (int, any, error) {
	if status, payload, done := checkMethod(method); done {
		return status, payload, nil
	}

	var req models.RegistrationRequest
	decodeBody(body, &req)

	result, err := h.registrationService.Register(ctx, &req)
	if err != nil {
		return errorStatus(err)
	}
	return http.StatusOK, result, nil
}

func (h *RegistrationHandler) lookup(ctx context.Context, method string, body []byte) (int, any, error) {
	if status, payload, done := checkMethod(method); done {
		return status, payload, nil
	}

	var req models.LookupRequest
	decodeBody(body, &req)

	details, err := h.registrationService.Lookup(ctx, &req)
	if err != nil {
		return errorStatus(err)
	}
	return http.StatusOK, details, nil
}

func (h *RegistrationHandler) logFailure(req *lambda.Request, msg string, err error) {
	h.logger.WithFields(logrus.Fields{
		"request_id": req.RequestID,
		"method":     req.Method,
		"path":       req.Path,
		"error":      err.Error(),
	}).Error(msg)
}

// checkMethod answers preflight and unsupported methods
func checkMethod(method string) (int, any, bool) {
	switch method {
	case http.MethodPost:
		return 0, nil, false
	case http.MethodOptions:
		return http.StatusNoContent, nil, true
	default:
		return http.StatusMethodNotAllowed, ErrorResponse{Error: msgMethodNotAllowed}, true
	}
}

// decodeBody fills v from a JSON object body. Anything else leaves v empty.
func decodeBody(body []byte, v any) {
	if len(body) == 0 {
		return
	}
	_ = json.Unmarshal(body, v)
}

func readBody(c *gin.Context) []byte {
	if c.Request.Body == nil {
		return nil
	}
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		return nil
	}
	return body
}

func writeGin(c *gin.Context, status int, payload any, err error) {
	if err != nil {
		_ = c.Error(err)
	}
	if payload == nil {
		c.Status(status)
		return
	}
	c.JSON(status, payload)
}

func newLambdaResponse(origin string, status int, payload any) (*lambda.Response, error) {
	headers := middleware.CORSHeaders(origin)

	resp := &lambda.Response{StatusCode: status, Headers: headers}
	if payload == nil {
		return resp, nil
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	headers["Content-Type"] = "application/json; charset=utf-8"
	resp.Body = body
	return resp, nil
}
