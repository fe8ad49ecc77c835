package response

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Envelope is the wire shape of every API response: data on success,
// error on failure, optional pagination, and tracing metadata always.
type Envelope struct {
	Data       interface{}  `json:"data"`
	Error      *ErrorDetail `json:"error,omitempty"`
	Pagination *Pagination  `json:"pagination,omitempty"`
	Metadata   Meta         `json:"metadata"`
}

// ErrorDetail carries the machine-readable code, its localized message,
// and per-field validation errors when binding failed.
type ErrorDetail struct {
	Code    ErrCode           `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// Pagination describes one page of a list endpoint.
type Pagination struct {
	Page       int `json:"page"`
	PerPage    int `json:"per_page"`
	TotalItems int `json:"total_items"`
	TotalPages int `json:"total_pages"`
}

// Meta ties a response to its request for log correlation.
type Meta struct {
	RequestID string `json:"request_id"`
	Timestamp string `json:"timestamp"`
}

func write(c *gin.Context, status int, env Envelope) {
	env.Metadata = Meta{
		RequestID: requestID(c),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
	c.JSON(status, env)
}

// Success sends data under the standard envelope.
func Success(c *gin.Context, status int, data interface{}) {
	write(c, status, Envelope{Data: data})
}

// SuccessWithPagination sends one page of a list plus its page descriptor.
func SuccessWithPagination(c *gin.Context, status int, data interface{}, p *Pagination) {
	write(c, status, Envelope{Data: data, Pagination: p})
}

// Fail sends an error code with its localized message.
func Fail(c *gin.Context, status int, code ErrCode) {
	write(c, status, Envelope{Error: &ErrorDetail{Code: code, Message: GetMessage(code)}})
}

// FailWithFields sends a validation error with per-field messages.
func FailWithFields(c *gin.Context, status int, code ErrCode, fields map[string]string) {
	write(c, status, Envelope{Error: &ErrorDetail{Code: code, Message: GetMessage(code), Fields: fields}})
}

// AbortFail stops the middleware chain and sends an error response.
// For use inside middlewares; handlers use Fail.
func AbortFail(c *gin.Context, status int, code ErrCode) {
	c.Abort()
	write(c, status, Envelope{Error: &ErrorDetail{Code: code, Message: GetMessage(code)}})
}

func requestID(c *gin.Context) string {
	if v, ok := c.Get(ContextKeyRequestID); ok {
		if id, ok := v.(string); ok && id != "" {
			return id
		}
	}
	// Middleware not applied (tests, bare engines): still emit an ID.
	return uuid.New().String()
}
