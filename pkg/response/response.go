package response

import (
	"github.com/gin-gonic/gin"

	appErrors "github.com/timerpro/timer-api/pkg/errors"
)

// Envelope is the uniform response contract. Every HTTP response carries
// a human-readable message, the payload, and the status code echoed in
// the body.
type Envelope struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
	Code    int         `json:"code"`
}

// Success sends a success response wrapping the payload.
func Success(c *gin.Context, status int, data interface{}, message string) {
	c.Header("Cache-Control", "no-store")
	c.JSON(status, Envelope{Message: message, Data: data, Code: status})
}

// Error sends an error response converting the error to the common
// structure. The data field is an empty object, matching the contract
// existing clients parse.
func Error(c *gin.Context, err error) {
	appErr := appErrors.FromError(err)
	c.Header("Cache-Control", "no-store")
	c.JSON(appErr.Status, Envelope{Message: appErr.Message, Data: gin.H{}, Code: appErr.Status})
}
