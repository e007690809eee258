package constants

import "github.com/gin-gonic/gin"

// Standard response field keys. Every endpoint answers with
// {status, message} plus an optional data field, mirroring what the
// frontend client expects.
const (
	ResponseFieldStatus  = "status"
	ResponseFieldMessage = "message"
	ResponseFieldData    = "data"
)

// BuildResponse builds the standard envelope without a data field.
func BuildResponse(status int, message string) gin.H {
	return gin.H{
		ResponseFieldStatus:  status,
		ResponseFieldMessage: message,
	}
}

// BuildDataResponse builds the standard envelope with a data field.
func BuildDataResponse(status int, message string, data any) gin.H {
	return gin.H{
		ResponseFieldStatus:  status,
		ResponseFieldMessage: message,
		ResponseFieldData:    data,
	}
}
