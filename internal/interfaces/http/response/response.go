package response

import (
	"errors"

	"github.com/gin-gonic/gin"
	domainerrors "vendor-pay.backend/internal/domain/errors"
)

// Success sends a success response
func Success(c *gin.Context, status int, data interface{}) {
	c.JSON(status, data)
}

// Error sends an error response. AppErrors carry their own HTTP status;
// bare sentinel errors are mapped through the domain error taxonomy.
func Error(c *gin.Context, err error) {
	var appErr *domainerrors.AppError
	if !errors.As(err, &appErr) {
		appErr = domainerrors.FromDomain(err, err.Error())
	}

	c.JSON(appErr.Status, gin.H{
		"code":    appErr.Code,
		"message": appErr.Message,
	})
}

// ErrorWithError sends an error response with a specific status and message
func ErrorWithError(c *gin.Context, status int, code string, message string) {
	c.JSON(status, gin.H{
		"code":    code,
		"message": message,
	})
}
