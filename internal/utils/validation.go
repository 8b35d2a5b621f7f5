package utils

import (
	"github.com/gin-gonic/gin"

	"vytara-server/internal/validate"
)

// BindAndValidate binds the request body to a struct and validates it.
// On failure it writes the error response and returns false.
func BindAndValidate(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		BadRequest(c, "Invalid request payload: "+err.Error())
		return false
	}
	if err := validate.Struct(obj); err != nil {
		if fields, ok := FieldErrorsOf(err); ok {
			ValidationFailed(c, fields, nil)
		} else {
			BadRequest(c, "Validation failed: "+err.Error())
		}
		return false
	}
	return true
}
