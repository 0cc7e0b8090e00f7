package util

import (
	"net/http"

	"github.com/domen5/TaskTrail-sub000/internal/apperr"

	"github.com/gin-gonic/gin"
)

// Response is the data portion of the uniform API envelope.
type Response map[string]interface{}

// Success writes the uniform success envelope.
func Success(c *gin.Context, data Response) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    data,
	})
}

// Created writes the success envelope with a 201 status.
func Created(c *gin.Context, data Response) {
	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    data,
	})
}

// RespondError translates an application error into the HTTP status and
// the uniform error envelope. This is the single place where error codes
// become status codes; handlers never pick statuses themselves.
func RespondError(c *gin.Context, err error) {
	code := apperr.CodeOf(err)
	c.JSON(httpStatus(code), gin.H{
		"success": false,
		"message": apperr.MessageOf(err),
	})
}

func httpStatus(code apperr.Code) int {
	switch code {
	case apperr.CodeInvalidArgument, apperr.CodeInvalidCredential, apperr.CodeAlreadyExists:
		return http.StatusBadRequest
	case apperr.CodeUnprocessable:
		return http.StatusUnprocessableEntity
	case apperr.CodeUnauthenticated:
		return http.StatusUnauthorized
	case apperr.CodePermissionDenied:
		return http.StatusForbidden
	case apperr.CodeNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
