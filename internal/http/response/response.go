package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/grpc-ecosystem/grpc-gateway/v2/runtime"
	"google.golang.org/grpc/status"
)

const internalErrorMessage = "An unexpected internal error occurred."

type ErrorBody struct {
	Error string `json:"error"`
}

// Error aborts the request with the HTTP equivalent of a status error.
// Errors without a status become 500 with a generic message.
func Error(c *gin.Context, err error) {
	st, ok := status.FromError(err)
	if !ok {
		ErrorMessage(c, http.StatusInternalServerError, internalErrorMessage)
		return
	}
	ErrorMessage(c, runtime.HTTPStatusFromCode(st.Code()), st.Message())
}

func ErrorMessage(c *gin.Context, httpStatus int, message string) {
	c.AbortWithStatusJSON(httpStatus, ErrorBody{Error: message})
}

func OK(c *gin.Context, body any) {
	c.JSON(http.StatusOK, body)
}

func Created(c *gin.Context, body any) {
	c.JSON(http.StatusCreated, body)
}
