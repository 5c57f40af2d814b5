package httperr

import (
	"github.com/gin-gonic/gin"
)

type Response struct {
	Status int `json:"-"`
	Error  struct {
		Code    string `json:"code,omitempty"`
		Message string `json:"message"`
	} `json:"error"`
	Detail any `json:"detail,omitempty"`
}

// AbortWithError preserves the original error on the gin context for the
// logging and error middleware while emitting the public envelope.
func AbortWithError(c *gin.Context, status int, err error, msg string, detail any) {
	AbortWithCode(c, status, err, "", msg, detail)
}

// AbortWithCode additionally tags the response with a machine-readable
// code (e.g. INSUFFICIENT_CREDITS) that clients branch on.
func AbortWithCode(c *gin.Context, status int, err error, code, msg string, detail any) {
	if err == nil {
		panic("AbortWithCode: err cannot be nil")
	}

	resp := Response{Status: status}
	resp.Error.Code = code
	resp.Error.Message = msg
	resp.Detail = detail

	_ = c.Error(gin.Error{
		Err:  err,
		Type: gin.ErrorTypePublic,
		Meta: resp,
	})
	c.AbortWithStatusJSON(status, resp)
}
