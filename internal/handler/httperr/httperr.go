package httperr

import (
	"github.com/gin-gonic/gin"
)

type Response struct {
	Status int `json:"-"`
	Error  struct {
		Message string `json:"message"`
		// Code is stable across message wording changes.
		Code string `json:"code,omitempty"`
	} `json:"error"`
	Detail any `json:"detail,omitempty"`
}

// AbortWithError keeps err on the gin context so ErrorHandler can log the
// full chain; clients only see msg and detail.
func AbortWithError(c *gin.Context, status int, err error, msg string, detail any) {
	abort(c, status, "", err, msg, detail)
}

func AbortWithCode(c *gin.Context, status int, code string, err error, msg string) {
	abort(c, status, code, err, msg, nil)
}

func abort(c *gin.Context, status int, code string, err error, msg string, detail any) {
	if err == nil {
		panic("httperr: err cannot be nil")
	}

	resp := Response{Status: status}
	resp.Error.Message = msg
	resp.Error.Code = code
	resp.Detail = detail

	_ = c.Error(gin.Error{
		Err:  err,
		Type: gin.ErrorTypePublic,
		Meta: resp,
	})
	c.AbortWithStatusJSON(status, resp)
}
