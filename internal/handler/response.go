package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"mindful_server/internal/dto/respond"
	"mindful_server/pkg/errorx"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

const msgValidationFailed = "Validation failed"

// HandleSuccess writes {success: true, data}.
func HandleSuccess(c *gin.Context, status int, data any) {
	c.JSON(status, gin.H{
		"success": true,
		"data":    data,
	})
}

// HandlePage writes a list result with its page metadata next to data.
func HandlePage[T any](c *gin.Context, result *respond.PageResult[T]) {
	data := result.Data
	if data == nil {
		data = []T{}
	}
	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"data":        data,
		"count":       result.Count,
		"total":       result.Total,
		"currentPage": result.CurrentPage,
		"totalPages":  result.TotalPages,
	})
}

// HandleDeleted writes {success: true, message}.
func HandleDeleted(c *gin.Context, message string) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": message,
	})
}

// HandleError maps err onto its HTTP status. Business errors keep their
// message; anything else is logged and reported as a generic 500.
func HandleError(c *gin.Context, err error) {
	var codeErr *errorx.CodeError
	if !errors.As(err, &codeErr) {
		zap.L().Error("unhandled error",
			zap.String("path", c.Request.URL.Path),
			zap.String("method", c.Request.Method),
			zap.Error(err),
		)
		codeErr = errorx.ErrServerBusy
	}

	status := errorx.HTTPStatus(codeErr.Code)
	body := gin.H{"success": false, "error": codeErr.Msg}
	if status >= http.StatusInternalServerError {
		_ = c.Error(err)
		if codeErr.Code != errorx.CodeServerBusy {
			body["error"] = errorx.ErrServerBusy.Msg
		}
	}

	details := codeErr.Details
	var verrs validator.ValidationErrors
	if details == nil && errors.As(err, &verrs) {
		details = translate(verrs, modelTrans)
	}
	if len(details) > 0 {
		body["details"] = details
	}
	c.JSON(status, body)
}

// HandleParamError reports a failed bind as 400. A missing top-level required
// field is reported with requiredMsg, other rule violations as "Validation failed";
// both carry per-field details.
func HandleParamError(c *gin.Context, err error, requiredMsg string) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		msg := msgValidationFailed
		for _, fe := range verrs {
			topLevel := strings.Count(fe.Namespace(), ".") == 1
			if fe.Tag() == "required" && topLevel && requiredMsg != "" {
				msg = requiredMsg
				break
			}
		}
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   msg,
			"details": translate(verrs, Trans),
		})
		return
	}

	msg := errorx.ErrInvalidParam.Msg
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.Is(err, io.EOF):
		msg = "Request body is required"
		if requiredMsg != "" {
			msg = requiredMsg
		}
	case errors.As(err, &syntaxErr):
		msg = "Malformed JSON body"
	case errors.As(err, &typeErr):
		msg = "Invalid type for field " + typeErr.Field
	}
	zap.L().Debug("param bind error", zap.String("path", c.Request.URL.Path), zap.Error(err))
	c.JSON(http.StatusBadRequest, gin.H{
		"success": false,
		"error":   msg,
	})
}
