package response

import (
	"net/http"

	"script9/constants"
	apperrors "script9/errors"
	"script9/services/logger"

	"github.com/gin-gonic/gin"
)

// Response is the envelope of every successful reply.
type Response struct {
	Code       int         `json:"code"`
	Message    string      `json:"message"`
	Data       interface{} `json:"data,omitempty"`
	Pagination *Pagination `json:"pagination,omitempty"`
}

// Pagination describes the returned page of a list.
type Pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
}

// ErrorBody is the envelope of every failed reply.
type ErrorBody struct {
	Error   string            `json:"error"`
	Message string            `json:"message"`
	Code    string            `json:"code,omitempty"`
	Issues  []apperrors.Issue `json:"issues,omitempty"`
}

func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    1,
		Message: "success",
		Data:    data,
	})
}

func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Response{
		Code:    1,
		Message: "success",
		Data:    data,
	})
}

func SuccessWithPagination(c *gin.Context, data interface{}, page, limit int, total int64) {
	c.JSON(http.StatusOK, Response{
		Code:    1,
		Message: "success",
		Data:    data,
		Pagination: &Pagination{
			Page:  page,
			Limit: limit,
			Total: total,
		},
	})
}

// HandleError writes err as an ErrorBody. AppErrors keep their kind and status,
// anything else becomes a 500. Server side failures are logged with the request id.
func HandleError(c *gin.Context, log logger.Logger, err error) {
	_ = c.Error(err)

	appErr := apperrors.GetAppError(err)
	if appErr == nil {
		appErr = apperrors.NewAppError("internal_error", "INTERNAL", "internal server error", err)
	}

	status := appErr.Status()
	if status >= http.StatusInternalServerError && log != nil {
		log.WithFields(logger.Fields{
			"requestId": c.GetString(constants.ContextRequestIDKey),
			"path":      c.FullPath(),
			"kind":      appErr.Kind,
		}).Error("request failed: %v", err)
	}

	message := appErr.Message
	if status >= http.StatusInternalServerError && appErr.Kind != apperrors.KindBadGateway {
		message = "internal server error"
	}

	c.AbortWithStatusJSON(status, ErrorBody{
		Error:   string(appErr.Kind),
		Message: message,
		Code:    string(appErr.Code),
		Issues:  appErr.Issues,
	})
}

func Unauthorized(c *gin.Context, code apperrors.ErrorCode, message string) {
	HandleError(c, nil, apperrors.Unauthorized(code, message))
}

func TooManyRequests(c *gin.Context) {
	HandleError(c, nil, apperrors.NewAppError(apperrors.KindTooManyRequests, apperrors.ErrCodeRateLimited, "too many requests", nil))
}
