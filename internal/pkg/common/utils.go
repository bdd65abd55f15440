package common

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
)

// GenerateUUID 生成 UUID
func GenerateUUID() string {
	return uuid.New().String()
}

// NewErrorResponse 將錯誤轉換為 HTTP 狀態碼與響應內容
func NewErrorResponse(err error) (int, ErrorResponse) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return http.StatusBadRequest, ErrorResponse{
			Code:    ErrCodeValidation,
			Message: ve.Error(),
		}
	}

	var ce *CustomError
	if errors.As(err, &ce) {
		resp := ErrorResponse{Code: ce.Code, Message: ce.Message}
		if ce.Err != nil {
			resp.Details = ce.Err.Error()
		}
		return ce.Status, resp
	}

	return http.StatusInternalServerError, ErrorResponse{
		Code:    ErrCodeInternalError,
		Message: ErrInternalError.Message,
	}
}
