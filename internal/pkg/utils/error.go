package utils

import "github.com/sam-zarila/essa-admin/internal/pkg/models"

func GetErrorCode(err error) string {
	if customErr, ok := err.(*models.CustomError); ok {
		return customErr.ErrorCode()
	}
	return "ESSA_ADMIN_INTERNAL_ERROR"
}
