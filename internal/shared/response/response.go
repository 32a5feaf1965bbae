package response

import (
	"hris-payroll/internal/shared/apperror"

	"github.com/gin-gonic/gin"
)

type ReportMeta struct {
	Total     int `json:"total"`
	Succeeded int `json:"succeeded"`
	Failed    int `json:"failed"`
}

type ApiEnvelope struct {
	Ok    bool        `json:"ok"`
	Data  any         `json:"data,omitempty"`
	Meta  *ReportMeta `json:"meta,omitempty"`
	Error any         `json:"error,omitempty"`
}

func Success(c *gin.Context, status int, data interface{}, meta *ReportMeta) {
	c.JSON(status, ApiEnvelope{
		Ok:    true,
		Data:  data,
		Meta:  meta,
		Error: nil,
	})
}

func Error(c *gin.Context, status int, errorCode string, message string, details interface{}) {
	c.JSON(status, ApiEnvelope{
		Ok:   false,
		Data: nil,
		Meta: nil,
		Error: map[string]interface{}{
			"code":    errorCode,
			"message": message,
			"details": details,
		},
	})
}

// FromError writes err through apperror.ToHTTP.
func FromError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}
