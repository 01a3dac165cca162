package matchresponse

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10" // For handling validation errors
)

const CodeValidationFailed = "ValidationFailed"

// --- Structs for Standardized JSON Response Bodies ---

// jsonSuccessResponse is the structure for successful responses.
type jsonSuccessResponse struct {
	Status  string      `json:"status"`            // Typically "success"
	Message string      `json:"message,omitempty"` // Optional descriptive message
	Data    interface{} `json:"data,omitempty"`    // The actual data payload
}

// jsonErrorResponse is the structure for error responses.
type jsonErrorResponse struct {
	Status    string      `json:"status"`               // "error" or "fail"
	Message   string      `json:"message"`              // Error message
	Code      int         `json:"code"`                 // HTTP status code
	ErrorCode string      `json:"error_code,omitempty"` // Stable machine-readable code
	Errors    interface{} `json:"errors,omitempty"`     // Detailed errors, e.g., for validation
}

// jsonPaginatedResponse is the structure for responses containing paginated data.
type jsonPaginatedResponse struct {
	Status     string      `json:"status"`            // Typically "success"
	Message    string      `json:"message,omitempty"` // Optional descriptive message
	Data       interface{} `json:"data"`              // The list of items
	Pagination Pagination  `json:"pagination"`
}

// Pagination holds pagination details.
type Pagination struct {
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
	Page       int   `json:"page"`
	PerPage    int   `json:"per_page"`
	HasNext    bool  `json:"has_next"`
	HasPrev    bool  `json:"has_prev"`
	NextPage   *int  `json:"next_page,omitempty"`
	PrevPage   *int  `json:"prev_page,omitempty"`
}

// NewPagination computes page metadata. perPage <= 0 falls back to 10.
func NewPagination(page, perPage int, total int64) Pagination {
	if perPage <= 0 {
		perPage = 10
	}
	if page < 1 {
		page = 1
	}

	totalPages := int((total + int64(perPage) - 1) / int64(perPage))
	p := Pagination{
		Total:      total,
		TotalPages: totalPages,
		Page:       page,
		PerPage:    perPage,
		HasNext:    page < totalPages,
		HasPrev:    page > 1 && total > 0,
	}
	if p.HasNext {
		next := page + 1
		p.NextPage = &next
	}
	if p.HasPrev {
		prev := page - 1
		p.PrevPage = &prev
	}
	return p
}

// --- Public Response Helper Functions ---

func statusText(statusCode int) string {
	if statusCode >= http.StatusInternalServerError {
		return "fail" // Differentiate client errors from server failures
	}
	return "error"
}

// ErrorResponse sends a standardized error JSON response.
func ErrorResponse(c *gin.Context, statusCode int, message string) {
	c.AbortWithStatusJSON(statusCode, jsonErrorResponse{
		Status:  statusText(statusCode),
		Message: message,
		Code:    statusCode,
	})
}

// CodedErrorResponse sends an error carrying a stable error code, e.g. TeamFull.
func CodedErrorResponse(c *gin.Context, statusCode int, errorCode, message string) {
	c.AbortWithStatusJSON(statusCode, jsonErrorResponse{
		Status:    statusText(statusCode),
		Message:   message,
		Code:      statusCode,
		ErrorCode: errorCode,
	})
}

// FieldErrorResponse sends a 400 with a field -> message map.
func FieldErrorResponse(c *gin.Context, fields map[string]string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, jsonErrorResponse{
		Status:    "error",
		Message:   "Validation failed. Please check your input.",
		Code:      http.StatusBadRequest,
		ErrorCode: CodeValidationFailed,
		Errors:    fields,
	})
}

// formatValidationErrors converts validator.ValidationErrors into a map.
func formatValidationErrors(errs validator.ValidationErrors) map[string]string {
	formattedErrors := make(map[string]string)
	for _, err := range errs {
		fieldKey := err.Field()
		var errMsg string
		switch err.Tag() {
		case "required":
			errMsg = fmt.Sprintf("The %s field is required.", fieldKey)
		case "min", "gte":
			errMsg = fmt.Sprintf("The %s field must be at least %s.", fieldKey, err.Param())
		case "max", "lte":
			errMsg = fmt.Sprintf("The %s field must not exceed %s.", fieldKey, err.Param())
		case "oneof":
			errMsg = fmt.Sprintf("The %s field must be one of the following: %s.", fieldKey, strings.ReplaceAll(err.Param(), " ", ", "))
		case "matchdate":
			errMsg = fmt.Sprintf("The %s field must be a date in YYYY-MM-DD format.", fieldKey)
		case "matchtime":
			errMsg = fmt.Sprintf("The %s field must be a time in HH:MM format.", fieldKey)
		default:
			errMsg = fmt.Sprintf("Field validation for '%s' failed on the '%s' tag.", fieldKey, err.Tag())
		}
		formattedErrors[fieldKey] = errMsg
	}
	return formattedErrors
}

// ValidationErrorResponse sends a structured JSON response for validation errors
// originating from `c.ShouldBindJSON()` or similar.
func ValidationErrorResponse(c *gin.Context, err error) {
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		FieldErrorResponse(c, formatValidationErrors(ve))
		return
	}
	// For other binding errors (e.g., malformed JSON)
	CodedErrorResponse(c, http.StatusBadRequest, CodeValidationFailed, "Invalid request payload: "+err.Error())
}

// SuccessResponse sends a standardized success JSON response.
// If `data` is `gin.H` and contains a "message" key (string), it's used as the top-level message,
// and the rest of `gin.H` becomes the `data` payload. Otherwise, the whole `data` argument becomes the payload.
func SuccessResponse(c *gin.Context, statusCode int, responseData interface{}) {
	payload := jsonSuccessResponse{
		Status: "success",
	}

	if gh, ok := responseData.(gin.H); ok {
		if msgStr, isStr := gh["message"].(string); isStr {
			payload.Message = msgStr
			dataMap := make(gin.H)
			for k, v := range gh {
				if k != "message" {
					dataMap[k] = v
				}
			}
			if len(dataMap) > 0 {
				payload.Data = dataMap
			}
		} else {
			payload.Data = responseData
		}
	} else if responseData != nil {
		payload.Data = responseData
	}

	c.JSON(statusCode, payload)
}

// PaginatedResponse sends a standardized success JSON response for paginated data.
func PaginatedResponse(c *gin.Context, statusCode int, itemsData interface{}, page int, perPage int, total int64) {
	c.JSON(statusCode, jsonPaginatedResponse{
		Status:     "success",
		Data:       itemsData,
		Pagination: NewPagination(page, perPage, total),
	})
}
