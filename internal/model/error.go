package model

// ErrorResponse represents a standardised error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// Standard error codes for API responses
const (
	ErrCodeInvalidJSON      = "INVALID_JSON"
	ErrCodeMissingField     = "MISSING_FIELD"
	ErrCodeRequestTooLarge  = "REQUEST_TOO_LARGE"
	ErrCodeCartUnavailable  = "CART_UNAVAILABLE"
	ErrCodeInvalidCatalog   = "INVALID_CATALOG"
	ErrCodeDuplicateProduct = "DUPLICATE_PRODUCT"
	ErrCodeInternalError    = "INTERNAL_ERROR"
)

// Domain errors for business logic
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrCartUnavailable  = NewDomainError(ErrCodeCartUnavailable, "Cart storage is unavailable")
	ErrMissingProductID = NewDomainError(ErrCodeMissingField, "Product ID is required")
	ErrInvalidCatalog   = NewDomainError(ErrCodeInvalidCatalog, "Catalogue contains an invalid product")
	ErrDuplicateProduct = NewDomainError(ErrCodeDuplicateProduct, "Catalogue contains a duplicate product ID")
)
