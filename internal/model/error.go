package model

// ErrorResponse represents a standardised error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// Standard error codes for API responses
const (
	ErrCodeInvalidJSON        = "INVALID_JSON"
	ErrCodeMissingField       = "MISSING_FIELD"
	ErrCodeBouquetNotFound    = "BOUQUET_NOT_FOUND"
	ErrCodeOrderNotFound      = "ORDER_NOT_FOUND"
	ErrCodeInvalidQuantity    = "INVALID_QUANTITY"
	ErrCodeInvalidRating      = "INVALID_RATING"
	ErrCodeEmptyCart          = "EMPTY_CART"
	ErrCodeInvalidDayKey      = "INVALID_DAY_KEY"
	ErrCodeDiscountConflict   = "DISCOUNT_CONFLICT"
	ErrCodeDiscountNote       = "DISCOUNT_NOTE_REQUIRED"
	ErrCodeInvalidOTP         = "INVALID_OTP"
	ErrCodeOTPExpired         = "OTP_EXPIRED"
	ErrCodeRateLimited        = "RATE_LIMITED"
	ErrCodeInvalidAddress     = "INVALID_ADDRESS"
	ErrCodeOutOfDeliveryRange = "OUT_OF_DELIVERY_RANGE"
	ErrCodeUnauthorised       = "UNAUTHORIZED"
	ErrCodeInternalError      = "INTERNAL_ERROR"
)

// DomainError carries a stable code alongside a human-readable message.
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
	ErrBouquetNotFound    = NewDomainError(ErrCodeBouquetNotFound, "One or more bouquets not found")
	ErrOrderNotFound      = NewDomainError(ErrCodeOrderNotFound, "Order not found")
	ErrInvalidQuantity    = NewDomainError(ErrCodeInvalidQuantity, "Quantity must be greater than zero")
	ErrInvalidRating      = NewDomainError(ErrCodeInvalidRating, "Rating must be between 1 and 5")
	ErrEmptyCart          = NewDomainError(ErrCodeEmptyCart, "Cart must contain at least one item")
	ErrInvalidDayKey      = NewDomainError(ErrCodeInvalidDayKey, "Day key must look like YYYY-MM-DD")
	ErrDiscountConflict   = NewDomainError(ErrCodeDiscountConflict, "Global and category discounts cannot be active at the same time")
	ErrDiscountNote       = NewDomainError(ErrCodeDiscountNote, "A discount with a percent above zero needs a note")
	ErrInvalidOTP         = NewDomainError(ErrCodeInvalidOTP, "The code you entered is not valid")
	ErrOTPExpired         = NewDomainError(ErrCodeOTPExpired, "The code has expired, request a new one")
	ErrRateLimited        = NewDomainError(ErrCodeRateLimited, "Too many attempts, try again later")
	ErrInvalidAddress     = NewDomainError(ErrCodeInvalidAddress, "Please provide a complete street address")
	ErrOutOfDeliveryRange = NewDomainError(ErrCodeOutOfDeliveryRange, "Address is outside our delivery area")
)
