package domain

import "errors"

var (
	ErrUnknownArticle           = errors.New("unknown article")
	ErrInsufficientStock        = errors.New("insufficient stock")
	ErrInsufficientCartQuantity = errors.New("insufficient cart quantity")
	ErrInvalidQuantity          = errors.New("invalid quantity")
)

// ValidationError is a rejected data entry. Message is what the user sees,
// Kind is one of the sentinel errors above.
type ValidationError struct {
	Kind    error
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return e.Kind
}

func NewUnknownArticleError(mode ValidationMode) *ValidationError {
	msg := "There is no such article in the store's database."
	if mode == ModeRemove {
		msg = "There is no such article in the shopping cart."
	}
	return &ValidationError{Kind: ErrUnknownArticle, Message: msg}
}

func NewInsufficientQuantityError(mode ValidationMode) *ValidationError {
	if mode == ModeRemove {
		return &ValidationError{
			Kind:    ErrInsufficientCartQuantity,
			Message: "There is no product in this quantity in the shopping cart.",
		}
	}
	return &ValidationError{
		Kind:    ErrInsufficientStock,
		Message: "There is no product in the store in such quantity.",
	}
}

func NewInvalidQuantityError() *ValidationError {
	return &ValidationError{
		Kind:    ErrInvalidQuantity,
		Message: "The quantity must be a positive integer.",
	}
}
