package estimate

type constError string

func (e constError) Error() string { return string(e) }

var (
	// ErrNegativeInput indicates a negative waste or energy quantity.
	ErrNegativeInput = constError("input quantity must not be negative")

	// ErrNonFiniteInput indicates a NaN or infinite input quantity.
	ErrNonFiniteInput = constError("input quantity must be a finite number")

	// ErrInputTooLarge indicates a quantity above MaxInputQuantity.
	ErrInputTooLarge = constError("input quantity is too large")
)
