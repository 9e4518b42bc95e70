package status

import "errors"

var (
	// StatusError indicates a failure of an operation.
	StatusError = errors.New("operation failed")

	// StatusInvalidArg indicates that an operation received an invalid argument.
	StatusInvalidArg = errors.New("invalid argument")

	// StatusInvalidState indicates that an operation was called in the wrong state.
	StatusInvalidState = errors.New("invalid state")

	// StatusNoData indicates that the requested data doesn't exist.
	StatusNoData = errors.New("no data")

	// StatusNotSupported indicates that an operation isn't supported.
	StatusNotSupported = errors.New("not implemented")
)
