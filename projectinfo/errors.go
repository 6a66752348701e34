package projectinfo

import (
	"fmt"

	goerrors "github.com/goliatone/go-errors"
)

const (
	TextCodeNotFound   = "PROJECTINFO_NOT_FOUND"
	TextCodeValidation = "PROJECTINFO_INVALID"
)

// NotFound builds the error FindByID returns when no record carries id.
func NotFound(id string) error {
	return goerrors.New(fmt.Sprintf("project info %q not found", id), goerrors.CategoryNotFound).
		WithTextCode(TextCodeNotFound)
}

// Invalid builds a validation error for malformed input.
func Invalid(err error) error {
	return goerrors.Wrap(err, goerrors.CategoryValidation, "invalid project info request").
		WithTextCode(TextCodeValidation)
}

// IsNotFound reports whether err is a not-found error.
func IsNotFound(err error) bool {
	return goerrors.IsCategory(err, goerrors.CategoryNotFound)
}

// IsInvalid reports whether err is a validation error.
func IsInvalid(err error) bool {
	return goerrors.IsCategory(err, goerrors.CategoryValidation)
}
