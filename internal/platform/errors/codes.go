// Package errors provides structured error handling for the bloglist service.
package errors

import "net/http"

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// Authentication errors
	CodeTokenMissing     Code = "TOKEN_MISSING"
	CodeTokenInvalid     Code = "TOKEN_INVALID"
	CodeIdentityNotFound Code = "IDENTITY_NOT_FOUND"

	// Authorization errors
	CodeNotBlogOwner Code = "NOT_BLOG_OWNER"

	// Blog errors
	CodeBlogTitleOrURLMissing Code = "BLOG_TITLE_OR_URL_MISSING"
	CodeBlogLikesNegative     Code = "BLOG_LIKES_NEGATIVE"

	// User errors
	CodeUserUsernameMissing  Code = "USER_USERNAME_MISSING"
	CodeUserUsernameTaken    Code = "USER_USERNAME_TAKEN"
	CodeUserPasswordTooShort Code = "USER_PASSWORD_TOO_SHORT"
	CodeInvalidCredentials   Code = "INVALID_CREDENTIALS"

	// Storage errors
	CodeNotFound Code = "NOT_FOUND"
	CodeInternal Code = "INTERNAL"
)

// HTTPStatus maps the code to the response status used by the JSON API.
func (c Code) HTTPStatus() int {
	switch c {
	case CodeTokenMissing, CodeTokenInvalid, CodeIdentityNotFound, CodeInvalidCredentials:
		return http.StatusUnauthorized
	case CodeNotBlogOwner:
		return http.StatusForbidden
	case CodeBlogTitleOrURLMissing, CodeBlogLikesNegative,
		CodeUserUsernameMissing, CodeUserUsernameTaken, CodeUserPasswordTooShort:
		return http.StatusBadRequest
	case CodeNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
