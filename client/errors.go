package client

import (
	apierrors "github.com/Eccentric-Harry/blog-frontend/client/internal/errors"
)

// Error model re-exported from the internal errors package.
type (
	// HTTPError reports a response whose status is outside the success range.
	HTTPError = apierrors.HTTPError
	// APIError is the JSON envelope the backend returns with failures.
	APIError = apierrors.APIError
	// DecodeError reports a successful response that could not be decoded or validated.
	DecodeError = apierrors.DecodeError
	// ErrorKind tags whether an HTTPError came from the JSON pipeline or a text body.
	ErrorKind = apierrors.Kind
	// ErrorCategory classifies failures as recoverable or not.
	ErrorCategory = apierrors.ErrorCategory
)

const (
	KindStructured = apierrors.KindStructured
	KindText       = apierrors.KindText

	Recoverable   = apierrors.Recoverable
	Irrecoverable = apierrors.Irrecoverable
)

var (
	AsHTTPError     = apierrors.AsHTTPError
	StatusCode      = apierrors.StatusCode
	IsUnauthorized  = apierrors.IsUnauthorized
	IsNotFound      = apierrors.IsNotFound
	IsIrrecoverable = apierrors.IsIrrecoverable
)
