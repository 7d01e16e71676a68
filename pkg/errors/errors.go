package errors

import (
	stdErrors "errors"
	"fmt"
)

type Code string

const (
	CodeInvalidConfig   Code = "INVALID_CONFIG"
	CodeMalformedRecord Code = "MALFORMED_RECORD"
	CodePrecisionRisk   Code = "PRECISION_RISK"
	CodeAmbiguousMatch  Code = "AMBIGUOUS_MATCH"
	CodeNoCandidate     Code = "NO_CANDIDATE"
	CodeStaleSkip       Code = "STALE_SKIP"
	CodeSource          Code = "SOURCE_ERROR"
	CodeSink            Code = "SINK_ERROR"
	CodeInternal        Code = "INTERNAL_ERROR"
)

type Metadata struct {
	Fatal         bool
	Retryable     bool
	PublicMessage string
}

var metadataByCode = map[Code]Metadata{
	CodeInvalidConfig: {
		Fatal:         true,
		Retryable:     false,
		PublicMessage: "invalid configuration",
	},
	CodeMalformedRecord: {
		Fatal:         false,
		Retryable:     false,
		PublicMessage: "record missing required fields",
	},
	CodePrecisionRisk: {
		Fatal:         false,
		Retryable:     false,
		PublicMessage: "order items do not sum to order total",
	},
	CodeAmbiguousMatch: {
		Fatal:         false,
		Retryable:     false,
		PublicMessage: "multiple equally plausible transactions",
	},
	CodeNoCandidate: {
		Fatal:         false,
		Retryable:     false,
		PublicMessage: "no transaction candidate",
	},
	CodeStaleSkip: {
		Fatal:         false,
		Retryable:     false,
		PublicMessage: "previously tagged transaction left untouched",
	},
	CodeSource: {
		Fatal:         true,
		Retryable:     true,
		PublicMessage: "source adapter failure",
	},
	CodeSink: {
		Fatal:         false,
		Retryable:     true,
		PublicMessage: "sink adapter failure",
	},
	CodeInternal: {
		Fatal:         true,
		Retryable:     false,
		PublicMessage: "internal error",
	},
}

func MetadataFor(code Code) Metadata {
	if meta, ok := metadataByCode[code]; ok {
		return meta
	}
	return metadataByCode[CodeInternal]
}

type Error struct {
	code    Code
	message string
	details any
	cause   error
}

func New(code Code, message string) *Error {
	return &Error{code: code, message: message}
}

func Wrap(code Code, err error, message string) *Error {
	if err == nil {
		return New(code, message)
	}
	return &Error{code: code, message: message, cause: err}
}

func (e *Error) Code() Code {
	if e == nil {
		return CodeInternal
	}
	return e.code
}

func (e *Error) Message() string {
	if e == nil {
		return ""
	}
	return e.message
}

func (e *Error) Details() any {
	if e == nil {
		return nil
	}
	return e.details
}

func (e *Error) WithDetails(details any) *Error {
	if e == nil {
		return nil
	}
	e.details = details
	return e
}

// IsFatal reports whether the error should abort the whole pass.
func (e *Error) IsFatal() bool {
	return MetadataFor(e.Code()).Fatal
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("%s: %s", e.code, e.message)
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.cause
}

func As(err error) *Error {
	if err == nil {
		return nil
	}
	var typed *Error
	if stdErrors.As(err, &typed) {
		return typed
	}
	return nil
}
