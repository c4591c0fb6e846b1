package util

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a template parse failure
type ErrorKind int

const (
	// ErrorKindLexical covers unbalanced expression braces and scanner stalls
	ErrorKindLexical ErrorKind = iota
	// ErrorKindStructural covers mismatched tags, blocks and invalid attributes
	ErrorKindStructural
	// ErrorKindResolution covers named views missing from the registry
	ErrorKindResolution
	// ErrorKindGrammar covers expression bodies rejected by the expression grammar
	ErrorKindGrammar
)

// String returns the name of the error kind
func (k ErrorKind) String() string {
	switch k {
	case ErrorKindLexical:
		return "lexical"
	case ErrorKindStructural:
		return "structural"
	case ErrorKindResolution:
		return "resolution"
	case ErrorKindGrammar:
		return "grammar"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// ParseError represents a parse error
type ParseError struct {
	Kind ErrorKind
	Msg  string
}

// NewParseError creates a new ParseError
func NewParseError(kind ErrorKind, msg string) *ParseError {
	return &ParseError{
		Kind: kind,
		Msg:  msg,
	}
}

// Errorf creates a new ParseError with a formatted message
func Errorf(kind ErrorKind, format string, args ...interface{}) *ParseError {
	return NewParseError(kind, fmt.Sprintf(format, args...))
}

// Error implements the error interface
func (p *ParseError) Error() string {
	return p.Msg
}

// AppendErrorMessage appends message to the text of err. The returned error
// still unwraps to err, so errors.As keeps finding the original ParseError.
func AppendErrorMessage(err error, message string) error {
	if err == nil {
		return nil
	}
	return &appendedError{err: err, message: message}
}

type appendedError struct {
	err     error
	message string
}

func (e *appendedError) Error() string {
	return e.err.Error() + e.message
}

func (e *appendedError) Unwrap() error {
	return e.err
}

// KindOf returns the kind of the first ParseError in err's chain
func KindOf(err error) (ErrorKind, bool) {
	var parseErr *ParseError
	if errors.As(err, &parseErr) {
		return parseErr.Kind, true
	}
	return 0, false
}
