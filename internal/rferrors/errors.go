// Package rferrors is the error taxonomy shared by every rainbowforge
// component. Errors carry a Kind so callers (the CLI, the server) can
// branch on category without string matching, while still wrapping the
// underlying cause for errors.Is / errors.As.
package rferrors

import (
	"errors"
	"fmt"
)

// Kind enumerates the error categories named by the design document.
type Kind string

const (
	FileOpen                Kind = "file_open"
	FileRead                 Kind = "file_read"
	CreateFile               Kind = "create_file"
	WriteError               Kind = "write_error"
	ThreadJoin               Kind = "thread_join"
	ThreadSpawn              Kind = "thread_spawn"
	SendError                Kind = "send_error"
	InvalidThreadCount       Kind = "invalid_thread_count"
	InvalidInput             Kind = "invalid_input"
	InvalidFormat            Kind = "invalid_format"
	UnknownAlgorithm         Kind = "unknown_algorithm"
	InvalidHashLength        Kind = "invalid_hash_length"
	InvalidMagicWord         Kind = "invalid_magic_word"
	MetadataError            Kind = "metadata_error"
	InvalidAlgorithm         Kind = "invalid_algorithm"
	NoPasswordsFound         Kind = "no_passwords_found"
	NoRainbowTableFound      Kind = "no_rainbow_table_found"
	PasswordNotFoundInCache  Kind = "password_not_found_in_cache"
	BindingError             Kind = "binding_error"
	ChainError               Kind = "chain_error"
	IoError                  Kind = "io_error"
	Utf8Error                Kind = "utf8_error"
)

// Error is a Kind-tagged error that wraps an optional underlying cause.
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// New builds an Error with no underlying cause.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap builds an Error around an underlying cause.
func Wrap(kind Kind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, Cause: cause}
}

// Is reports whether err is an *Error of the given kind.
func Is(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}
