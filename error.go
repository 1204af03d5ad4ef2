package egrecord

import (
	"fmt"
	"strings"

	"golang.org/x/xerrors"
)

// Kinds of failures. Every error returned by the codec, the assembler or a
// reader matches exactly one of them with xerrors.Is.
var (
	ErrMalformedToken         = xerrors.New("malformed token")
	ErrInvalidGroupElement    = xerrors.New("invalid group element")
	ErrInvalidDigest          = xerrors.New("invalid digest")
	ErrMalformedInteger       = xerrors.New("malformed integer")
	ErrUnknownBooleanEncoding = xerrors.New("unknown boolean encoding")
	ErrUnknownStateEncoding   = xerrors.New("unknown ballot state encoding")
	ErrReferentialMismatch    = xerrors.New("referential mismatch")
	ErrMissingRequiredField   = xerrors.New("missing required field")
	ErrIOFailure              = xerrors.New("i/o failure")
	// ErrInvalidShare is returned by the strict check of a partial
	// decryption that is neither direct nor recovered, or both.
	ErrInvalidShare = xerrors.New("invalid partial decryption")
	// ErrNoncePresent is returned when an encrypted ballot carries one of
	// its encryption nonces.
	ErrNoncePresent = xerrors.New("nonce present")
)

// Error is a failure of a given kind, attached to the field of the document
// where it happened. It keeps the frame of the call that created it, which
// is printed with '%+v'.
type Error struct {
	kind  error
	field string
	err   error
	frame xerrors.Frame
}

// NewError returns an error of the given kind for the field. The message is
// formatted from the remaining arguments.
func NewError(kind error, field string, format string, args ...interface{}) error {
	return &Error{
		kind:  kind,
		field: field,
		err:   xerrors.New(fmt.Sprintf(format, args...)),
		frame: xerrors.Caller(1),
	}
}

// WrapKind returns err as an error of the given kind, or nil if err is nil.
func WrapKind(kind error, field string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{
		kind:  kind,
		field: field,
		err:   err,
		frame: xerrors.Caller(1),
	}
}

// At prefixes the field path of err with parent. Errors that are not an
// *Error are returned untouched.
func At(parent string, err error) error {
	e, ok := err.(*Error)
	if !ok || parent == "" {
		return err
	}
	field := parent
	if e.field != "" {
		if strings.HasPrefix(e.field, "[") {
			field += e.field
		} else {
			field += "." + e.field
		}
	}
	return &Error{kind: e.kind, field: field, err: e.err, frame: e.frame}
}

// ErrorOrNil returns the error if any with the stack trace
// beginning at the call of the function.
func ErrorOrNil(err error, msg string) error {
	return ErrorOrNilSkip(err, msg, 1)
}

// ErrorOrNilSkip returns the error if any with the stack trace
// beginning at the call of the skip-nth caller.
func ErrorOrNilSkip(err error, msg string, skip int) error {
	if err == nil {
		return nil
	}
	return &Error{
		err:   xerrors.Errorf("%s: %w", msg, err),
		frame: xerrors.Caller(skip),
	}
}

// Kind returns the kind of the error, or nil if none was set.
func (e *Error) Kind() error {
	return e.kind
}

// Field returns the dotted path of the field that failed.
func (e *Error) Field() string {
	return e.field
}

func (e *Error) Error() string {
	var b strings.Builder
	if e.field != "" {
		b.WriteString(e.field)
		b.WriteString(": ")
	}
	if e.kind != nil {
		b.WriteString(e.kind.Error())
		b.WriteString(": ")
	}
	b.WriteString(e.err.Error())
	return b.String()
}

// Is reports whether target is the kind of the error.
func (e *Error) Is(target error) bool {
	return e.kind != nil && e.kind == target
}

// Unwrap returns the next error in the chain.
func (e *Error) Unwrap() error {
	return e.err
}

// Format prints the error to the formatter.
func (e *Error) Format(f fmt.State, c rune) {
	xerrors.FormatError(e, f, c)
}

// FormatError prints the error to the printer. It prints
// the stack trace when the '+' is used in combination with
// 'v'.
func (e *Error) FormatError(p xerrors.Printer) error {
	p.Print(e.Error())
	if p.Detail() {
		e.frame.Format(p)
		p.Printf("%+v", e.err)
	}
	return nil
}
