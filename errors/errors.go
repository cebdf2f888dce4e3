package errors

import (
	"fmt"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseDecode Phase = "decode" // binary to tree
	PhaseEncode Phase = "encode" // tree to binary
	PhaseParse  Phase = "parse"  // SNBT text to tree
	PhaseAccess Phase = "access" // reference-layer misuse
)

// Kind categorizes the error
type Kind string

const (
	// Decode kinds; every malformed input fails with exactly one of these.
	KindInvalidTag    Kind = "invalid_tag"    // unrecognized or misplaced tag byte
	KindTruncated     Kind = "truncated"      // input ends before a declared field
	KindInvalidLength Kind = "invalid_length" // negative or absurd declared length
	KindInvalidUTF8   Kind = "invalid_utf8"   // string bytes not valid UTF-8

	// Parse kinds used by the SNBT reader.
	KindUnexpectedToken Kind = "unexpected_token"
	KindInvalidNumber   Kind = "invalid_number"

	// Structural misuse of the reference layer.
	KindStaleReference Kind = "stale_reference"
)

// Error is the structured error type used throughout the library
type Error struct {
	Cause  error
	Phase  Phase
	Kind   Kind
	Detail string
	Path   []string
	Offset int
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if len(e.Path) > 0 {
		b.WriteString(" at ")
		b.WriteString(strings.Join(e.Path, "."))
	}

	if e.Offset > 0 {
		fmt.Fprintf(&b, " (offset %d)", e.Offset)
	}

	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Path sets the tag-name path from the root
func (b *Builder) Path(path ...string) *Builder {
	b.err.Path = path
	return b
}

// Offset sets the byte offset in the input
func (b *Builder) Offset(off int) *Builder {
	b.err.Offset = off
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// InvalidTag creates an unrecognized-tag-byte error
func InvalidTag(path []string, offset int, tag byte) *Error {
	return &Error{
		Phase:  PhaseDecode,
		Kind:   KindInvalidTag,
		Path:   path,
		Offset: offset,
		Detail: fmt.Sprintf("unrecognized tag byte 0x%02x", tag),
	}
}

// Truncated creates an error for input that ends before a declared field
func Truncated(path []string, offset int, cause error) *Error {
	return &Error{
		Phase:  PhaseDecode,
		Kind:   KindTruncated,
		Path:   path,
		Offset: offset,
		Detail: "input ends before declared field",
		Cause:  cause,
	}
}

// InvalidLength creates a negative-length error for a list, array or string
func InvalidLength(path []string, offset int, length int32) *Error {
	return &Error{
		Phase:  PhaseDecode,
		Kind:   KindInvalidLength,
		Path:   path,
		Offset: offset,
		Detail: fmt.Sprintf("declared length %d is negative", length),
	}
}

// InvalidUTF8 creates an invalid UTF-8 error for a string field
func InvalidUTF8(path []string, offset int) *Error {
	return &Error{
		Phase:  PhaseDecode,
		Kind:   KindInvalidUTF8,
		Path:   path,
		Offset: offset,
		Detail: "string bytes are not valid UTF-8",
	}
}

// UnexpectedToken creates an SNBT parse error at a given input position
func UnexpectedToken(offset int, got, want string) *Error {
	return &Error{
		Phase:  PhaseParse,
		Kind:   KindUnexpectedToken,
		Offset: offset,
		Detail: fmt.Sprintf("unexpected %s, want %s", got, want),
	}
}

// StaleReference creates an error for a view whose node has been removed.
// The reference layer panics with this value rather than returning it.
func StaleReference(handle uint32) *Error {
	return &Error{
		Phase:  PhaseAccess,
		Kind:   KindStaleReference,
		Detail: fmt.Sprintf("use of stale reference (handle %d)", handle),
	}
}

// InvalidNumber creates an SNBT numeric literal error
func InvalidNumber(offset int, literal string, cause error) *Error {
	return &Error{
		Phase:  PhaseParse,
		Kind:   KindInvalidNumber,
		Offset: offset,
		Detail: fmt.Sprintf("cannot parse numeric literal %q", literal),
		Cause:  cause,
	}
}
