// Package errors provides structured error types for the nbt library.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error
// category). The Error type includes rich context: the path of tag names from
// the root to the failing node, the byte offset in the input, and a cause
// chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseDecode, errors.KindInvalidTag).
//		Path("Level", "Entities").
//		Offset(17).
//		Detail("unrecognized tag byte 0x%02x", b).
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.Truncated(path, offset, cause)
//	err := errors.InvalidLength(path, offset, n)
//
// All errors implement the standard error interface and support errors.Is/As.
// Two *Error values match under errors.Is when their Phase and Kind agree,
// which is how callers classify decode failures.
package errors
