// Package errs defines the sentinel errors returned by the codeview decoders.
//
// All errors are plain sentinel values so callers can classify failures with
// errors.Is. Decoders wrap these sentinels with fmt.Errorf("...: %w", ...) to
// attach the offending value or position.
package errs

import "errors"

var (
	// ErrUnexpectedEOF indicates that a subsection, header or record claims
	// more bytes than remain in the input. It is fatal to the current decode
	// call and is never retried.
	ErrUnexpectedEOF = errors.New("unexpected end of debug data")

	// ErrUnknownSubsectionKind indicates a subsection kind outside the closed
	// set of known CodeView subsection kinds. The format may legitimately
	// evolve; the decoder refuses to guess.
	ErrUnknownSubsectionKind = errors.New("unknown debug subsection kind")

	// ErrUnknownChecksumKind indicates a file checksum kind other than
	// none, MD5, SHA-1 or SHA-256.
	ErrUnknownChecksumKind = errors.New("unknown file checksum kind")

	// ErrInvalidFileChecksumOffset indicates a file index that does not point
	// at an entry of the file checksums subsection.
	ErrInvalidFileChecksumOffset = errors.New("invalid file checksum offset")

	// ErrInvalidExportsLength indicates a cross-scope exports subsection whose
	// byte length is not a multiple of the export record size.
	ErrInvalidExportsLength = errors.New("invalid cross-scope exports length")

	// ErrNotACrossModuleRef indicates that an index passed to import
	// resolution is already a global index. Callers can recover by using the
	// index directly.
	ErrNotACrossModuleRef = errors.New("index is not a cross-module reference")

	// ErrCrossModuleRefNotFound indicates a cross-module reference whose
	// module selector or import slot is not covered by the import table.
	// Callers can recover by skipping the referencing record.
	ErrCrossModuleRefNotFound = errors.New("cross-module reference not found")

	// ErrInvalidAnnotation indicates a malformed compressed operand in a
	// binary annotation stream.
	ErrInvalidAnnotation = errors.New("invalid binary annotation operand")

	// ErrUnknownAnnotationOp indicates an annotation opcode outside the
	// closed set of binary annotation operations.
	ErrUnknownAnnotationOp = errors.New("unknown binary annotation operation")

	// ErrUnknownCompressionType indicates a compression type with no codec.
	ErrUnknownCompressionType = errors.New("unknown compression type")

	// ErrModuleNameCollision indicates that two distinct module names hash to
	// the same 64-bit module ID within one store.
	ErrModuleNameCollision = errors.New("module name hash collision")

	// ErrInvalidModuleName indicates an empty module name.
	ErrInvalidModuleName = errors.New("invalid module name")

	// ErrModuleAlreadyStored indicates that debug data for the module name
	// was already added to the store.
	ErrModuleAlreadyStored = errors.New("module already stored")

	// ErrModuleNotFound indicates a lookup for a module name the store does
	// not hold.
	ErrModuleNotFound = errors.New("module not found")
)
