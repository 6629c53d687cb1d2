// Package streams provides the byte-level I/O boundary of the calculator:
// a validating digit source over the numerator stream and a buffered
// quotient sink.
//
// DigitReader enforces the numerator grammar (a run of decimal digits,
// with optional surrounding whitespace unless strict mode is enabled) and
// reports violations as apperrors.InputSyntaxError values carrying the
// byte offset of the offending byte. QuotientWriter buffers emitted
// quotient digits and tracks how many were written. OpenInput and
// OpenOutput resolve "-" to the standard streams and apply a sequential
// read-ahead hint to regular input files.
package streams
