// SPDX-License-Identifier: MPL-2.0

// Package issue provides user-facing error types for the webdesk CLI.
//
// Every failure surfaced to the invoker is classified into one of four
// kinds (parse, not-found, validation, I/O) and optionally carries the
// operation, the resource involved, and suggestions on how to fix it.
// Well-known failure modes additionally have rendered markdown documentation
// available through the Lookup function (used by "webdesk explain").
package issue
