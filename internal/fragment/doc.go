// Package fragment merges layered template fragments and renders them.
//
// A fragment is a named text block (header, week, teacher, student, footer,
// preamble) containing {{name}} placeholders. Fragments are resolved from
// layers in increasing precedence:
//  1. Built-in fragments (embedded in the binary)
//  2. Global config
//  3. Module document
//  4. Class document
//  5. Plan document
//
// A later layer replaces a fragment of the same name wholesale; placeholders
// inside fragments are never merged.
//
// The preamble is available to the header as {{preamble}}. When the
// effective header does not reference it, a non-empty preamble is placed
// above the header as a block of its own.
package fragment
