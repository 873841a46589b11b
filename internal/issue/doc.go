// SPDX-License-Identifier: MPL-2.0

// Package issue provides structured, user-facing error types.
//
// ActionableError carries the operation that failed, the resource involved,
// and suggestions for fixing the problem. The dispatcher renders exactly one
// such report per invocation; verbose mode additionally shows the full
// error chain.
package issue
