// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package pointer provides generic helpers for optional values.

Request payloads use pointers to tell an absent JSON field from a zero value;
these helpers keep that bookkeeping out of the handlers.

Key Functions:
  - To: Creates a pointer from a value literal.
  - Val: Safely dereferences a pointer, returning the zero value if nil.
  - NonZero: Drops a pointer whose target is the zero value.
*/
package pointer

// To returns a pointer to the provided value.
func To[T any](v T) *T {
	return &v
}

// Val safely dereferences a pointer.
// If the pointer is nil, it returns the zero value of the underlying type.
func Val[T any](p *T) T {
	if p == nil {
		var zero T
		return zero
	}
	return *p
}

// NonZero returns p unless it is nil or points at the zero value, in which case it returns nil.
//
//	pointer.NonZero(pointer.To(""))    // nil
//	pointer.NonZero(pointer.To("Tom")) // &"Tom"
func NonZero[T comparable](p *T) *T {
	var zero T
	if p == nil || *p == zero {
		return nil
	}
	return p
}
