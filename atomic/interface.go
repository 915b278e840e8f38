/*
 * MIT License
 *
 * Copyright (c) 2023 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 *
 */

// Package atomic provides a type-safe wrapper over sync/atomic.Value with
// optional default values for load and store operations.
package atomic

import (
	"sync/atomic"
)

// Value is a typed atomic value. All operations are lock-free and safe
// for concurrent use.
type Value[T any] interface {
	// SetDefaultLoad sets the value returned by Load while nothing has
	// been stored yet. Should be called before first use of Load.
	SetDefaultLoad(def T)
	// SetDefaultStore sets the value substituted by Store when the given
	// value is the zero value of T. Should be called before first use of
	// Store.
	SetDefaultStore(def T)

	// Load returns the stored value, or the default load value when the
	// store is empty.
	Load() (val T)
	// Store sets the value. A zero value is replaced with the default
	// store value when one is configured.
	Store(val T)
	// Swap atomically stores new and returns the previous value.
	Swap(new T) (old T)
	// CompareAndSwap atomically replaces old with new when the stored
	// value equals old, reporting whether the swap happened.
	CompareAndSwap(old, new T) (swapped bool)
}

// NewValue returns a new empty typed atomic value.
func NewValue[T any]() Value[T] {
	return &val[T]{
		av: new(atomic.Value),
		dl: new(atomic.Value),
		ds: new(atomic.Value),
	}
}

// NewValueDefault returns a new typed atomic value with the given load
// and store defaults already configured.
func NewValueDefault[T any](defLoad, defStore T) Value[T] {
	v := &val[T]{
		av: new(atomic.Value),
		dl: new(atomic.Value),
		ds: new(atomic.Value),
	}

	v.SetDefaultLoad(defLoad)
	v.SetDefaultStore(defStore)

	return v
}
