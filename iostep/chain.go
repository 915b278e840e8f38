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

package iostep

// Chain is the ordered queue of deferred steps of one connection:
// head-first consumption, tail-append insertion. It is owned by a
// single worker and needs no locking.
type Chain struct {
	head *node
	tail *node
	size int
}

type node struct {
	s    Step
	next *node
}

// NewChain returns an empty chain.
func NewChain() *Chain {
	return &Chain{}
}

// Append inserts a step at the tail of the chain.
func (c *Chain) Append(s Step) {
	if s == nil {
		return
	}

	n := &node{s: s}

	if c.tail == nil {
		c.head = n
	} else {
		c.tail.next = n
	}

	c.tail = n
	c.size++
}

// Head returns the current head step without removing it, or nil when
// the chain is empty.
func (c *Chain) Head() Step {
	if c.head == nil {
		return nil
	}
	return c.head.s
}

// Shift removes the head step and releases its payload.
func (c *Chain) Shift() {
	if c.head == nil {
		return
	}

	n := c.head
	c.head = n.next

	if c.head == nil {
		c.tail = nil
	}

	c.size--
	n.s.Release()
	n.next = nil
}

// IsEmpty reports whether the chain holds no step.
func (c *Chain) IsEmpty() bool {
	return c.head == nil
}

// Len returns the number of queued steps.
func (c *Chain) Len() int {
	return c.size
}

// Drain releases every queued step and empties the chain. Used on
// connection teardown.
func (c *Chain) Drain() {
	for c.head != nil {
		c.Shift()
	}
}
