//go:build linux

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

package connection

// Registry is the dense fd-indexed table of live connections of one
// worker. No two live records share a descriptor; removal pairs the
// socket close and chain drain with the table slot clear.
type Registry struct {
	tbl   []*Conn
	count int
}

// NewRegistry returns a registry able to track descriptors up to
// maxFds (exclusive).
func NewRegistry(maxFds int) *Registry {
	if maxFds < 1 {
		maxFds = 1
	}

	return &Registry{
		tbl: make([]*Conn, maxFds),
	}
}

// Cap returns the descriptor bound of the table.
func (r *Registry) Cap() int {
	return len(r.tbl)
}

// Count returns the number of live connections.
func (r *Registry) Count() int {
	return r.count
}

// Put stores the connection under its descriptor. It refuses
// descriptors beyond the table bound or slots already in use.
func (r *Registry) Put(c *Conn) bool {
	if c == nil || c.Fd() < 0 || c.Fd() >= len(r.tbl) {
		return false
	}

	if r.tbl[c.Fd()] != nil {
		return false
	}

	r.tbl[c.Fd()] = c
	r.count++

	return true
}

// Get returns the connection registered under the descriptor, or nil.
func (r *Registry) Get(fd int) *Conn {
	if fd < 0 || fd >= len(r.tbl) {
		return nil
	}

	return r.tbl[fd]
}

// Remove tears the connection down and clears its slot: the socket is
// closed, the chain drained, then the record dropped.
func (r *Registry) Remove(c *Conn) {
	if c == nil {
		return
	}

	fd := c.Fd()
	if fd < 0 || fd >= len(r.tbl) || r.tbl[fd] != c {
		return
	}

	c.Teardown()
	r.tbl[fd] = nil
	r.count--
}

// Walk runs the given function on every live connection. Returning
// false stops the walk. The function may call Remove on the visited
// connection.
func (r *Registry) Walk(fct func(c *Conn) bool) {
	for _, c := range r.tbl {
		if c == nil {
			continue
		}
		if !fct(c) {
			return
		}
	}
}
