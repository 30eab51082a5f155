// MIT License
//
// Copyright (c) 2022-2026 Dactor Authors
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

package actor

import "strings"

// Path is the parsed, cached form of an actor's hierarchical id
// ("parent/child"). It is built once at spawn and reused by supervision
// lookup, which needs the parent id without re-parsing the string on every
// failure.
type Path struct {
	full      string
	name      string
	parent    string
	hasParent bool
}

// ParsePath decomposes id at its last "/". An id with no "/" has no parent.
func ParsePath(id string) Path {
	idx := strings.LastIndex(id, "/")
	if idx < 0 {
		return Path{full: id, name: id}
	}
	return Path{full: id, name: id[idx+1:], parent: id[:idx], hasParent: true}
}

// String returns the full id this Path was parsed from.
func (p Path) String() string { return p.full }

// Name returns the last path segment.
func (p Path) Name() string { return p.name }

// Parent returns the id of the parent segment and whether one exists.
func (p Path) Parent() (string, bool) { return p.parent, p.hasParent }

// Equals reports whether two paths were parsed from the identical id.
func (p Path) Equals(other Path) bool { return p.full == other.full }
