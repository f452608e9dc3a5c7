// Package area provides boolean-combinable coverage predicates over an
// arbitrary coordinate type.
package area

import (
	"fmt"
	"strings"
)

// Area reports whether a coordinate is covered.
//
// The set of implementations is closed: areas are built from Global, Empty,
// Outside, Intersection, Union and Predicate. Every area is immutable and its
// Contains is pure, so areas may be shared freely between goroutines.
type Area[C any] interface {
	Contains(c C) bool
	String() string
	area()
}

type global[C any] struct{}

// Global returns an area that contains every coordinate.
func Global[C any]() Area[C] { return global[C]{} }

func (global[C]) Contains(C) bool { return true }
func (global[C]) String() string  { return "global" }
func (global[C]) area()           {}

type empty[C any] struct{}

// Empty returns an area that contains no coordinate.
func Empty[C any]() Area[C] { return empty[C]{} }

func (empty[C]) Contains(C) bool { return false }
func (empty[C]) String() string  { return "empty" }
func (empty[C]) area()           {}

type outside[C any] struct {
	inner Area[C]
}

// Outside returns the complement of a.
func Outside[C any](a Area[C]) Area[C] {
	if a == nil {
		panic("area: outside of nil area")
	}
	return outside[C]{inner: a}
}

func (o outside[C]) Contains(c C) bool { return !o.inner.Contains(c) }
func (o outside[C]) String() string    { return "outside(" + o.inner.String() + ")" }
func (outside[C]) area()               {}

type intersection[C any] struct {
	areas []Area[C]
}

// Intersection returns an area containing the coordinates contained by every
// member. The intersection of no areas contains everything.
func Intersection[C any](areas ...Area[C]) Area[C] {
	return intersection[C]{areas: members("intersection", areas)}
}

func (in intersection[C]) Contains(c C) bool {
	for _, a := range in.areas {
		if !a.Contains(c) {
			return false
		}
	}
	return true
}

func (in intersection[C]) String() string { return "intersection" + join(in.areas) }
func (intersection[C]) area()             {}

type union[C any] struct {
	areas []Area[C]
}

// Union returns an area containing the coordinates contained by any member.
// The union of no areas is empty.
func Union[C any](areas ...Area[C]) Area[C] {
	return union[C]{areas: members("union", areas)}
}

func (u union[C]) Contains(c C) bool {
	for _, a := range u.areas {
		if a.Contains(c) {
			return true
		}
	}
	return false
}

func (u union[C]) String() string { return "union" + join(u.areas) }
func (union[C]) area()            {}

type predicate[C any] struct {
	name string
	fn   func(C) bool
}

// Predicate wraps a leaf test such as a geofence. fn must be pure and must
// not depend on anything but the coordinate.
func Predicate[C any](name string, fn func(C) bool) Area[C] {
	if fn == nil {
		panic("area: nil predicate " + name)
	}
	return predicate[C]{name: name, fn: fn}
}

func (p predicate[C]) Contains(c C) bool { return p.fn(c) }
func (p predicate[C]) String() string    { return p.name }
func (predicate[C]) area()               {}

// members copies areas, panicking on a nil member
func members[C any](op string, areas []Area[C]) []Area[C] {
	for i, a := range areas {
		if a == nil {
			panic(fmt.Sprintf("area: nil member %d of %s", i, op))
		}
	}
	return append([]Area[C](nil), areas...)
}

func join[C any](areas []Area[C]) string {
	parts := make([]string, len(areas))
	for i, a := range areas {
		parts[i] = a.String()
	}
	return fmt.Sprintf("(%s)", strings.Join(parts, ", "))
}
