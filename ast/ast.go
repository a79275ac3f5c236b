// Package ast declares the types used to represent Beancount directives.
//
// Unlike a full Beancount parser AST, these types are emit-only: they are
// constructed programmatically by importers and rendered by the formatter
// package. There is no source position or comment trivia to carry around.
package ast

import (
	"golang.org/x/exp/slices"
)

// Directives is an ordered slice of Directive.
type Directives []Directive

// WithMetadata is an interface for AST nodes that can have metadata attached.
type WithMetadata interface {
	AddMetadata(...*Metadata)
}

// withMetadata is an embeddable struct that implements WithMetadata.
type withMetadata struct {
	Metadata []*Metadata
}

func (w *withMetadata) AddMetadata(m ...*Metadata) {
	w.Metadata = append(w.Metadata, m...)
}

// Directive is the interface implemented by all Beancount directive types.
type Directive interface {
	WithMetadata

	date() *Date
	Directive() string
}

// compareDirectives orders two directives by date, then by type priority.
// Balance assertions sort after transactions on the same date because they
// assert the state at the beginning of the day following the activity.
func compareDirectives(a, b Directive) int {
	if a.date().Before(b.date().Time) {
		return -1
	} else if a.date().After(b.date().Time) {
		return 1
	}

	aPriority := directiveTypePriority(a)
	bPriority := directiveTypePriority(b)
	switch {
	case aPriority < bPriority:
		return -1
	case aPriority > bPriority:
		return 1
	}
	return 0
}

func directiveTypePriority(d Directive) int {
	switch d.(type) {
	case *Transaction:
		return 0
	case *Balance:
		return 1
	default:
		return 2
	}
}

// SortDirectives stable-sorts directives by date while preserving the
// original order of same-day entries.
func SortDirectives(d Directives) {
	slices.SortStableFunc(d, compareDirectives)
}
