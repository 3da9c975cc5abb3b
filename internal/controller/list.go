package controller

import (
	"context"
	"fmt"
	"strings"

	"agrigest/internal/api"
)

// Confirmer asks the user to approve a destructive action. Injected so
// pages stay testable without a terminal.
type Confirmer interface {
	Confirm(prompt string) bool
}

// ConfirmerFunc adapts a function to the Confirmer interface.
type ConfirmerFunc func(string) bool

// Confirm implements Confirmer.
func (f ConfirmerFunc) Confirm(prompt string) bool { return f(prompt) }

// Notifier surfaces a non-blocking message to the user.
type Notifier interface {
	Notify(msg string)
}

// NotifierFunc adapts a function to the Notifier interface.
type NotifierFunc func(string)

// Notify implements Notifier.
func (f NotifierFunc) Notify(msg string) { f(msg) }

// List drives one resource collection: server-side filtered loads, a
// client-only substring search, and delete with local reconciliation.
type List[T any] struct {
	fetch      func(context.Context, api.Filters) ([]T, error)
	remove     func(context.Context, int) error
	id         func(T) int
	searchText func(T) []string

	confirm Confirmer
	notify  Notifier

	items       []T
	lastFilters api.Filters
	loadErr     error
	loaded      bool
}

// NewList creates a list controller. remove may be nil for read-only
// collections (advice, options).
func NewList[T any](
	fetch func(context.Context, api.Filters) ([]T, error),
	remove func(context.Context, int) error,
	id func(T) int,
	searchText func(T) []string,
	confirm Confirmer,
	notify Notifier,
) *List[T] {
	return &List[T]{
		fetch:      fetch,
		remove:     remove,
		id:         id,
		searchText: searchText,
		confirm:    confirm,
		notify:     notify,
	}
}

// Fetch runs the facade call without touching local state. Callers on
// an event loop run it off-loop and apply the outcome with Resolve.
func (l *List[T]) Fetch(ctx context.Context, filters api.Filters) ([]T, error) {
	return l.fetch(ctx, filters)
}

// Resolve records a load outcome: on success items replace the
// collection, on failure the previous items are kept and the error is
// held for display with a retry affordance.
func (l *List[T]) Resolve(filters api.Filters, items []T, err error) {
	l.lastFilters = filters
	if err != nil {
		l.loadErr = err
		return
	}
	l.items = items
	l.loadErr = nil
	l.loaded = true
}

// Load fetches and resolves in one step, for callers not running an
// event loop.
func (l *List[T]) Load(ctx context.Context, filters api.Filters) error {
	items, err := l.fetch(ctx, filters)
	l.Resolve(filters, items, err)
	return err
}

// Retry re-runs the last load.
func (l *List[T]) Retry(ctx context.Context) error {
	return l.Load(ctx, l.lastFilters)
}

// IDOf returns the identity of an item, as used by Delete.
func (l *List[T]) IDOf(item T) int { return l.id(item) }

// Err returns the last load error, or nil.
func (l *List[T]) Err() error { return l.loadErr }

// Loaded reports whether at least one load has succeeded.
func (l *List[T]) Loaded() bool { return l.loaded }

// Items returns the full fetched collection.
func (l *List[T]) Items() []T { return l.items }

// Len returns the number of fetched items.
func (l *List[T]) Len() int { return len(l.items) }

// Search returns the items whose display fields contain term,
// case-insensitively. The term is never sent to the server; it narrows
// the already-fetched page only. A blank term returns everything.
func (l *List[T]) Search(term string) []T {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return l.items
	}
	var out []T
	for _, item := range l.items {
		for _, text := range l.searchText(item) {
			if strings.Contains(strings.ToLower(text), term) {
				out = append(out, item)
				break
			}
		}
	}
	return out
}

// Remove calls the facade without touching the collection. Callers on
// an event loop run it off-loop and apply a success with Reconcile.
func (l *List[T]) Remove(ctx context.Context, id int) error {
	if l.remove == nil {
		return fmt.Errorf("collection is read-only")
	}
	return l.remove(ctx, id)
}

// Reconcile drops exactly the identity-matched item from the
// collection, preserving the order of the rest.
func (l *List[T]) Reconcile(id int) {
	kept := l.items[:0]
	for _, item := range l.items {
		if l.id(item) != id {
			kept = append(kept, item)
		}
	}
	l.items = kept
}

// Delete confirms, calls the facade, and on success removes exactly
// the identity-matched item. On failure the collection is untouched
// and the notifier carries the alert. A declined confirmation is not
// an error.
func (l *List[T]) Delete(ctx context.Context, id int, prompt string) error {
	if l.remove == nil {
		return fmt.Errorf("collection is read-only")
	}
	if l.confirm != nil && !l.confirm.Confirm(prompt) {
		return nil
	}

	if err := l.Remove(ctx, id); err != nil {
		if l.notify != nil {
			l.notify.Notify("Erreur lors de la suppression")
		}
		return err
	}

	l.Reconcile(id)
	return nil
}
