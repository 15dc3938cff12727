package proxy

import (
	"context"
	"errors"

	"github.com/anoideaopen/hotswap/core/delegate"
	"github.com/anoideaopen/hotswap/core/reference"
	"github.com/anoideaopen/hotswap/core/typesys"
	"github.com/google/uuid"
)

var (
	// ErrNoTypes is returned when a proxy is requested for an empty type list.
	ErrNoTypes = errors.New("no types to proxy")
	// ErrNotProxyable is returned for a type a factory cannot proxy.
	ErrNotProxyable = errors.New("type is not proxyable")
	// ErrIncompatibleDelegate is returned when a delegate cannot serve the proxied
	// types in the requested delegation mode.
	ErrIncompatibleDelegate = errors.New("incompatible delegate")
	// ErrNilDelegate is returned when a proxy is invoked while its reference holds nil.
	ErrNilDelegate = errors.New("proxy delegate is nil")
)

// Swappable is implemented by proxies whose delegate can be exchanged.
type Swappable interface {
	// Hotswap replaces the delegate and returns the previous one.
	Hotswap(newDelegate any) (previous any)
}

// Proxy is a substitutable proxy created by a Factory.
type Proxy interface {
	typesys.Typed
	Swappable

	// ID returns the identity of the proxy. It never changes, in particular not
	// when the delegate is swapped.
	ID() uuid.UUID
	// Types returns the proxied types.
	Types() []typesys.Type
	// Mode returns the delegation mode.
	Mode() delegate.Mode

	// Invoke calls the proxied method matching the name and the arguments on the
	// current delegate and returns its results. A trailing error result of the
	// delegate method is returned as the error.
	Invoke(method string, args ...any) ([]any, error)
	// InvokeContext is Invoke with a context carrying the parent span.
	InvokeContext(ctx context.Context, method string, args ...any) ([]any, error)
}

// Factory creates proxies.
type Factory interface {
	// CreateProxy returns a proxy implementing every type of the list that
	// forwards calls to the delegate held by ref in the given mode.
	CreateProxy(types []typesys.Type, ref *reference.Reference, mode delegate.Mode) (Proxy, error)
	// CanProxy reports whether the factory can proxy t.
	CanProxy(t typesys.Type) bool
}
