package hotswap

import (
	"github.com/anoideaopen/hotswap/core/delegate"
	"github.com/anoideaopen/hotswap/core/logger"
	"github.com/anoideaopen/hotswap/core/proxy"
	"github.com/anoideaopen/hotswap/core/reference"
	"github.com/anoideaopen/hotswap/core/reflectx"
	"github.com/anoideaopen/hotswap/core/typesys"
	"github.com/sirupsen/logrus"
)

// With is the first stage of a builder: the proxied types are fixed.
type With struct {
	types []typesys.Type
}

// Proxy starts a builder for a proxy of the primary type and the given types, in
// that order. Duplicates are kept. A nil primary type is skipped and types is used
// as is.
func Proxy(primary typesys.Type, types ...typesys.Type) *With {
	return &With{types: reflectx.TypesOf(primary, types)}
}

// Types returns the proxied types.
func (w *With) Types() []typesys.Type {
	return w.types
}

// With binds the initial delegate. The mode is Direct when the delegate is an
// instance of every proxied type, Signature otherwise.
func (w *With) With(instance any) *BuildOrMode {
	mode := delegate.Direct
	for _, t := range w.types {
		if t == nil || !t.IsInstance(instance) {
			mode = delegate.Signature
			logrus.NewEntry(logger.Logger()).WithFields(logrus.Fields{
				"type": t,
				"mode": mode.String(),
			}).Debug("delegate is not an instance of proxied type")
			break
		}
	}

	return &BuildOrMode{
		Builder: &Builder{
			types:    w.types,
			delegate: instance,
			mode:     mode,
		},
	}
}

// BuildOrMode is the stage after the delegate is bound. The proxy can be built
// right away or the mode overridden first.
type BuildOrMode struct {
	*Builder
}

// Mode overrides the delegation mode.
func (b *BuildOrMode) Mode(mode delegate.Mode) *Builder {
	b.mode = mode
	return b.Builder
}

// Builder is the last stage of a builder.
type Builder struct {
	types    []typesys.Type
	delegate any
	mode     delegate.Mode
}

// Types returns the proxied types.
func (b *Builder) Types() []typesys.Type {
	return b.types
}

// Delegate returns the initial delegate.
func (b *Builder) Delegate() any {
	return b.delegate
}

// DelegationMode returns the delegation mode the proxy will be built with.
func (b *Builder) DelegationMode() delegate.Mode {
	return b.mode
}

// Build creates the proxy with the given factory, or with a standard factory over
// the universe of the first proxied type when none is given. Factory errors are
// returned as is.
func (b *Builder) Build(factory ...proxy.Factory) (proxy.Proxy, error) {
	var f proxy.Factory
	if len(factory) > 0 && factory[0] != nil {
		f = factory[0]
	} else {
		f = proxy.NewStandardFactory(nil)
	}

	return f.CreateProxy(b.types, reference.New(b.delegate), b.mode)
}
