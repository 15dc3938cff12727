package proxy

import (
	"context"
	"fmt"
	"strings"

	"github.com/anoideaopen/hotswap/core/delegate"
	"github.com/anoideaopen/hotswap/core/reference"
	"github.com/anoideaopen/hotswap/core/reflectx"
	"github.com/anoideaopen/hotswap/core/telemetry"
	"github.com/anoideaopen/hotswap/core/typesys"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/trace"
)

// SpanInvoke is the name of the span of a proxy invocation.
const SpanInvoke = "hotswap.invoke"

const nullName = "null"

type proxy struct {
	id        uuid.UUID
	factory   *StandardFactory
	class     typesys.Type
	swappable typesys.Type
	types     []typesys.Type
	ref       *reference.Reference
	mode      delegate.Mode
}

func (p *proxy) ID() uuid.UUID { return p.id }

func (p *proxy) RuntimeType() typesys.Type { return p.class }

func (p *proxy) Mode() delegate.Mode { return p.mode }

func (p *proxy) Types() []typesys.Type { return append([]typesys.Type(nil), p.types...) }

func (p *proxy) String() string { return p.class.Name() + "@" + p.id.String() }

func (p *proxy) Invoke(method string, args ...any) ([]any, error) {
	return p.InvokeContext(context.Background(), method, args...)
}

func (p *proxy) Hotswap(newDelegate any) any {
	previous := p.ref.Swap(newDelegate)

	p.log().WithFields(logrus.Fields{
		"previous": p.typeName(previous),
		"delegate": p.typeName(newDelegate),
	}).Debug("delegate swapped")

	return previous
}

func (p *proxy) InvokeContext(ctx context.Context, method string, args ...any) (out []any, err error) {
	ctx, span := p.factory.tracing.StartNewSpan(ctx, SpanInvoke, trace.WithAttributes(
		telemetry.ProxyID(p.id.String()),
		telemetry.Mode(p.mode.String()),
		telemetry.MethodName(method),
	))
	defer func() { telemetry.EndSpan(span, err) }()

	return p.invoke(ctx, span, method, args)
}

func (p *proxy) invoke(ctx context.Context, span trace.Span, method string, args []any) ([]any, error) {
	m, err := reflectx.MatchingMethod(p.class, method, args...)
	if err != nil {
		return nil, err
	}
	span.SetAttributes(telemetry.MethodName(m.String()))

	if m.DeclaringType() == p.swappable {
		return []any{p.Hotswap(args[0])}, nil
	}

	d := p.ref.Get()
	if d == nil {
		return nil, fmt.Errorf("%w: %s", ErrNilDelegate, m)
	}

	dt := p.class.Universe().TypeOf(d)
	span.SetAttributes(telemetry.DelegateType(dt.Name()))

	target := m
	if p.mode == delegate.Signature {
		table, err := p.factory.table(p, dt)
		if err != nil {
			return nil, incompatible(err, d)
		}
		if target, err = table.Route(m); err != nil {
			return nil, err
		}
	}

	if next, ok := d.(Proxy); ok {
		return next.InvokeContext(ctx, target.Name(), args...)
	}

	if err = reflectx.ValidateArguments(d, target.Name(), args...); err != nil {
		return nil, err
	}

	return delegate.Call(d, target, args...)
}

// accepts checks that d can serve the proxied types in the mode of p. A nil
// delegate is accepted and reported on invocation.
func (p *proxy) accepts(d any) error {
	if d == nil {
		return nil
	}

	if p.mode == delegate.Signature {
		if _, err := p.factory.table(p, p.class.Universe().TypeOf(d)); err != nil {
			return incompatible(err, d)
		}
		return nil
	}

	for _, t := range p.types {
		if !t.IsInstance(d) {
			return incompatible(fmt.Errorf("%s is not an instance of %s", p.typeName(d), t), d)
		}
	}

	return nil
}

// incompatible wraps err with ErrIncompatibleDelegate and the Go methods d offers.
func incompatible(err error, d any) error {
	return fmt.Errorf(
		"%w: %w: delegate offers [%s]",
		ErrIncompatibleDelegate,
		err,
		strings.Join(reflectx.Methods(d), ", "),
	)
}

func (p *proxy) log() *logrus.Entry {
	return p.factory.log.WithFields(logrus.Fields{
		"proxy_id": p.id.String(),
		"mode":     p.mode.String(),
	})
}

func (p *proxy) typeName(v any) string {
	if t := p.class.Universe().TypeOf(v); t != nil {
		return t.Name()
	}
	return nullName
}
