// Package proxy builds substitutable proxies: values that expose a fixed list of
// interface types of a [typesys.Universe] and forward every call to a delegate held
// in a [reference.Reference].
//
// Go cannot synthesize a value implementing arbitrary Go interfaces at runtime, so a
// proxy is a dynamic object. Its runtime type is a class synthesized in the universe
// that implements every proxied type, [Swappable] and the InvokerReference marker,
// and calls are made by name with [Proxy.Invoke]:
//
//	f := proxy.NewStandardFactory(u)
//	p, err := f.CreateProxy([]typesys.Type{animal}, reference.New(&Dog{}), delegate.Direct)
//	if err != nil {
//		return err
//	}
//	out, err := p.Invoke("Speak")
//
// The delegate is read from the reference on every call, so [Proxy.Hotswap] takes
// effect for every later invocation without changing the identity of the proxy.
package proxy
