// Package hotswap builds proxies whose delegate can be exchanged at runtime.
//
// A proxy is built in stages:
//
//	p, err := hotswap.Proxy(animal).With(&Dog{}).Build()
//	if err != nil {
//		return err
//	}
//	p.Invoke("Speak")   // woof
//	p.Hotswap(&Cat{})
//	p.Invoke("Speak")   // meow
//
// [Proxy] fixes the proxied types, [With.With] binds the initial delegate and
// selects the delegation mode, [BuildOrMode.Mode] optionally overrides it and
// [Builder.Build] hands the types, a reference holding the delegate and the mode to
// a [proxy.Factory]. Builders are single-use and not safe for concurrent use.
package hotswap
