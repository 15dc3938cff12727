// Package delegate defines how a proxy forwards calls to its delegate.
//
// In [Direct] mode the delegate is an instance of every proxied type and a call is
// forwarded to the Go method of the same name. In [Signature] mode the delegate is
// only required to be structurally compatible: a [Table] computed once per delegate
// type lists, for every method of the proxied types, the delegate method that serves
// it. Tables are validated when computed, so an incompatible delegate is reported
// before any call is made.
package delegate
