package telemetry

import "go.opentelemetry.io/otel/attribute"

const (
	keyMethod       = "hotswap.method"
	keyMode         = "hotswap.mode"
	keyProxyID      = "hotswap.proxy_id"
	keyDelegateType = "hotswap.delegate_type"
)

// MethodName is the attribute of the invoked method signature.
func MethodName(signature string) attribute.KeyValue {
	return attribute.String(keyMethod, signature)
}

// Mode is the attribute of the delegation mode of a proxy.
func Mode(mode string) attribute.KeyValue {
	return attribute.String(keyMode, mode)
}

// ProxyID is the attribute of the proxy identifier.
func ProxyID(id string) attribute.KeyValue {
	return attribute.String(keyProxyID, id)
}

// DelegateType is the attribute of the type name of the delegate serving a call.
func DelegateType(name string) attribute.KeyValue {
	return attribute.String(keyDelegateType, name)
}
