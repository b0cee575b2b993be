package models

// ConnState 依赖连接生命周期状态
// Blocked -> TransportReady -> Connecting -> Connected，到达TransportReady后不会回退
type ConnState string

const (
	StateBlocked        ConnState = "blocked"
	StateTransportReady ConnState = "transport_ready"
	StateConnecting     ConnState = "connecting"
	StateConnected      ConnState = "connected"
)
