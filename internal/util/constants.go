package util

// 请求追踪
const (
	RequestIDHeader = "X-Request-ID"
	RequestIDKey    = "request_id"
)

const (
	DefaultProgramLimit = 200
	MaxProgramLimit     = 1000
)
