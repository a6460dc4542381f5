package consts

const (
	BoardListKey      = "board:list"
	TokenBlacklistKey = "token:blacklist:"
)

const (
	BoardMetricsLock = "lock:board:metrics"
)
