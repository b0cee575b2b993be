package env

// 进程级全局量，版本信息在构建时通过-ldflags注入
var (
	Version       = "dev"
	BuildTime     = ""
	BuildCommitId = ""
)

// Serving 标记当前进程是否以serve模式运行
var Serving bool = false
