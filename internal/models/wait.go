package models

// DefaultWaitTimeout 未指定-t时的默认等待秒数
const DefaultWaitTimeout = 15

/**
 * Startup gate invocation, built once from the command line and immutable afterwards
 * @property {Endpoint} endpoint - Prerequisite service to wait for
 * @property {int} timeoutSeconds - Polling budget in seconds; 0 means wait indefinitely
 * @property {bool} quiet - Suppress the timeout notice on stderr
 * @property {[]string} command - Optional trailing command to hand control to once ready
 */
type WaitConfig struct {
	Endpoint       Endpoint
	TimeoutSeconds int
	Quiet          bool
	Command        []string
}
