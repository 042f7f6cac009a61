// Package notify delivers the run's result to a human over two channels,
// push and email. Both channels are best-effort: a failed delivery is
// recorded in its Outcome and never aborts the run or blocks the sibling
// channel.
package notify

// Logger is the minimal logging interface needed by the notifiers.
type Logger interface {
	Info(string, ...interface{})
	Warn(string, ...interface{})
	Error(string, ...interface{})
	Debug(string, ...interface{})
}
