// Package logger is a standardized event logging framework for shell sessions.
//
// Events are stored as newline delimited JSON, one LogEntry per line, and can
// be summarized with Report.
package logger
