package postgres_adapter

import "listing-bff/internal/core/port"

type noopTestLogger struct{}

func (noopTestLogger) Info(string, port.Fields)                 {}
func (noopTestLogger) Warn(string, port.Fields)                 {}
func (noopTestLogger) Error(string, error, port.Fields)         {}
func (noopTestLogger) Debug(string, port.Fields)                {}
func (l noopTestLogger) WithFields(port.Fields) port.LoggerPort { return l }
