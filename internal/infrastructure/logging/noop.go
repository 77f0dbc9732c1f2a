package logging

import (
	"context"

	"github.com/alexisbeaulieu97/prism/internal/ports"
)

// Discard drops every record. Providers, the page bus and the SSH runtime
// fall back to it when they are built without a logger.
var Discard ports.Logger = discard{}

type discard struct{}

func (discard) Debug(context.Context, string, ...interface{}) {}
func (discard) Info(context.Context, string, ...interface{}) {}
func (discard) Warn(context.Context, string, ...interface{}) {}
func (discard) Error(context.Context, string, ...interface{}) {}
func (d discard) With(...interface{}) ports.Logger { return d }

// NewNoOpLogger returns Discard.
func NewNoOpLogger() ports.Logger {
	return Discard
}
