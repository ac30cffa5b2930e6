package graph

import (
	"context"
	_ "embed"
	"log/slog"
	"runtime/debug"

	"github.com/graph-gophers/graphql-go"
)

//go:embed schema.graphql
var SDL string

// NewSchema parses the SDL against r. maxDepth of 0 disables the depth
// limit.
func NewSchema(r *Resolver, maxDepth int, logger *slog.Logger) (*graphql.Schema, error) {
	return graphql.ParseSchema(SDL, r,
		graphql.MaxDepth(maxDepth),
		graphql.Logger(panicLogger{log: logger}),
	)
}

// panicLogger satisfies graphql-go's log.Logger.
type panicLogger struct {
	log *slog.Logger
}

func (l panicLogger) LogPanic(ctx context.Context, value interface{}) {
	l.log.ErrorContext(ctx, "graphql: panic during execution",
		"panic", value,
		"stack", string(debug.Stack()),
	)
}
