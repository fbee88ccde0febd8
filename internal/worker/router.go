package worker

import (
	"context"
	"errors"
)

type EventHandler func(ctx context.Context, data []byte) error

// Router dispatches an event to every handler registered for it. Events
// without handlers are dropped.
type Router struct {
	handlers map[string][]EventHandler
}

func NewRouter(handlers map[string][]EventHandler) *Router {
	return &Router{
		handlers: handlers,
	}
}

func (this *Router) Handle(ctx context.Context, event string, data []byte) error {
	var errs []error
	for _, handler := range this.handlers[event] {
		if err := handler(ctx, data); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (this *Router) Handles(event string) bool {
	return len(this.handlers[event]) > 0
}
