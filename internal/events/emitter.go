package events

import (
	"context"

	"github.com/wailsapp/wails/v2/pkg/runtime"
)

// Emit is a no-op until the Wails runtime is available, so services can be
// exercised without a window.
var Emit = func(ctx context.Context, name string, evt SessionEvent) {}

func EnableRuntimeEmitter() {
	Emit = func(ctx context.Context, name string, evt SessionEvent) {
		if ctx == nil {
			return
		}
		runtime.EventsEmit(ctx, name, evt)
		logRuntimeEvent(ctx, name, evt)
	}
}

func SetCustomEmitter(f func(ctx context.Context, name string, evt SessionEvent)) {
	if f == nil {
		Emit = func(context.Context, string, SessionEvent) {}
		return
	}
	Emit = f
}
