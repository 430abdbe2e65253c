package xwm

import (
	"context"
	"log/slog"

	"github.com/jezek/xgb"
)

// ReceiveEvents reads X events until the connection closes or ctx is done.
func ReceiveEvents(ctx context.Context, conn *xgb.Conn, eventC chan<- any) {
	defer close(eventC)
	slog := slog.With("func", "xwm.ReceiveEvents")

	for {
		ev, err := conn.WaitForEvent()
		if ev == nil && err == nil {
			slog.Debug("exit: no event or error")
			return
		}

		if err != nil {
			// X errors from unchecked requests are reported here and are not fatal.
			slog.Warn("Received X error", "error", err)
			continue
		}

		select {
		case <-ctx.Done():
			return
		case eventC <- ev:
		}
	}
}
