package console

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"
)

// Command is one menu entry.
type Command struct {
	Name  string
	Title string
	Run   func(ctx context.Context, c *Console) error
}

// Timed wraps cmd so every run reports how long it took, on out and in the log.
func Timed(cmd Command, out io.Writer, log *slog.Logger) Command {
	inner := cmd.Run
	cmd.Run = func(ctx context.Context, c *Console) error {
		start := time.Now()
		err := inner(ctx, c)
		dur := time.Since(start)

		status := "ok"
		if err != nil {
			status = "err"
		}
		fmt.Fprintf(out, "%s took %dms\n", cmd.Name, dur.Milliseconds())
		log.Info("command finished", "command", cmd.Name, "status", status, "duration", dur)
		return err
	}
	return cmd
}
