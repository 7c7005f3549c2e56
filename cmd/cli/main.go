package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// A second signal falls through to the default handler and kills the
	// process, so a REPL blocked on input can still be left.
	go func() {
		<-ctx.Done()
		stop()
	}()

	rt := &runtime{}
	err := newRootCmd(rt).ExecuteContext(ctx)
	rt.close()

	if err != nil {
		os.Exit(1)
	}
}
