// Command handwrite animates text as handwriting in the terminal and renders
// playback frames to image files.
//
// Usage:
//
//	handwrite play "Hello"          interactive player
//	handwrite render -o hi.png Hi   render the finished drawing
//	handwrite fonts                 list the font library
//	handwrite config init           write the default configuration
package main

import (
	"context"
	"os"
	"os/signal"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := execute(ctx)
	stop()
	os.Exit(code)
}
