package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/me-unsolicited/gochess/pkg/engine"
	"github.com/me-unsolicited/gochess/pkg/engine/uci"
	"github.com/seekerror/logw"
)

var (
	depth   = flag.Int("depth", 0, "Default search depth limit (zero means no limit, bounded by MaxPly)")
	workers = flag.Int("workers", 0, "Lazy-SMP worker count (zero means one per logical CPU)")
)

func init() {
	flag.Usage = func() {
		fmt.Fprint(os.Stderr, `usage: gochess [options]

gochess is a UCI chess engine.
Options:
`)
		flag.PrintDefaults()
	}
}

func main() {
	flag.Parse()
	ctx := context.Background()

	e := engine.New(ctx, "gochess", "me-unsolicited", engine.WithOptions(engine.Options{
		Depth:   *depth,
		Workers: *workers,
	}))

	in := engine.ReadStdinLines(ctx)

	// The first line selects the protocol (spec.md §6, §7 item 2): only UCI is supported, so any
	// other first line is a fatal protocol violation at startup.
	switch <-in {
	case uci.ProtocolName:
		driver, out := uci.NewDriver(ctx, e, in)
		go engine.WriteStdoutLines(ctx, out)

		<-driver.Closed()

	default:
		flag.Usage()
		logw.Exitf(ctx, "protocol not supported")
	}
}
