package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/pooriaaskarim/logd"
	"github.com/pooriaaskarim/logd/decorate"
	"github.com/pooriaaskarim/logd/document"
	"github.com/pooriaaskarim/logd/record"
)

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "", "override logd config path (optional)")
	width := flag.Int("width", 0, "column width (optional, overrides config)")
	flag.Parse()

	cfg, err := logd.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logd-demo: %v\n", err)
		return 1
	}
	if *width > 0 {
		cfg.Width = *width
	}

	logger, err := logd.NewFromConfig(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logd-demo: %v\n", err)
		return 1
	}
	defer logger.Close()

	logger.Info("service starting")
	logger.Debug("cache warmed with 1024 entries")
	logger.Warn("disk usage above 80%, consider rotating logs sooner")
	logger.Error("upstream request failed", errors.New("connection refused"))

	entry := record.Entry{
		Level:      record.ErrorLevel,
		Message:    "worker crashed while flushing batch",
		LoggerName: "demo.worker",
		Origin:     "worker.go:131",
		Timestamp:  "2026-08-30 12:00:00",
		Err:        errors.New("short write"),
		StackFrames: []record.StackFrame{
			{Method: "flush", File: "worker.go", Line: 131},
			{Method: "run", File: "worker.go", Line: 58},
			{Method: "main", File: "main.go", Line: 21},
		},
	}

	// A boxed rendition of the same entry, both framing policies shown.
	boxed, err := logd.New(logd.Options{
		Width:  cfg.Width,
		Fields: record.AllFields(),
		Decorators: []decorate.Decorator{
			decorate.NewStyleDecorator(),
			decorate.WrapDecorator{Width: cfg.Width - 4},
			decorate.BoxDecorator{Border: document.BorderRounded, UseColors: true},
		},
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "logd-demo: %v\n", err)
		return 1
	}
	defer boxed.Close()

	if err := boxed.Log(context.Background(), &entry); err != nil {
		fmt.Fprintf(os.Stderr, "logd-demo: %v\n", err)
		return 1
	}
	return 0
}
