/**
 * SPDX-License-Identifier: Apache-2.0
 * Copyright 2026 attrcore contributors
 */

// Package elog is the logging and progress-reporting facade used by
// cmd/attrcore. It wraps logrus with a View that gates Debugf/Infof
// behind --debug/--verbose, formats entries for a TTY or as JSON, and
// hands out mpb progress bars for long-running CLI operations
// (replay, fixture ingestion) without letting bar output corrupt
// interleaved log lines.
package elog

import (
	"bytes"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/fatih/color"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"
	"github.com/vbauerster/mpb/v5"
	"github.com/vbauerster/mpb/v5/decor"
)

// Logger is the subset of logging calls the core and CLI issue.
type Logger interface {
	Debugf(format string, x ...interface{})
	Infof(format string, x ...interface{})
	Warnf(format string, x ...interface{})
	Errorf(format string, x ...interface{})
	IsDebugEnabled() bool
}

// Progress tracks a single long-running operation's completion.
type Progress interface {
	Increment(n int64)
	Finish(success bool)
}

// ProgressReporter hands out Progress trackers.
type ProgressReporter interface {
	NewProgress(label string, total int64) Progress
}

// View is everything cmd/attrcore needs from its logging backend.
type View interface {
	Logger
	ProgressReporter
}

// CLI is the default View: a logrus-backed logger that multiplexes
// with an mpb progress container so bars and log lines never
// scribble over each other on a TTY.
type CLI struct {
	Debug         bool
	Verbose       bool
	DisableColors bool
	JSON          bool

	lock              sync.Mutex
	tracking          bool
	bars              map[*mpb.Bar]bool
	buffer            *bytes.Buffer
	progressContainer *mpb.Progress
}

// New builds a CLI View, wiring logrus's output to a TTY-safe writer
// (colorable on Windows, passthrough elsewhere) and installing the
// CLI as logrus's formatter unless JSON output was requested.
func New(debug, verbose, disableColors, json bool) *CLI {
	c := &CLI{Debug: debug, Verbose: verbose, DisableColors: disableColors, JSON: json}

	out := colorable.NewColorableStdout()
	if !isatty.IsTerminal(os.Stdout.Fd()) {
		c.DisableColors = true
	}
	logrus.SetOutput(out)

	if json {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(c)
	}
	if debug {
		logrus.SetLevel(logrus.TraceLevel)
	}
	return c
}

func (c *CLI) Debugf(format string, x ...interface{}) {
	if c.Debug {
		logrus.Tracef(format, x...)
	}
}

func (c *CLI) Infof(format string, x ...interface{}) {
	if c.Verbose {
		logrus.Debugf(format, x...)
	}
	if !c.Verbose {
		logrus.Infof(format, x...)
	}
}

func (c *CLI) Warnf(format string, x ...interface{}) { logrus.Warnf(format, x...) }
func (c *CLI) Errorf(format string, x ...interface{}) { logrus.Errorf(format, x...) }

func (c *CLI) IsDebugEnabled() bool {
	return logrus.IsLevelEnabled(logrus.DebugLevel)
}

// NewProgress creates a bar (or a spinner, when total is 0) under a
// shared mpb container, lazily redirecting logrus output into a
// buffer that gets flushed to stdout once every bar has finished.
func (c *CLI) NewProgress(label string, total int64) Progress {
	c.lock.Lock()
	defer c.lock.Unlock()

	if !c.tracking {
		c.tracking = true
		c.buffer = new(bytes.Buffer)
		logrus.SetOutput(c.buffer)
		c.progressContainer = mpb.New(mpb.WithWidth(80))
		c.bars = make(map[*mpb.Bar]bool)
	}

	var bar *mpb.Bar
	if total == 0 {
		bar = c.progressContainer.AddSpinner(0, mpb.SpinnerOnLeft,
			mpb.PrependDecorators(decor.Name(label, decor.WC{W: len(label) + 1, C: decor.DidentRight})),
		)
	} else {
		bar = c.progressContainer.AddBar(total,
			mpb.PrependDecorators(
				decor.Name(label, decor.WC{W: len(label) + 1, C: decor.DidentRight}),
				decor.OnComplete(decor.AverageETA(decor.ET_STYLE_GO, decor.WC{W: 4}), "done"),
			),
			mpb.AppendDecorators(decor.Counters(decor.UnitKiB, "% .1f / % .1f")),
		)
	}
	c.bars[bar] = true

	p := &pb{cli: c, bar: bar, total: total, interval: 100 * time.Millisecond}
	p.nextUpdate = time.Now().Add(p.interval)
	return p
}

type pb struct {
	cli    *CLI
	bar    *mpb.Bar
	closed bool
	total  int64
	count  int64

	buffered   int64
	interval   time.Duration
	nextUpdate time.Time
}

func (p *pb) Increment(n int64) {
	p.buffered += n
	p.count += n
	if !time.Now().Before(p.nextUpdate) {
		p.flush()
	}
}

func (p *pb) flush() {
	p.nextUpdate = time.Now().Add(p.interval)
	p.bar.IncrInt64(p.buffered)
	p.buffered = 0
}

// Finish closes the bar, aborting it visually if the operation
// didn't reach total or reported failure, and once every tracked bar
// has finished, restores logrus's output and flushes the buffered
// log lines to stdout in order.
func (p *pb) Finish(success bool) {
	if p.closed {
		return
	}
	p.flush()
	p.closed = true
	if p.count != p.total || p.total == 0 || !success {
		p.bar.Abort(false)
	}

	p.cli.lock.Lock()
	defer p.cli.lock.Unlock()
	delete(p.cli.bars, p.bar)

	if len(p.cli.bars) == 0 {
		p.cli.bars = nil
		p.cli.tracking = false
		p.cli.progressContainer.Wait()
		p.cli.progressContainer = nil
		logrus.SetOutput(os.Stdout)
		_, _ = p.cli.buffer.WriteTo(os.Stdout)
		p.cli.buffer = nil
	}
}

// Format implements logrus.Formatter for human-readable, color-coded
// terminal output (bypassed by logrus.JSONFormatter under --json).
func (c *CLI) Format(entry *logrus.Entry) ([]byte, error) {
	faint := color.New(color.Faint).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()
	red := color.New(color.FgRed).SprintFunc()
	blue := color.New(color.FgBlue).SprintFunc()

	x := entry.Message
	if !c.DisableColors {
		switch entry.Level {
		case logrus.TraceLevel:
			x = fmt.Sprintf("%s\n", faint(x))
		case logrus.DebugLevel:
			x = fmt.Sprintf("%s\n", blue(x))
		case logrus.WarnLevel:
			x = fmt.Sprintf("%s\n", yellow(x))
		case logrus.ErrorLevel:
			x = fmt.Sprintf("%s\n", red(x))
		default:
			x = fmt.Sprintf("%s\n", x)
		}
	} else {
		x = fmt.Sprintf("%s\n", x)
	}
	return []byte(x), nil
}
