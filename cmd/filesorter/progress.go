package main

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"
)

// progressLine adapts organizer.ProgressFunc to a terminal progress bar. The
// bar is built on the first update, once the run knows its total. A nil
// *progressLine is valid and draws nothing.
type progressLine struct {
	out io.Writer
	bar *progressbar.ProgressBar
}

// newProgressLine returns nil unless out is a terminal.
func newProgressLine(out io.Writer) *progressLine {
	if !isTerminal(out) {
		return nil
	}
	return &progressLine{out: out}
}

// Update renders completed of total.
func (p *progressLine) Update(completed, total int) {
	if p == nil || total <= 0 {
		return
	}
	if p.bar == nil {
		p.bar = newOrganizeBar(p.out, total)
	}
	_ = p.bar.Set(min(max(completed, 0), total))
}

// Finish completes the bar so later output starts on a fresh line.
func (p *progressLine) Finish() {
	if p == nil || p.bar == nil || p.bar.IsFinished() {
		return
	}
	_ = p.bar.Finish()
}

func newOrganizeBar(out io.Writer, total int) *progressbar.ProgressBar {
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(out),
		progressbar.OptionSetDescription("Organizing"),
		progressbar.OptionSetWidth(30),
		progressbar.OptionShowCount(),
		progressbar.OptionSetPredictTime(false),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprintln(out)
		}),
	)
}

func isTerminal(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
