package progress

import (
	"fmt"
	"os"

	"github.com/schollz/progressbar/v3"
)

// Reporter provides feedback while files are chunked, embedded and appended.
type Reporter interface {
	Start(totalFiles int)
	FileStart(name string)
	FileDone(name string, chunks int)
	Finish()
}

// NewReporter returns an interactive progress bar, or plain line output when
// a CI environment is detected.
func NewReporter() Reporter {
	if os.Getenv("CI") != "" || os.Getenv("GITHUB_ACTIONS") != "" {
		return &PlainReporter{}
	}
	return &TerminalReporter{}
}

// TerminalReporter renders a progress bar with a running chunk tally.
type TerminalReporter struct {
	bar    *progressbar.ProgressBar
	chunks int
}

func (r *TerminalReporter) Start(totalFiles int) {
	r.bar = progressbar.NewOptions(totalFiles,
		progressbar.OptionSetDescription("Indexing"),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)
}

func (r *TerminalReporter) FileStart(name string) {
	if r.bar != nil {
		r.bar.Describe("Indexing " + name)
	}
}

func (r *TerminalReporter) FileDone(name string, chunks int) {
	r.chunks += chunks
	if r.bar != nil {
		r.bar.Describe(fmt.Sprintf("Indexed %s (%d chunks total)", name, r.chunks))
		_ = r.bar.Add(1)
	}
}

func (r *TerminalReporter) Finish() {
	if r.bar != nil {
		_ = r.bar.Finish()
	}
}

// PlainReporter prints one line per file, suitable for CI logs.
type PlainReporter struct {
	total int
	done  int
}

func (r *PlainReporter) Start(totalFiles int) {
	r.total = totalFiles
	fmt.Fprintf(os.Stderr, "indexing %d files\n", totalFiles)
}

func (r *PlainReporter) FileStart(string) {}

func (r *PlainReporter) FileDone(name string, chunks int) {
	r.done++
	fmt.Fprintf(os.Stderr, "[%d/%d] %s: %d chunks\n", r.done, r.total, name, chunks)
}

func (r *PlainReporter) Finish() {
	fmt.Fprintf(os.Stderr, "done: %d files\n", r.done)
}
