package cli

import (
	"io"
	"sync"

	"github.com/schollz/progressbar/v3"
)

// Progress draws a classification progress bar. Update may be called from
// several goroutines; the bar never moves backwards.
type Progress struct {
	bar  *progressbar.ProgressBar
	mu   sync.Mutex
	done int
}

// NewProgress creates a bar for total items written to w.
func NewProgress(w io.Writer, total int, description string) *Progress {
	return &Progress{
		bar: progressbar.NewOptions(total,
			progressbar.OptionSetWriter(w),
			progressbar.OptionEnableColorCodes(true),
			progressbar.OptionShowCount(),
			progressbar.OptionShowElapsedTimeOnFinish(),
			progressbar.OptionSetWidth(40),
			progressbar.OptionSetDescription("[cyan][bold]"+description+"[reset]"),
			progressbar.OptionSetTheme(progressbar.Theme{
				Saucer:        "[green]=[reset]",
				SaucerHead:    "[green]>[reset]",
				SaucerPadding: " ",
				BarStart:      "[",
				BarEnd:        "]",
			}),
			progressbar.OptionOnCompletion(func() {
				_, _ = io.WriteString(w, "\n")
			}),
		),
	}
}

// Update records that done of total items are finished.
func (p *Progress) Update(done, total int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if done <= p.done {
		return
	}
	p.done = done
	if p.bar.GetMax() != total {
		p.bar.ChangeMax(total)
	}
	_ = p.bar.Set(done)
}

// Finish completes the bar.
func (p *Progress) Finish() {
	p.mu.Lock()
	defer p.mu.Unlock()
	_ = p.bar.Finish()
}
