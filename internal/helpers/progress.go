package helpers

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/schollz/progressbar/v3"
	"golang.org/x/term"
)

type ProgressBar struct {
	Set   func(int)
	Add   func(int)
	Close func()
}

var NoProgressBar = ProgressBar{
	func(int) {}, func(int) {}, func() {},
}

func termWidth(f *os.File) int {
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil {
		return 80
	}
	return MaxInt(80, MinInt(120, width))
}

// CreateProgressBar draws to stderr. Totals and rates are rendered with
// thousands separators.
func CreateProgressBar(total int, label string) ProgressBar {
	return createProgressBar(os.Stderr, termWidth(os.Stderr), total, label)
}

func createProgressBar(w io.Writer, width int, total int, label string) ProgressBar {
	startTime := time.Now()
	count := 0

	bar := progressbar.NewOptions64(
		int64(total),
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription(fmt.Sprintf("%s (%s)", label, humanize.Comma(int64(total)))),
		progressbar.OptionSetWidth(width/3),
		progressbar.OptionShowCount(),
		progressbar.OptionThrottle(200*time.Millisecond),
		progressbar.OptionOnCompletion(func() {
			elapsed := time.Since(startTime)
			perSecond := int64(float64(count) / MaxFloat(elapsed.Seconds(), 1e-9))
			fmt.Fprintf(w, "\n%s done in %v @ %v/s\n", label, elapsed.Round(time.Millisecond), humanize.Comma(perSecond))
		}),
	)

	return ProgressBar{
		func(i int) {
			count = i
			_ = bar.Set(i)
		},
		func(i int) {
			count += i
			_ = bar.Add(i)
		},
		func() {
			_ = bar.Finish()
		},
	}
}

func MaxFloat(x float64, y float64) float64 {
	if x > y {
		return x
	}
	return y
}
