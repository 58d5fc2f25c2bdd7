package utils

import (
	"io"
	"os"

	"github.com/schollz/progressbar/v3"
)

// DescDeleting is the progress bar description for delete requests
const DescDeleting = "Deleting"

// NewProgressBar creates a progress bar for total delete requests written to w.
// A nil writer means stderr, so the bar never mixes with report output on stdout.
func NewProgressBar(total int, description string, w io.Writer) *progressbar.ProgressBar {
	if w == nil {
		w = os.Stderr
	}

	return progressbar.NewOptions(total,
		progressbar.OptionSetDescription(description),
		progressbar.OptionSetWriter(w),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)
}
