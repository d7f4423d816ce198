package probe

import (
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strconv"
	"time"
)

// Prober extracts duration metadata from a local video file by shelling out
// to ffprobe. The value only feeds the report's passthrough metadata; a
// missing ffprobe binary degrades to duration 0 rather than failing the
// analysis.
type Prober struct {
	timeout time.Duration
}

func NewProber() *Prober {
	return &Prober{timeout: 15 * time.Second}
}

// Duration returns the container duration in seconds, or 0 when it cannot be
// determined.
func (p *Prober) Duration(ctx context.Context, localPath string) float64 {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, "ffprobe",
		"-v", "quiet",
		"-print_format", "json",
		"-show_format",
		localPath,
	)
	out, err := cmd.Output()
	if err != nil {
		return 0
	}

	var doc struct {
		Format struct {
			Duration string `json:"duration"`
		} `json:"format"`
	}
	if err := json.Unmarshal(out, &doc); err != nil {
		return 0
	}
	seconds, err := strconv.ParseFloat(doc.Format.Duration, 64)
	if err != nil || seconds < 0 {
		return 0
	}
	return seconds
}

// Available reports whether ffprobe can be found on PATH.
func Available() error {
	if _, err := exec.LookPath("ffprobe"); err != nil {
		return fmt.Errorf("ffprobe not found: %w", err)
	}
	return nil
}
