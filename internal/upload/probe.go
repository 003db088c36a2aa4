package upload

import (
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strconv"
)

// FFProbe определяет длительность видео с помощью утилиты ffprobe.
type FFProbe struct {
	Bin string
}

// NewFFProbe создаёт FFProbe; пустой bin означает ffprobe из PATH.
func NewFFProbe(bin string) *FFProbe {
	if bin == "" {
		bin = "ffprobe"
	}
	return &FFProbe{Bin: bin}
}

type ffprobeOutput struct {
	Format struct {
		Duration string `json:"duration"`
	} `json:"format"`
}

// Duration возвращает длительность файла в секундах.
func (p *FFProbe) Duration(ctx context.Context, path string) (float64, error) {
	const op = "upload.FFProbe.Duration"

	cmd := exec.CommandContext(ctx, p.Bin,
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "json",
		path,
	)
	out, err := cmd.Output()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return parseFFProbe(out)
}

func parseFFProbe(out []byte) (float64, error) {
	const op = "upload.parseFFProbe"

	var parsed ffprobeOutput
	if err := json.Unmarshal(out, &parsed); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	if parsed.Format.Duration == "" || parsed.Format.Duration == "N/A" {
		return 0, fmt.Errorf("%s: duration is not reported", op)
	}
	seconds, err := strconv.ParseFloat(parsed.Format.Duration, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return seconds, nil
}
