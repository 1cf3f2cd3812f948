package journal

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/s-shindeldecker/farm-fresh-simulator/internal/domain"
)

// Record is one journey's flag-evaluation detail, written line-delimited so
// downstream analysis can determine experiment assignment.
type Record struct {
	Timestamp        time.Time         `json:"timestamp"`
	UserKey          string            `json:"user_key"`
	TrialDaysDetail  domain.FlagDetail `json:"trial_days_detail"`
	HeroBannerDetail domain.FlagDetail `json:"hero_banner_detail"`
	SeasonalBanner   string            `json:"seasonal_banner"`
}

// Writer appends journey records to a local JSONL file. Each record is a
// single write of one complete line, so the file stays parseable if the
// process is interrupted mid-run.
type Writer struct {
	mu   sync.Mutex
	file *os.File
}

func Open(path string) (*Writer, error) {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open journal %s: %w", path, err)
	}
	return &Writer{file: file}, nil
}

// Append writes one record as a JSON line.
func (w *Writer) Append(record Record) error {
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal journal record: %w", err)
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if _, err := w.file.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to append journal record: %w", err)
	}
	return nil
}

func (w *Writer) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.file.Close()
}
