// Package report implements the transaction report download flow: date
// range validation, the authenticated binary fetch, and atomic
// materialization of the PDF on disk.
package report

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/Team-SMDRS/customer-dashboard/internal/domain"
	"github.com/Team-SMDRS/customer-dashboard/internal/infra/observability"
)

const dateLayout = "2006-01-02"

// Fetcher is the slice of the bank client the downloader needs.
type Fetcher interface {
	GetTransactionsReport(ctx context.Context, startDate, endDate string) ([]byte, error)
}

// Downloader fetches PDF transaction reports into a directory.
// Concurrent downloads of the same range are coalesced, so a
// double-trigger issues one request.
type Downloader struct {
	fetcher Fetcher
	dir     string
	metrics *observability.Metrics
	logger  *zap.Logger
	group   singleflight.Group
}

// NewDownloader creates a downloader writing into dir.
func NewDownloader(fetcher Fetcher, dir string, metrics *observability.Metrics, logger *zap.Logger) *Downloader {
	return &Downloader{
		fetcher: fetcher,
		dir:     dir,
		metrics: metrics,
		logger:  logger,
	}
}

// ValidateRange checks the report date range: both dates set, ISO
// formatted, and start not after end.
func ValidateRange(startDate, endDate string) error {
	if startDate == "" {
		return &domain.ErrValidation{Field: "start_date", Message: "start date is required"}
	}
	if endDate == "" {
		return &domain.ErrValidation{Field: "end_date", Message: "end date is required"}
	}

	start, err := time.Parse(dateLayout, startDate)
	if err != nil {
		return &domain.ErrValidation{Field: "start_date", Message: "expected YYYY-MM-DD"}
	}
	end, err := time.Parse(dateLayout, endDate)
	if err != nil {
		return &domain.ErrValidation{Field: "end_date", Message: "expected YYYY-MM-DD"}
	}
	if start.After(end) {
		return &domain.ErrValidation{Field: "start_date", Message: "start date is after end date"}
	}
	return nil
}

// Download validates the range, fetches the report, and writes
// transactions_<start>_to_<end>.pdf. It returns the written path. A
// failed download never touches session state; the error is local.
func (d *Downloader) Download(ctx context.Context, startDate, endDate string) (string, error) {
	if err := ValidateRange(startDate, endDate); err != nil {
		return "", err
	}

	key := startDate + ".." + endDate
	v, err, shared := d.group.Do(key, func() (any, error) {
		return d.download(ctx, startDate, endDate)
	})
	if shared {
		d.logger.Debug("report: coalesced concurrent download", zap.String("range", key))
	}
	if err != nil {
		d.metrics.IncrDownload("error")
		return "", err
	}

	d.metrics.IncrDownload("success")
	return v.(string), nil
}

func (d *Downloader) download(ctx context.Context, startDate, endDate string) (string, error) {
	payload, err := d.fetcher.GetTransactionsReport(ctx, startDate, endDate)
	if err != nil {
		d.logger.Error("report: fetch failed",
			zap.String("start_date", startDate),
			zap.String("end_date", endDate),
			zap.Error(err),
		)
		return "", &domain.ErrDownload{Err: err}
	}

	name := fmt.Sprintf("transactions_%s_to_%s.pdf", startDate, endDate)
	final := filepath.Join(d.dir, name)

	// Write to a temp name first so a torn write never leaves a partial
	// PDF at the final path, and remove it on any failure.
	tmp := filepath.Join(d.dir, ".tmp-"+uuid.NewString())
	if err := os.WriteFile(tmp, payload, 0o644); err != nil {
		return "", &domain.ErrDownload{Err: err}
	}
	if err := os.Rename(tmp, final); err != nil {
		os.Remove(tmp)
		return "", &domain.ErrDownload{Err: err}
	}

	d.logger.Info("report downloaded",
		zap.String("path", final),
		zap.Int("bytes", len(payload)),
	)
	return final, nil
}
