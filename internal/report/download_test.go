package report_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/Team-SMDRS/customer-dashboard/internal/domain"
	"github.com/Team-SMDRS/customer-dashboard/internal/infra/observability"
	"github.com/Team-SMDRS/customer-dashboard/internal/report"
)

type mockReportFetcher struct {
	payload []byte
	err     error
	calls   atomic.Int64
	block   chan struct{} // when non-nil, blocks until closed
}

func (m *mockReportFetcher) GetTransactionsReport(_ context.Context, _, _ string) ([]byte, error) {
	m.calls.Add(1)
	if m.block != nil {
		<-m.block
	}
	return m.payload, m.err
}

func newDownloader(t *testing.T, fetcher report.Fetcher) (*report.Downloader, string) {
	t.Helper()
	dir := t.TempDir()
	return report.NewDownloader(fetcher, dir, observability.NewMetrics(), zap.NewNop()), dir
}

func TestDownload_WritesNamedFile(t *testing.T) {
	fetcher := &mockReportFetcher{payload: []byte("%PDF-1.7 report")}
	d, dir := newDownloader(t, fetcher)

	path, err := d.Download(context.Background(), "2024-01-01", "2024-02-01")
	if err != nil {
		t.Fatalf("Download: %v", err)
	}

	want := filepath.Join(dir, "transactions_2024-01-01_to_2024-02-01.pdf")
	if path != want {
		t.Errorf("expected %s, got %s", want, path)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read downloaded file: %v", err)
	}
	if string(content) != "%PDF-1.7 report" {
		t.Errorf("unexpected content: %q", content)
	}

	// No temp handles left behind.
	entries, _ := os.ReadDir(dir)
	if len(entries) != 1 {
		t.Errorf("expected only the final PDF in dir, found %d entries", len(entries))
	}
}

func TestDownload_ValidationSkipsNetwork(t *testing.T) {
	fetcher := &mockReportFetcher{payload: []byte("pdf")}
	d, _ := newDownloader(t, fetcher)

	cases := []struct{ start, end string }{
		{"", "2024-01-01"},
		{"2024-01-01", ""},
		{"", ""},
		{"01/02/2024", "2024-02-01"},
		{"2024-03-01", "2024-02-01"}, // start after end
	}

	for _, tc := range cases {
		_, err := d.Download(context.Background(), tc.start, tc.end)
		var valErr *domain.ErrValidation
		if !errors.As(err, &valErr) {
			t.Errorf("Download(%q, %q): expected ErrValidation, got %v", tc.start, tc.end, err)
		}
	}

	if fetcher.calls.Load() != 0 {
		t.Errorf("invalid ranges must not reach the network, saw %d calls", fetcher.calls.Load())
	}
}

func TestDownload_FetchFailureIsDownloadError(t *testing.T) {
	fetcher := &mockReportFetcher{err: &domain.ErrExternalService{Service: "bank-api/report", Status: 500}}
	d, dir := newDownloader(t, fetcher)

	_, err := d.Download(context.Background(), "2024-01-01", "2024-02-01")
	var dlErr *domain.ErrDownload
	if !errors.As(err, &dlErr) {
		t.Fatalf("expected ErrDownload, got %v", err)
	}

	entries, _ := os.ReadDir(dir)
	if len(entries) != 0 {
		t.Errorf("failed download must leave no files, found %d", len(entries))
	}
}

func TestDownload_DoubleTriggerCoalesces(t *testing.T) {
	fetcher := &mockReportFetcher{payload: []byte("pdf"), block: make(chan struct{})}
	d, _ := newDownloader(t, fetcher)

	var wg sync.WaitGroup
	download := func() {
		defer wg.Done()
		d.Download(context.Background(), "2024-01-01", "2024-02-01")
	}

	wg.Add(1)
	go download()

	// Wait until the first download is in flight, trigger the second
	// against the open flight, then release both.
	for fetcher.calls.Load() == 0 {
		time.Sleep(time.Millisecond)
	}
	wg.Add(1)
	go download()
	time.Sleep(50 * time.Millisecond)

	close(fetcher.block)
	wg.Wait()

	if fetcher.calls.Load() != 1 {
		t.Errorf("expected a single coalesced fetch, saw %d", fetcher.calls.Load())
	}
}

func TestValidateRange_AcceptsOrderedRange(t *testing.T) {
	if err := report.ValidateRange("2024-01-01", "2024-01-01"); err != nil {
		t.Errorf("equal dates are a valid range: %v", err)
	}
	if err := report.ValidateRange("2024-01-01", "2024-06-30"); err != nil {
		t.Errorf("ordered range rejected: %v", err)
	}
}
