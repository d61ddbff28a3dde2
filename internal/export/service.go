package export

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/ahmadalnaib/project-board/internal/listing"
)

const dateLayout = "2006-01-02"

// Column is one spreadsheet column.
type Column[T any] struct {
	Header string
	Value  func(T) any
}

// Sheet describes how rows of T are laid out.
type Sheet[T any] struct {
	Name    string
	Columns []Column[T]
}

// Service writes list views to XLSX workbooks.
type Service struct {
	pageSize int
	maxRows  int
	now      func() time.Time
	logger   *slog.Logger
}

type Option func(*Service)

// WithPageSize sets how many rows are fetched per store round trip.
func WithPageSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.pageSize = size
		}
	}
}

// WithMaxRows caps the rows written to one workbook.
func WithMaxRows(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxRows = n
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithClock overrides the clock used for file names.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

func NewService(opts ...Option) *Service {
	service := &Service{
		pageSize: 500,
		maxRows:  100000,
		now:      time.Now,
		logger:   slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

// FileName returns the attachment name for an export of resource.
func (s *Service) FileName(resource string) string {
	return fmt.Sprintf("%s-%s.xlsx", resource, s.now().Format("20060102-150405"))
}

// Write streams every row of src matching criteria, in criteria order, into
// a single-sheet workbook written to w. It returns the number of data rows.
func Write[T any](ctx context.Context, s *Service, w io.Writer, sheet Sheet[T], src listing.Source[T], criteria listing.Criteria) (int, error) {
	src, err := listing.Pin(ctx, src)
	if err != nil {
		return 0, fmt.Errorf("failed to pin rows: %w", err)
	}

	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			s.logger.Warn("failed to close workbook", "error", err)
		}
	}()

	if err := f.SetSheetName(f.GetSheetName(0), sheet.Name); err != nil {
		return 0, fmt.Errorf("failed to name sheet: %w", err)
	}
	sw, err := f.NewStreamWriter(sheet.Name)
	if err != nil {
		return 0, fmt.Errorf("failed to open sheet writer: %w", err)
	}

	header := make([]any, len(sheet.Columns))
	for i, column := range sheet.Columns {
		header[i] = column.Header
	}
	if err := sw.SetRow("A1", header); err != nil {
		return 0, fmt.Errorf("failed to write header: %w", err)
	}

	written := 0
	for offset := 0; written < s.maxRows; offset += s.pageSize {
		if err := ctx.Err(); err != nil {
			return written, err
		}
		limit := min(s.pageSize, s.maxRows-written)
		items, err := src.Find(ctx, criteria, limit, offset)
		if err != nil {
			return written, fmt.Errorf("failed to read rows at offset %d: %w", offset, err)
		}
		for _, item := range items {
			cell, err := excelize.CoordinatesToCellName(1, written+2)
			if err != nil {
				return written, err
			}
			row := make([]any, len(sheet.Columns))
			for i, column := range sheet.Columns {
				row[i] = column.Value(item)
			}
			if err := sw.SetRow(cell, row); err != nil {
				return written, fmt.Errorf("failed to write row %d: %w", written+1, err)
			}
			written++
		}
		if len(items) < limit {
			break
		}
	}

	if err := sw.Flush(); err != nil {
		return written, fmt.Errorf("failed to flush sheet: %w", err)
	}
	if err := f.Write(w); err != nil {
		return written, fmt.Errorf("failed to write workbook: %w", err)
	}

	s.logger.InfoContext(ctx, "export written", "sheet", sheet.Name, "rows", written)
	return written, nil
}

func formatDate(t *time.Time) any {
	if t == nil {
		return ""
	}
	return t.Format(dateLayout)
}
