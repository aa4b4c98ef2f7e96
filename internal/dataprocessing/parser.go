package dataprocessing

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/xuri/excelize/v2"

	apperrors "campaignpulse/internal/errors"
	"campaignpulse/pkg/contracts/domain"
)

// Format identifies the encoding of a dataset file.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// Sentinel causes carried inside the AppError returned by Load.
var (
	ErrUnsupportedFormat = errors.New("unsupported dataset format")
	ErrNoHeader          = errors.New("dataset has no header row")
	ErrMissingColumn     = errors.New("required column missing")
	ErrInvalidValue      = errors.New("invalid cell value")
)

// DetectFormat picks the format from the file extension.
func DetectFormat(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv", ".txt":
		return FormatCSV, nil
	case ".xlsx", ".xlsm":
		return FormatXLSX, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// LoaderOptions configures a Loader.
type LoaderOptions struct {
	// Strict fails the load on missing columns, non-numeric numeric cells
	// and rows that fail struct validation. Off, those cells read as 0.
	Strict bool
	// Sheet selects the worksheet of an XLSX file. Empty means the first.
	Sheet string
}

// Loader reads the campaign dataset into typed rows. A load either
// returns every row or an error, never a partial result.
type Loader struct {
	logger   *slog.Logger
	opts     LoaderOptions
	validate *validator.Validate
}

// NewLoader creates a Loader.
func NewLoader(logger *slog.Logger, opts LoaderOptions) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{
		logger:   logger.With(slog.String("component", "loader")),
		opts:     opts,
		validate: validator.New(),
	}
}

// Load reads the dataset at path. Failures are *errors.AppError values of
// type NOT_FOUND, STORAGE, PARSING or VALIDATION.
func (l *Loader) Load(ctx context.Context, path string) ([]domain.CampaignRow, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return nil, apperrors.NewParsingError("cannot read dataset", err).WithContext("path", path)
	}

	if format == FormatXLSX {
		f, err := excelize.OpenFile(path)
		if err != nil {
			return nil, l.openError(path, err)
		}
		defer f.Close()
		return l.readWorkbook(ctx, f, path)
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, l.openError(path, err)
	}
	defer file.Close()

	return l.LoadReader(ctx, file, FormatCSV)
}

// LoadReader reads a dataset from r.
func (l *Loader) LoadReader(ctx context.Context, r io.Reader, format Format) ([]domain.CampaignRow, error) {
	switch format {
	case FormatCSV:
		records, err := readCSV(ctx, r)
		if err != nil {
			return nil, err
		}
		return l.rowsFromRecords(ctx, records)
	case FormatXLSX:
		f, err := excelize.OpenReader(r)
		if err != nil {
			return nil, apperrors.NewParsingError("failed to open workbook", err)
		}
		defer f.Close()
		return l.readWorkbook(ctx, f, "")
	default:
		return nil, apperrors.NewParsingError("cannot read dataset", fmt.Errorf("%w: %q", ErrUnsupportedFormat, format))
	}
}

func (l *Loader) openError(path string, err error) error {
	if errors.Is(err, os.ErrNotExist) {
		return apperrors.NewNotFoundError("dataset "+path, err).WithContext("path", path)
	}
	return apperrors.NewStorageError("failed to open dataset", err).WithContext("path", path)
}

func readCSV(ctx context.Context, r io.Reader) ([][]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	var records [][]string
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, apperrors.NewParsingError("malformed csv", err)
		}
		records = append(records, rec)
	}
	return records, nil
}

func (l *Loader) readWorkbook(ctx context.Context, f *excelize.File, path string) ([]domain.CampaignRow, error) {
	sheet := l.opts.Sheet
	if sheet == "" {
		sheet = f.GetSheetName(0)
	}

	records, err := f.GetRows(sheet)
	if err != nil {
		return nil, apperrors.NewParsingError("failed to read worksheet", err).
			WithContext("sheet", sheet).
			WithContext("path", path)
	}

	l.logger.DebugContext(ctx, "worksheet read",
		slog.String("sheet", sheet),
		slog.Int("records", len(records)))

	return l.rowsFromRecords(ctx, records)
}

// columnIndex maps each known field to its position in the header.
type columnIndex map[domain.Field]int

func buildColumnIndex(header []string) columnIndex {
	idx := make(columnIndex, len(header))
	for i, h := range header {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		if _, seen := idx[domain.Field(h)]; !seen {
			idx[domain.Field(h)] = i
		}
	}
	return idx
}

func (c columnIndex) missing() []string {
	var out []string
	for _, f := range domain.RequiredColumns {
		if _, ok := c[f]; !ok {
			out = append(out, string(f))
		}
	}
	return out
}

func (c columnIndex) cell(rec []string, f domain.Field) string {
	i, ok := c[f]
	if !ok || i >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[i])
}

func blank(rec []string) bool {
	for _, v := range rec {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

func (l *Loader) rowsFromRecords(ctx context.Context, records [][]string) ([]domain.CampaignRow, error) {
	if len(records) == 0 {
		return nil, apperrors.NewParsingError("cannot read dataset", ErrNoHeader)
	}

	cols := buildColumnIndex(records[0])
	if missing := cols.missing(); len(missing) > 0 {
		if l.opts.Strict {
			return nil, apperrors.NewAppValidationError(
				fmt.Sprintf("missing required columns: %s", strings.Join(missing, ", ")),
				ErrMissingColumn,
			).WithContext("columns", missing)
		}
		l.logger.WarnContext(ctx, "dataset is missing columns, reading them as empty",
			slog.Any("columns", missing))
	}

	rows := make([]domain.CampaignRow, 0, len(records)-1)
	coerced := 0
	for i, rec := range records[1:] {
		if blank(rec) {
			continue
		}
		if i%1000 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		// n is the 1-based data row number, header excluded
		n := i + 1
		row, bad := coerceRow(cols, rec)
		if len(bad) > 0 {
			if l.opts.Strict {
				return nil, apperrors.NewAppValidationError(
					fmt.Sprintf("row %d: non-numeric value in %s", n, strings.Join(bad, ", ")),
					ErrInvalidValue,
				).WithContext("row", n).WithContext("columns", bad)
			}
			coerced += len(bad)
		}

		if l.opts.Strict {
			if err := l.validate.Struct(row); err != nil {
				return nil, apperrors.NewAppValidationError(
					fmt.Sprintf("row %d: %s", n, describeValidation(err)), err,
				).WithContext("row", n)
			}
		}

		rows = append(rows, row)
	}

	if coerced > 0 {
		l.logger.WarnContext(ctx, "non-numeric cells read as zero", slog.Int("cells", coerced))
	}

	l.logger.InfoContext(ctx, "dataset loaded", slog.Int("rows", len(rows)))
	return rows, nil
}

// coerceRow converts one record. bad lists numeric columns whose cell was
// not a number.
func coerceRow(cols columnIndex, rec []string) (domain.CampaignRow, []string) {
	var bad []string
	num := func(f domain.Field) float64 {
		v, ok := ParseNumber(cols.cell(rec, f))
		if !ok {
			bad = append(bad, string(f))
		}
		return v
	}

	row := domain.CampaignRow{
		CampaignName: cols.cell(rec, domain.FieldCampaignName),
		Platform:     cols.cell(rec, domain.FieldPlatform),
		Objective:    cols.cell(rec, domain.FieldObjective),
		StartDate:    cols.cell(rec, domain.FieldStartDate),
		Impressions:  num(domain.FieldImpressions),
		Clicks:       num(domain.FieldClicks),
		AdSpend:      num(domain.FieldAdSpend),
		Revenue:      num(domain.FieldRevenue),
		Conversions:  num(domain.FieldConversions),
		CTR:          num(domain.FieldCTR),
		ROAS:         num(domain.FieldROAS),
		ROI:          num(domain.FieldROI),
	}
	row.Start, row.HasStart = ParseDate(row.StartDate)

	return row, bad
}

func describeValidation(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			parts = append(parts, fmt.Sprintf("%s is required", fe.Field()))
		case "min":
			parts = append(parts, fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param()))
		default:
			parts = append(parts, fmt.Sprintf("%s failed %s validation", fe.Field(), fe.Tag()))
		}
	}
	return strings.Join(parts, "; ")
}
