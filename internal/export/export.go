// Package export renders a user's transactions as a downloadable statement and
// optionally archives it in object storage.
package export

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/IlyasAtabaev731/wealth-tracker/internal/domain/models"
	"github.com/IlyasAtabaev731/wealth-tracker/internal/lib/archive"
	"github.com/IlyasAtabaev731/wealth-tracker/internal/storage"
	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
)

type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

const sheetName = "Transactions"

var (
	ErrInvalidFormat   = errors.New("format must be csv or xlsx")
	ErrArchiveDisabled = errors.New("export archive is not configured")
)

var header = []string{"Date", "Account", "Name", "Category", "Type", "Amount"}

// ParseFormat defaults to CSV when value is empty.
func ParseFormat(value string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(value))) {
	case "", FormatCSV:
		return FormatCSV, nil
	case FormatXLSX:
		return FormatXLSX, nil
	}
	return "", fmt.Errorf("%w: got %q", ErrInvalidFormat, value)
}

func (f Format) ContentType() string {
	if f == FormatXLSX {
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "text/csv; charset=utf-8"
}

// Archiver uploads a rendered statement and returns a download url for it.
type Archiver interface {
	Put(ctx context.Context, key, contentType string, body []byte) (string, error)
}

type Statement struct {
	Format   Format
	Filename string
	Body     []byte
}

type Archived struct {
	Key string `json:"key"`
	URL string `json:"url"`
}

type Service struct {
	storage storage.Querier
	archive Archiver
	logger  *slog.Logger
	now     func() time.Time
}

// New builds the service. A nil archive disables Archive.
func New(q storage.Querier, archive Archiver, logger *slog.Logger) *Service {
	return &Service{
		storage: q,
		archive: archive,
		logger:  logger,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// Render builds the statement for ownerID. A non-nil accountID limits it to that
// account, which must belong to the owner.
func (s *Service) Render(ctx context.Context, ownerID uuid.UUID, format Format, accountID uuid.UUID) (*Statement, error) {
	const op = "export.Render"

	rows, err := s.rows(ctx, ownerID, accountID)
	if err != nil {
		return nil, err
	}

	var body []byte
	switch format {
	case FormatCSV:
		body, err = renderCSV(rows)
	case FormatXLSX:
		body, err = renderXLSX(rows)
	default:
		return nil, fmt.Errorf("%w: got %q", ErrInvalidFormat, format)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Statement{
		Format:   format,
		Filename: fmt.Sprintf("transactions_%s.%s", s.now().Format("20060102"), format),
		Body:     body,
	}, nil
}

// Archive renders the statement and uploads it under a per-owner key.
func (s *Service) Archive(ctx context.Context, ownerID uuid.UUID, format Format, accountID uuid.UUID) (*Archived, error) {
	const op = "export.Archive"

	if s.archive == nil {
		return nil, ErrArchiveDisabled
	}

	statement, err := s.Render(ctx, ownerID, format, accountID)
	if err != nil {
		return nil, err
	}

	key := archive.Key(ownerID, string(format), s.now())
	url, err := s.archive.Put(ctx, key, format.ContentType(), statement.Body)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.logger.Info("Statement archived",
		slog.String("owner", ownerID.String()),
		slog.String("key", key),
		slog.Int("size", len(statement.Body)),
	)

	return &Archived{Key: key, URL: url}, nil
}

func (s *Service) rows(ctx context.Context, ownerID, accountID uuid.UUID) ([][]string, error) {
	accounts, err := s.storage.Accounts(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	names := make(map[uuid.UUID]string, len(accounts))
	for _, a := range accounts {
		names[a.ID] = accountLabel(a)
	}

	if accountID != uuid.Nil {
		if _, ok := names[accountID]; !ok {
			return nil, fmt.Errorf("export.rows: account: %w", storage.ErrNotFound)
		}
	}

	txs, err := s.storage.Transactions(ctx, ownerID, models.TransactionFilter{AccountID: accountID})
	if err != nil {
		return nil, err
	}

	rows := make([][]string, 0, len(txs))
	for _, tx := range txs {
		rows = append(rows, []string{
			tx.Date.Format(time.DateOnly),
			names[tx.AccountID],
			tx.Name,
			string(tx.Category),
			tx.Type,
			tx.Amount.StringFixed(2),
		})
	}
	return rows, nil
}

func accountLabel(a models.Account) string {
	if a.Name == "" {
		return a.Number
	}
	return fmt.Sprintf("%s (%s)", a.Name, a.Number)
}

func renderCSV(rows [][]string) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(header); err != nil {
		return nil, err
	}
	if err := w.WriteAll(rows); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func renderXLSX(rows [][]string) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), sheetName); err != nil {
		return nil, err
	}

	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		return nil, err
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			return nil, err
		}
	}

	widths := map[string]float64{"A": 12, "B": 24, "C": 30, "D": 12, "E": 12, "F": 14}
	for col, width := range widths {
		if err := f.SetColWidth(sheetName, col, col, width); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
