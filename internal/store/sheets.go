package store

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/BankimKamila185/Bankim-Jewellery/internal/shared"
)

// SheetsStore implements Store on top of a Google Spreadsheet, one tab per
// collection with a header row. Reads fetch the full data range; updates
// locate the row by scanning the id column, then write the merged row back.
type SheetsStore struct {
	svc           *sheets.Service
	spreadsheetID string
	prefixLocks   *shared.KeyedMutex
	now           func() time.Time
}

// SheetsConfig carries the credentials and target spreadsheet.
type SheetsConfig struct {
	SpreadsheetID   string
	CredentialsFile string
	CredentialsJSON string
}

// NewSheetsStore authenticates a service account and returns the adapter.
func NewSheetsStore(ctx context.Context, cfg SheetsConfig) (*SheetsStore, error) {
	var opts []option.ClientOption
	switch {
	case cfg.CredentialsJSON != "":
		opts = append(opts, option.WithCredentialsJSON([]byte(cfg.CredentialsJSON)))
	case cfg.CredentialsFile != "":
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}

	svc, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("store: sheets client: %w", err)
	}
	return &SheetsStore{
		svc:           svc,
		spreadsheetID: cfg.SpreadsheetID,
		prefixLocks:   shared.NewKeyedMutex(),
		now:           time.Now,
	}, nil
}

// List returns all data rows of the collection's tab, header excluded.
func (s *SheetsStore) List(ctx context.Context, c Collection) ([]Row, error) {
	resp, err := s.svc.Spreadsheets.Values.
		Get(s.spreadsheetID, c.Sheet+"!A2:Z").
		Context(ctx).Do()
	if err != nil {
		return nil, storeErr("list", c, err)
	}

	rows := make([]Row, 0, len(resp.Values))
	for _, cells := range resp.Values {
		rows = append(rows, cellsToRow(cells, c.Columns))
	}
	return rows, nil
}

// Get scans the collection for the row with the given id.
func (s *SheetsStore) Get(ctx context.Context, c Collection, id string) (Row, error) {
	rows, err := s.List(ctx, c)
	if err != nil {
		return nil, err
	}
	for _, r := range rows {
		if r[c.ID()] == id {
			return r, nil
		}
	}
	return nil, NotFoundError(c, id)
}

// Append adds a row at the end of the tab.
func (s *SheetsStore) Append(ctx context.Context, c Collection, row Row) error {
	stamped := s.stampNew(c, row)
	_, err := s.svc.Spreadsheets.Values.
		Append(s.spreadsheetID, c.Sheet+"!A:Z", &sheets.ValueRange{
			Values: [][]interface{}{rowToCells(stamped, c.Columns)},
		}).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).Do()
	if err != nil {
		return storeErr("append", c, err)
	}
	return nil
}

// UpdateByID locates the row by id, merges the partial fields and writes
// the full row back. Two concurrent calls against the same id race; callers
// serialize per entity key.
func (s *SheetsStore) UpdateByID(ctx context.Context, c Collection, id string, fields Row) error {
	rowNum, err := s.findRowNumber(ctx, c, id)
	if err != nil {
		return err
	}

	current, err := s.Get(ctx, c, id)
	if err != nil {
		return err
	}

	merged := current.Merge(fields)
	if c.hasColumn("updated_at") {
		merged["updated_at"] = Timestamp(s.now())
	}

	target := fmt.Sprintf("%s!A%d:Z%d", c.Sheet, rowNum, rowNum)
	_, err = s.svc.Spreadsheets.Values.
		Update(s.spreadsheetID, target, &sheets.ValueRange{
			Values: [][]interface{}{rowToCells(merged, c.Columns)},
		}).
		ValueInputOption("USER_ENTERED").
		Context(ctx).Do()
	if err != nil {
		return storeErr("update", c, err)
	}
	return nil
}

// NextID scans the id column for the prefix's max suffix. The scan is
// serialized per prefix within this process; a second process scanning at
// the same moment can still mint a duplicate.
func (s *SheetsStore) NextID(ctx context.Context, c Collection, prefix string) (string, error) {
	unlock := s.prefixLocks.Lock(shared.PrefixLockKey(prefix))
	defer unlock()

	ids, err := s.idColumn(ctx, c)
	if err != nil {
		return "", err
	}
	return nextFromIDs(ids, prefix, idSequenceWidth), nil
}

// findRowNumber returns the 1-indexed sheet row holding id.
func (s *SheetsStore) findRowNumber(ctx context.Context, c Collection, id string) (int, error) {
	ids, err := s.idColumn(ctx, c)
	if err != nil {
		return 0, err
	}
	for i, v := range ids {
		if v == id {
			return i + 2, nil // +1 for the header, +1 for 1-indexing
		}
	}
	return 0, NotFoundError(c, id)
}

// idColumn reads column A below the header.
func (s *SheetsStore) idColumn(ctx context.Context, c Collection) ([]string, error) {
	resp, err := s.svc.Spreadsheets.Values.
		Get(s.spreadsheetID, c.Sheet+"!A2:A").
		Context(ctx).Do()
	if err != nil {
		return nil, storeErr("scan ids", c, err)
	}
	ids := make([]string, 0, len(resp.Values))
	for _, cells := range resp.Values {
		if len(cells) > 0 {
			ids = append(ids, fmt.Sprint(cells[0]))
		} else {
			ids = append(ids, "")
		}
	}
	return ids, nil
}

func (s *SheetsStore) stampNew(c Collection, row Row) Row {
	stamped := row.Clone()
	ts := Timestamp(s.now())
	if c.hasColumn("created_at") && stamped["created_at"] == "" {
		stamped["created_at"] = ts
	}
	if c.hasColumn("updated_at") && stamped["updated_at"] == "" {
		stamped["updated_at"] = ts
	}
	return stamped
}

func cellsToRow(cells []interface{}, columns []string) Row {
	row := make(Row, len(columns))
	for i, col := range columns {
		if i < len(cells) {
			row[col] = fmt.Sprint(cells[i])
		} else {
			row[col] = ""
		}
	}
	return row
}

func rowToCells(row Row, columns []string) []interface{} {
	cells := make([]interface{}, len(columns))
	for i, col := range columns {
		cells[i] = row[col]
	}
	return cells
}

func storeErr(op string, c Collection, err error) error {
	return fmt.Errorf("%w: %s %s: %v", shared.ErrStoreUnavailable, op, c.Sheet, err)
}
