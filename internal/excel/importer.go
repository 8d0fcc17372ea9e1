package excel

import (
	"context"
	"database/sql"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/praveen0raj/flashcard-app/internal/database"
	"github.com/praveen0raj/flashcard-app/internal/review"
	"github.com/praveen0raj/flashcard-app/pkg/models"
)

// ImportConfig defines the import configuration
type ImportConfig struct {
	FilePath    string // Path to the Excel or CSV file
	FrontColumn string // Column with the card front
	BackColumn  string // Column with the card back
	SheetName   string // Name of the sheet to import
	StartRow    int    // The row to start importing from (1-based index)
}

// DefaultImportConfig returns the default import configuration
func DefaultImportConfig() ImportConfig {
	return ImportConfig{
		FrontColumn: "A",
		BackColumn:  "B",
		SheetName:   "Sheet1",
		StartRow:    2, // By default, start from the second row (skip header)
	}
}

// ImportResult holds the result of an import operation
type ImportResult struct {
	TotalProcessed int
	Created        int
	Skipped        int
	Errors         []string
}

// Importer creates cards with freshly initialized schedules from a file
type Importer struct {
	cards   *database.CardRepository
	reviews *review.Service
}

// NewImporter creates an importer on an open database handle
func NewImporter(db *database.DB, reviews *review.Service) *Importer {
	return &Importer{
		cards:   database.NewCardRepository(db),
		reviews: reviews,
	}
}

// ImportCards imports cards for one user from an Excel or CSV file.
// Every created card gets the default schedule so it enters the review
// queue the next day.
func (imp *Importer) ImportCards(ctx context.Context, userID int64, config ImportConfig) (*ImportResult, error) {
	ext := strings.ToLower(filepath.Ext(config.FilePath))
	if ext == ".csv" {
		return imp.importFromCSV(ctx, userID, config)
	}
	return imp.importFromExcel(ctx, userID, config)
}

func (imp *Importer) importFromExcel(ctx context.Context, userID int64, config ImportConfig) (*ImportResult, error) {
	f, err := excelize.OpenFile(config.FilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(config.SheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to get rows: %v", err)
	}

	result := &ImportResult{Errors: make([]string, 0)}
	for i, row := range rows {
		// Skip header rows
		if i < config.StartRow-1 {
			continue
		}
		result.TotalProcessed++

		var front, back string
		if colIdx := columnToIndex(config.FrontColumn); colIdx >= 0 && colIdx < len(row) {
			front = strings.TrimSpace(row[colIdx])
		}
		if colIdx := columnToIndex(config.BackColumn); colIdx >= 0 && colIdx < len(row) {
			back = strings.TrimSpace(row[colIdx])
		}

		if err := imp.createCard(ctx, userID, front, back, result); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: %v", i+1, err))
		}
	}
	return result, nil
}

func (imp *Importer) importFromCSV(ctx context.Context, userID int64, config ImportConfig) (*ImportResult, error) {
	file, err := os.Open(config.FilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %v", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1 // Allow variable number of fields
	reader.LazyQuotes = true

	result := &ImportResult{Errors: make([]string, 0)}
	rowNum := 0
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error reading CSV: %v", err)
		}

		rowNum++
		if rowNum < config.StartRow {
			continue
		}
		result.TotalProcessed++

		var front, back string
		if len(row) > 0 {
			front = strings.TrimSpace(row[0])
		}
		if len(row) > 1 {
			back = strings.TrimSpace(row[1])
		}

		if err := imp.createCard(ctx, userID, front, back, result); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: %v", rowNum, err))
		}
	}
	return result, nil
}

// createCard inserts one card with its default schedule, skipping blanks
// and duplicates of a front the user already has.
func (imp *Importer) createCard(ctx context.Context, userID int64, front, back string, result *ImportResult) error {
	if front == "" || back == "" {
		result.Skipped++
		return nil
	}

	if _, err := imp.cards.GetByFront(ctx, userID, front); err == nil {
		result.Skipped++
		return nil
	} else if !errors.Is(err, sql.ErrNoRows) {
		return err
	}

	card := &models.Card{
		UserID:    userID,
		Front:     front,
		Back:      back,
		CreatedAt: time.Now().UTC(),
	}
	if err := imp.cards.Create(ctx, card); err != nil {
		return err
	}
	if _, err := imp.reviews.InitializeSchedule(ctx, userID, card.ID); err != nil {
		return err
	}
	result.Created++
	return nil
}

// columnToIndex converts an Excel column letter to a zero-based index,
// returning -1 for an empty or malformed column name
func columnToIndex(column string) int {
	column = strings.ToUpper(strings.TrimSpace(column))
	index := 0
	for _, c := range column {
		if c < 'A' || c > 'Z' {
			return -1
		}
		index = index*26 + int(c-'A') + 1
	}
	return index - 1
}
