package services

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/princeprakhar/gold-marketplace/internal/models"
	"github.com/shopspring/decimal"
)

// Expected CSV format: title,description,category,weight,size,making_fee,profit_percent,gold_price
const importColumns = 8

type ImportReport struct {
	ProcessedCount int      `json:"processed_count"`
	FailedRows     []string `json:"failed_rows,omitempty"`
}

// ImportCSV creates one product per data row for the calling seller. Bad rows are
// reported and skipped; a seller that may not list products fails the whole import.
func (s *ProductService) ImportCSV(ctx context.Context, caller Caller, src io.Reader) (*ImportReport, error) {
	reader := csv.NewReader(src)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, validationError("failed to parse CSV file: %v", err)
	}
	if len(records) < 2 {
		return nil, validationError("CSV file must have header and at least one data row")
	}

	report := &ImportReport{}
	for i, record := range records[1:] { // Skip header
		row := i + 2
		req, err := parseImportRow(record)
		if err != nil {
			report.FailedRows = append(report.FailedRows, fmt.Sprintf("Row %d: %v", row, err))
			continue
		}

		if _, err := s.CreateProduct(ctx, caller, req); err != nil {
			if errors.Is(err, ErrForbidden) || errors.Is(err, ErrConflict) {
				return nil, err
			}
			report.FailedRows = append(report.FailedRows, fmt.Sprintf("Row %d: %v", row, err))
			continue
		}
		report.ProcessedCount++
	}

	return report, nil
}

func parseImportRow(record []string) (*models.CreateProductRequest, error) {
	if len(record) < importColumns {
		return nil, errors.New("insufficient columns")
	}

	numbers := make([]decimal.Decimal, 0, 4)
	for _, col := range []struct {
		name  string
		index int
	}{{"weight", 3}, {"making_fee", 5}, {"profit_percent", 6}, {"gold_price", 7}} {
		raw := strings.TrimSpace(record[col.index])
		if raw == "" && (col.name == "making_fee" || col.name == "profit_percent") {
			numbers = append(numbers, decimal.Zero)
			continue
		}
		value, err := decimal.NewFromString(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid %s", col.name)
		}
		numbers = append(numbers, value)
	}

	return &models.CreateProductRequest{
		Title:         strings.TrimSpace(record[0]),
		Description:   strings.TrimSpace(record[1]),
		Category:      strings.TrimSpace(record[2]),
		Weight:        numbers[0],
		Size:          strings.TrimSpace(record[4]),
		MakingFee:     numbers[1],
		ProfitPercent: numbers[2],
		GoldPrice:     numbers[3],
	}, nil
}
