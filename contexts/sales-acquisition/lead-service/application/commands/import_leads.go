package commands

import (
	"context"
	"encoding/csv"
	"io"
	"log/slog"
	"strings"

	application "prospector/contexts/sales-acquisition/lead-service/application"
	"prospector/contexts/sales-acquisition/lead-service/domain/entities"
	domainerrors "prospector/contexts/sales-acquisition/lead-service/domain/errors"
)

// importColumns maps accepted CSV headers onto candidate fields.
var importColumns = map[string]string{
	"email":        "email",
	"first_name":   "first_name",
	"last_name":    "last_name",
	"company":      "company",
	"job_title":    "job_title",
	"title":        "job_title",
	"location":     "location",
	"phone":        "phone",
	"linkedin":     "linkedin_url",
	"linkedin_url": "linkedin_url",
	"website":      "website",
	"external_id":  "external_id",
	"source":       "source",
}

type ImportCommand struct {
	AccountID string
	CSV       string
}

type ImportResult struct {
	Rows  int
	Merge MergeResult
}

// ImportLeadsUseCase parses a headered CSV payload and feeds the rows
// through the same dedup merge as discovery. Malformed rows and rows with
// no identity are skipped, never aborting the batch.
type ImportLeadsUseCase struct {
	Merge  MergeCandidatesUseCase
	Logger *slog.Logger
}

func (uc ImportLeadsUseCase) Execute(ctx context.Context, cmd ImportCommand) (ImportResult, error) {
	logger := application.ResolveLogger(uc.Logger)
	accountID := strings.TrimSpace(cmd.AccountID)
	if accountID == "" {
		return ImportResult{}, domainerrors.ErrAccountRequired
	}
	if strings.TrimSpace(cmd.CSV) == "" {
		return ImportResult{}, domainerrors.ErrInvalidImportPayload
	}

	reader := csv.NewReader(strings.NewReader(cmd.CSV))
	reader.FieldsPerRecord = -1
	header, err := reader.Read()
	if err != nil {
		return ImportResult{}, domainerrors.ErrInvalidImportPayload
	}

	columns := make([]string, len(header))
	for i, name := range header {
		columns[i] = importColumns[strings.ToLower(strings.TrimSpace(name))]
	}

	var rows int
	var candidates []entities.Candidate
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// A single malformed row is skipped, the rest still import.
			logger.Warn("import row rejected",
				"event", "lead_import_row_rejected",
				"module", "sales-acquisition/lead-service",
				"layer", "application",
				"error", err.Error(),
			)
			continue
		}
		rows++
		candidates = append(candidates, candidateFromRow(columns, record))
	}

	merged, err := uc.Merge.Execute(ctx, MergeCommand{AccountID: accountID, Candidates: candidates})
	if err != nil {
		return ImportResult{}, err
	}
	return ImportResult{Rows: rows, Merge: merged}, nil
}

func candidateFromRow(columns, record []string) entities.Candidate {
	var c entities.Candidate
	for i, value := range record {
		if i >= len(columns) {
			break
		}
		value = strings.TrimSpace(value)
		if value == "" {
			continue
		}
		switch columns[i] {
		case "email":
			c.Email = value
		case "first_name":
			c.FirstName = value
		case "last_name":
			c.LastName = value
		case "company":
			c.Company = value
		case "job_title":
			c.JobTitle = value
		case "location":
			c.Location = value
		case "phone":
			c.Phone = value
		case "website":
			c.Website = value
		case "linkedin_url":
			c.LinkedinURL = value
		case "external_id":
			c.ExternalID = value
		case "source":
			c.Source = value
		}
	}
	if c.Source == "" {
		c.Source = "import"
	}
	return c
}
