package commands

import (
	"context"
	"testing"

	"prospector/contexts/sales-acquisition/lead-service/adapters/memory"
)

func TestImportParsesHeaderedCSV(t *testing.T) {
	store := memory.NewStore(nil)
	importer := ImportLeadsUseCase{Merge: newMergeUseCase(store)}

	payload := "email,first_name,last_name,company,title\n" +
		"ada@northwind.example,Ada,Polk,Northwind Analytics,CTO\n" +
		"omar@cloudline.example,Omar,Reyes,Cloudline Systems,VP Engineering\n"

	result, err := importer.Execute(context.Background(), ImportCommand{AccountID: "acct-1", CSV: payload})
	if err != nil {
		t.Fatalf("import failed: %v", err)
	}
	if result.Rows != 2 || result.Merge.Created != 2 {
		t.Fatalf("expected 2 rows imported, got %+v", result)
	}

	lead, err := store.FindLeadByEmail(context.Background(), "acct-1", "ada@northwind.example")
	if err != nil {
		t.Fatalf("imported lead missing: %v", err)
	}
	if lead.JobTitle != "CTO" || lead.Company != "Northwind Analytics" {
		t.Fatalf("unexpected mapped fields: %+v", lead)
	}
}

func TestImportSkipsRowsWithoutIdentity(t *testing.T) {
	store := memory.NewStore(nil)
	importer := ImportLeadsUseCase{Merge: newMergeUseCase(store)}

	payload := "email,first_name\n" +
		",NoIdentity\n" +
		"priya@signalharbor.example,Priya\n"

	result, err := importer.Execute(context.Background(), ImportCommand{AccountID: "acct-1", CSV: payload})
	if err != nil {
		t.Fatalf("import failed: %v", err)
	}
	if result.Merge.Created != 1 {
		t.Fatalf("expected only the identifiable row persisted, got %+v", result.Merge)
	}
}
