package catalogstore

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"slices"
	"testing"

	"github.com/Simplici0/finesi/internal/catalog"
	"github.com/Simplici0/finesi/internal/db"
	"github.com/Simplici0/finesi/internal/migrations"
)

func newStoreDB(t *testing.T) *sql.DB {
	t.Helper()

	database, err := db.Open(context.Background(), filepath.Join(t.TempDir(), "catalog-test.db"))
	if err != nil {
		t.Fatalf("open sqlite database: %v", err)
	}
	t.Cleanup(func() { _ = database.Close() })

	if err := migrations.Up(database); err != nil {
		t.Fatalf("run migrations: %v", err)
	}
	return database
}

func sheetRows() []catalog.RawRow {
	return []catalog.RawRow{
		{Category: "CPU", Specification: "Intel i7-12700K", Cost: "389.99"},
		{Specification: "AMD Ryzen 9 5900X", Cost: "429.50"},
		{Specification: "Intel i5-10400"},
		{Category: "MEM DDR", Specification: "16GB DDR4", Cost: "65"},
	}
}

func TestImportIsIdempotent(t *testing.T) {
	ctx := context.Background()
	database := newStoreDB(t)

	for i := 0; i < 5; i++ {
		stats, err := Import(ctx, database, sheetRows())
		if err != nil {
			t.Fatalf("import (iteration=%d): %v", i, err)
		}
		if i == 0 {
			if stats.Inserts != 4 || stats.Deletes != 0 {
				t.Fatalf("unexpected first import stats %+v", stats)
			}
			continue
		}
		if stats != (Stats{}) {
			t.Fatalf("expected no changes in iteration %d, got %+v", i, stats)
		}
	}

	var count int
	if err := database.QueryRow(`SELECT COUNT(*) FROM catalog_rows`).Scan(&count); err != nil {
		t.Fatalf("count rows: %v", err)
	}
	if count != 4 {
		t.Fatalf("expected 4 rows, got %d", count)
	}
}

func TestImportReplacesChangedSheet(t *testing.T) {
	ctx := context.Background()
	database := newStoreDB(t)

	if _, err := Import(ctx, database, sheetRows()); err != nil {
		t.Fatalf("first import: %v", err)
	}

	updated := []catalog.RawRow{{Category: "SSD", Specification: "Samsung 980 1TB", Cost: "95"}}
	stats, err := Import(ctx, database, updated)
	if err != nil {
		t.Fatalf("second import: %v", err)
	}
	if stats.Inserts != 1 || stats.Deletes != 4 {
		t.Fatalf("unexpected stats %+v", stats)
	}

	got, err := Source{DB: database}.ReadRows(ctx)
	if err != nil {
		t.Fatalf("ReadRows: %v", err)
	}
	if !slices.Equal(got, updated) {
		t.Fatalf("rows = %+v, want %+v", got, updated)
	}
}

func TestSourceRoundTripKeepsBlanksAndOrder(t *testing.T) {
	ctx := context.Background()
	database := newStoreDB(t)

	if _, err := Import(ctx, database, sheetRows()); err != nil {
		t.Fatalf("import: %v", err)
	}

	var nulls int
	if err := database.QueryRow(`SELECT COUNT(*) FROM catalog_rows WHERE category IS NULL`).Scan(&nulls); err != nil {
		t.Fatalf("count null categories: %v", err)
	}
	if nulls != 2 {
		t.Fatalf("expected blank categories stored as NULL, got %d", nulls)
	}

	c, err := catalog.Load(ctx, Source{DB: database}, catalog.DefaultCategories)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := c.OptionsFor("CPU"); !slices.Equal(got, []string{"Intel i7-12700K", "AMD Ryzen 9 5900X"}) {
		t.Fatalf("CPU options = %v", got)
	}
	if got := c.PriceOf("MEM DDR", "16GB DDR4").String(); got != "65" {
		t.Fatalf("16GB price = %s", got)
	}
}

func TestImportLargeSheetInBatches(t *testing.T) {
	ctx := context.Background()
	database := newStoreDB(t)

	rows := make([]catalog.RawRow, 0, 450)
	for i := 0; i < 450; i++ {
		rows = append(rows, catalog.RawRow{Category: "MOUSE", Specification: fmt.Sprintf("mouse %d", i), Cost: "10"})
	}

	stats, err := Import(ctx, database, rows)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if stats.Inserts != 450 {
		t.Fatalf("inserts = %d, want 450", stats.Inserts)
	}

	got, err := Source{DB: database}.ReadRows(ctx)
	if err != nil {
		t.Fatalf("ReadRows: %v", err)
	}
	if len(got) != 450 || got[449].Specification != "mouse 449" {
		t.Fatalf("unexpected rows read back: %d", len(got))
	}
}
