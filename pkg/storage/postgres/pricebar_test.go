package postgres_test

import (
	"context"
	"testing"
	"time"

	"yfcollector/pkg/storage/postgres"
	"yfcollector/pkg/yahoo"
)

// go test -v --run TestPriceBarCRUD
func TestPriceBarCRUD(t *testing.T) {
	client, err := postgres.NewClient(testDSN(t))
	if err != nil {
		t.Fatalf("failed to connect to DB: %v", err)
	}
	defer client.Close()

	ctx := context.Background()

	if err := client.AutoMigratePriceBarRecord(); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	day := func(d int) time.Time { return time.Date(1999, 1, d, 0, 0, 0, 0, time.UTC) }
	series := yahoo.TimeSeries{
		{Date: day(4), Open: 10, High: 11, Low: 9, Close: 10.5, Volume: 100, AdjustedClose: 10.5},
		{Date: day(5), Open: 10.5, High: 12, Low: 10, Close: 11.5, Volume: 200, AdjustedClose: 11.5},
	}

	// Create
	if err := client.UpsertSeries(ctx, "TESTSYM", postgres.DailyInterval, series); err != nil {
		t.Fatalf("upsert failed: %v", err)
	}

	// Update on conflict
	series[1].Close = 12
	if err := client.SaveSeries(ctx, "TESTSYM", series[1:]); err != nil {
		t.Fatalf("second upsert failed: %v", err)
	}

	// Read
	got, err := client.GetSeries(ctx, "TESTSYM", day(1), day(31))
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 bars, got %d", len(got))
	}
	if got[1].Close != 12 {
		t.Errorf("expected updated close 12, got %v", got[1].Close)
	}

	// Other intervals stay separate
	if err := client.UpsertSeries(ctx, "TESTSYM", "1w", series[:1]); err != nil {
		t.Fatalf("weekly upsert failed: %v", err)
	}
	got, err = client.GetSeries(ctx, "TESTSYM", day(1), day(31))
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 daily bars, got %d", len(got))
	}

	// Retention: only bars before day 5 go
	if err := client.DeleteBarsBefore(ctx, day(5)); err != nil {
		t.Fatalf("retention delete failed: %v", err)
	}
	got, err = client.GetSeries(ctx, "TESTSYM", day(1), day(31))
	if err != nil {
		t.Fatalf("get after retention failed: %v", err)
	}
	if len(got) != 1 || got[0].Day() != "1999-01-05" {
		t.Fatalf("expected only 1999-01-05 to survive, got %+v", got)
	}

	// Delete
	if err := client.DeleteBarsBefore(ctx, day(31)); err != nil {
		t.Errorf("delete failed: %v", err)
	}

	got, err = client.GetSeries(ctx, "TESTSYM", day(1), day(31))
	if err != nil {
		t.Fatalf("get after delete failed: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected no bars after delete, got %d", len(got))
	}
}
