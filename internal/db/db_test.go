package db_test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	embeddedpostgres "github.com/fergusstrange/embedded-postgres"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gyeh/kdigstats/internal/db"
	"github.com/gyeh/kdigstats/internal/logging"
	"github.com/gyeh/kdigstats/internal/model"
)

const (
	testPort     = 15433
	testDB       = "kdigtest"
	testUser     = "postgres"
	testPassword = "postgres"
)

var testDSN string

func TestMain(m *testing.M) {
	if os.Getenv("KDIGSTATS_PG_TESTS") == "" {
		fmt.Fprintln(os.Stderr, "SKIP: set KDIGSTATS_PG_TESTS=1 to run embedded postgres tests")
		os.Exit(0)
	}

	testDSN = fmt.Sprintf("postgresql://%s:%s@localhost:%d/%s?sslmode=disable",
		testUser, testPassword, testPort, testDB)

	pg := embeddedpostgres.NewDatabase(
		embeddedpostgres.DefaultConfig().
			Port(uint32(testPort)).
			Database(testDB).
			Username(testUser).
			Password(testPassword).
			Version(embeddedpostgres.V16).
			StartTimeout(30*time.Second),
	)

	if err := pg.Start(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to start embedded postgres: %v\n", err)
		os.Exit(1)
	}

	code := m.Run()

	if err := pg.Stop(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to stop embedded postgres: %v\n", err)
	}

	os.Exit(code)
}

// setupDB connects, drops the kdig schema and reapplies migrations.
func setupDB(t *testing.T) *pgxpool.Pool {
	t.Helper()
	ctx := context.Background()

	pool, err := db.NewPool(ctx, testDSN)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	if _, err := pool.Exec(ctx, "DROP SCHEMA IF EXISTS kdig CASCADE"); err != nil {
		t.Fatalf("drop schema: %v", err)
	}
	if err := db.ApplyMigrations(ctx, pool, logging.Setup("text", false)); err != nil {
		pool.Close()
		t.Fatalf("migrations: %v", err)
	}

	t.Cleanup(func() { pool.Close() })
	return pool
}

func sampleRun(n int) (*model.RunSummary, []model.Record) {
	sum := &model.RunSummary{
		RunID:      uuid.New(),
		InputDir:   "/data/kdig",
		Candidates: n + 1,
		Parsed:     n,
		Skipped:    1,
	}
	recs := make([]model.Record, n)
	for i := range recs {
		recs[i] = model.Record{
			QueryTimeMS:       float64(i) + 0.5,
			ResponseSizeBytes: uint32(100 + i),
			Server:            "9.9.9.9",
			Port:              53,
			Protocol:          "UDP",
			Source:            fmt.Sprintf("/data/kdig/q%04d.txt", i),
		}
	}
	return sum, recs
}

func TestMigrations_Idempotent(t *testing.T) {
	pool := setupDB(t)
	if err := db.ApplyMigrations(context.Background(), pool, logging.Setup("text", false)); err != nil {
		t.Fatalf("second ApplyMigrations: %v", err)
	}
}

func TestLoad(t *testing.T) {
	pool := setupDB(t)
	ctx := context.Background()
	sum, recs := sampleRun(2500)

	res, err := db.Load(ctx, pool, logging.Setup("text", false), sum, recs)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if res.RowsCopied != int64(len(recs)) {
		t.Errorf("RowsCopied: got %d, want %d", res.RowsCopied, len(recs))
	}

	n, err := db.CountRunRecords(ctx, pool, sum.RunID)
	if err != nil {
		t.Fatalf("CountRunRecords: %v", err)
	}
	if n != int64(len(recs)) {
		t.Errorf("stored records: got %d, want %d", n, len(recs))
	}

	t.Run("values_round_trip", func(t *testing.T) {
		var server, proto, source string
		var port int32
		var size int64
		var qt float64
		err := pool.QueryRow(ctx,
			`SELECT source_file, query_time_ms, response_size_bytes, server, port, protocol
			 FROM kdig.records WHERE run_id = $1 AND source_file = $2`,
			sum.RunID, recs[7].Source).Scan(&source, &qt, &size, &server, &port, &proto)
		if err != nil {
			t.Fatalf("query: %v", err)
		}
		if qt != recs[7].QueryTimeMS || size != int64(recs[7].ResponseSizeBytes) ||
			server != recs[7].Server || port != int32(recs[7].Port) || proto != recs[7].Protocol {
			t.Errorf("row mismatch: %v %v %v %v %v", qt, size, server, port, proto)
		}
	})

	t.Run("run_registered", func(t *testing.T) {
		var parsed, skipped int
		err := pool.QueryRow(ctx,
			"SELECT files_parsed, files_skipped FROM kdig.runs WHERE run_id = $1",
			sum.RunID).Scan(&parsed, &skipped)
		if err != nil {
			t.Fatalf("query: %v", err)
		}
		if parsed != sum.Parsed || skipped != sum.Skipped {
			t.Errorf("run counts: got %d/%d, want %d/%d", parsed, skipped, sum.Parsed, sum.Skipped)
		}
	})

	t.Run("delete_cascades", func(t *testing.T) {
		if err := db.DeleteRun(ctx, pool, sum.RunID); err != nil {
			t.Fatalf("DeleteRun: %v", err)
		}
		n, err := db.CountRunRecords(ctx, pool, sum.RunID)
		if err != nil {
			t.Fatalf("CountRunRecords: %v", err)
		}
		if n != 0 {
			t.Errorf("expected 0 records after delete, got %d", n)
		}
	})
}

func TestLoad_DuplicateRunRollsBack(t *testing.T) {
	pool := setupDB(t)
	ctx := context.Background()
	log := logging.Setup("text", false)
	sum, recs := sampleRun(3)

	if _, err := db.Load(ctx, pool, log, sum, recs); err != nil {
		t.Fatalf("first Load: %v", err)
	}
	if _, err := db.Load(ctx, pool, log, sum, recs); err == nil {
		t.Fatal("expected duplicate run_id to fail")
	}

	n, err := db.CountRunRecords(ctx, pool, sum.RunID)
	if err != nil {
		t.Fatalf("CountRunRecords: %v", err)
	}
	if n != 3 {
		t.Errorf("expected the first load's 3 records only, got %d", n)
	}
}

func TestChannelSource(t *testing.T) {
	runID := uuid.New()
	ch := make(chan model.Record, 2)
	ch <- model.Record{Server: "a", Port: 53, Protocol: "UDP", Source: "x.txt"}
	ch <- model.Record{Server: "b", Port: 853, Protocol: "TLS", Source: "y.txt"}
	close(ch)

	src := db.NewChannelSource(runID, ch)
	var rows [][]any
	for src.Next() {
		v, err := src.Values()
		if err != nil {
			t.Fatalf("Values: %v", err)
		}
		rows = append(rows, v)
	}
	if src.Err() != nil {
		t.Fatalf("Err: %v", src.Err())
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[1][0] != runID || rows[1][4] != "b" || rows[1][5] != int32(853) {
		t.Errorf("unexpected row: %v", rows[1])
	}
	if len(rows[0]) != len(model.CopyColumns()) {
		t.Errorf("values/columns mismatch: %d vs %d", len(rows[0]), len(model.CopyColumns()))
	}
}
