package parquetio

import (
	"fmt"
	"os"

	"github.com/parquet-go/parquet-go"

	"github.com/gyeh/kdigstats/internal/model"
)

// Write stores records at path, replacing any existing file.
func Write(path string, records []model.Record) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create parquet file: %w", err)
	}

	rows := make([]model.ParquetRecord, len(records))
	for i, r := range records {
		rows[i] = r.ToParquet()
	}

	w := parquet.NewGenericWriter[model.ParquetRecord](f)
	if _, err := w.Write(rows); err != nil {
		f.Close()
		return fmt.Errorf("write parquet rows: %w", err)
	}
	if err := w.Close(); err != nil {
		f.Close()
		return fmt.Errorf("close parquet writer: %w", err)
	}
	return f.Close()
}
