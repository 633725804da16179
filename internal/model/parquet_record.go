package model

// ParquetRecord mirrors the Parquet schema used by export and summarize.
// Unsigned fields are widened to signed physical types so any Parquet reader
// can consume the file.
type ParquetRecord struct {
	SourceFile        string  `parquet:"source_file"`
	QueryTimeMS       float64 `parquet:"query_time_ms"`
	ResponseSizeBytes int64   `parquet:"response_size_bytes"`
	Server            string  `parquet:"server"`
	Port              int32   `parquet:"port"`
	Protocol          string  `parquet:"protocol"`
}

// ToParquet converts a Record into its Parquet row.
func (r Record) ToParquet() ParquetRecord {
	return ParquetRecord{
		SourceFile:        r.Source,
		QueryTimeMS:       r.QueryTimeMS,
		ResponseSizeBytes: int64(r.ResponseSizeBytes),
		Server:            r.Server,
		Port:              int32(r.Port),
		Protocol:          r.Protocol,
	}
}

// Record converts a Parquet row back into a Record. Out-of-range integers
// are clamped to the Record's field widths.
func (p ParquetRecord) Record() Record {
	return Record{
		QueryTimeMS:       p.QueryTimeMS,
		ResponseSizeBytes: uint32(clamp(p.ResponseSizeBytes, 0, 1<<32-1)),
		Server:            p.Server,
		Port:              uint16(clamp(int64(p.Port), 0, 1<<16-1)),
		Protocol:          p.Protocol,
		Source:            p.SourceFile,
	}
}

func clamp(v, lo, hi int64) int64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
