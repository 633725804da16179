package exitcode

const (
	Success      = 0
	UsageError   = 1
	NoCandidates = 2
	NoRecords    = 3
	DBConnError  = 4
	CopyError    = 5
	ExportError  = 6
	SchemaError  = 7
)
