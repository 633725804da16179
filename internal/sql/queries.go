package sql

import (
	"embed"
)

// Migrations holds the schema DDL, applied in filename order.
//
//go:embed migrations/*.sql
var Migrations embed.FS

//go:embed queries/insert_run.sql
var InsertRun string

//go:embed queries/count_run_records.sql
var CountRunRecords string

//go:embed queries/delete_run.sql
var DeleteRun string
