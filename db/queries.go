package db

import (
	_ "embed"
)

//go:embed sql/create_tables.sql
var CreateTablesSQL string

//go:embed sql/insert_cut.sql
var InsertCutSQL string

//go:embed sql/select_cuts.sql
var SelectCutsSQL string

//go:embed sql/delete_cuts.sql
var DeleteCutsSQL string
