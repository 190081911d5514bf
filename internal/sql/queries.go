package sql

import "embed"

// Migrations holds the DDL applied by `simcheck migrate`, in filename order.
//
//go:embed migrations/*.sql
var Migrations embed.FS
