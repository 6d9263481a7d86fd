// Package dataset loads the static shipment, supplier and inventory data the
// engines operate on.
//
// Two sources are supported: a JSON document on disk (LoadFile) and a SQL
// database (LoadSQL), either SQLite through modernc.org/sqlite or MySQL /
// MariaDB through go-sql-driver/mysql. Load picks the right one from a
// source string. Watch reloads a JSON dataset whenever the file changes.
//
// Loaded datasets are not validated unless the caller asks for it; Validate
// reports every malformed record it finds.
package dataset
