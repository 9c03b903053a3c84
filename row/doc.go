// Package row is the runtime contract of generated mappers.
//
// Generated code reads columns through Reader, one accessor per scalar
// kind. Values implements Reader over a row already scanned into memory;
// FromSQL builds one from database/sql, and package pgxrow from pgx.
package row
