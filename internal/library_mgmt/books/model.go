package books

import "database/sql"

// Book is one row of the books table.
type Book struct {
	BookID       int64
	Title        string
	Author       string
	Publisher    sql.NullString
	Year         sql.NullInt64
	ISBN         string
	Availability int
	Genre        sql.NullString
}
