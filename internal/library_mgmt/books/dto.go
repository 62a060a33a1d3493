package books

type CreateBookRequest struct {
	Title     string  `json:"title" binding:"required"`
	Author    string  `json:"author" binding:"required"`
	Publisher *string `json:"publisher,omitempty"`
	// Year arrives as a string so the numeric check can produce the same
	// validation outcome as the original form handling.
	Year         *string `json:"year,omitempty"`
	ISBN         string  `json:"isbn" binding:"required"`
	Genre        *string `json:"genre,omitempty"`
	Availability int     `json:"availability"`
}

type UpdateBookRequest struct {
	Title        string  `json:"title" binding:"required"`
	Author       string  `json:"author" binding:"required"`
	Publisher    *string `json:"publisher,omitempty"`
	Year         *string `json:"year,omitempty"`
	ISBN         string  `json:"isbn" binding:"required"`
	Genre        *string `json:"genre,omitempty"`
	Availability int     `json:"availability"`
}

type BookResponse struct {
	BookID       int64   `json:"book_id"`
	Title        string  `json:"title"`
	Author       string  `json:"author"`
	Publisher    *string `json:"publisher,omitempty"`
	Year         *int    `json:"year,omitempty"`
	ISBN         string  `json:"isbn"`
	Availability int     `json:"availability"`
	Genre        *string `json:"genre,omitempty"`
}

type Page struct {
	Limit  int
	Offset int
}

func buildBookResponse(b *Book) BookResponse {
	out := BookResponse{
		BookID:       b.BookID,
		Title:        b.Title,
		Author:       b.Author,
		ISBN:         b.ISBN,
		Availability: b.Availability,
	}
	if b.Publisher.Valid {
		v := b.Publisher.String
		out.Publisher = &v
	}
	if b.Year.Valid {
		v := int(b.Year.Int64)
		out.Year = &v
	}
	if b.Genre.Valid {
		v := b.Genre.String
		out.Genre = &v
	}
	return out
}
