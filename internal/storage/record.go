package storage

// Row maps column id to a scalar cell value (string, number or boolean as
// serialized by the form). Missing keys mean empty cells.
type Row map[string]any

// RecordEntry is one filled-in instance of a form template. The row slice is
// the authoritative data; derived cells inside it are kept consistent by the
// engine before every save.
type RecordEntry struct {
	ID        int64  `json:"id"`
	FormCode  string `json:"form_code"`
	Name      string `json:"name"`
	Rows      []Row  `json:"rows"`
	CreatedAt string `json:"created_at,omitempty"`
	UpdatedAt string `json:"updated_at,omitempty"`
}
