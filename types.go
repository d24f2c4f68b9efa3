package hdsite

// BlogPost is the core content type stored in SQLite and served over the API.
// Timestamps are RFC 3339 UTC strings so lexical order matches chronological
// order in SQL ORDER BY clauses.
type BlogPost struct {
	ID            int64  `json:"id" db:"id"`
	Title         string `json:"title" db:"title"`
	Slug          string `json:"slug" db:"slug"`
	Content       string `json:"content" db:"content"`
	Excerpt       string `json:"excerpt" db:"excerpt"`
	FeaturedImage string `json:"featuredImage" db:"featured_image"`
	Language      string `json:"language" db:"language"`
	Published     bool   `json:"published" db:"published"`
	CreatedAt     string `json:"createdAt" db:"created_at"`
	UpdatedAt     string `json:"updatedAt" db:"updated_at"`
}

// BlogInput is the client-supplied portion of a post on create and update.
// ID and timestamps are always assigned server-side.
type BlogInput struct {
	Title         string `json:"title"`
	Slug          string `json:"slug"`
	Content       string `json:"content"`
	Excerpt       string `json:"excerpt"`
	FeaturedImage string `json:"featuredImage"`
	Language      string `json:"language"`
	Published     bool   `json:"published"`
}

// TokenPayload is the session payload carried inside the auth-token cookie.
// Exp is a unix timestamp in milliseconds.
type TokenPayload struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	Exp      int64  `json:"exp"`
}

// Image describes an uploaded featured image living under the uploads dir.
type Image struct {
	Filename   string `json:"filename"`
	URL        string `json:"url"`
	Width      int    `json:"width,omitempty"`
	Height     int    `json:"height,omitempty"`
	Size       int64  `json:"size"`
	UploadedAt string `json:"uploadedAt"`
}
