package model

import "time"

// BlogStatus controls public visibility of a blog post.
type BlogStatus string

const (
	BlogPublished BlogStatus = "Published"
	BlogDraft     BlogStatus = "Draft"
)

// Valid reports whether s is one of the known statuses.
func (s BlogStatus) Valid() bool {
	return s == BlogPublished || s == BlogDraft
}

// Blog represents a post as stored in the `blogs` table.  Tags are kept
// as a JSON array column and always decode to a non-nil slice.
//
// Fields:
//
//	ID            – server-assigned UUID.
//	Title         – trimmed, non-empty.
//	Excerpt       – trimmed, non-empty.
//	Content       – non-empty body (HTML or markdown from the dashboard).
//	Tags          – ordered, trimmed, non-empty entries; may be empty.
//	FeaturedImage – image URL, empty when unset.
//	Status        – Published or Draft.
//	CreatedAt     – timestamp of creation.
//	UpdatedAt     – timestamp of last update.
type Blog struct {
	ID            string     `json:"id"`
	Title         string     `json:"title"`
	Excerpt       string     `json:"excerpt"`
	Content       string     `json:"content"`
	Tags          []string   `json:"tags"`
	FeaturedImage string     `json:"featuredImage"`
	Status        BlogStatus `json:"status"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

// IsPublic reports whether anonymous readers may see the blog.
func (b *Blog) IsPublic() bool {
	return b.Status == BlogPublished
}
