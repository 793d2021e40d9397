package schema

// SocialCommentTable represents the 'social.comment' table
type SocialCommentTable struct {
	Table     string
	ID        string
	UserID    string
	ComicID   string
	ChapterID string
	ParentID  string
	Content   string
	CreatedAt string
	UpdatedAt string
}

// SocialComment is the schema definition for social.comment
var SocialComment = SocialCommentTable{
	Table:     "social.comment",
	ID:        "id",
	UserID:    "userid",
	ComicID:   "comicid",
	ChapterID: "chapterid",
	ParentID:  "parentid",
	Content:   "content",
	CreatedAt: "createdat",
	UpdatedAt: "updatedat",
}

func (t SocialCommentTable) Columns() []string {
	return []string{
		t.ID, t.UserID, t.ComicID, t.ChapterID, t.ParentID,
		t.Content, t.CreatedAt, t.UpdatedAt,
	}
}
