package domain

// Post is a community feed entry. Likes and comments live in remote
// subcollections but are cached as embedded arrays.
type Post struct {
	ID          string
	UserID      string
	UserName    string
	Title       string
	Content     string
	IsPublic    bool
	TimeCreated int64
	Likes       []string
	Comments    []Comment
}

// Comment is a reply attached to a post. PostID is a back-reference,
// not an ownership edge.
type Comment struct {
	ID          string
	PostID      string
	UserID      string
	Name        string
	TimeCreated int64
	Content     string
}

// EntityID returns the store-assigned post id.
func (p Post) EntityID() string { return p.ID }

// LikedBy reports whether the given user has liked the post.
func (p Post) LikedBy(userID string) bool {
	for _, id := range p.Likes {
		if id == userID {
			return true
		}
	}
	return false
}
