package domain

// UserProfile is the signed-in user's profile document.
// Its id equals the auth principal id.
type UserProfile struct {
	ID         string
	Name       string
	AvatarPath *string
	IsPublic   bool
	CreatedAt  int64
}

// EntityID returns the principal id the profile belongs to.
func (u UserProfile) EntityID() string { return u.ID }
