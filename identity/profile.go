package identity

// UserProfile is the authenticated user's record as returned by the identity
// provider. It is owned by the session store once login completes; the access
// token used to fetch it is not persisted.
type UserProfile struct {
	ID       string  `json:"id"`
	Username string  `json:"username"`
	Avatar   string  `json:"avatar"`
	Guilds   []Guild `json:"guilds,omitempty"`
}

// Guild is a membership entry from the provider's guild listing.
type Guild struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func (u *UserProfile) DisplayName() string {
	if u == nil {
		return ""
	}
	return u.Username
}
