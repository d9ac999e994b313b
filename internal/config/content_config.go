package config

// ContentConfig locates the editable content document inside the remote
// version-controlled store.
type ContentConfig interface {
	GetContentOwner() string
	GetContentRepo() string
	GetContentPath() string
	GetContentBranch() string
}

type Content struct{}

var _ ContentConfig = Content{}

func (Content) GetContentOwner() string {
	return GetEnv("CONTENT_OWNER", "")
}

func (Content) GetContentRepo() string {
	return GetEnv("CONTENT_REPO", "")
}

func (Content) GetContentPath() string {
	return GetEnv("CONTENT_PATH", "content.json")
}

func (Content) GetContentBranch() string {
	return GetEnv("CONTENT_BRANCH", "main")
}
