package models

type MessageResponse struct {
	Message string `json:"message"`
}

type CredentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Success bool   `json:"success"`
	Token   string `json:"token"`
}

type UploadResponse struct {
	Filename string `json:"filename"`
}

type ReorderItem struct {
	ID string `json:"_id"`
}

type ReorderRequest struct {
	CaseStudies []ReorderItem `json:"caseStudies"`
}

// ReorderFailure extends the plain message with the ids that were written
// before a partial failure.
type ReorderFailure struct {
	Message string   `json:"message"`
	Applied []string `json:"applied,omitempty"`
}

// PostView is a Post plus the layout variant derived from its rank in an
// ordered listing. Layout is empty for unordered listings.
type PostView struct {
	Post
	Layout string `json:"layout,omitempty"`
}
