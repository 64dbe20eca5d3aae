package dto

type MigrationStats struct {
	Success         bool `json:"success"`
	Events          int  `json:"events"`
	Users           int  `json:"users"`
	FormSubmissions int  `json:"formSubmissions"`
	Recipes         int  `json:"recipes"`
	BlogPosts       int  `json:"blogPosts"`
	Notifications   int  `json:"notifications"`
	SiteSettings    bool `json:"siteSettings"`
}

type MigrationResponse struct {
	Success bool           `json:"success"`
	Message string         `json:"message"`
	Stats   MigrationStats `json:"stats"`
}

type MigrationFailureResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Error   string `json:"error"`
}
