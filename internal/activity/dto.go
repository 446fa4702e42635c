package activity

// CategoryResponse is one entry of GET /activities.
type CategoryResponse struct {
	Name            string `json:"name"`
	Description     string `json:"description"`
	RequiresComment bool   `json:"requires_comment"`
}

type CategoriesResponse struct {
	Activities []CategoryResponse `json:"activities"`
}
