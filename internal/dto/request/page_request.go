package request

// PageQuery carries the page/limit query parameters. Zero means "use the
// endpoint default".
type PageQuery struct {
	Page  int `form:"page" binding:"omitempty,min=0"`
	Limit int `form:"limit" binding:"omitempty,min=0"`
}
