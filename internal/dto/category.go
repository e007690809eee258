package dto

type CreateCategoryRequest struct {
	Name string `json:"name" binding:"required,min=1,max=50"`
}

type CategoryResponse struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}
