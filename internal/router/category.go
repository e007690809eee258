package router

import "github.com/gin-gonic/gin"

func (r *Router) categoryRoutes(version *gin.RouterGroup) {
	categories := version.Group("/categories")
	{
		categories.POST("", r.categoryHandler.Create)
		categories.GET("", r.categoryHandler.List)
	}
}
