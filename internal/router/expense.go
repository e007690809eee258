package router

import "github.com/gin-gonic/gin"

func (r *Router) expenseRoutes(version *gin.RouterGroup) {
	expenses := version.Group("/expenses")
	{
		expenses.POST("", r.expenseHandler.Add)
		expenses.GET("", r.expenseHandler.List)
		expenses.GET("/category-wise", r.expenseHandler.CategoryWise)
		expenses.GET("/date-wise", r.expenseHandler.DateWise)
		expenses.GET("/filter", r.expenseHandler.Filter)
	}
}
