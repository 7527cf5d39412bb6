package handler

import "github.com/gin-gonic/gin"

// RegisterRoutes mounts the board, list, card and health routes on api.
func RegisterRoutes(api *gin.RouterGroup, boards *BoardHandler, lists *ListHandler, cards *CardHandler, health *HealthHandler) {
	api.GET("/health", health.Check)

	// Board routes
	api.GET("/boards", boards.GetAll)
	api.POST("/boards", boards.Create)
	api.GET("/boards/:id", boards.GetByID)
	api.PUT("/boards/:id", boards.Update)
	api.DELETE("/boards/:id", boards.Delete)

	// List routes
	api.GET("/boards/:id/lists", lists.GetByBoardID)
	api.POST("/boards/:id/lists/reorder", lists.Reorder)
	api.GET("/lists", lists.GetAll)
	api.POST("/lists", lists.Create)
	api.GET("/lists/:id", lists.GetByID)
	api.PUT("/lists/:id", lists.Update)
	api.DELETE("/lists/:id", lists.Delete)

	// Card routes
	api.GET("/lists/:id/cards", cards.GetByListID)
	api.POST("/lists/:id/cards/reorder", cards.Reorder)
	api.POST("/cards", cards.Create)
	api.GET("/cards/:id", cards.GetByID)
	api.PUT("/cards/:id", cards.Update)
	api.DELETE("/cards/:id", cards.Delete)
	api.POST("/cards/:id/move", cards.Move)
}
