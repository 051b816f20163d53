package spaces

import (
	"github.com/gin-gonic/gin"
)

func SetupSpaceRoutes(rg *gin.RouterGroup, controller *Controller) {
	buildings := rg.Group("/buildings")
	{
		buildings.GET("", controller.ListBuildings)         // GET /api/v1/buildings
		buildings.GET("/:id", controller.GetBuilding)       // GET /api/v1/buildings/:id
		buildings.GET("/:id/floors", controller.ListFloors) // GET /api/v1/buildings/:id/floors
	}

	floors := rg.Group("/floors")
	{
		floors.GET("/:id/spaces", controller.ListSpaces) // GET /api/v1/floors/:id/spaces
	}

	spaces := rg.Group("/spaces")
	{
		spaces.GET("/types", controller.ListSpaceTypes) // GET /api/v1/spaces/types
		spaces.GET("/:id", controller.GetSpace)         // GET /api/v1/spaces/:id
	}

	// Search lives under /reservations in the public API
	rg.GET("/reservations/available", controller.SearchAvailable) // GET /api/v1/reservations/available?startTime=&endTime=
}
