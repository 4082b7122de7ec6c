package router

import (
	"github.com/gin-gonic/gin"
	"github.com/swaggo/files"
	"github.com/swaggo/gin-swagger"
	_ "minter/docs"
	"minter/middleware"
	"minter/router/api"
)

func Run(addr string) error {
	r := gin.New()
	// Allow cross-domain access, and those with nginx and other proxies can be closed
	r.Use(middleware.Cors())
	// Set up accessible routes
	api.Vector(r)
	api.Gated(r)
	api.Mechanic(r)
	api.Dutch(r)
	api.Ranked(r)
	api.Admin(r)
	api.Event(r)
	api.Mirror(r)
	r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	return r.Run(addr)
}
