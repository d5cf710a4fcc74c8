package router

import "github.com/gin-gonic/gin"

// Module is a feature slice (users, products, checkout, ...) that mounts its
// routes on the registry group.
type Module interface {
	Register(rg *gin.RouterGroup)
}
