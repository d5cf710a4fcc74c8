package router

import (
	"github.com/oksasatya/go-ecommerce-backend/internal/container"
	handlers "github.com/oksasatya/go-ecommerce-backend/internal/interface/http"
	"github.com/oksasatya/go-ecommerce-backend/internal/interface/middleware"
	"github.com/oksasatya/go-ecommerce-backend/internal/router/modules"
)

// InitModules builds every feature module from the container and adds it to
// the registry. Call once at startup, before RegisterAll.
func InitModules(r *Registry, c *container.Container) {
	svc := c.Services()

	var allow middleware.AllowFunc
	if c.Config.Env == "development" {
		allow = middleware.AllowPrivateIP()
	}

	r.Add(modules.NewHealthModule())
	r.Add(modules.NewUserModule(handlers.NewUserHandler(svc.Users, c.Logger), c.Redis, allow, c.Logger))
	r.Add(modules.NewProductModule(handlers.NewProductHandler(svc.Products, c.Logger)))
	r.Add(modules.NewCheckoutModule(handlers.NewCheckoutHandler(svc.Checkout, c.Logger)))
	if c.Config.DebugMetricsEnabled {
		r.Add(modules.NewDebugModule(c.Redis))
	}
}
