package router

import (
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/ignatzorin/jobmarket-backend/internal/authz"
	"github.com/ignatzorin/jobmarket-backend/internal/config"
	"github.com/ignatzorin/jobmarket-backend/internal/http/middleware"
	"github.com/ignatzorin/jobmarket-backend/internal/interface/http/dto"
	"github.com/ignatzorin/jobmarket-backend/internal/interface/http/handler"
)

type Handlers struct {
	Auth    *handler.AuthHandler
	Catalog *handler.CatalogHandler
	Job     *handler.JobHandler
	Bid     *handler.BidHandler
	Health  *handler.HealthHandler
}

func SetupRouter(cfg *config.Config, h Handlers, tokens middleware.TokenParser) (*gin.Engine, error) {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		if err := dto.RegisterValidators(v); err != nil {
			return nil, err
		}
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))

	r.GET("/health", h.Health.Health)

	api := r.Group("/api")
	api.GET("/health", h.Health.Health)

	authGroup := api.Group("/auth")
	authGroup.Use(middleware.RateLimitMiddleware(cfg.RateLimitLimit, cfg.RateLimitPeriod))
	{
		authGroup.POST("/customers/register", h.Auth.RegisterCustomer)
		authGroup.POST("/customers/login", h.Auth.CustomerLogin)
		authGroup.POST("/vendors/register", h.Auth.RegisterVendor)
		authGroup.POST("/vendors/login", h.Auth.VendorLogin)
	}

	api.GET("/job-items", h.Catalog.ListTree)

	authenticated := api.Group("/")
	authenticated.Use(middleware.AuthMiddleware(tokens))

	customer := authenticated.Group("/")
	customer.Use(middleware.RequireRole(authz.RoleCustomer))
	{
		customer.POST("/job-items", h.Catalog.CreateItem)

		customer.POST("/jobs", h.Job.CreateJob)
		customer.GET("/jobs", h.Job.ListJobs)
		customer.GET("/jobs/:id", h.Job.GetJob)
		customer.POST("/jobs/:id/cancel", h.Job.CancelJob)
		customer.GET("/jobs/:id/bids", h.Bid.ListJobBids)

		customer.POST("/bids/:id/accept", h.Bid.AcceptBid)
		customer.POST("/bids/:id/reject", h.Bid.RejectBid)
	}

	vendor := authenticated.Group("/vendor")
	vendor.Use(middleware.RequireRole(authz.RoleVendor))
	{
		vendor.GET("/jobs", h.Job.ListOpenJobs)
		vendor.POST("/jobs/:id/bids", h.Bid.PlaceBid)
		vendor.POST("/jobs/:id/start", h.Job.StartWork)
		vendor.POST("/jobs/:id/complete", h.Job.CompleteJob)
		vendor.GET("/bids", h.Bid.ListMyBids)
		vendor.POST("/bids/:id/withdraw", h.Bid.WithdrawBid)
	}

	return r, nil
}
