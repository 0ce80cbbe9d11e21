package router

import (
	"time"

	"github.com/amantech05/Gradlink/internal/handler"
	"github.com/amantech05/Gradlink/internal/logger"
	"github.com/amantech05/Gradlink/internal/logic"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func Setup(fundLogic *logic.FundLogic, monitorLogic *logic.MonitorLogic) *gin.Engine {
	r := gin.New()

	r.Use(requestLogger())
	r.Use(gin.Recovery())
	r.Use(corsMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": "gradlink-fund-service",
		})
	})

	v1 := r.Group("/api/v1")
	{
		requestHandler := handler.NewFundRequestHandler(fundLogic)
		requests := v1.Group("/fund-requests")
		{
			requests.POST("", requestHandler.CreateFundRequest)
			requests.GET("", requestHandler.ListFundRequests)
			requests.GET("/:id", requestHandler.GetFundRequest)
			requests.POST("/:id/cancel", requestHandler.CancelFundRequest)
			requests.GET("/:id/donations", requestHandler.ListRequestDonations)
			requests.POST("/:id/donations", requestHandler.Donate)
		}

		donationHandler := handler.NewDonationHandler(monitorLogic)
		donations := v1.Group("/donations")
		{
			donations.GET("", donationHandler.ListDonations)
			donations.GET("/summary", donationHandler.Summary)
			donations.GET("/top-donors", donationHandler.TopDonors)
			donations.GET("/export", donationHandler.Export)
		}
	}

	return r
}

// 访问日志中间件
func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		if raw := c.Request.URL.RawQuery; raw != "" {
			path += "?" + raw
		}

		c.Next()

		logger.With(
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
		).Info("request")
	}
}

// CORS中间件
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
