package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/sakevn/Gateways/internal/http/handlers"
	"github.com/sakevn/Gateways/internal/http/middleware"
	"github.com/sakevn/Gateways/internal/modules/payments"
)

type Deps struct {
	Logger   *slog.Logger
	DB       *gorm.DB
	Service  *payments.Service
	State    *payments.StateMachine
	Audit    *payments.CallbackLog
	Resolver payments.CredentialResolver
}

func NewRouter(d Deps) *gin.Engine {
	r := gin.New()

	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(d.Logger))
	r.Use(middleware.Recovery(d.Logger))
	r.Use(middleware.ErrorHandler(d.Logger))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	ph := handlers.NewPaymentHandler(d.Logger, d.Service)
	ch := handlers.NewCallbackHandler(d.Logger, d.Resolver, d.State, d.Audit)

	pay := r.Group("/payment/zalopay")
	pay.POST("", ph.Initiate)
	pay.POST("/callback", ch.Handle)

	return r
}
