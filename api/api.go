package api

import (
	"database/sql"
	"fmt"
	"time"

	"bistdesk/internal/domain"
	"bistdesk/internal/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ApiHandler struct {
	Db               *sql.DB
	LedgerService    service.LedgerService
	SignalService    service.SignalService
	AnalysisService  service.AnalysisService
	ValuationService service.ValuationService
	AlarmService     service.AlarmService
	AdvisorService   service.AdvisorService
	SymbolsService   service.SymbolsService
	Logger           *zap.SugaredLogger
}

func (m ApiHandler) Router() *gin.Engine {
	router := gin.Default()
	router.Use(cors.Default())
	router.Use(m.logRequestMiddleware)

	router.GET("/", func(ctx *gin.Context) {
		ctx.JSON(200, map[string]string{"message": "welcome to bistdesk"})
	})

	router.POST("/transactions", m.recordTransaction)
	router.GET("/transactions", m.listTransactions)
	router.GET("/transactions/export", m.exportTransactions)
	router.GET("/positions", m.listPositions)
	router.GET("/portfolio/summary", m.portfolioSummary)
	router.GET("/portfolio/valuation", m.portfolioValuation)

	router.GET("/watchlist", m.listWatchlist)
	router.POST("/watchlist", m.addToWatchlist)
	router.DELETE("/watchlist/:symbol", m.removeFromWatchlist)
	router.GET("/watchlist/quotes", m.watchlistQuotes)

	router.POST("/alarms", m.createAlarm)
	router.GET("/alarms", m.listAlarms)
	router.POST("/alarms/check", m.checkAlarms)

	router.GET("/analysis", m.analyze)
	router.GET("/signal", m.evaluateSignal)
	router.GET("/advice", m.advise)
	router.GET("/symbols", m.listSymbols)

	return router
}

func (m ApiHandler) StartApi(port int) error {
	return m.Router().Run(fmt.Sprintf(":%d", port))
}

// returnErrorJson maps the domain error kinds onto status codes:
// bad input is the caller's fault, missing market data is reportable,
// everything else is a server error.
func returnErrorJson(err error, c *gin.Context) {
	code := 500
	switch {
	case domain.IsValidationError(err):
		code = 400
	case domain.IsDataUnavailableError(err):
		code = 404
	}
	c.AbortWithStatusJSON(code, gin.H{
		"error": err.Error(),
	})
}

func (m ApiHandler) logRequestMiddleware(ctx *gin.Context) {
	requestID := uuid.NewString()
	ctx.Set("requestID", requestID)

	start := time.Now()
	ctx.Next()

	m.Logger.Infow("handled request",
		"requestID", requestID,
		"method", ctx.Request.Method,
		"route", ctx.Request.URL.Path,
		"status", ctx.Writer.Status(),
		"durationMs", time.Since(start).Milliseconds(),
		"clientIP", ctx.ClientIP(),
	)
}
