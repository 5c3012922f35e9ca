package api

import (
	"github.com/gin-gonic/gin"
)

type evaluateSignalResponse struct {
	Symbol string         `json:"symbol"`
	Period string         `json:"period"`
	Signal signalResponse `json:"signal"`
}

// evaluateSignal runs the full analysis but only reports the score; it
// is the cheap endpoint for screening many symbols.
func (m ApiHandler) evaluateSignal(c *gin.Context) {
	symbol := c.Query("symbol")
	period := c.DefaultQuery("period", "3mo")

	report, err := m.AnalysisService.Analyze(symbol, period)
	if err != nil {
		returnErrorJson(err, c)
		return
	}

	c.JSON(200, evaluateSignalResponse{
		Symbol: report.Symbol,
		Period: report.Period,
		Signal: toSignalResponse(report.Signal),
	})
}
