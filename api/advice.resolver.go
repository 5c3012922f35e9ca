package api

import (
	"github.com/gin-gonic/gin"
)

type adviceResponse struct {
	Symbol            string  `json:"symbol"`
	TechnicalExpert   string  `json:"technicalExpert"`
	FundamentalExpert string  `json:"fundamentalExpert"`
	VolumeExpert      string  `json:"volumeExpert"`
	Commentary        *string `json:"commentary"`
}

func (m ApiHandler) advise(c *gin.Context) {
	symbol := c.Query("symbol")
	period := c.DefaultQuery("period", "3mo")

	report, err := m.AnalysisService.Analyze(symbol, period)
	if err != nil {
		returnErrorJson(err, c)
		return
	}

	opinions, err := m.AdvisorService.Advise(c.Request.Context(), report)
	if err != nil {
		returnErrorJson(err, c)
		return
	}

	c.JSON(200, adviceResponse{
		Symbol:            report.Symbol,
		TechnicalExpert:   opinions.TechnicalExpert,
		FundamentalExpert: opinions.FundamentalExpert,
		VolumeExpert:      opinions.VolumeExpert,
		Commentary:        opinions.Commentary,
	})
}
