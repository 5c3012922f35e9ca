package api

import (
	"github.com/gin-gonic/gin"
)

func (m ApiHandler) listSymbols(c *gin.Context) {
	if query := c.Query("q"); query != "" {
		c.JSON(200, m.SymbolsService.Search(query))
		return
	}

	c.JSON(200, m.SymbolsService.List())
}
