package server

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// @Summary      Download Rate Card
// @Description  Render the publication's active rates as a PDF
// @Tags         ratecards
// @Produce      application/pdf
// @Security     ApiKeyAuth
// @Param        id  path  string  true  "Publication ID"
// @Success      200  {file}  binary
// @Router       /publications/{id}/ratecard [get]
func (s *Server) DownloadRatecard(c *gin.Context) {
	pdf, err := s.ratecard.Generate(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=ratecard-%s.pdf", c.Param("id")))
	c.Data(http.StatusOK, "application/pdf", pdf)
}
