package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	diagnosissvc "agrihub/internal/service/diagnosis"
)

func recordDiagnosisHandler(diagnoses DiagnosisService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in diagnosissvc.RecordInput
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
			return
		}
		d, err := diagnoses.Record(c.Request.Context(), currentProfile(c).ID, in)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, d)
	}
}

func listDiagnosesHandler(diagnoses DiagnosisService) gin.HandlerFunc {
	return func(c *gin.Context) {
		list, err := diagnoses.History(c.Request.Context(), currentProfile(c).ID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"diagnoses": list})
	}
}
