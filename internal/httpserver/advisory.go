package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	advisorysvc "agrihub/internal/service/advisory"
)

func listAdvisorsHandler(advisory AdvisoryService) gin.HandlerFunc {
	return func(c *gin.Context) {
		availableOnly := c.Query("available") == "true"
		list, err := advisory.List(c.Request.Context(), availableOnly)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"advisors": list})
	}
}

func upsertAdvisorHandler(advisory AdvisoryService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in advisorysvc.UpsertInput
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
			return
		}
		a, err := advisory.UpsertProfile(c.Request.Context(), currentProfile(c).ID, in)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, a)
	}
}

func bookConsultationHandler(advisory AdvisoryService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in advisorysvc.BookInput
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
			return
		}
		booked, err := advisory.Book(c.Request.Context(), currentProfile(c).ID, in)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, booked)
	}
}

func listConsultationsHandler(advisory AdvisoryService) gin.HandlerFunc {
	return func(c *gin.Context) {
		list, err := advisory.ListForFarmer(c.Request.Context(), currentProfile(c).ID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"consultations": list})
	}
}

func listAssignedConsultationsHandler(advisory AdvisoryService) gin.HandlerFunc {
	return func(c *gin.Context) {
		list, err := advisory.ListForAdvisor(c.Request.Context(), currentProfile(c).ID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"consultations": list})
	}
}
