package controller

import (
	"net/http"

	"shipment-tracker/internal/dto"
	"shipment-tracker/internal/service"

	"github.com/gin-gonic/gin"
)

type LegController struct {
	Service *service.LegService
}

func NewLegController(s *service.LegService) *LegController {
	return &LegController{Service: s}
}

// POST /shipments/:shipmentId/legs
func (ctl *LegController) AddLeg(c *gin.Context) {
	var req dto.LegRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	req.Normalize()

	leg, summary, err := ctl.Service.AddLeg(
		c.Request.Context(),
		c.Param("shipmentId"),
		req.ToModel(),
		c.GetString("userID"),
	)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"leg": leg, "shipment": summary})
}

// GET /shipments/:shipmentId/legs
func (ctl *LegController) GetLegs(c *gin.Context) {
	legs, err := ctl.Service.GetLegs(c.Request.Context(), c.Param("shipmentId"))
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, legs)
}

// PATCH /legs/:legId
func (ctl *LegController) UpdateLeg(c *gin.Context) {
	var req dto.UpdateLegRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	leg, err := ctl.Service.UpdateLeg(c.Request.Context(), c.Param("legId"), &req, c.GetString("userID"))
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, leg)
}

// DELETE /legs/:legId
func (ctl *LegController) DeleteLeg(c *gin.Context) {
	err := ctl.Service.DeleteLeg(c.Request.Context(), c.Param("legId"), c.GetString("userID"))
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "leg deleted"})
}

// POST /legs/reassign
func (ctl *LegController) Reassign(c *gin.Context) {
	var req dto.ReassignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	req.Normalize()
	if req.ToShipmentID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "target shipment id is required"})
		return
	}

	count, err := ctl.Service.Reassign(c.Request.Context(), req.FromShipmentID, req.ToShipmentID, c.GetString("userID"))
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"count": count})
}

// POST /shipments/:shipmentId/repair-legs
func (ctl *LegController) Repair(c *gin.Context) {
	res, err := ctl.Service.Repair(c.Request.Context(), c.Param("shipmentId"), c.GetString("userID"))
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, res)
}
