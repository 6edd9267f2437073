package controller

import (
	"net/http"

	"shipment-tracker/internal/dto"
	"shipment-tracker/internal/service"

	"github.com/gin-gonic/gin"
)

type ShipmentController struct {
	Service *service.ShipmentService
}

func NewShipmentController(s *service.ShipmentService) *ShipmentController {
	return &ShipmentController{Service: s}
}

// POST /shipments
func (ctl *ShipmentController) Create(c *gin.Context) {
	var req dto.CreateShipmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	shipment, err := ctl.Service.Create(c.Request.Context(), req.ToModel(), c.GetString("userID"))
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, shipment)
}

// GET /shipments/:shipmentId — shipment with its legs resolved
func (ctl *ShipmentController) Get(c *gin.Context) {
	shipment, legs, err := ctl.Service.Get(c.Request.Context(), c.Param("shipmentId"))
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"shipment": shipment, "legs": legs})
}

// GET /shipments
func (ctl *ShipmentController) GetAll(c *gin.Context) {
	shipments, err := ctl.Service.GetAll(c.Request.Context())
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, shipments)
}

// PATCH /shipments/:shipmentId
func (ctl *ShipmentController) Update(c *gin.Context) {
	var req dto.UpdateShipmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	shipment, err := ctl.Service.Update(c.Request.Context(), c.Param("shipmentId"), &req, c.GetString("userID"))
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, shipment)
}
