package fakeapi

import (
	"errors"
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

var dayOrder = map[string]int{
	"Monday": 0, "Tuesday": 1, "Wednesday": 2, "Thursday": 3,
	"Friday": 4, "Saturday": 5, "Sunday": 6,
}

// WorkingHoursRequest sets the opening window of one weekday
type WorkingHoursRequest struct {
	Day                    string `json:"day" binding:"required,oneof=Monday Tuesday Wednesday Thursday Friday Saturday Sunday"`
	OpenTime               string `json:"open_time" binding:"required,datetime=15:04"`
	CloseTime              string `json:"close_time" binding:"required,datetime=15:04"`
	MaxAppointmentsPerSlot int    `json:"max_appointments_per_slot" binding:"min=1"`
}

// WorkingHoursDetail is the wire shape of a weekday's hours
type WorkingHoursDetail struct {
	ID                     string `json:"id"`
	Day                    string `json:"day"`
	OpenTime               string `json:"open_time"`
	CloseTime              string `json:"close_time"`
	MaxAppointmentsPerSlot int    `json:"max_appointments_per_slot"`
}

func (s *Server) listWorkingHours(c *gin.Context) {
	var hours []WorkingHours
	if err := s.db.Find(&hours).Error; err != nil {
		s.logger.Error().Err(err).Msg("Failed to list working hours")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to list working hours"})
		return
	}

	sort.Slice(hours, func(i, j int) bool {
		return dayOrder[hours[i].Day] < dayOrder[hours[j].Day]
	})

	resp := make([]WorkingHoursDetail, 0, len(hours))
	for _, h := range hours {
		resp = append(resp, WorkingHoursDetail{
			ID:                     h.ID,
			Day:                    h.Day,
			OpenTime:               h.OpenTime,
			CloseTime:              h.CloseTime,
			MaxAppointmentsPerSlot: h.MaxAppointmentsPerSlot,
		})
	}
	c.JSON(http.StatusOK, resp)
}

// setWorkingHours creates or replaces the hours of a weekday
func (s *Server) setWorkingHours(c *gin.Context) {
	var req WorkingHoursRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	// HH:MM strings order the same way as the times they name
	if req.CloseTime <= req.OpenTime {
		c.JSON(http.StatusBadRequest, gin.H{"message": "close_time must be after open_time"})
		return
	}

	var hours WorkingHours
	err := s.db.Where("day = ?", req.Day).First(&hours).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error().Err(err).Msg("Failed to load working hours")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}

	hours.Day = req.Day
	hours.OpenTime = req.OpenTime
	hours.CloseTime = req.CloseTime
	hours.MaxAppointmentsPerSlot = req.MaxAppointmentsPerSlot

	if err := s.db.Save(&hours).Error; err != nil {
		s.logger.Error().Err(err).Msg("Failed to save working hours")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to save working hours"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Working hours saved"})
}
