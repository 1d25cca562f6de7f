package fakeapi

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CreateAppointmentRequest books a service slot
type CreateAppointmentRequest struct {
	ServiceID string `json:"service_id" binding:"required"`
	Date      string `json:"date" binding:"required,datetime=2006-01-02"`
	Time      string `json:"time" binding:"required,datetime=15:04"`
}

// UpdateStatusRequest changes an appointment's status
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=pending confirmed cancelled"`
}

// AppointmentDetail is the wire shape of an appointment
type AppointmentDetail struct {
	ID          string `json:"id"`
	ServiceID   string `json:"service_id"`
	ServiceName string `json:"service_name"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	Status      string `json:"status"`
	UserEmail   string `json:"user_email,omitempty"`
}

func appointmentDetail(a *Appointment, withUser bool) AppointmentDetail {
	d := AppointmentDetail{
		ID:          a.ID,
		ServiceID:   a.ServiceID,
		ServiceName: a.Service.Name,
		Date:        a.Date,
		Time:        a.Time,
		Status:      a.Status,
	}
	if withUser {
		d.UserEmail = a.User.Email
	}
	return d
}

func (s *Server) listAppointments(c *gin.Context, query *gorm.DB, withUser bool) {
	var appointments []Appointment
	if err := query.Preload("Service").Preload("User").Order("date ASC, time ASC").Find(&appointments).Error; err != nil {
		s.logger.Error().Err(err).Msg("Failed to list appointments")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to list appointments"})
		return
	}

	resp := make([]AppointmentDetail, 0, len(appointments))
	for i := range appointments {
		resp = append(resp, appointmentDetail(&appointments[i], withUser))
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) listAllAppointments(c *gin.Context) {
	s.listAppointments(c, s.db, true)
}

func (s *Server) listMyAppointments(c *gin.Context) {
	session, _ := GetSessionData(c)
	s.listAppointments(c, s.db.Where("user_id = ?", session.UserID), false)
}

func (s *Server) createAppointment(c *gin.Context) {
	session, _ := GetSessionData(c)

	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	var service Service
	if err := FindByID(s.db, req.ServiceID, &service); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Service not found"})
		return
	}

	if status, msg := s.checkSlot(req.Date, req.Time); status != http.StatusOK {
		c.JSON(status, gin.H{"message": msg})
		return
	}

	appointment := Appointment{
		UserID:    session.UserID,
		ServiceID: service.ID,
		Date:      req.Date,
		Time:      req.Time,
		Status:    "pending",
	}
	if err := s.db.Create(&appointment).Error; err != nil {
		s.logger.Error().Err(err).Msg("Failed to create appointment")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create appointment"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Appointment booked", "id": appointment.ID})
}

// checkSlot enforces opening hours and per-slot capacity when hours are
// configured for the requested weekday
func (s *Server) checkSlot(date, clock string) (int, string) {
	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		return http.StatusBadRequest, "Invalid date"
	}

	var hours WorkingHours
	err = s.db.Where("day = ?", day.Weekday().String()).First(&hours).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return http.StatusOK, ""
	}
	if err != nil {
		return http.StatusInternalServerError, "Internal server error"
	}

	if clock < hours.OpenTime || clock >= hours.CloseTime {
		return http.StatusBadRequest, "The salon is closed at that time"
	}

	var booked int64
	if err := s.db.Model(&Appointment{}).
		Where("date = ? AND time = ? AND status <> ?", date, clock, "cancelled").
		Count(&booked).Error; err != nil {
		return http.StatusInternalServerError, "Internal server error"
	}
	if booked >= int64(hours.MaxAppointmentsPerSlot) {
		return http.StatusConflict, "This time slot is fully booked"
	}

	return http.StatusOK, ""
}

func (s *Server) updateAppointmentStatus(c *gin.Context) {
	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	result := s.db.Model(&Appointment{}).Where("id = ?", c.Param("id")).Update("status", req.Status)
	if result.Error != nil {
		s.logger.Error().Err(result.Error).Msg("Failed to update appointment")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update appointment"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"message": "Appointment not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Status updated"})
}

func (s *Server) cancelAppointment(c *gin.Context) {
	session, _ := GetSessionData(c)

	var appointment Appointment
	if err := FindByID(s.db, c.Param("id"), &appointment); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Appointment not found"})
		return
	}

	if appointment.UserID != session.UserID {
		c.JSON(http.StatusForbidden, gin.H{"message": "Not your appointment"})
		return
	}

	if err := s.db.Delete(&appointment).Error; err != nil {
		s.logger.Error().Err(err).Msg("Failed to delete appointment")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to cancel appointment"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Appointment cancelled"})
}
