package fakeapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ServiceDetail is the wire shape of a catalog entry
type ServiceDetail struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
}

// ReviewDetail is the wire shape of a review
type ReviewDetail struct {
	ID        string `json:"id"`
	ServiceID string `json:"service_id"`
	Rating    int    `json:"rating"`
	Comment   string `json:"comment"`
	UserName  string `json:"user_name"`
	CreatedAt string `json:"created_at"`
}

// CreateReviewRequest rates a service
type CreateReviewRequest struct {
	ServiceID string `json:"service_id" binding:"required"`
	Rating    int    `json:"rating" binding:"required,min=1,max=5"`
	Comment   string `json:"comment" binding:"max=1000"`
}

// FavoriteRequest names the service to mark or unmark
type FavoriteRequest struct {
	ServiceID string `json:"service_id" binding:"required"`
}

// FavoriteDetail is the wire shape of a favorite
type FavoriteDetail struct {
	ID          string `json:"id"`
	ServiceID   string `json:"service_id"`
	ServiceName string `json:"service_name"`
}

func (s *Server) listServices(c *gin.Context) {
	var services []Service
	if err := s.db.Order("name ASC").Find(&services).Error; err != nil {
		s.logger.Error().Err(err).Msg("Failed to list services")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to list services"})
		return
	}

	resp := make([]ServiceDetail, 0, len(services))
	for _, svc := range services {
		resp = append(resp, ServiceDetail{
			ID:          svc.ID,
			Name:        svc.Name,
			Description: svc.Description,
			Price:       svc.Price,
		})
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) listReviews(c *gin.Context) {
	var reviews []Review
	if err := s.db.Preload("User").
		Where("service_id = ?", c.Param("serviceId")).
		Order("created_at DESC").
		Find(&reviews).Error; err != nil {
		s.logger.Error().Err(err).Msg("Failed to list reviews")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to list reviews"})
		return
	}

	resp := make([]ReviewDetail, 0, len(reviews))
	for _, r := range reviews {
		resp = append(resp, ReviewDetail{
			ID:        r.ID,
			ServiceID: r.ServiceID,
			Rating:    r.Rating,
			Comment:   r.Comment,
			UserName:  r.User.Name,
			CreatedAt: r.CreatedAt.UTC().Format("2006-01-02"),
		})
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) createReview(c *gin.Context) {
	session, _ := GetSessionData(c)

	var req CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	var service Service
	if err := FindByID(s.db, req.ServiceID, &service); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Service not found"})
		return
	}

	review := Review{
		UserID:    session.UserID,
		ServiceID: service.ID,
		Rating:    req.Rating,
		Comment:   req.Comment,
	}
	if err := s.db.Create(&review).Error; err != nil {
		s.logger.Error().Err(err).Msg("Failed to create review")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create review"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Review added", "id": review.ID})
}

func (s *Server) listFavorites(c *gin.Context) {
	session, _ := GetSessionData(c)

	var favorites []Favorite
	if err := s.db.Preload("Service").
		Where("user_id = ?", session.UserID).
		Order("created_at ASC").
		Find(&favorites).Error; err != nil {
		s.logger.Error().Err(err).Msg("Failed to list favorites")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to list favorites"})
		return
	}

	resp := make([]FavoriteDetail, 0, len(favorites))
	for _, f := range favorites {
		resp = append(resp, FavoriteDetail{
			ID:          f.ID,
			ServiceID:   f.ServiceID,
			ServiceName: f.Service.Name,
		})
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) addFavorite(c *gin.Context) {
	session, _ := GetSessionData(c)

	var req FavoriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	var service Service
	if err := FindByID(s.db, req.ServiceID, &service); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Service not found"})
		return
	}

	var count int64
	s.db.Model(&Favorite{}).Where("user_id = ? AND service_id = ?", session.UserID, service.ID).Count(&count)
	if count > 0 {
		c.JSON(http.StatusConflict, gin.H{"message": "Service is already a favorite"})
		return
	}

	favorite := Favorite{UserID: session.UserID, ServiceID: service.ID}
	if err := s.db.Create(&favorite).Error; err != nil {
		s.logger.Error().Err(err).Msg("Failed to add favorite")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to add favorite"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Favorite added"})
}

func (s *Server) removeFavorite(c *gin.Context) {
	session, _ := GetSessionData(c)

	var req FavoriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	result := s.db.Where("user_id = ? AND service_id = ?", session.UserID, req.ServiceID).Delete(&Favorite{})
	if result.Error != nil {
		s.logger.Error().Err(result.Error).Msg("Failed to remove favorite")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to remove favorite"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"message": "Favorite not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Favorite removed"})
}
