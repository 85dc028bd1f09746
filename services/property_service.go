package services

import (
	"context"
	"io"
	"strings"

	"script9/access"
	"script9/dto"
	apperrors "script9/errors"
	"script9/models"
	"script9/services/logger"
	"script9/services/upload"
	"script9/types"
	"script9/validator"
)

const propertyImageFolder = "properties"

// RatingProvider supplies the aggregate rating shown on property details.
type RatingProvider interface {
	CalculateAverageRating(ctx context.Context, propertyID string) (types.RatingSummary, error)
}

type PropertyServiceOptions struct {
	Properties PropertyRepository
	Ratings    RatingProvider
	Uploader   upload.Uploader
	Logger     logger.Logger
}

type PropertyService struct {
	properties PropertyRepository
	ratings    RatingProvider
	uploader   upload.Uploader
	logger     logger.Logger
}

func NewPropertyService(opts PropertyServiceOptions) *PropertyService {
	s := &PropertyService{
		properties: opts.Properties,
		ratings:    opts.Ratings,
		uploader:   opts.Uploader,
		logger:     opts.Logger,
	}
	if s.logger == nil {
		s.logger = logger.NewNop()
	}
	return s
}

// ListProperties pages active listings. A non empty query switches to
// accent insensitive fuzzy matching ranked by relevance.
func (s *PropertyService) ListProperties(ctx context.Context, f types.PropertyFilter, page types.Page) ([]models.Property, int64, error) {
	page = page.Normalize()
	if strings.TrimSpace(f.Query) == "" {
		return s.properties.List(ctx, f, page)
	}

	all, err := s.properties.ListAll(ctx, f)
	if err != nil {
		return nil, 0, err
	}
	matched := searchProperties(all, f.Query)
	start, end := page.Window(len(matched))
	return matched[start:end], int64(len(matched)), nil
}

func (s *PropertyService) GetProperty(ctx context.Context, id string) (*dto.PropertyDetail, error) {
	property, err := s.properties.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	detail := &dto.PropertyDetail{Property: *property}
	if s.ratings == nil {
		return detail, nil
	}
	rating, err := s.ratings.CalculateAverageRating(ctx, id)
	if err != nil {
		s.logger.Warn("rating for property %s: %v", id, err)
		return detail, nil
	}
	detail.Rating = rating
	return detail, nil
}

func (s *PropertyService) CreateProperty(ctx context.Context, actor access.Actor, req dto.CreatePropertyRequest) (*models.Property, error) {
	if err := access.Require(actor, access.PropertyCreate, access.Resource{}); err != nil {
		return nil, err
	}
	hostID := actor.UserID
	if actor.IsAdmin() && req.HostID != "" {
		hostID = req.HostID
	}

	property := &models.Property{
		HostID:      hostID,
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		Category:    req.Category,
		Price:       req.Price,
		PriceUnit:   models.PriceUnit(req.PriceUnit),
		Currency:    strings.ToUpper(req.Currency),
		Location:    strings.TrimSpace(req.Location),
		Amenities:   req.Amenities,
		IsActive:    true,
	}
	if property.Category == "" {
		property.Category = models.PropertyCategoryService
	}
	if property.Currency == "" {
		property.Currency = "EUR"
	}
	if err := validator.ValidateProperty(property); err != nil {
		return nil, err
	}
	if err := s.properties.Create(ctx, property); err != nil {
		return nil, err
	}
	s.logger.WithFields(logger.Fields{"propertyId": property.ID, "hostId": hostID}).Info("property created")
	return property, nil
}

func (s *PropertyService) UpdateProperty(ctx context.Context, actor access.Actor, id string, req dto.UpdatePropertyRequest) (*models.Property, error) {
	property, err := s.properties.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := access.Require(actor, access.PropertyManage, access.Resource{HostID: property.HostID}); err != nil {
		return nil, err
	}

	if req.Title != nil {
		property.Title = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		property.Description = *req.Description
	}
	if req.Category != nil {
		property.Category = *req.Category
	}
	if req.Price != nil {
		property.Price = *req.Price
	}
	if req.PriceUnit != nil {
		property.PriceUnit = models.PriceUnit(*req.PriceUnit)
	}
	if req.Currency != nil {
		property.Currency = strings.ToUpper(*req.Currency)
	}
	if req.Location != nil {
		property.Location = strings.TrimSpace(*req.Location)
	}
	if req.Amenities != nil {
		property.Amenities = req.Amenities
	}
	if req.IsActive != nil {
		property.IsActive = *req.IsActive
	}

	if err := validator.ValidateProperty(property); err != nil {
		return nil, err
	}
	if err := s.properties.Save(ctx, property); err != nil {
		return nil, err
	}
	return property, nil
}

// AddPropertyImage uploads file to the CDN and appends its URL to the listing.
func (s *PropertyService) AddPropertyImage(ctx context.Context, actor access.Actor, id string, file io.Reader) (*models.Property, error) {
	property, err := s.properties.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := access.Require(actor, access.PropertyManage, access.Resource{HostID: property.HostID}); err != nil {
		return nil, err
	}
	if s.uploader == nil {
		return nil, apperrors.BadRequest(apperrors.ErrCodeInvalidOperation, "image uploads are not configured")
	}

	url, err := s.uploader.Upload(ctx, file, propertyImageFolder)
	if err != nil {
		s.logger.WithFields(logger.Fields{"propertyId": id}).Error("image upload: %v", err)
		return nil, apperrors.BadGateway("image upload failed", err)
	}
	if err := s.properties.AppendImage(ctx, id, url); err != nil {
		return nil, err
	}
	property.Images = append(property.Images, url)
	return property, nil
}
