package controllers

import (
	"context"
	"io"

	"script9/access"
	"script9/dto"
	apperrors "script9/errors"
	"script9/models"
	"script9/response"
	"script9/services/logger"
	"script9/types"

	"github.com/gin-gonic/gin"
)

const maxImageSize = 10 << 20

type PropertyAPI interface {
	ListProperties(ctx context.Context, f types.PropertyFilter, page types.Page) ([]models.Property, int64, error)
	GetProperty(ctx context.Context, id string) (*dto.PropertyDetail, error)
	CreateProperty(ctx context.Context, actor access.Actor, req dto.CreatePropertyRequest) (*models.Property, error)
	UpdateProperty(ctx context.Context, actor access.Actor, id string, req dto.UpdatePropertyRequest) (*models.Property, error)
	AddPropertyImage(ctx context.Context, actor access.Actor, id string, file io.Reader) (*models.Property, error)
}

type PropertyController struct {
	base
	properties PropertyAPI
}

func NewPropertyController(properties PropertyAPI, log logger.Logger) *PropertyController {
	return &PropertyController{base: newBase(log), properties: properties}
}

// ListProperties godoc
// @Summary  Browse and search active listings
// @Tags     properties
// @Param    q query string false "accent insensitive search"
// @Param    category query string false "service or property"
// @Success  200 {object} dto.PaginatedResponse[[]models.Property]
// @Router   /properties [get]
func (ctrl *PropertyController) ListProperties(c *gin.Context) {
	var q dto.PropertyQuery
	if !ctrl.bindQuery(c, &q) {
		return
	}
	page := q.ToPage()
	list, total, err := ctrl.properties.ListProperties(c.Request.Context(), q.ToFilter(), page)
	if err != nil {
		ctrl.fail(c, err)
		return
	}
	response.SuccessWithPagination(c, list, page.Page, page.Limit, total)
}

// GetProperty godoc
// @Summary  Listing detail with its rating
// @Tags     properties
// @Param    id path string true "property id"
// @Success  200 {object} response.Response{data=dto.PropertyDetail}
// @Router   /properties/{id} [get]
func (ctrl *PropertyController) GetProperty(c *gin.Context) {
	id, ok := ctrl.pathID(c)
	if !ok {
		return
	}
	detail, err := ctrl.properties.GetProperty(c.Request.Context(), id)
	if err != nil {
		ctrl.fail(c, err)
		return
	}
	response.Success(c, detail)
}

// CreateProperty godoc
// @Summary  Create a listing (host or admin)
// @Tags     properties
// @Param    body body dto.CreatePropertyRequest true "listing"
// @Success  201 {object} response.Response{data=models.Property}
// @Router   /properties [post]
func (ctrl *PropertyController) CreateProperty(c *gin.Context) {
	actor, ok := ctrl.actor(c)
	if !ok {
		return
	}
	var req dto.CreatePropertyRequest
	if !ctrl.bindJSON(c, &req) {
		return
	}
	property, err := ctrl.properties.CreateProperty(c.Request.Context(), actor, req)
	if err != nil {
		ctrl.fail(c, err)
		return
	}
	response.Created(c, property)
}

// UpdateProperty godoc
// @Summary  Patch a listing (owner or admin)
// @Tags     properties
// @Param    id path string true "property id"
// @Param    body body dto.UpdatePropertyRequest true "patch"
// @Success  200 {object} response.Response{data=models.Property}
// @Router   /properties/{id} [patch]
func (ctrl *PropertyController) UpdateProperty(c *gin.Context) {
	actor, ok := ctrl.actor(c)
	if !ok {
		return
	}
	var req dto.UpdatePropertyRequest
	if !ctrl.bindJSON(c, &req) {
		return
	}
	id, ok := ctrl.pathID(c)
	if !ok {
		return
	}
	property, err := ctrl.properties.UpdateProperty(c.Request.Context(), actor, id, req)
	if err != nil {
		ctrl.fail(c, err)
		return
	}
	response.Success(c, property)
}

// UploadImage godoc
// @Summary  Attach an image to a listing
// @Tags     properties
// @Accept   multipart/form-data
// @Param    id path string true "property id"
// @Param    image formData file true "image"
// @Success  200 {object} response.Response{data=models.Property}
// @Router   /properties/{id}/images [post]
func (ctrl *PropertyController) UploadImage(c *gin.Context) {
	actor, ok := ctrl.actor(c)
	if !ok {
		return
	}
	file, err := c.FormFile("image")
	if err != nil {
		ctrl.fail(c, apperrors.BadRequest(apperrors.ErrCodeRequiredField, "image file is required"))
		return
	}
	if file.Size > maxImageSize {
		ctrl.fail(c, apperrors.BadRequest(apperrors.ErrCodeValidation, "image cannot exceed 10MB"))
		return
	}
	src, err := file.Open()
	if err != nil {
		ctrl.fail(c, apperrors.NewAppError(apperrors.KindBadRequest, apperrors.ErrCodeInvalidFormat, "cannot read image", err))
		return
	}
	defer src.Close()

	id, ok := ctrl.pathID(c)
	if !ok {
		return
	}
	property, err := ctrl.properties.AddPropertyImage(c.Request.Context(), actor, id, src)
	if err != nil {
		ctrl.fail(c, err)
		return
	}
	response.Success(c, property)
}
