package handler

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"estatehub/internal/app"
	"estatehub/internal/model"
	"estatehub/internal/pkg/upload"
	"estatehub/internal/transport/http/middleware"
	"estatehub/internal/transport/http/response"
)

type PropertyHandler struct {
	propertyService *app.PropertyService
	wishlistService *app.WishlistService
	uploader        *upload.Saver
}

func NewPropertyHandler(propertyService *app.PropertyService, wishlistService *app.WishlistService, uploader *upload.Saver) *PropertyHandler {
	return &PropertyHandler{
		propertyService: propertyService,
		wishlistService: wishlistService,
		uploader:        uploader,
	}
}

// List is the public AVAILABLE feed.
func (h *PropertyHandler) List(c *gin.Context) {
	properties, err := h.propertyService.ListAvailable(c.Request.Context())
	if err != nil {
		log.Printf("fetch properties failed: %v", err)
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "fetch properties failed")
		return
	}
	response.OK(c, gin.H{"properties": properties})
}

func (h *PropertyHandler) Get(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid property id")
		return
	}

	var viewerID uint
	if identity, authed := middleware.Identity(c); authed {
		viewerID = identity.ID
	}

	property, err := h.propertyService.GetByID(c.Request.Context(), id, viewerID)
	if err != nil {
		switch {
		case errors.Is(err, app.ErrPropertyNotFound):
			response.Error(c, http.StatusNotFound, response.CodeNotFound, err.Error())
		case errors.Is(err, app.ErrInvalidInput):
			response.Error(c, http.StatusBadRequest, response.CodeBadRequest, err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "fetch property failed")
		}
		return
	}
	response.OK(c, gin.H{"property": property})
}

// ListMine returns the caller's own listings, regardless of status.
func (h *PropertyHandler) ListMine(c *gin.Context) {
	identity, ok := middleware.Identity(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "user not found in context")
		return
	}

	properties, err := h.propertyService.ListByOwner(identity.ID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "fetch user properties failed")
		return
	}
	response.OK(c, gin.H{"properties": properties})
}

func (h *PropertyHandler) Update(c *gin.Context) {
	identity, ok := middleware.Identity(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "user not found in context")
		return
	}
	id, ok := paramID(c)
	if !ok {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid property id")
		return
	}

	input, ok := h.parseUpdateInput(c)
	if !ok {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid form field")
		return
	}
	input.UserID = identity.ID
	input.PropertyID = id

	if form, err := c.MultipartForm(); err == nil && form != nil {
		urls, saveErr := h.uploader.SaveAll(form.File["images"])
		if saveErr != nil {
			if errors.Is(saveErr, upload.ErrUnsupportedType) {
				response.Error(c, http.StatusBadRequest, response.CodeBadRequest, saveErr.Error())
			} else {
				response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "store uploaded images failed")
			}
			return
		}
		input.NewImages = urls
	}

	property, err := h.propertyService.Update(c.Request.Context(), input)
	if err != nil {
		h.writeMutationError(c, err, "update property failed")
		return
	}
	response.OK(c, gin.H{"property": property})
}

func (h *PropertyHandler) Delete(c *gin.Context) {
	identity, ok := middleware.Identity(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "user not found in context")
		return
	}
	id, ok := paramID(c)
	if !ok {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid property id")
		return
	}

	if err := h.propertyService.Delete(c.Request.Context(), identity.ID, id); err != nil {
		h.writeMutationError(c, err, "delete property failed")
		return
	}
	response.OK(c, gin.H{"message": "property deleted"})
}

func (h *PropertyHandler) ToggleWishlist(c *gin.Context) {
	identity, ok := middleware.Identity(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "user not found in context")
		return
	}
	id, ok := paramID(c)
	if !ok {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid property id")
		return
	}

	inWishlist, err := h.wishlistService.Toggle(c.Request.Context(), identity.ID, id)
	if err != nil {
		switch {
		case errors.Is(err, app.ErrPropertyNotFound):
			response.Error(c, http.StatusNotFound, response.CodeNotFound, err.Error())
		case errors.Is(err, app.ErrInvalidInput):
			response.Error(c, http.StatusBadRequest, response.CodeBadRequest, err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "update wishlist failed")
		}
		return
	}
	response.OK(c, gin.H{"in_wishlist": inWishlist})
}

func (h *PropertyHandler) GetWishlist(c *gin.Context) {
	identity, ok := middleware.Identity(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "user not found in context")
		return
	}

	properties, err := h.wishlistService.List(identity.ID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "fetch wishlist failed")
		return
	}
	response.OK(c, gin.H{"wishlist": properties})
}

func (h *PropertyHandler) parseUpdateInput(c *gin.Context) (app.UpdatePropertyInput, bool) {
	input := app.UpdatePropertyInput{
		Title:       formString(c, "title"),
		Description: formString(c, "description"),
		Location:    formString(c, "location"),
	}

	var ok bool
	if input.Price, ok = formFloat(c, "price"); !ok {
		return input, false
	}
	if input.Latitude, ok = formFloat(c, "latitude"); !ok {
		return input, false
	}
	if input.Longitude, ok = formFloat(c, "longitude"); !ok {
		return input, false
	}
	if input.Size, ok = formFloat(c, "size"); !ok {
		return input, false
	}
	if input.Bedrooms, ok = formInt(c, "bedrooms"); !ok {
		return input, false
	}
	if input.Bathrooms, ok = formInt(c, "bathrooms"); !ok {
		return input, false
	}
	if input.YearBuilt, ok = formInt(c, "year_built"); !ok {
		return input, false
	}
	if input.Furnished, ok = formBool(c, "furnished"); !ok {
		return input, false
	}
	if input.Amenities, ok = formStringSlice(c, "amenities"); !ok {
		return input, false
	}

	if value := formString(c, "property_type"); value != nil {
		propertyType := model.PropertyType(*value)
		input.PropertyType = &propertyType
	}
	if value := formString(c, "transaction_type"); value != nil {
		transactionType := model.TransactionType(*value)
		input.TransactionType = &transactionType
	}
	if value := formString(c, "status"); value != nil {
		status := model.PropertyStatus(*value)
		input.Status = &status
	}
	return input, true
}

func (h *PropertyHandler) writeMutationError(c *gin.Context, err error, internalMessage string) {
	switch {
	case errors.Is(err, app.ErrPropertyNotFound):
		response.Error(c, http.StatusNotFound, response.CodeNotFound, err.Error())
	case errors.Is(err, app.ErrNotOwner):
		response.Error(c, http.StatusForbidden, response.CodeForbidden, err.Error())
	case errors.Is(err, app.ErrInvalidInput):
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, err.Error())
	default:
		log.Printf("%s: %v", internalMessage, err)
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, internalMessage)
	}
}

func paramID(c *gin.Context) (uint, bool) {
	raw := c.Param("id")
	parsed, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || parsed == 0 {
		return 0, false
	}
	return uint(parsed), true
}
