package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"estatehub/internal/app"
	"estatehub/internal/model"
	"estatehub/internal/pkg/upload"
	"estatehub/internal/transport/http/middleware"
	"estatehub/internal/transport/http/response"
)

type UserHandler struct {
	authService     *app.AuthService
	propertyService *app.PropertyService
	uploader        *upload.Saver
}

func NewUserHandler(authService *app.AuthService, propertyService *app.PropertyService, uploader *upload.Saver) *UserHandler {
	return &UserHandler{
		authService:     authService,
		propertyService: propertyService,
		uploader:        uploader,
	}
}

// UpdateProfile applies a multipart partial update; an "avatar" file, if
// present, replaces the stored avatar URL.
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	identity, ok := middleware.Identity(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "user not found in context")
		return
	}

	input := app.UpdateProfileInput{
		UserID:   identity.ID,
		Username: c.PostForm("username"),
		Email:    c.PostForm("email"),
		Password: c.PostForm("password"),
	}

	if file, err := c.FormFile("avatar"); err == nil && file != nil {
		url, saveErr := h.uploader.Save(file)
		if saveErr != nil {
			if errors.Is(saveErr, upload.ErrUnsupportedType) {
				response.Error(c, http.StatusBadRequest, response.CodeBadRequest, saveErr.Error())
			} else {
				response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "store avatar failed")
			}
			return
		}
		input.Avatar = url
	}

	user, err := h.authService.UpdateProfile(input)
	if err != nil {
		switch {
		case errors.Is(err, app.ErrInvalidInput):
			response.Error(c, http.StatusBadRequest, response.CodeBadRequest, err.Error())
		case errors.Is(err, app.ErrUsernameExists):
			response.Error(c, http.StatusBadRequest, response.CodeUsernameExists, err.Error())
		case errors.Is(err, app.ErrEmailExists):
			response.Error(c, http.StatusBadRequest, response.CodeEmailExists, err.Error())
		default:
			log.Printf("update profile failed: %v", err)
			response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "update profile failed")
		}
		return
	}
	response.OK(c, gin.H{"user": user.Public()})
}

// CreateProperty handles the multipart listing form. All required fields
// must be present and the enums must be valid; images are stored before
// the row is written so the URLs land in the insert.
func (h *UserHandler) CreateProperty(c *gin.Context) {
	identity, ok := middleware.Identity(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "user not found in context")
		return
	}

	input, ok := h.parseCreateInput(c)
	if !ok {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "missing or invalid listing field")
		return
	}
	input.UserID = identity.ID

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
		input.Images = urls
	}

	property, err := h.propertyService.Create(c.Request.Context(), input)
	if err != nil {
		switch {
		case errors.Is(err, app.ErrInvalidInput):
			response.Error(c, http.StatusBadRequest, response.CodeBadRequest, err.Error())
		default:
			log.Printf("create property failed: %v", err)
			response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "create property failed")
		}
		return
	}
	response.Created(c, gin.H{"property": property})
}

func (h *UserHandler) parseCreateInput(c *gin.Context) (app.CreatePropertyInput, bool) {
	input := app.CreatePropertyInput{
		Title:           c.PostForm("title"),
		Description:     c.PostForm("description"),
		Location:        c.PostForm("location"),
		PropertyType:    model.PropertyType(c.PostForm("property_type")),
		TransactionType: model.TransactionType(c.PostForm("transaction_type")),
	}

	price, ok := formFloat(c, "price")
	if !ok || price == nil {
		return input, false
	}
	latitude, ok := formFloat(c, "latitude")
	if !ok || latitude == nil {
		return input, false
	}
	longitude, ok := formFloat(c, "longitude")
	if !ok || longitude == nil {
		return input, false
	}
	size, ok := formFloat(c, "size")
	if !ok || size == nil {
		return input, false
	}
	bedrooms, ok := formInt(c, "bedrooms")
	if !ok || bedrooms == nil {
		return input, false
	}
	bathrooms, ok := formInt(c, "bathrooms")
	if !ok || bathrooms == nil {
		return input, false
	}
	furnished, ok := formBool(c, "furnished")
	if !ok || furnished == nil {
		return input, false
	}

	// Optional fields.
	yearBuilt, ok := formInt(c, "year_built")
	if !ok {
		return input, false
	}
	amenities, ok := formStringSlice(c, "amenities")
	if !ok {
		return input, false
	}

	input.Price = *price
	input.Latitude = *latitude
	input.Longitude = *longitude
	input.Size = *size
	input.Bedrooms = *bedrooms
	input.Bathrooms = *bathrooms
	input.Furnished = *furnished
	input.YearBuilt = yearBuilt
	input.Amenities = amenities
	return input, true
}
