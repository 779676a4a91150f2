package handler_test

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"estatehub/internal/app"
	"estatehub/internal/model"
	"estatehub/internal/pkg/jwtutil"
	"estatehub/internal/pkg/upload"
	"estatehub/internal/transport/http/handler"
	"estatehub/internal/transport/http/middleware"
)

type memPropertyStore struct {
	seq        uint
	properties map[uint]*model.Property
}

func newMemPropertyStore() *memPropertyStore {
	return &memPropertyStore{properties: make(map[uint]*model.Property)}
}

func (s *memPropertyStore) Create(property *model.Property) error {
	s.seq++
	property.ID = s.seq
	copied := *property
	s.properties[property.ID] = &copied
	return nil
}

func (s *memPropertyStore) ListAvailable() ([]model.Property, error) {
	var result []model.Property
	for _, property := range s.properties {
		if property.Status == model.StatusAvailable {
			result = append(result, *property)
		}
	}
	return result, nil
}

func (s *memPropertyStore) GetByID(id uint) (*model.Property, error) {
	property, ok := s.properties[id]
	if !ok {
		return nil, nil
	}
	copied := *property
	return &copied, nil
}

func (s *memPropertyStore) ListByUserID(userID uint) ([]model.Property, error) {
	var result []model.Property
	for _, property := range s.properties {
		if property.UserID == userID {
			result = append(result, *property)
		}
	}
	return result, nil
}

func (s *memPropertyStore) Update(property *model.Property) error {
	copied := *property
	s.properties[property.ID] = &copied
	return nil
}

func (s *memPropertyStore) Delete(id uint) error {
	delete(s.properties, id)
	return nil
}

type memWishlistStore struct {
	seq     uint
	entries map[uint]*model.WishlistEntry
}

func newMemWishlistStore() *memWishlistStore {
	return &memWishlistStore{entries: make(map[uint]*model.WishlistEntry)}
}

func (s *memWishlistStore) Get(userID, propertyID uint) (*model.WishlistEntry, error) {
	for _, entry := range s.entries {
		if entry.UserID == userID && entry.PropertyID == propertyID {
			copied := *entry
			return &copied, nil
		}
	}
	return nil, nil
}

func (s *memWishlistStore) Create(entry *model.WishlistEntry) error {
	s.seq++
	entry.ID = s.seq
	copied := *entry
	s.entries[entry.ID] = &copied
	return nil
}

func (s *memWishlistStore) Delete(userID, propertyID uint) error {
	for id, entry := range s.entries {
		if entry.UserID == userID && entry.PropertyID == propertyID {
			delete(s.entries, id)
		}
	}
	return nil
}

func (s *memWishlistStore) ListProperties(userID uint) ([]model.Property, error) {
	return nil, nil
}

type propertyTestEnv struct {
	router        *gin.Engine
	userStore     *memUserStore
	propertyStore *memPropertyStore
}

func newPropertyTestEnv(t *testing.T) *propertyTestEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	userStore := newMemUserStore()
	propertyStore := newMemPropertyStore()
	wishlistStore := newMemWishlistStore()

	uploader, err := upload.NewSaver(t.TempDir(), "http://localhost:5000")
	require.NoError(t, err)

	propertyService := app.NewPropertyService(propertyStore, nil, nil)
	wishlistService := app.NewWishlistService(wishlistStore, propertyStore, nil)
	propertyHandler := handler.NewPropertyHandler(propertyService, wishlistService, uploader)
	userHandler := handler.NewUserHandler(
		app.NewAuthService(userStore, testSecret, 24*time.Hour),
		propertyService,
		uploader,
	)

	authRequired := middleware.AuthRequired(testSecret, userStore)
	optionalAuth := middleware.OptionalAuth(testSecret, userStore)

	router := gin.New()
	propertyGroup := router.Group("/api/property")
	propertyGroup.GET("/all", propertyHandler.List)
	propertyGroup.GET("/user", authRequired, propertyHandler.ListMine)
	propertyGroup.GET("/wishlist", authRequired, propertyHandler.GetWishlist)
	propertyGroup.GET("/:id", optionalAuth, propertyHandler.Get)
	propertyGroup.PUT("/:id", authRequired, propertyHandler.Update)
	propertyGroup.DELETE("/:id", authRequired, propertyHandler.Delete)
	propertyGroup.POST("/:id/wishlist", authRequired, propertyHandler.ToggleWishlist)
	router.POST("/api/user/add-property", authRequired, userHandler.CreateProperty)

	return &propertyTestEnv{
		router:        router,
		userStore:     userStore,
		propertyStore: propertyStore,
	}
}

func (e *propertyTestEnv) addUser(t *testing.T, username string) (*model.User, *http.Cookie) {
	t.Helper()
	user := &model.User{
		Username:     username,
		Email:        username + "@x.com",
		PasswordHash: "irrelevant",
		Role:         model.RoleUser,
	}
	require.NoError(t, e.userStore.Create(user))

	token, err := jwtutil.GenerateToken(testSecret, time.Hour, user.ID)
	require.NoError(t, err)
	return user, &http.Cookie{Name: middleware.CookieName, Value: token}
}

func (e *propertyTestEnv) addProperty(t *testing.T, ownerID uint) *model.Property {
	t.Helper()
	property := &model.Property{
		UserID:          ownerID,
		Title:           "Canal house",
		Description:     "Three floors on the water",
		Price:           450000,
		Location:        "Amsterdam",
		PropertyType:    model.PropertyHouse,
		TransactionType: model.TransactionSale,
		Bedrooms:        3,
		Bathrooms:       2,
		Size:            140,
		Status:          model.StatusAvailable,
		Amenities:       []string{},
		Images:          []string{},
	}
	require.NoError(t, e.propertyStore.Create(property))
	return property
}

func (e *propertyTestEnv) do(method, path string, body *bytes.Buffer, contentType string, cookie *http.Cookie) *httptest.ResponseRecorder {
	if body == nil {
		body = &bytes.Buffer{}
	}
	req := httptest.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}
	res := httptest.NewRecorder()
	e.router.ServeHTTP(res, req)
	return res
}

func TestGetPropertyNotFound(t *testing.T) {
	env := newPropertyTestEnv(t)

	res := env.do(http.MethodGet, "/api/property/999", nil, "", nil)
	assert.Equal(t, http.StatusNotFound, res.Code)
}

func TestDeletePropertyOwnership(t *testing.T) {
	env := newPropertyTestEnv(t)
	alice, _ := env.addUser(t, "alice")
	_, bobCookie := env.addUser(t, "bob")
	property := env.addProperty(t, alice.ID)

	// Bob cannot delete Alice's listing: it exists, so this is a 403.
	res := env.do(http.MethodDelete, fmt.Sprintf("/api/property/%d", property.ID), nil, "", bobCookie)
	assert.Equal(t, http.StatusForbidden, res.Code)

	// A listing that never existed is a 404 for everyone.
	res = env.do(http.MethodDelete, "/api/property/999", nil, "", bobCookie)
	assert.Equal(t, http.StatusNotFound, res.Code)

	// Without a session the gate answers before the handler does.
	res = env.do(http.MethodDelete, fmt.Sprintf("/api/property/%d", property.ID), nil, "", nil)
	assert.Equal(t, http.StatusUnauthorized, res.Code)
}

func TestUpdatePropertyMultipart(t *testing.T) {
	env := newPropertyTestEnv(t)
	alice, aliceCookie := env.addUser(t, "alice")
	property := env.addProperty(t, alice.ID)

	body := &bytes.Buffer{}
	form := multipart.NewWriter(body)
	require.NoError(t, form.WriteField("title", "Renovated canal house"))
	require.NoError(t, form.WriteField("price", "475000"))
	part, err := form.CreateFormFile("images", "front.png")
	require.NoError(t, err)
	_, err = part.Write([]byte("not-really-a-png"))
	require.NoError(t, err)
	require.NoError(t, form.Close())

	res := env.do(http.MethodPut, fmt.Sprintf("/api/property/%d", property.ID), body, form.FormDataContentType(), aliceCookie)
	require.Equal(t, http.StatusOK, res.Code, res.Body.String())

	updated, err := env.propertyStore.GetByID(property.ID)
	require.NoError(t, err)
	assert.Equal(t, "Renovated canal house", updated.Title)
	assert.Equal(t, float64(475000), updated.Price)
	assert.Equal(t, "Amsterdam", updated.Location, "absent fields stay untouched")
	require.Len(t, updated.Images, 1)
	assert.Contains(t, updated.Images[0], "/uploads/")
}

func TestCreatePropertyMultipart(t *testing.T) {
	env := newPropertyTestEnv(t)
	_, aliceCookie := env.addUser(t, "alice")

	body := &bytes.Buffer{}
	form := multipart.NewWriter(body)
	fields := map[string]string{
		"title":            "Harbour loft",
		"description":      "Open floor plan",
		"price":            "320000",
		"location":         "Rotterdam",
		"latitude":         "51.9",
		"longitude":        "4.48",
		"property_type":    "APARTMENT",
		"transaction_type": "FOR_SALE",
		"bedrooms":         "2",
		"bathrooms":        "1",
		"size":             "95",
		"furnished":        "false",
		"amenities":        `["elevator","storage"]`,
	}
	for key, value := range fields {
		require.NoError(t, form.WriteField(key, value))
	}
	require.NoError(t, form.Close())

	res := env.do(http.MethodPost, "/api/user/add-property", body, form.FormDataContentType(), aliceCookie)
	require.Equal(t, http.StatusCreated, res.Code, res.Body.String())
	assert.Contains(t, res.Body.String(), "Harbour loft")
}

func TestCreatePropertyMissingField(t *testing.T) {
	env := newPropertyTestEnv(t)
	_, aliceCookie := env.addUser(t, "alice")

	body := &bytes.Buffer{}
	form := multipart.NewWriter(body)
	require.NoError(t, form.WriteField("title", "Incomplete"))
	require.NoError(t, form.Close())

	res := env.do(http.MethodPost, "/api/user/add-property", body, form.FormDataContentType(), aliceCookie)
	assert.Equal(t, http.StatusBadRequest, res.Code)
}

func TestWishlistToggleEndpoint(t *testing.T) {
	env := newPropertyTestEnv(t)
	alice, _ := env.addUser(t, "alice")
	_, bobCookie := env.addUser(t, "bob")
	property := env.addProperty(t, alice.ID)

	path := fmt.Sprintf("/api/property/%d/wishlist", property.ID)

	res := env.do(http.MethodPost, path, nil, "", bobCookie)
	require.Equal(t, http.StatusOK, res.Code)
	assert.Contains(t, res.Body.String(), `"in_wishlist":true`)

	res = env.do(http.MethodPost, path, nil, "", bobCookie)
	require.Equal(t, http.StatusOK, res.Code)
	assert.Contains(t, res.Body.String(), `"in_wishlist":false`)
}
