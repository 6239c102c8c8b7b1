package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
	"github.com/zara-amin/zeenat-jewels-api/models"
	"github.com/zara-amin/zeenat-jewels-api/routes"
	"github.com/zara-amin/zeenat-jewels-api/services"
	"github.com/zara-amin/zeenat-jewels-api/tests/testutil"
	"gorm.io/gorm"
)

// AdminIntegrationTestSuite exercises the admin product management flow,
// including token-based admin auth and image uploads
type AdminIntegrationTestSuite struct {
	suite.Suite
	router *gin.Engine
	db     *gorm.DB
	mockS3 *services.MockS3Service
}

func (suite *AdminIntegrationTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)

	suite.db = testutil.OpenDB(suite.T())
	suite.mockS3 = services.NewMockS3Service()

	router, err := routes.NewRouter(testutil.TestConfig(), suite.db, suite.mockS3)
	suite.NoError(err)
	suite.router = router
}

func (suite *AdminIntegrationTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	if err == nil {
		sqlDB.Close()
	}
}

func (suite *AdminIntegrationTestSuite) postJSON(path string, body map[string]interface{}, headers map[string]string) *httptest.ResponseRecorder {
	raw, _ := json.Marshal(body)
	req, _ := http.NewRequest(http.MethodPost, path, bytes.NewBuffer(raw))
	req.Header.Set("Content-Type", "application/json")
	for key, value := range headers {
		req.Header.Set(key, value)
	}
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

// loginAs returns a bearer token for the given credentials
func (suite *AdminIntegrationTestSuite) loginAs(email, password string) string {
	w := suite.postJSON("/api/v1/auth/login", map[string]interface{}{
		"email":    email,
		"password": password,
	}, nil)
	suite.Equal(http.StatusOK, w.Code)

	var response map[string]interface{}
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &response))
	return response["data"].(map[string]interface{})["access_token"].(string)
}

func (suite *AdminIntegrationTestSuite) TestProductManagementWithAdminToken() {
	testutil.CreateUser(suite.T(), suite.db, "admin@example.com", "admin-pass", true)
	rings := testutil.CreateCategory(suite.T(), suite.db, "Rings")

	token := suite.loginAs("admin@example.com", "admin-pass")
	authHeader := map[string]string{"Authorization": "Bearer " + token}

	// Create a product with the admin token
	w := suite.postJSON("/api/v1/products", map[string]interface{}{
		"name":         "Emerald Ring",
		"retail_price": "3500",
		"offer_price":  "3000",
		"category_id":  rings.ID,
	}, authHeader)
	suite.Equal(http.StatusCreated, w.Code)

	var createResponse map[string]interface{}
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &createResponse))
	productID := uint(createResponse["data"].(map[string]interface{})["id"].(float64))

	// Update it
	body, _ := json.Marshal(map[string]interface{}{"status": models.StatusOutOfStock})
	req, _ := http.NewRequest(http.MethodPut, fmt.Sprintf("/api/v1/products/%d", productID), bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	w = httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	suite.Equal(http.StatusOK, w.Code)

	var product models.Product
	suite.NoError(suite.db.First(&product, productID).Error)
	suite.Equal(models.StatusOutOfStock, product.Status)

	// Delete it
	req, _ = http.NewRequest(http.MethodDelete, fmt.Sprintf("/api/v1/products/%d", productID), nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w = httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	suite.Equal(http.StatusOK, w.Code)

	var count int64
	suite.db.Model(&models.Product{}).Count(&count)
	suite.Equal(int64(0), count)
}

func (suite *AdminIntegrationTestSuite) TestCustomerTokenCannotManageProducts() {
	testutil.CreateUser(suite.T(), suite.db, "customer@example.com", "customer-pass", false)
	rings := testutil.CreateCategory(suite.T(), suite.db, "Rings")

	token := suite.loginAs("customer@example.com", "customer-pass")

	w := suite.postJSON("/api/v1/products", map[string]interface{}{
		"name":         "Emerald Ring",
		"retail_price": "3500",
		"category_id":  rings.ID,
	}, map[string]string{"Authorization": "Bearer " + token})
	suite.Equal(http.StatusForbidden, w.Code)

	var response map[string]interface{}
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &response))
	errorData := response["error"].(map[string]interface{})
	suite.Equal("FORBIDDEN", errorData["code"])
}

func (suite *AdminIntegrationTestSuite) TestImageUploadFlow() {
	rings := testutil.CreateCategory(suite.T(), suite.db, "Rings")
	product := testutil.CreateProduct(suite.T(), suite.db, rings.ID, "Gold Ring", 2500, 0)

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("image", "ring.png")
	suite.NoError(err)
	_, err = part.Write([]byte("fake png bytes"))
	suite.NoError(err)
	suite.NoError(writer.Close())

	req, _ := http.NewRequest(http.MethodPost, fmt.Sprintf("/api/v1/products/%d/images", product.ID), body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("X-Role", "admin")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusCreated, w.Code)

	var response map[string]interface{}
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &response))
	data := response["data"].(map[string]interface{})
	s3Key := data["s3_key"].(string)
	suite.True(suite.mockS3.FileExists(s3Key))

	// The key shows up in the public detail view
	req, _ = http.NewRequest(http.MethodGet, fmt.Sprintf("/api/v1/products/%d/details", product.ID), nil)
	req.Header.Set("X-Role", "customer")
	w = httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	suite.Equal(http.StatusOK, w.Code)

	var detailResponse map[string]interface{}
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &detailResponse))
	productData := detailResponse["data"].(map[string]interface{})["product"].(map[string]interface{})
	suite.Equal([]interface{}{s3Key}, productData["images"])
}

func TestAdminIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(AdminIntegrationTestSuite))
}
