package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"realtychance/internal/models"
	"realtychance/internal/repositories"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type testApp struct {
	app *fiber.App
	db  *gorm.DB
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, repositories.Migrate(db))

	app := fiber.New()
	SetupRoutes(app, BuildDependencies(db))
	return &testApp{app: app, db: db}
}

func (a *testApp) do(t *testing.T, method, target, token string, body interface{}) (*http.Response, map[string]interface{}) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := a.app.Test(req, -1)
	require.NoError(t, err)

	var decoded map[string]interface{}
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 {
		_ = json.Unmarshal(raw, &decoded)
	}
	return resp, decoded
}

// createdID pulls the primary key out of a created record. gorm.Model
// serializes it as "ID".
func createdID(t *testing.T, body map[string]interface{}) uint {
	t.Helper()
	id, ok := body["ID"].(float64)
	require.True(t, ok, "response carries ID: %v", body)
	return uint(id)
}

var phoneSeq = 9000000000

func registration() map[string]interface{} {
	phoneSeq++
	phone := fmt.Sprintf("%d", phoneSeq)
	return map[string]interface{}{
		"phone":     phone,
		"email":     phone + "@example.com",
		"full_name": "Test User",
		"password":  "Str0ngPass1",
		"password2": "Str0ngPass1",
	}
}

// registerAndLogin creates an account through the API and returns its access
// token along with the registration payload.
func (a *testApp) registerAndLogin(t *testing.T, path string) (string, map[string]interface{}) {
	t.Helper()
	input := registration()
	resp, _ := a.do(t, http.MethodPost, path, "", input)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, body := a.do(t, http.MethodPost, "/api/auth/login", "", map[string]interface{}{
		"phone":    input["phone"],
		"password": input["password"],
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	token, ok := body["access_token"].(string)
	require.True(t, ok, "login response carries access_token: %v", body)
	return token, input
}

func propertyPayload(address string) map[string]interface{} {
	return map[string]interface{}{
		"title":         "2BHK near the lake",
		"description":   "Bright corner flat",
		"price":         4500000,
		"bedrooms":      2,
		"bathrooms":     2,
		"area_sqft":     950,
		"property_type": "sale",
		"city":          "Pune",
		"state":         "Maharashtra",
		"locality":      "Aundh",
		"address":       address,
	}
}

func TestRegisterValidation(t *testing.T) {
	a := newTestApp(t)

	input := registration()
	input["password2"] = "Mismatch1"
	resp, body := a.do(t, http.MethodPost, "/api/register", "", input)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	fields, ok := body["errors"].(map[string]interface{})
	require.True(t, ok, "validation response carries field map: %v", body)
	assert.Contains(t, fields, "password")
}

func TestRegisterDuplicatePhone(t *testing.T) {
	a := newTestApp(t)

	input := registration()
	resp, _ := a.do(t, http.MethodPost, "/api/register", "", input)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	input["email"] = "different@example.com"
	resp, body := a.do(t, http.MethodPost, "/api/register", "", input)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	fields, _ := body["errors"].(map[string]interface{})
	assert.Contains(t, fields, "phone")
}

func TestLoginBadCredentials(t *testing.T) {
	a := newTestApp(t)
	_, input := a.registerAndLogin(t, "/api/register")

	resp, _ := a.do(t, http.MethodPost, "/api/auth/login", "", map[string]interface{}{
		"phone":    input["phone"],
		"password": "WrongPass1",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestPropertyLifecycleOverHTTP(t *testing.T) {
	a := newTestApp(t)
	token, _ := a.registerAndLogin(t, "/api/register")

	// Creating a listing promotes the seeker; /me/role reads the stored role.
	resp, created := a.do(t, http.MethodPost, "/api/properties", token, propertyPayload("14 Lakeview Road"))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	propertyID := createdID(t, created)

	resp, role := a.do(t, http.MethodGet, "/api/me/role", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, models.RoleOwner, role["role"])

	// Anonymous retrieval works while the listing is active.
	resp, _ = a.do(t, http.MethodGet, fmt.Sprintf("/api/properties/%d", propertyID), "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// A second listing at the same address is rejected.
	resp, _ = a.do(t, http.MethodPost, "/api/properties", token, propertyPayload("14 Lakeview Road"))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// Another user cannot touch it.
	otherToken, _ := a.registerAndLogin(t, "/api/register")
	resp, _ = a.do(t, http.MethodPatch, fmt.Sprintf("/api/properties/%d", propertyID), otherToken,
		map[string]interface{}{"title": "Hijacked"})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	// Soft delete hides it from anonymous reads.
	resp, _ = a.do(t, http.MethodPatch, fmt.Sprintf("/api/properties/%d/soft-delete", propertyID), token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp, _ = a.do(t, http.MethodGet, fmt.Sprintf("/api/properties/%d", propertyID), "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestFavoriteFlowOverHTTP(t *testing.T) {
	a := newTestApp(t)
	ownerToken, _ := a.registerAndLogin(t, "/api/register-owner")
	seekerToken, _ := a.registerAndLogin(t, "/api/register-seeker")

	resp, created := a.do(t, http.MethodPost, "/api/properties", ownerToken, propertyPayload("14 Lakeview Road"))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	propertyID := createdID(t, created)

	addPath := fmt.Sprintf("/api/favorites/%d/add", propertyID)

	resp, body := a.do(t, http.MethodPost, addPath, seekerToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "added", body["status"])

	resp, body = a.do(t, http.MethodPost, addPath, seekerToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "already_favorited", body["status"])

	resp, _ = a.do(t, http.MethodGet, "/api/favorites/", seekerToken, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	removePath := fmt.Sprintf("/api/favorites/%d/remove", propertyID)
	resp, body = a.do(t, http.MethodDelete, removePath, seekerToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "removed", body["status"])

	// Removing again is a calm 404.
	resp, _ = a.do(t, http.MethodDelete, removePath, seekerToken, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	// Unauthenticated favorites are rejected.
	resp, _ = a.do(t, http.MethodPost, addPath, "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// Anonymous reads must not inherit the auth middleware from the mutation
// routes that register before them.
func TestAnonymousReadsStayPublic(t *testing.T) {
	a := newTestApp(t)
	ownerToken, _ := a.registerAndLogin(t, "/api/register-owner")

	resp, created := a.do(t, http.MethodPost, "/api/properties", ownerToken, propertyPayload("14 Lakeview Road"))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	propertyID := createdID(t, created)

	resp, created = a.do(t, http.MethodPost, "/api/new-projects", ownerToken, map[string]interface{}{
		"name":            "Skyline Heights",
		"builder_name":    "Acme Builders",
		"description":     "Twin towers with club house",
		"city":            "Pune",
		"state":           "Maharashtra",
		"launch_date":     "2026-01-15",
		"possession_date": "2028-06-30",
		"project_type":    "residential",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	projectID := createdID(t, created)

	for _, target := range []string{
		"/api/properties",
		fmt.Sprintf("/api/properties/%d", propertyID),
		"/api/properties/trending-locations",
		"/api/new-projects",
		fmt.Sprintf("/api/new-projects/%d", projectID),
	} {
		resp, _ := a.do(t, http.MethodGet, target, "", nil)
		assert.Equal(t, http.StatusOK, resp.StatusCode, "GET %s without a token", target)
	}

	// A missing row is a 404, not an auth demand.
	resp, _ = a.do(t, http.MethodGet, "/api/properties/99999", "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	// Writes still require a token.
	resp, _ = a.do(t, http.MethodPost, "/api/properties", "", propertyPayload("9 Hill Road"))
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp, _ = a.do(t, http.MethodDelete, fmt.Sprintf("/api/properties/%d", propertyID), "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestInquirySeekerOnlyOverHTTP(t *testing.T) {
	a := newTestApp(t)
	ownerToken, _ := a.registerAndLogin(t, "/api/register-owner")
	seekerToken, _ := a.registerAndLogin(t, "/api/register-seeker")

	resp, created := a.do(t, http.MethodPost, "/api/properties", ownerToken, propertyPayload("14 Lakeview Road"))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	propertyID := createdID(t, created)

	payload := map[string]interface{}{"property_id": propertyID, "message": "Still available?"}

	resp, _ = a.do(t, http.MethodPost, "/api/inquiries", seekerToken, payload)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	// Owners do not hold inquiry:create; the permission gate answers 403.
	resp, _ = a.do(t, http.MethodPost, "/api/inquiries", ownerToken, payload)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestProjectApprovalVisibilityOverHTTP(t *testing.T) {
	a := newTestApp(t)
	ownerToken, _ := a.registerAndLogin(t, "/api/register-owner")
	adminToken := a.seedAdmin(t)

	resp, created := a.do(t, http.MethodPost, "/api/new-projects", ownerToken, map[string]interface{}{
		"name":            "Skyline Heights",
		"builder_name":    "Acme Builders",
		"description":     "Twin towers with club house",
		"city":            "Pune",
		"state":           "Maharashtra",
		"location":        "Baner",
		"launch_date":     "2026-01-15",
		"possession_date": "2028-06-30",
		"project_type":    "residential",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	projectID := createdID(t, created)

	// Anonymous list hides the unapproved project; admins see it.
	resp, body := a.do(t, http.MethodGet, "/api/new-projects", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, body["data"])

	resp, body = a.do(t, http.MethodGet, "/api/new-projects", adminToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, body["data"], 1)

	// Retrieval by id is unfiltered.
	resp, _ = a.do(t, http.MethodGet, fmt.Sprintf("/api/new-projects/%d", projectID), "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// Only admins approve.
	approvePath := fmt.Sprintf("/api/new-projects/%d/approve", projectID)
	resp, _ = a.do(t, http.MethodPatch, approvePath, ownerToken, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, body = a.do(t, http.MethodPatch, approvePath, adminToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "approved", body["status"])

	resp, body = a.do(t, http.MethodGet, "/api/new-projects", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, body["data"], 1)

	// Approving a missing project is a 404.
	resp, _ = a.do(t, http.MethodPatch, "/api/new-projects/99999/approve", adminToken, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestAdminPropertyRoutesOverHTTP(t *testing.T) {
	a := newTestApp(t)
	ownerToken, _ := a.registerAndLogin(t, "/api/register-owner")
	adminToken := a.seedAdmin(t)

	resp, created := a.do(t, http.MethodPost, "/api/properties", ownerToken, propertyPayload("14 Lakeview Road"))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	propertyID := createdID(t, created)

	// The static admin paths are reachable despite the :id retrieve route.
	resp, body := a.do(t, http.MethodGet, "/api/properties/unverified", adminToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, body["data"], 1)

	resp, _ = a.do(t, http.MethodGet, "/api/properties/unverified", ownerToken, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, body = a.do(t, http.MethodPatch, fmt.Sprintf("/api/properties/%d/verify", propertyID), adminToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["is_verified"])

	resp, body = a.do(t, http.MethodGet, "/api/properties/unverified", adminToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, body["data"])
}

// seedAdmin inserts an admin directly and logs in through the API.
func (a *testApp) seedAdmin(t *testing.T) string {
	t.Helper()
	phoneSeq++
	phone := fmt.Sprintf("%d", phoneSeq)

	hashed, err := bcrypt.GenerateFromPassword([]byte("Adm1nPass1"), bcrypt.MinCost)
	require.NoError(t, err)
	admin := &models.User{
		Phone:        phone,
		Email:        phone + "@example.com",
		FullName:     "Administrator",
		Password:     string(hashed),
		Role:         models.RoleAdmin,
		IsStaff:      true,
		TokenVersion: 1,
	}
	require.NoError(t, a.db.Create(admin).Error)

	resp, body := a.do(t, http.MethodPost, "/api/auth/login", "", map[string]interface{}{
		"phone":    phone,
		"password": "Adm1nPass1",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	token, ok := body["access_token"].(string)
	require.True(t, ok)
	return token
}
