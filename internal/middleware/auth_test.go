package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/joinapp/join-backend/internal/database"
	"github.com/joinapp/join-backend/internal/models"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupAuthMiddlewareTest(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(&models.User{}, &models.AuthToken{}))
	database.SetDB(db)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return db
}

func protectedRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", RequireAuth(), func(c *gin.Context) {
		userID, _ := GetUserID(c)
		c.JSON(http.StatusOK, gin.H{"user_id": userID})
	})
	return r
}

func TestRequireAuth_ValidToken(t *testing.T) {
	db := setupAuthMiddlewareTest(t)

	user := &models.User{Name: "User", Email: "user@example.com", PasswordHash: "hashed", IsActive: true}
	require.NoError(t, db.Create(user).Error)
	token := &models.AuthToken{Key: "abc123", UserID: user.ID}
	require.NoError(t, db.Create(token).Error)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Token abc123")
	w := httptest.NewRecorder()
	protectedRouter().ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var response map[string]uint64
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, user.ID, response["user_id"])
}

func TestRequireAuth_MissingHeader(t *testing.T) {
	setupAuthMiddlewareTest(t)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	w := httptest.NewRecorder()
	protectedRouter().ServeHTTP(w, req)

	require.Equal(t, http.StatusUnauthorized, w.Code)

	var response map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, "Authentication credentials were not provided.", response["detail"])
}

func TestRequireAuth_UnknownOrMalformedToken(t *testing.T) {
	setupAuthMiddlewareTest(t)

	for _, header := range []string{
		"Token doesnotexist",
		"Bearer abc123",
		"Token",
	} {
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", header)
		w := httptest.NewRecorder()
		protectedRouter().ServeHTTP(w, req)

		require.Equal(t, http.StatusUnauthorized, w.Code, "header %q", header)

		var response map[string]string
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		require.Equal(t, "Invalid token.", response["detail"])
	}
}

func TestRequireAuth_InactiveUser(t *testing.T) {
	db := setupAuthMiddlewareTest(t)

	user := &models.User{Name: "Gone", Email: "gone@example.com", PasswordHash: "hashed"}
	require.NoError(t, db.Create(user).Error)
	require.NoError(t, db.Model(user).Update("is_active", false).Error)
	token := &models.AuthToken{Key: "stale", UserID: user.ID}
	require.NoError(t, db.Create(token).Error)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Token stale")
	w := httptest.NewRecorder()
	protectedRouter().ServeHTTP(w, req)

	require.Equal(t, http.StatusUnauthorized, w.Code)

	var response map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, "User inactive or deleted.", response["detail"])
}
