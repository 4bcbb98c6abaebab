package controllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go-jewelry-order-management/middleware"
	"go-jewelry-order-management/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

// Account creation is admin only; a salesman or shop owner token must never
// reach the signup handler.
func TestSignUpRequiresAdminRole(t *testing.T) {
	for _, role := range []string{models.RoleSalesman, models.RoleShopOwner} {
		router := gin.New()
		router.Use(func(c *gin.Context) {
			c.Set("uid", "user-1")
			c.Set("user_role", role)
		})
		router.POST("/users/signup", middleware.Authorize(models.RoleAdmin), SignUp())

		body, _ := json.Marshal(gin.H{
			"name":      "Rogue Admin",
			"password":  "secret123",
			"email":     "rogue@example.com",
			"phone":     "9999999999",
			"user_role": models.RoleAdmin,
		})
		req := httptest.NewRequest(http.MethodPost, "/users/signup", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, req)

		assert.Equal(t, http.StatusForbidden, recorder.Code, "role %s must not create accounts", role)
	}
}
