package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/adithyakrishnan/bazario-api/auth"
	"github.com/adithyakrishnan/bazario-api/models"
)

// Context keys set by the middlewares below.
const (
	CtxUserID    = "user_id"
	CtxAdminID   = "admin_id"
	CtxAdminType = "admin_type"
)

func bearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader("Authorization")
	if header == "" || !strings.HasPrefix(header, "Bearer ") {
		return "", false
	}
	return strings.TrimPrefix(header, "Bearer "), true
}

func claimID(claims map[string]interface{}, key string) (uint, bool) {
	raw, ok := claims[key]
	if !ok {
		return 0, false
	}
	f, ok := raw.(float64)
	if !ok || f < 1 {
		return 0, false
	}
	return uint(f), true
}

// ValidateUserToken authenticates a user bearer token. The token must carry
// a user_id claim, match the user's single live session, and the account
// must still be active.
func ValidateUserToken(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Token not provided or invalid"})
			c.Abort()
			return
		}

		claims, err := auth.ParseClaims(token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			c.Abort()
			return
		}

		userID, ok := claimID(claims, "user_id")
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token type"})
			c.Abort()
			return
		}

		if err := auth.CheckSession(db, models.SubjectUser, userID, token); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Token not found or session revoked"})
			c.Abort()
			return
		}

		var user models.User
		if err := db.Where("id = ? AND status = ?", userID, models.StatusActive).First(&user).Error; err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Token not found or user inactive"})
			c.Abort()
			return
		}

		c.Set(CtxUserID, userID)
		c.Next()
	}
}

// ValidateAdminToken authenticates an admin bearer token of either tier.
func ValidateAdminToken(db *gorm.DB) gin.HandlerFunc {
	return adminAuth(db, false)
}

// ValidateSuperAdminToken additionally requires the SUPER_ADMIN tier.
func ValidateSuperAdminToken(db *gorm.DB) gin.HandlerFunc {
	return adminAuth(db, true)
}

func adminAuth(db *gorm.DB, superOnly bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Token not provided or invalid"})
			c.Abort()
			return
		}

		claims, err := auth.ParseClaims(token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			c.Abort()
			return
		}

		adminID, ok := claimID(claims, "admin_id")
		if !ok {
			c.JSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
			c.Abort()
			return
		}

		adminType, _ := claims["type"].(string)
		if superOnly && adminType != string(models.AdminTypeSuper) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Super admin access required"})
			c.Abort()
			return
		}

		if err := auth.CheckSession(db, models.SubjectAdmin, adminID, token); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Token not found or session revoked"})
			c.Abort()
			return
		}

		c.Set(CtxAdminID, adminID)
		c.Set(CtxAdminType, adminType)
		c.Next()
	}
}

// UserID reads the authenticated user id set by ValidateUserToken.
func UserID(c *gin.Context) uint {
	id, _ := c.Get(CtxUserID)
	uid, _ := id.(uint)
	return uid
}

// AdminID reads the authenticated admin id set by the admin middlewares.
func AdminID(c *gin.Context) uint {
	id, _ := c.Get(CtxAdminID)
	aid, _ := id.(uint)
	return aid
}

// AdminType reads the authenticated admin tier.
func AdminType(c *gin.Context) string {
	t, _ := c.Get(CtxAdminType)
	s, _ := t.(string)
	return s
}
