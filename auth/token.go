package auth

import (
	"errors"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"

	"github.com/adithyakrishnan/bazario-api/models"
)

const TokenTTL = 24 * time.Hour

var ErrNoLiveSession = errors.New("no live session for token")

func secret() []byte {
	return []byte(os.Getenv("JWT_SECRET"))
}

func sign(claims jwt.MapClaims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret())
}

// IssueUserToken signs a user JWT and records it as the single live session
// for that user: every earlier session row is revoked first.
func IssueUserToken(tx *gorm.DB, userID uint, email string) (string, error) {
	expiresAt := time.Now().Add(TokenTTL)
	token, err := sign(jwt.MapClaims{
		"user_id": userID,
		"email":   email,
		"exp":     expiresAt.Unix(),
	})
	if err != nil {
		return "", err
	}
	if err := storeSession(tx, models.SubjectUser, userID, token, expiresAt); err != nil {
		return "", err
	}
	return token, nil
}

// IssueAdminToken does the same for admins, carrying the privilege tier in
// the "type" claim.
func IssueAdminToken(tx *gorm.DB, adminID uint, adminType models.AdminType) (string, error) {
	expiresAt := time.Now().Add(TokenTTL)
	token, err := sign(jwt.MapClaims{
		"admin_id": adminID,
		"type":     string(adminType),
		"exp":      expiresAt.Unix(),
	})
	if err != nil {
		return "", err
	}
	if err := storeSession(tx, models.SubjectAdmin, adminID, token, expiresAt); err != nil {
		return "", err
	}
	return token, nil
}

func storeSession(tx *gorm.DB, kind models.SubjectKind, subjectID uint, token string, expiresAt time.Time) error {
	if err := RevokeSessions(tx, kind, subjectID); err != nil {
		return err
	}
	session := models.Session{
		SubjectKind: kind,
		SubjectID:   subjectID,
		Token:       token,
		ExpiresAt:   expiresAt,
	}
	return tx.Create(&session).Error
}

// RevokeSessions invalidates every live session for the identity.
func RevokeSessions(tx *gorm.DB, kind models.SubjectKind, subjectID uint) error {
	now := time.Now()
	return tx.Model(&models.Session{}).
		Where("subject_kind = ? AND subject_id = ? AND revoked_at IS NULL", kind, subjectID).
		Update("revoked_at", now).Error
}

// CheckSession accepts the token only if it matches the newest session row
// for the identity and that row is unrevoked and unexpired.
func CheckSession(db *gorm.DB, kind models.SubjectKind, subjectID uint, token string) error {
	var session models.Session
	err := db.Where("subject_kind = ? AND subject_id = ?", kind, subjectID).
		Order("id DESC").
		First(&session).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNoLiveSession
		}
		return err
	}
	if session.Token != token || !session.Live(time.Now()) {
		return ErrNoLiveSession
	}
	return nil
}

// ParseClaims verifies the JWT signature and expiry and returns the claims.
func ParseClaims(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid token signing method")
		}
		return secret(), nil
	})
	if err != nil || !token.Valid {
		return nil, errors.New("invalid or expired token")
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("invalid token claims")
	}
	return claims, nil
}
