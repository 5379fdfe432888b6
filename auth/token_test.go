package auth

import (
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/adithyakrishnan/bazario-api/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&models.Session{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func TestIssueUserTokenCreatesLiveSession(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	db := newTestDB(t)

	token, err := IssueUserToken(db, 7, "a@b.com")
	if err != nil {
		t.Fatalf("IssueUserToken: %v", err)
	}

	if err := CheckSession(db, models.SubjectUser, 7, token); err != nil {
		t.Fatalf("CheckSession rejected a fresh token: %v", err)
	}

	claims, err := ParseClaims(token)
	if err != nil {
		t.Fatalf("ParseClaims: %v", err)
	}
	if claims["user_id"].(float64) != 7 {
		t.Fatalf("user_id claim = %v, want 7", claims["user_id"])
	}
}

func TestReissueRevokesPriorSession(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	db := newTestDB(t)

	first, err := IssueUserToken(db, 7, "a@b.com")
	if err != nil {
		t.Fatalf("first issue: %v", err)
	}
	// Signed claims include exp at second precision; without a pause both
	// tokens would be byte-identical.
	time.Sleep(1100 * time.Millisecond)
	second, err := IssueUserToken(db, 7, "a@b.com")
	if err != nil {
		t.Fatalf("second issue: %v", err)
	}

	if err := CheckSession(db, models.SubjectUser, 7, first); err == nil {
		t.Fatal("stale token still accepted after reissue")
	}
	if err := CheckSession(db, models.SubjectUser, 7, second); err != nil {
		t.Fatalf("fresh token rejected: %v", err)
	}
}

func TestRevokeSessionsInvalidatesToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	db := newTestDB(t)

	token, err := IssueUserToken(db, 3, "c@d.com")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if err := RevokeSessions(db, models.SubjectUser, 3); err != nil {
		t.Fatalf("revoke: %v", err)
	}
	if err := CheckSession(db, models.SubjectUser, 3, token); err == nil {
		t.Fatal("revoked token still accepted")
	}
}

func TestSessionsAreScopedBySubjectKind(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	db := newTestDB(t)

	userToken, err := IssueUserToken(db, 5, "u@e.com")
	if err != nil {
		t.Fatalf("user issue: %v", err)
	}
	if _, err := IssueAdminToken(db, 5, models.AdminTypeRegular); err != nil {
		t.Fatalf("admin issue: %v", err)
	}

	// Same numeric id, different kind: the admin login must not revoke
	// the user's session.
	if err := CheckSession(db, models.SubjectUser, 5, userToken); err != nil {
		t.Fatalf("user session lost to admin login: %v", err)
	}
}

func TestCheckSessionRejectsExpired(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	db := newTestDB(t)

	session := models.Session{
		SubjectKind: models.SubjectUser,
		SubjectID:   9,
		Token:       "tok",
		ExpiresAt:   time.Now().Add(-time.Minute),
	}
	if err := db.Create(&session).Error; err != nil {
		t.Fatalf("seed session: %v", err)
	}
	if err := CheckSession(db, models.SubjectUser, 9, "tok"); err == nil {
		t.Fatal("expired session accepted")
	}
}

func TestParseClaimsRejectsForgedToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	db := newTestDB(t)

	token, err := IssueUserToken(db, 1, "x@y.com")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	t.Setenv("JWT_SECRET", "other-secret")
	if _, err := ParseClaims(token); err == nil {
		t.Fatal("token signed with a different secret accepted")
	}
}
