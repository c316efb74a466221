package controllers

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/holistichub/practitioner-hub/db"
	"github.com/holistichub/practitioner-hub/middleware"
	"github.com/holistichub/practitioner-hub/models"
)

func setupArticleApp(t *testing.T) *fiber.App {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")

	conn, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(
		&models.Role{},
		&models.User{},
		&models.Practitioner{},
		&models.Article{},
	))
	db.DB = conn

	app := fiber.New()
	app.Get("/articles/:slug", middleware.OptionalAuth(), GetArticle)
	return app
}

func signToken(t *testing.T, userID uint, role string) string {
	t.Helper()
	claims := jwt.MapClaims{
		"id":   userID,
		"role": role,
		"exp":  time.Now().Add(time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return token
}

func getArticle(t *testing.T, app *fiber.App, slug, token string) int {
	t.Helper()
	req := httptest.NewRequest("GET", "/articles/"+slug, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	return resp.StatusCode
}

func TestGetArticleDraftVisibleToAuthor(t *testing.T) {
	app := setupArticleApp(t)

	author := models.User{Name: "Dana", Email: "dana@example.com"}
	require.NoError(t, db.DB.Create(&author).Error)
	stranger := models.User{Name: "Sam", Email: "sam@example.com"}
	require.NoError(t, db.DB.Create(&stranger).Error)

	draft := models.Article{
		Title:    "Gut Health Basics",
		Slug:     "gut-health-basics",
		Content:  "Draft body",
		AuthorID: author.ID,
		Status:   models.ArticleDraft,
	}
	require.NoError(t, db.DB.Create(&draft).Error)

	assert.Equal(t, fiber.StatusOK,
		getArticle(t, app, draft.Slug, signToken(t, author.ID, models.RolePractitioner)))
	assert.Equal(t, fiber.StatusNotFound,
		getArticle(t, app, draft.Slug, ""))
	assert.Equal(t, fiber.StatusNotFound,
		getArticle(t, app, draft.Slug, signToken(t, stranger.ID, models.RolePatient)))
	assert.Equal(t, fiber.StatusOK,
		getArticle(t, app, draft.Slug, signToken(t, stranger.ID, models.RoleAdmin)))
}

func TestGetArticlePublishedIsPublic(t *testing.T) {
	app := setupArticleApp(t)

	author := models.User{Name: "Dana", Email: "dana2@example.com"}
	require.NoError(t, db.DB.Create(&author).Error)

	now := time.Now()
	published := models.Article{
		Title:       "Seasonal Allergies",
		Slug:        "seasonal-allergies",
		Content:     "Body",
		AuthorID:    author.ID,
		Status:      models.ArticlePublished,
		PublishedAt: &now,
	}
	require.NoError(t, db.DB.Create(&published).Error)

	assert.Equal(t, fiber.StatusOK, getArticle(t, app, published.Slug, ""))
}

func TestGetArticleGarbageTokenStaysAnonymous(t *testing.T) {
	app := setupArticleApp(t)

	author := models.User{Name: "Dana", Email: "dana3@example.com"}
	require.NoError(t, db.DB.Create(&author).Error)

	draft := models.Article{
		Title:    "Sleep Hygiene",
		Slug:     "sleep-hygiene",
		Content:  "Draft body",
		AuthorID: author.ID,
		Status:   models.ArticleDraft,
	}
	require.NoError(t, db.DB.Create(&draft).Error)

	assert.Equal(t, fiber.StatusNotFound, getArticle(t, app, draft.Slug, "not-a-jwt"))
}
