package controllers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/holistichub/practitioner-hub/db"
	"github.com/holistichub/practitioner-hub/middleware"
	"github.com/holistichub/practitioner-hub/models"
	"github.com/holistichub/practitioner-hub/quota"
	"github.com/holistichub/practitioner-hub/utils"
)

// CreateArticle creates an article for a practitioner or admin author.
// Practitioner authors are quota-gated by tier; a requested PUBLISHED status
// is coerced to PENDING_REVIEW unless the author is an admin.
func CreateArticle(c *fiber.Ctx) error {
	actor, err := middleware.CurrentActor(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid user ID",
		})
	}
	if actor.Role != models.RolePractitioner && actor.Role != models.RoleAdmin {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Only practitioners and admins can publish articles",
		})
	}

	type ArticleInput struct {
		Title    string               `json:"title"`
		Excerpt  string               `json:"excerpt"`
		Content  string               `json:"content"`
		CoverURL string               `json:"cover_url"`
		Status   models.ArticleStatus `json:"status"`
	}
	input := new(ArticleInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}
	if input.Title == "" || input.Content == "" {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Missing required fields",
			Details: fiber.Map{"required": []string{"title", "content"}},
		})
	}

	article := models.Article{
		Title:    input.Title,
		Excerpt:  input.Excerpt,
		Content:  input.Content,
		CoverURL: input.CoverURL,
		AuthorID: actor.UserID,
	}

	if actor.Role == models.RolePractitioner {
		var practitioner models.Practitioner
		if err := db.DB.First(&practitioner, actor.PractitionerID).Error; err != nil {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "No practitioner profile for this account",
			})
		}
		if err := quota.Admit(db.DB, &practitioner, quota.ResourceArticles); err != nil {
			var denied *quota.DeniedError
			if errors.As(err, &denied) {
				return c.Status(fiber.StatusForbidden).JSON(utils.ErrorResponse{
					Message: denied.Reason,
				})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
				Message: "Failed to check article limit",
				Error:   err.Error(),
			})
		}
		article.PractitionerID = &practitioner.ID
	}

	article.ApplyStatus(input.Status, actor.Role == models.RoleAdmin)

	article.Slug = utils.Slugify(input.Title)
	var collision int64
	db.DB.Model(&models.Article{}).Where("slug = ?", article.Slug).Count(&collision)
	if collision > 0 {
		article.Slug = article.Slug + "-" + utils.SlugSuffix()
	}

	if err := db.DB.Create(&article).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to create article",
			Error:   err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(article)
}

// UpdateArticle updates an article by slug. Only the author or an admin may
// edit; publish gating applies the same as on create.
func UpdateArticle(c *fiber.Ctx) error {
	actor, err := middleware.CurrentActor(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid user ID",
		})
	}

	var article models.Article
	if err := db.DB.Where("slug = ?", c.Params("slug")).First(&article).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Article not found",
		})
	}

	if article.AuthorID != actor.UserID && actor.Role != models.RoleAdmin {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "You don't have permission to update this article",
		})
	}

	type ArticleUpdate struct {
		Title    *string               `json:"title"`
		Excerpt  *string               `json:"excerpt"`
		Content  *string               `json:"content"`
		CoverURL *string               `json:"cover_url"`
		Status   *models.ArticleStatus `json:"status"`
	}
	input := new(ArticleUpdate)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}

	if input.Title != nil {
		article.Title = *input.Title
	}
	if input.Excerpt != nil {
		article.Excerpt = *input.Excerpt
	}
	if input.Content != nil {
		article.Content = *input.Content
	}
	if input.CoverURL != nil {
		article.CoverURL = *input.CoverURL
	}
	if input.Status != nil {
		article.ApplyStatus(*input.Status, actor.Role == models.RoleAdmin)
	}

	if err := db.DB.Save(&article).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to update article",
			Error:   err.Error(),
		})
	}

	return c.JSON(article)
}

// GetArticles lists published articles for the public, paginated.
func GetArticles(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "10"))
	offset := (page - 1) * limit

	query := db.DB.Model(&models.Article{}).Where("status = ?", models.ArticlePublished)

	var count int64
	query.Count(&count)

	var articles []models.Article
	if err := query.Preload("Practitioner").
		Order("published_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&articles).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch articles",
			Error:   err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"articles": articles,
		"total":    count,
		"page":     page,
		"limit":    limit,
		"pages":    (int(count) + limit - 1) / limit,
	})
}

// GetMyArticles lists the authenticated author's own articles in every
// status, so drafts and pending pieces stay reachable.
func GetMyArticles(c *fiber.Ctx) error {
	actor, err := middleware.CurrentActor(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid user ID",
		})
	}

	var articles []models.Article
	if err := db.DB.Where("author_id = ?", actor.UserID).
		Order("updated_at DESC").
		Find(&articles).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch articles",
			Error:   err.Error(),
		})
	}

	return c.JSON(articles)
}

// GetArticle returns one article by slug. Unpublished articles are reported
// as not found to anyone but their author or staff, so drafts don't leak.
func GetArticle(c *fiber.Ctx) error {
	var article models.Article
	if err := db.DB.Preload("Practitioner").Where("slug = ?", c.Params("slug")).First(&article).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Article not found",
		})
	}

	if article.Status != models.ArticlePublished {
		actor, err := middleware.CurrentActor(c)
		if err != nil || (article.AuthorID != actor.UserID && !actor.IsStaff()) {
			return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
				Message: "Article not found",
			})
		}
	}

	return c.JSON(article)
}
