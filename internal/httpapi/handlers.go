package httpapi

import (
	"crypto/subtle"
	"net/url"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	revalidatecmd "github.com/goliatone/go-newsroom/internal/commands/revalidate"
	"github.com/goliatone/go-newsroom/internal/index"
	"github.com/goliatone/go-newsroom/internal/runtimeconfig"
	"github.com/goliatone/go-newsroom/pkg/interfaces"
)

func (s *Server) home(c *fiber.Ctx) error {
	return c.Redirect("/"+url.PathEscape(s.cfg.DefaultLocale)+"/news", fiber.StatusFound)
}

func (s *Server) health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

// listNews renders the published articles of the requested language.
func (s *Server) listNews(c *fiber.Ctx) error {
	locale := c.Params("locale")
	values := queryValues(c)

	records, err := s.index.Query(c.UserContext(), interfaces.ArticleQuery{
		Locale:    locale,
		Audience:  index.ParseAudience(values),
		Topics:    index.ParseTopics(values),
		TopicMode: index.ParseTopicMode(values),
		Status:    interfaces.StatusPublished,
	})
	if err != nil {
		return err
	}

	basePath := "/" + locale + "/news"
	return c.Render("list", listBindings(locale, basePath, "Latest news", "Updates, ecosystem news, and more.", records))
}

// sectionOrArticle serves a configured section listing, or the article named by slug.
func (s *Server) sectionOrArticle(c *fiber.Ctx) error {
	locale := c.Params("locale")
	slug := c.Params("slug")

	if section, ok := s.cfg.Sections.Lookup(slug); ok {
		return s.listSection(c, locale, section)
	}

	article, err := s.articles.Load(c.UserContext(), slug, locale)
	if err != nil {
		return err
	}
	body, err := s.articles.Render(c.UserContext(), article)
	if err != nil {
		return err
	}

	return c.Render("article", articleBindings(article, string(body), "/"+locale+"/news"))
}

func (s *Server) listSection(c *fiber.Ctx, locale string, section runtimeconfig.SectionConfig) error {
	values := queryValues(c)
	query := interfaces.ArticleQuery{
		Locale:    locale,
		Audience:  section.Audience,
		Topics:    index.ParseTopics(values),
		TopicMode: index.ParseTopicMode(values),
		Status:    interfaces.StatusPublished,
	}
	if section.EnglishOnly {
		query.Locale = englishLocale
	}

	records, err := s.index.Query(c.UserContext(), query)
	if err != nil {
		return err
	}

	title := section.Title
	if title == "" {
		title = section.Name
	}
	basePath := "/" + locale + "/news/" + section.Name
	return c.Render("list", listBindings(locale, basePath, title, section.Description, records))
}

func (s *Server) apiListNews(c *fiber.Ctx) error {
	values := queryValues(c)
	query := interfaces.ArticleQuery{
		Locale:    first(values, "locale"),
		Audience:  index.ParseAudience(values),
		Section:   first(values, "section"),
		Topics:    index.ParseTopics(values),
		TopicMode: index.ParseTopicMode(values),
		Status:    interfaces.ArticleStatus(strings.ToLower(first(values, "status"))),
	}

	records, err := s.index.Query(c.UserContext(), query)
	if err != nil {
		return err
	}
	if records == nil {
		records = []interfaces.ArticleRecord{}
	}
	return c.JSON(fiber.Map{
		"items": records,
		"total": len(records),
	})
}

func (s *Server) apiArticle(c *fiber.Ctx) error {
	article, err := s.articles.Load(c.UserContext(), c.Params("slug"), c.Params("locale"))
	if err != nil {
		return err
	}
	body, err := s.articles.Render(c.UserContext(), article)
	if err != nil {
		return err
	}
	return c.JSON(articleResponse{
		Frontmatter: article.Frontmatter,
		ReadingTime: article.ReadingTime,
		Body:        string(body),
		Locale:      article.Locale,
		Fallback:    article.Fallback,
	})
}

type articleResponse struct {
	Frontmatter map[string]any         `json:"frontmatter"`
	ReadingTime interfaces.ReadingTime `json:"readingTime"`
	Body        string                 `json:"body"`
	Locale      string                 `json:"locale"`
	Fallback    bool                   `json:"fallback"`
}

type revalidateRequest struct {
	Tag string `json:"tag"`
}

func (s *Server) apiRevalidate(c *fiber.Ctx) error {
	if s.revalidate == nil {
		return fiber.NewError(fiber.StatusNotImplemented, "revalidation is not configured")
	}
	if token := s.cfg.RevalidateToken; token != "" && !tokenMatches(c.Get(RevalidateHeader), token) {
		return ErrRevalidateUnauthorized
	}

	var req revalidateRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid revalidation payload")
		}
	}
	if req.Tag == "" {
		req.Tag = c.Query("tag")
	}

	result := &revalidatecmd.RevalidateResult{}
	if err := s.revalidate.Execute(c.UserContext(), revalidatecmd.RevalidateIndexCommand{
		Tag:    req.Tag,
		Result: result,
	}); err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"revalidated": result.Revalidated,
		"tag":         result.Tag,
		"now":         time.Now().UnixMilli(),
	})
}

func tokenMatches(presented, expected string) bool {
	return subtle.ConstantTimeCompare([]byte(presented), []byte(expected)) == 1
}

// queryValues collects every query parameter, keeping repeated keys.
func queryValues(c *fiber.Ctx) map[string][]string {
	values := map[string][]string{}
	c.Context().QueryArgs().VisitAll(func(key, value []byte) {
		k := string(key)
		values[k] = append(values[k], string(value))
	})
	return values
}

func first(values map[string][]string, key string) string {
	for _, value := range values[key] {
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			return trimmed
		}
	}
	return ""
}

