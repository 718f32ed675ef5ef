package httpapi

import (
	"embed"
	"fmt"
	"net/http"
	"net/url"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/template/django/v3"

	"github.com/goliatone/go-newsroom/internal/markdown"
	"github.com/goliatone/go-newsroom/pkg/interfaces"
)

//go:embed views/*.html
var viewFiles embed.FS

const (
	viewsDir   = "/views"
	viewsExt   = ".html"
	layoutView = "layout"
)

// newViewEngine loads the embedded django templates. Pages render inside
// the layout through its {{ embed }} slot.
func newViewEngine() (*django.Engine, error) {
	engine := django.NewPathForwardingFileSystem(http.FS(viewFiles), viewsDir, viewsExt)
	if err := engine.Load(); err != nil {
		return nil, fmt.Errorf("httpapi: load views: %w", err)
	}
	return engine, nil
}

type link struct {
	Label string
	Href  string
}

type articleSummary struct {
	Title       string
	Description string
	Href        string
	Date        string
	Section     string
	Audiences   []link
	Topics      []link
}

func listBindings(locale, basePath, title, description string, records []interfaces.ArticleRecord) fiber.Map {
	articles := make([]articleSummary, 0, len(records))
	for _, record := range records {
		summary := articleSummary{
			Title:       record.Title,
			Description: record.Description,
			Href:        "/" + locale + "/news/" + url.PathEscape(record.Slug),
			Date:        displayDate(record.Date),
			Section:     record.Section,
		}
		for _, audience := range record.Audiences {
			summary.Audiences = append(summary.Audiences, link{
				Label: audience,
				Href:  "/" + locale + "/news/" + url.PathEscape(audience),
			})
		}
		for _, topic := range record.Topics {
			summary.Topics = append(summary.Topics, link{
				Label: topic,
				Href:  basePath + "?topics=" + url.QueryEscape(topic),
			})
		}
		articles = append(articles, summary)
	}
	return fiber.Map{
		"lang":        locale,
		"title":       title,
		"description": description,
		"articles":    articles,
	}
}

func articleBindings(article *interfaces.Article, body, backHref string) fiber.Map {
	return fiber.Map{
		"lang":        article.Locale,
		"title":       article.Metadata.Title,
		"description": article.Metadata.Description,
		"date":        displayDate(article.Metadata.Date),
		"heroImage":   article.Metadata.HeroImage,
		"readingTime": article.ReadingTime.Text,
		"body":        body,
		"backHref":    backHref,
		"fallback":    article.Fallback,
	}
}

// displayDate formats parseable dates for humans and passes anything else through.
func displayDate(raw string) string {
	parsed, ok := markdown.ParseDate(raw)
	if !ok {
		return raw
	}
	return parsed.Format("January 2, 2006")
}
