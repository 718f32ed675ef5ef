package components

import (
	"bytes"
	"fmt"
	"html/template"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/goliatone/go-newsroom/pkg/interfaces"
)

var (
	videoIDPattern   = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)
	postIDPattern    = regexp.MustCompile(`^[0-9]{1,32}$`)
	cssLengthPattern = regexp.MustCompile(`^[0-9]+(\.[0-9]+)?(px|%|vh|rem|em)$`)
	classNamePattern = regexp.MustCompile(`^[A-Za-z0-9_\- :/\[\]\.]*$`)
)

// BuiltInDefinitions returns the element catalogue available to article bodies.
func BuiltInDefinitions() []interfaces.ComponentDefinition {
	return []interfaces.ComponentDefinition{
		alertDefinition(),
		statCardsDefinition(),
		youTubeDefinition(),
		tweetDefinition(),
		specViewerDefinition(),
	}
}

func oneOf(label string, allowed ...string) interfaces.ComponentValidator {
	return func(value any) error {
		str, _ := value.(string)
		for _, candidate := range allowed {
			if str == candidate {
				return nil
			}
		}
		return fmt.Errorf("%s %q not supported", label, str)
	}
}

func matches(label string, pattern *regexp.Regexp) interfaces.ComponentValidator {
	return func(value any) error {
		str, _ := value.(string)
		if !pattern.MatchString(str) {
			return fmt.Errorf("%s %q is invalid", label, str)
		}
		return nil
	}
}

func alertDefinition() interfaces.ComponentDefinition {
	return interfaces.ComponentDefinition{
		Name:        "Alert",
		Description: "Callout box with an optional title; a description replaces the children",
		Category:    "content",
		AllowInner:  true,
		Schema: interfaces.ComponentSchema{
			Params: []interfaces.ComponentParam{
				{Name: "title", Type: interfaces.ComponentParamString},
				{Name: "description", Type: interfaces.ComponentParamString},
				{
					Name:     "variant",
					Type:     interfaces.ComponentParamString,
					Default:  "default",
					Validate: oneOf("alert variant", "default", "destructive", "info", "warning", "success"),
				},
				{Name: "className", Type: interfaces.ComponentParamString, Validate: matches("className", classNamePattern)},
			},
		},
		Template: `<div class="alert alert--{{ .variant }}{{ if .className }} {{ .className }}{{ end }}" role="alert">
{{- if .title }}<div class="alert__title">{{ .title }}</div>{{ end -}}
{{- if .description }}<div class="alert__description">{{ .description }}</div>{{ else }}<div class="alert__body">{{ .Inner }}</div>{{ end -}}
</div>`,
	}
}

var statCardsSchema = map[string]any{
	"type":     "array",
	"minItems": 1,
	"items": map[string]any{
		"type":     "object",
		"required": []any{"stat"},
		"properties": map[string]any{
			"stat":        map[string]any{"type": []any{"string", "number"}},
			"description": map[string]any{"type": "string"},
		},
		"additionalProperties": false,
	},
}

var statCardsTemplate = template.Must(template.New("StatCards").Parse(
	`<div class="stat-cards{{ if .className }} {{ .className }}{{ end }}" style="grid-template-columns: repeat({{ .columns }}, minmax(0, 1fr))">
{{- range .stats }}<div class="stat-card"><div class="stat-card__stat">{{ .stat }}</div>
{{- with .description }}<div class="stat-card__description">{{ . }}</div>{{ end }}</div>{{ end -}}
</div>`))

func statCardsDefinition() interfaces.ComponentDefinition {
	return interfaces.ComponentDefinition{
		Name:        "StatCards",
		Description: "Grid of headline statistics",
		Category:    "data",
		Schema: interfaces.ComponentSchema{
			Params: []interfaces.ComponentParam{
				{Name: "stats", Type: interfaces.ComponentParamArray, Required: true, JSONSchema: statCardsSchema},
				{
					Name: "columns",
					Type: interfaces.ComponentParamInt,
					Validate: func(value any) error {
						if n, _ := value.(int); n < 1 {
							return fmt.Errorf("columns must be at least 1")
						}
						return nil
					},
				},
				{Name: "className", Type: interfaces.ComponentParamString, Validate: matches("className", classNamePattern)},
			},
		},
		Handler: func(_ interfaces.ComponentContext, params map[string]any, _ template.HTML) (template.HTML, error) {
			items, _ := params["stats"].([]any)
			cards := make([]map[string]string, 0, len(items))
			for _, item := range items {
				entry, _ := item.(map[string]any)
				description, _ := entry["description"].(string)
				cards = append(cards, map[string]string{
					"stat":        formatStat(entry["stat"]),
					"description": description,
				})
			}

			columns, ok := params["columns"].(int)
			if !ok {
				columns = len(cards)
			}

			var buf bytes.Buffer
			err := statCardsTemplate.Execute(&buf, map[string]any{
				"stats":     cards,
				"columns":   columns,
				"className": params["className"],
			})
			if err != nil {
				return "", err
			}
			return template.HTML(buf.String()), nil
		},
	}
}

func formatStat(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case float64:
		if v == math.Trunc(v) {
			return strconv.FormatInt(int64(v), 10)
		}
		return strconv.FormatFloat(v, 'f', -1, 64)
	case nil:
		return ""
	default:
		return fmt.Sprint(v)
	}
}

func youTubeDefinition() interfaces.ComponentDefinition {
	return interfaces.ComponentDefinition{
		Name:        "YouTube",
		Description: "Lazy-loaded YouTube player",
		Category:    "media",
		CacheTTL:    time.Hour,
		Schema: interfaces.ComponentSchema{
			Params: []interfaces.ComponentParam{
				{Name: "videoId", Type: interfaces.ComponentParamString, Required: true, Validate: matches("videoId", videoIDPattern)},
				{Name: "title", Type: interfaces.ComponentParamString, Default: "YouTube video"},
			},
		},
		Template: `<div class="embed embed--youtube">
  <iframe src="https://www.youtube-nocookie.com/embed/{{ .videoId }}" title="{{ .title }}" loading="lazy" allow="accelerometer; clipboard-write; encrypted-media; gyroscope; picture-in-picture" allowfullscreen></iframe>
</div>`,
	}
}

func tweetDefinition() interfaces.ComponentDefinition {
	return interfaces.ComponentDefinition{
		Name:        "Tweet",
		Description: "Embedded social post",
		Category:    "media",
		CacheTTL:    time.Hour,
		Schema: interfaces.ComponentSchema{
			Params: []interfaces.ComponentParam{
				{Name: "id", Type: interfaces.ComponentParamString, Required: true, Validate: matches("tweet id", postIDPattern)},
			},
		},
		Template: `<blockquote class="embed embed--tweet" data-tweet-id="{{ .id }}">
  <a href="https://twitter.com/i/web/status/{{ .id }}">View post</a>
</blockquote>`,
	}
}

var specViewerTemplate = template.Must(template.New("SpecViewer").Parse(
	`<div class="spec-viewer{{ if .className }} {{ .className }}{{ end }}">
  <iframe src="{{ .src }}" title="{{ .title }}" style="width: 100%; height: {{ .height }}" loading="lazy"></iframe>
</div>`))

func specViewerDefinition() interfaces.ComponentDefinition {
	return interfaces.ComponentDefinition{
		Name:        "SpecViewer",
		Description: "Inline frame showing a rendered specification document",
		Category:    "media",
		Schema: interfaces.ComponentSchema{
			Params: []interfaces.ComponentParam{
				{Name: "src", Type: interfaces.ComponentParamURL, Required: true},
				{Name: "title", Type: interfaces.ComponentParamString, Default: "Spec Viewer"},
				{Name: "height", Type: interfaces.ComponentParamAny, Default: 600},
				{Name: "className", Type: interfaces.ComponentParamString, Validate: matches("className", classNamePattern)},
			},
		},
		Handler: func(ctx interfaces.ComponentContext, params map[string]any, _ template.HTML) (template.HTML, error) {
			src, _ := params["src"].(string)
			if ctx.Sanitizer != nil {
				if err := ctx.Sanitizer.ValidateURL(src); err != nil {
					return "", err
				}
			}
			height, err := cssHeight(params["height"])
			if err != nil {
				return "", err
			}

			var buf bytes.Buffer
			err = specViewerTemplate.Execute(&buf, map[string]any{
				"src":       src,
				"title":     params["title"],
				"height":    height,
				"className": params["className"],
			})
			if err != nil {
				return "", err
			}
			return template.HTML(buf.String()), nil
		},
	}
}

// cssHeight converts a numeric height to pixels and checks string heights
// against a small set of CSS length units.
func cssHeight(value any) (string, error) {
	switch v := value.(type) {
	case int:
		return fmt.Sprintf("%dpx", v), nil
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64) + "px", nil
	case string:
		trimmed := strings.TrimSpace(v)
		if _, err := strconv.ParseFloat(trimmed, 64); err == nil {
			return trimmed + "px", nil
		}
		if cssLengthPattern.MatchString(trimmed) {
			return trimmed, nil
		}
		return "", fmt.Errorf("%w: height %q", ErrParameterType, v)
	default:
		return "", fmt.Errorf("%w: height %T", ErrParameterType, value)
	}
}
