package index

import (
	"strings"

	"github.com/goliatone/go-newsroom/pkg/interfaces"
)

// ParseTopics reads the topic filter from query-string values. The "topics"
// key wins over "topic"; each value is comma-split, trimmed, and empty
// entries dropped. Repeated parameters are concatenated.
func ParseTopics(values map[string][]string) []string {
	raw := values["topics"]
	if len(nonEmpty(raw)) == 0 {
		raw = values["topic"]
	}

	var topics []string
	for _, value := range raw {
		for _, part := range strings.Split(value, ",") {
			if trimmed := strings.TrimSpace(part); trimmed != "" {
				topics = append(topics, trimmed)
			}
		}
	}
	return topics
}

// ParseAudience returns the first non-empty audience value.
func ParseAudience(values map[string][]string) string {
	for _, value := range values["audience"] {
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			return trimmed
		}
	}
	return ""
}

// ParseTopicMode reads "topicMode", defaulting to any. Unknown modes are
// returned as written so query validation can reject them.
func ParseTopicMode(values map[string][]string) interfaces.TopicMatchMode {
	for _, value := range values["topicMode"] {
		if trimmed := strings.ToLower(strings.TrimSpace(value)); trimmed != "" {
			return interfaces.TopicMatchMode(trimmed)
		}
	}
	return interfaces.TopicMatchAny
}

func nonEmpty(values []string) []string {
	var out []string
	for _, value := range values {
		if strings.TrimSpace(value) != "" {
			out = append(out, value)
		}
	}
	return out
}
