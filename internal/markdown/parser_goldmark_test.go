package markdown

import (
	"strings"
	"testing"

	"github.com/goliatone/go-newsroom/pkg/interfaces"
)

func TestGoldmarkParserParse(t *testing.T) {
	parser := NewGoldmarkParser(interfaces.ParseOptions{})

	html, err := parser.Parse([]byte("# Heading\n\nHello **world**"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	got := string(html)
	if !strings.Contains(got, "<h1") || !strings.Contains(got, "Heading</h1>") {
		t.Fatalf("expected rendered HTML to include <h1>Heading</h1>, got %q", got)
	}
	if !strings.Contains(got, "<strong>world</strong>") {
		t.Fatalf("expected rendered HTML to include <strong>, got %q", got)
	}
}

func TestGoldmarkParserCodeRendering(t *testing.T) {
	parser := NewGoldmarkParser(interfaces.ParseOptions{})

	source := "Use `a < b` inline.\n\n```go\nfmt.Println(\"<hi>\")\n```\n\n    indented\n"
	html, err := parser.Parse([]byte(source))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	got := string(html)

	if !strings.Contains(got, `<code class="code-inline">a &lt; b</code>`) {
		t.Fatalf("expected inline code span, got %q", got)
	}
	if !strings.Contains(got, `<pre class="code-block"><code class="language-go" data-language="go">fmt.Println(&quot;&lt;hi&gt;&quot;)`) {
		t.Fatalf("expected fenced block with language, got %q", got)
	}
	if !strings.Contains(got, `<pre class="code-block"><code>indented`) {
		t.Fatalf("expected indented block, got %q", got)
	}
}

func TestGoldmarkParserSafeMode(t *testing.T) {
	parser := NewGoldmarkParser(interfaces.ParseOptions{})
	source := []byte("<div class=\"raw\">x</div>\n")

	unsafe, err := parser.Parse(source)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if !strings.Contains(string(unsafe), `<div class="raw">`) {
		t.Fatalf("expected raw HTML passthrough by default, got %q", unsafe)
	}

	safe, err := parser.ParseWithOptions(source, interfaces.ParseOptions{SafeMode: true})
	if err != nil {
		t.Fatalf("ParseWithOptions: %v", err)
	}
	if strings.Contains(string(safe), `<div class="raw">`) {
		t.Fatalf("expected raw HTML to be omitted in safe mode, got %q", safe)
	}
}

func TestGoldmarkParserHardWrapsAndExtensions(t *testing.T) {
	parser := NewGoldmarkParser(interfaces.ParseOptions{})

	html, err := parser.ParseWithOptions([]byte("line one\nline two"), interfaces.ParseOptions{HardWraps: true})
	if err != nil {
		t.Fatalf("ParseWithOptions: %v", err)
	}
	if !strings.Contains(string(html), "<br>") {
		t.Fatalf("expected hard wrap, got %q", html)
	}

	table := "| a | b |\n|---|---|\n| 1 | 2 |\n"
	html, err = parser.ParseWithOptions([]byte(table), interfaces.ParseOptions{Extensions: []string{"tables"}})
	if err != nil {
		t.Fatalf("ParseWithOptions: %v", err)
	}
	if !strings.Contains(string(html), "<table>") {
		t.Fatalf("expected table extension, got %q", html)
	}
}
