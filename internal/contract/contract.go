package contract

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/routers"
	"github.com/getkin/kin-openapi/routers/legacy"

	"tc-batch/internal/ir"
	"tc-batch/internal/vars"
)

type Checker struct {
	doc    *openapi3.T
	router routers.Router
}

func LoadFromFile(path string) (*Checker, error) {
	loader := &openapi3.Loader{IsExternalRefsAllowed: true}
	doc, err := loader.LoadFromFile(path)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	return build(doc)
}

func LoadFromBytes(b []byte) (*Checker, error) {
	loader := &openapi3.Loader{IsExternalRefsAllowed: true}
	doc, err := loader.LoadFromData(b)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	return build(doc)
}

func build(doc *openapi3.T) (*Checker, error) {
	// Strict: if the spec is invalid, fail fast with a clear message.
	if err := doc.Validate(context.Background()); err != nil {
		return nil, fmt.Errorf("validate spec: %w", err)
	}
	r, err := legacy.NewRouter(doc)
	if err != nil {
		return nil, fmt.Errorf("router: %w", err)
	}
	return &Checker{doc: doc, router: r}, nil
}

func (c *Checker) Doc() *openapi3.T { return c.doc }

// Unrouted describes a collection item whose request does not resolve to
// any route in the OpenAPI document.
type Unrouted struct {
	Item   string `json:"item"`
	Method string `json:"method"`
	URL    string `json:"url"`
	Reason string `json:"reason"`
}

var leftoverPlaceholderRe = regexp.MustCompile(`\{\{[^}]*\}\}`)

// CheckCollection verifies that every item's method and URL resolve to a
// route in the document. Template placeholders are expanded with v first;
// any placeholder still unresolved is treated as a single path parameter
// value. The result is informational, never fatal.
func (c *Checker) CheckCollection(col *ir.Collection, v map[string]string) []Unrouted {
	var out []Unrouted
	for _, it := range col.Items {
		rawURL := vars.Expand(it.URL, v)
		rawURL = leftoverPlaceholderRe.ReplaceAllString(rawURL, "1")
		if !strings.Contains(rawURL, "://") {
			rawURL = "http://localhost" + ensureLeadingSlash(rawURL)
		}

		u, err := url.Parse(rawURL)
		if err != nil {
			out = append(out, Unrouted{Item: it.Name, Method: it.Method, URL: it.URL, Reason: fmt.Sprintf("parse url: %v", err)})
			continue
		}
		req := &http.Request{Method: it.Method, URL: u}
		if _, _, err := c.router.FindRoute(req); err != nil {
			out = append(out, Unrouted{Item: it.Name, Method: it.Method, URL: it.URL, Reason: err.Error()})
		}
	}
	return out
}

func ensureLeadingSlash(s string) string {
	if strings.HasPrefix(s, "/") {
		return s
	}
	return "/" + s
}
