package generator

import (
	"fmt"
	"strings"

	urlkit "github.com/goliatone/go-urlkit"
)

// Route names registered with the urlkit manager.
const (
	RouteHome          = "home"
	RouteArticlesIndex = "articles_index"
	RouteArticle       = "article"
	RouteVideos        = "videos"
)

const siteGroup = "site"

// Routes resolves site URLs through a go-urlkit route manager so canonical
// URLs, sitemap entries, and feed links all come from one place.
type Routes struct {
	manager *urlkit.RouteManager
	baseURL string
}

// NewRoutes builds the route table for the article site anchored at baseURL.
func NewRoutes(baseURL string) *Routes {
	base := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	manager := urlkit.NewRouteManager(&urlkit.Config{
		Groups: []urlkit.GroupConfig{
			{
				Name:    siteGroup,
				BaseURL: base,
				Paths: map[string]string{
					RouteHome:          "/",
					RouteArticlesIndex: "/articles/",
					RouteArticle:       "/articles/:slug/",
					RouteVideos:        "/videos/",
				},
			},
		},
	})
	return &Routes{manager: manager, baseURL: base}
}

// BaseURL returns the configured site base URL without a trailing slash.
func (r *Routes) BaseURL() string {
	return r.baseURL
}

// URL resolves a parameterless route to an absolute URL.
func (r *Routes) URL(route string) (string, error) {
	return r.build(route, nil)
}

// ArticleURL resolves the canonical URL for an article slug.
func (r *Routes) ArticleURL(slug string) (string, error) {
	return r.build(RouteArticle, map[string]any{"slug": slug})
}

func (r *Routes) build(route string, params map[string]any) (url string, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("generator: resolve route %q: %v", route, rec)
		}
	}()
	builder := r.manager.Group(siteGroup).Builder(route)
	for key, val := range params {
		builder.WithParam(key, val)
	}
	return builder.Build()
}

// Absolute joins an arbitrary site-relative path onto the base URL. Used for
// configured static routes that fall outside the registered table.
func (r *Routes) Absolute(path string) string {
	path = strings.TrimSpace(path)
	if path == "" || path == "/" {
		return r.baseURL + "/"
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return r.baseURL + path
}
