package generator

import "testing"

func TestRoutesArticleURL(t *testing.T) {
	routes := NewRoutes("https://example.com/")

	got, err := routes.ArticleURL("first-post")
	if err != nil {
		t.Fatalf("ArticleURL: %v", err)
	}
	if got != "https://example.com/articles/first-post/" {
		t.Fatalf("ArticleURL = %q", got)
	}
}

func TestRoutesURL(t *testing.T) {
	routes := NewRoutes("https://example.com")

	got, err := routes.URL(RouteArticlesIndex)
	if err != nil {
		t.Fatalf("URL: %v", err)
	}
	if got != "https://example.com/articles/" {
		t.Fatalf("URL = %q", got)
	}

	if _, err := routes.URL("missing-route"); err == nil {
		t.Fatalf("expected an error for an unknown route")
	}
}

func TestRoutesAbsolute(t *testing.T) {
	routes := NewRoutes("https://example.com")

	cases := map[string]string{
		"/":        "https://example.com/",
		"":         "https://example.com/",
		"/videos/": "https://example.com/videos/",
		"videos/":  "https://example.com/videos/",
	}
	for path, want := range cases {
		if got := routes.Absolute(path); got != want {
			t.Fatalf("Absolute(%q) = %q, want %q", path, got, want)
		}
	}
}
