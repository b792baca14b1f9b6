package articles

import "errors"

var (
	ErrArticlesDirRequired = errors.New("articles: articles directory is required")
	ErrSlugRequired        = errors.New("articles: slug is required")
	ErrSlugInvalid         = errors.New("articles: slug contains invalid characters")
	ErrParserRequired      = errors.New("articles: markdown parser is required")
)
