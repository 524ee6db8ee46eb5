package loader

import (
	"context"
)

// Article represents a source document that can be loaded into text for
// evidence extraction. Location is either a web URL or an object key,
// depending on the loader.
//
// The actual content is retrieved via the associated ArticleLoader.
type Article struct {
	ID         string
	Location   string
	SourceName string
	MaxTokens  int
	Loader     ArticleLoader
}

// NewArticleParams defines the input parameters for creating a new Article.
type NewArticleParams struct {
	ID         string
	Location   string
	SourceName string
	MaxTokens  int
	Loader     ArticleLoader
}

// NewArticle creates a new Article using the provided parameters.
func NewArticle(params NewArticleParams) Article {
	return Article{
		ID:         params.ID,
		Location:   params.Location,
		SourceName: params.SourceName,
		MaxTokens:  params.MaxTokens,
		Loader:     params.Loader,
	}
}

// GetText retrieves the raw text content of the article using its Loader.
//
// Example:
//
//	text, err := article.GetText(ctx)
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Println(string(text))
func (a *Article) GetText(ctx context.Context) ([]byte, error) {
	return a.Loader.GetArticleText(ctx, *a)
}

// Source returns the identifier under which evidence from this article is
// attributed. Falls back to the location when no source name is set.
func (a *Article) Source() string {
	if a.SourceName != "" {
		return a.SourceName
	}
	return a.Location
}

// ArticleLoader defines the interface for loading the contents of an Article.
// Implementations may load articles from the web, object storage, or other
// sources.
type ArticleLoader interface {
	GetArticleText(ctx context.Context, article Article) ([]byte, error)
}

// CacheKey returns the cache key loaders use for an article.
func CacheKey(article Article) string {
	return article.ID + ":" + article.Location
}
