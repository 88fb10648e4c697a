// Package prompt renders the versioned analysis prompt from an embedded
// template and the current batch.
package prompt

import (
	"embed"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"marketmood/internal/model"
)

//go:embed templates/*.txt
var templateFS embed.FS

// ErrTemplateNotFound means the requested (name, version) template does
// not exist. This is a misconfiguration and fails the cycle.
var ErrTemplateNotFound = errors.New("prompt template not found")

const (
	DefaultTemplateName    = "sentiment"
	DefaultTemplateVersion = "v1"

	noTweetsSentinel  = "No individual tweets were collected in this window."
	noThreadsSentinel = "No threads were collected in this window."
)

// Builder loads templates lazily and caches them by (name, version) for
// the life of the process. The cache is only invalidated explicitly.
type Builder struct {
	mu      sync.Mutex
	cache   map[string]string
	name    string
	version string
}

func NewBuilder() *Builder {
	return &Builder{
		cache:   make(map[string]string),
		name:    DefaultTemplateName,
		version: DefaultTemplateVersion,
	}
}

// Build renders the current template version against the batch.
func (b *Builder) Build(batch model.Batch) (string, error) {
	tpl, err := b.loadTemplate(b.name, b.version)
	if err != nil {
		return "", err
	}

	avgLikes, avgRetweets := 0.0, 0.0
	if n := len(batch.Posts); n > 0 {
		var likes, retweets int
		for _, p := range batch.Posts {
			likes += p.Likes
			retweets += p.Retweets
		}
		avgLikes = float64(likes) / float64(n)
		avgRetweets = float64(retweets) / float64(n)
	}

	highEngagement := 0
	for _, p := range batch.Posts {
		if float64(p.Likes) > 2*avgLikes {
			highEngagement++
		}
	}

	data := map[string]string{
		"tweet_count":           fmt.Sprintf("%d", len(batch.Posts)),
		"thread_count":          fmt.Sprintf("%d", len(batch.ThreadItems)),
		"total_engagement":      fmt.Sprintf("%d", batch.TotalEngagement),
		"total_likes":           fmt.Sprintf("%d", batch.TotalLikes),
		"total_retweets":        fmt.Sprintf("%d", batch.TotalRetweets),
		"avg_likes":             fmt.Sprintf("%.1f", avgLikes),
		"avg_retweets":          fmt.Sprintf("%.1f", avgRetweets),
		"high_engagement_count": fmt.Sprintf("%d", highEngagement),
		"tweets":                renderPosts(batch.Posts),
		"threads":               renderThreads(batch.ThreadItems),
	}

	return Render(tpl, data), nil
}

// ClearCache drops every cached template. The next Build reloads from the
// embedded files.
func (b *Builder) ClearCache() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.cache = make(map[string]string)
}

func (b *Builder) loadTemplate(name, version string) (string, error) {
	key := name + ":" + version

	b.mu.Lock()
	defer b.mu.Unlock()

	if tpl, ok := b.cache[key]; ok {
		return tpl, nil
	}

	raw, err := templateFS.ReadFile(fmt.Sprintf("templates/%s_%s.txt", name, version))
	if err != nil {
		return "", fmt.Errorf("%w: %s %s", ErrTemplateNotFound, name, version)
	}

	b.cache[key] = string(raw)
	return string(raw), nil
}

// Render substitutes every {{key}} in the template with its value. The
// replacement is a literal find/replace, not a template language.
func Render(tpl string, data map[string]string) string {
	out := tpl
	for key, value := range data {
		out = strings.ReplaceAll(out, "{{"+key+"}}", value)
	}
	return out
}

func renderPosts(posts []model.Post) string {
	if len(posts) == 0 {
		return noTweetsSentinel
	}

	var sb strings.Builder
	for i, p := range posts {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(fmt.Sprintf("Tweet %d by @%s (%s)\n", i+1, p.Username, p.CreatedAt.Format(time.RFC3339)))
		sb.WriteString(p.Text + "\n")
		sb.WriteString(fmt.Sprintf("Engagement: %d likes, %d retweets, %d replies, %d views\n",
			p.Likes, p.Retweets, p.Replies, p.Views))
		sb.WriteString("Hashtags: " + hashtagList(p.Hashtags) + "\n")
	}
	return sb.String()
}

func renderThreads(threads []model.ThreadItem) string {
	if len(threads) == 0 {
		return noThreadsSentinel
	}

	var sb strings.Builder
	for i, t := range threads {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(fmt.Sprintf("Thread %d by @%s (%d parts, %s)\n", i+1, t.Username, t.TotalParts, t.CreatedAt.Format(time.RFC3339)))
		sb.WriteString(t.Text + "\n")
		sb.WriteString(fmt.Sprintf("Engagement: %d likes, %d retweets\n", t.Likes, t.Retweets))
		sb.WriteString("Hashtags: " + hashtagList(t.Hashtags) + "\n")
	}
	return sb.String()
}

func hashtagList(tags []string) string {
	if len(tags) == 0 {
		return "None"
	}
	return strings.Join(tags, ", ")
}
