package handler

import (
	"net/http"
	"time"

	"github.com/confessd-dev/confessd/internal/order"
	"github.com/confessd-dev/confessd/shared/domain"
	"github.com/confessd-dev/confessd/shared/utils"
)

// feedPost is the display-shaped view of one confession: the raw text plus
// rendered HTML and glyph/label lookups the presentation layer needs.
type feedPost struct {
	Id        string           `json:"id"`
	Text      string           `json:"text"`
	HTML      string           `json:"html"`
	Tag       string           `json:"tag"`
	TagLabel  string           `json:"tag_label"`
	CreatedAt string           `json:"created_at"`
	Reactions []feedReaction   `json:"reactions"`
	Author    *domain.Identity `json:"author,omitempty"`
}

type feedReaction struct {
	Kind  string `json:"kind"`
	Glyph string `json:"glyph"`
	Label string `json:"label"`
	Count int64  `json:"count"`
}

type feedResponse struct {
	Sort  string     `json:"sort"`
	Posts []feedPost `json:"posts"`
}

// GetFeed returns all known posts under the requested sort mode.
// Unknown modes silently fall back to newest.
func (h *Handler) GetFeed(w http.ResponseWriter, r *http.Request) {
	mode := domain.ParseSortMode(r.URL.Query().Get("sort"))
	posts := order.Order(h.posts.All(), mode)

	resp := feedResponse{Sort: mode, Posts: make([]feedPost, 0, len(posts))}
	for _, post := range posts {
		resp.Posts = append(resp.Posts, h.toFeedPost(post))
	}
	utils.WriteJSON(w, http.StatusOK, resp)
}

func (h *Handler) toFeedPost(post domain.Post) feedPost {
	out := feedPost{
		Id:        post.Id,
		Text:      post.Text,
		HTML:      h.processor.Render(post.Text),
		Tag:       post.Tag,
		TagLabel:  post.TagLabel,
		CreatedAt: post.CreatedAt.UTC().Format(time.RFC3339Nano),
		Author:    post.Author,
	}
	// Only the closed kind set is displayed; unknown kinds stay internal.
	for _, kind := range domain.ReactionKinds {
		out.Reactions = append(out.Reactions, feedReaction{
			Kind:  kind,
			Glyph: domain.ReactionGlyphs[kind],
			Label: domain.ReactionLabels[kind],
			Count: post.Reactions[kind],
		})
	}
	return out
}
