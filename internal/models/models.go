package models

import (
	"time"

	"github.com/google/uuid"
)

// Post types understood by the generation and publish pipeline.
const (
	PostTypeArticle  = "article"
	PostTypeCarousel = "carousel"
)

// User represents a registered account
type User struct {
	ID           uuid.UUID `json:"id"`
	FullName     string    `json:"full_name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// ClientProfile is the professional profile content is generated for.
// Sourced from the LinkedIn userinfo endpoint or a profile CSV export;
// WebsiteSummary is filled by website enrichment when a website is known.
type ClientProfile struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	Industry       string    `json:"industry"`
	About          string    `json:"about"`
	Website        string    `json:"website"`
	WebsiteSummary string    `json:"website_summary,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// GenerationRequest is the immutable input to content drafting
type GenerationRequest struct {
	Profile        ClientProfile `json:"profile"`
	PostType       string        `json:"post_type"` // article, carousel
	TargetIndustry string        `json:"target_industry"`
	ContentGoals   string        `json:"content_goals"`
}

// ContentDraft is the structured output the model must return.
// All three fields must survive JSON parsing for a draft to exist at all;
// individually missing fields are tolerated downstream as empty.
type ContentDraft struct {
	ContentDraft       string   `json:"content_draft"`
	HashtagSuggestions []string `json:"hashtag_suggestions"`
	ImageInstructions  []string `json:"image_instructions"`
}

// GeneratedPost is what the generate phase hands back for review before publish
type GeneratedPost struct {
	Content   *ContentDraft `json:"content"`
	ImageURLs []string      `json:"image_urls"`
}

// PublishRequest carries everything the publish phase needs; no state is
// shared with the generate phase.
type PublishRequest struct {
	Content     ContentDraft `json:"content"`
	ImageURLs   []string     `json:"image_urls"`
	PostType    string       `json:"post_type"`
	AuthorURN   string       `json:"author_urn"`
	AccessToken string       `json:"access_token"`
}

// PublishResult reports the outcome of a publish attempt. Submission
// failures are carried here, not raised.
type PublishResult struct {
	Success        bool   `json:"success"`
	PostID         string `json:"post_id,omitempty"`
	ImagesUploaded int    `json:"images_uploaded"`
	Error          string `json:"error,omitempty"`
}

// Token is the result of an OAuth code exchange
type Token struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
	Scope       string `json:"scope,omitempty"`
}
