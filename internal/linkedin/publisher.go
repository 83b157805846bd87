package linkedin

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/influence-hq/influence/internal/models"
	"github.com/rs/zerolog/log"
	"github.com/tidwall/gjson"
)

// gjson paths into the registerUpload response; the dotted vendor keys must be escaped.
const (
	uploadURLPath = `value.uploadMechanism.com\.linkedin\.digitalmedia\.uploading\.MediaUploadHttpRequest.uploadUrl`
	assetPath     = `value.asset`
)

// DefaultMaxImages caps how many carousel images are uploaded per post.
const DefaultMaxImages = 6

// Archive receives a copy of every downloaded image before it is uploaded.
type Archive interface {
	Upload(ctx context.Context, key string, data io.Reader, contentType string, contentLength int64) error
}

// Publisher uploads assets and creates UGC posts. Per-image failures are
// logged and skipped; only the final post submission is reported to the
// caller, and even that as a result value rather than an error.
type Publisher struct {
	httpClient *http.Client
	apiBaseURL string
	maxImages  int
	archive    Archive // optional
}

// NewPublisher creates a new post publisher. archive may be nil.
func NewPublisher(apiBaseURL string, maxImages int, timeout time.Duration, archive Archive) *Publisher {
	if maxImages <= 0 {
		maxImages = DefaultMaxImages
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Publisher{
		httpClient: &http.Client{Timeout: timeout},
		apiBaseURL: strings.TrimSuffix(apiBaseURL, "/"),
		maxImages:  maxImages,
		archive:    archive,
	}
}

// Publish uploads the request's images (carousel posts only) and submits the
// post. Upload failures degrade to fewer media entries; a post with zero
// surviving images is still submitted as a text-only share.
func (p *Publisher) Publish(ctx context.Context, req models.PublishRequest) models.PublishResult {
	authorURN := normalizeAuthorURN(req.AuthorURN)

	var media []MediaEntry
	if strings.EqualFold(req.PostType, models.PostTypeCarousel) && len(req.ImageURLs) > 0 {
		urls := req.ImageURLs
		if len(urls) > p.maxImages {
			log.Debug().
				Int("given", len(urls)).
				Int("max", p.maxImages).
				Msg("Truncating carousel images")
			urls = urls[:p.maxImages]
		}

		for i, imageURL := range urls {
			asset, err := p.uploadImage(ctx, imageURL, req.AccessToken, authorURN)
			if err != nil {
				log.Warn().Err(err).
					Int("image_index", i).
					Str("image_url", imageURL).
					Msg("Image upload failed, skipping")
				continue
			}
			log.Info().Int("image_index", i).Str("asset", asset).Msg("Image uploaded")
			media = append(media, MediaEntry{Status: mediaStatusReady, Media: asset})
		}
	}

	return p.submitPost(ctx, req, authorURN, media)
}

// uploadImage runs the three-step asset protocol: download the image bytes,
// register an upload slot, then push the raw bytes to the returned URL.
func (p *Publisher) uploadImage(ctx context.Context, imageURL, accessToken, authorURN string) (string, error) {
	data, contentType, err := p.downloadImage(ctx, imageURL)
	if err != nil {
		return "", fmt.Errorf("download: %w", err)
	}

	p.archiveImage(ctx, data, contentType)

	uploadURL, asset, err := p.registerUpload(ctx, accessToken, authorURN)
	if err != nil {
		return "", fmt.Errorf("register upload: %w", err)
	}

	if err := p.uploadBytes(ctx, uploadURL, accessToken, data); err != nil {
		return "", fmt.Errorf("upload bytes: %w", err)
	}

	return asset, nil
}

func (p *Publisher) downloadImage(ctx context.Context, imageURL string) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return nil, "", fmt.Errorf("build request: %w", err)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("image fetch returned status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("read image bytes: %w", err)
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "image/jpeg"
	}
	return data, contentType, nil
}

// archiveImage is best effort; a failed archive never fails the upload.
func (p *Publisher) archiveImage(ctx context.Context, data []byte, contentType string) {
	if p.archive == nil || len(data) == 0 {
		return
	}
	key := "posts/" + uuid.New().String() + extensionFor(contentType)
	if err := p.archive.Upload(ctx, key, bytes.NewReader(data), contentType, int64(len(data))); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("Image archive failed")
	}
}

func (p *Publisher) registerUpload(ctx context.Context, accessToken, authorURN string) (uploadURL, asset string, err error) {
	payload := registerUploadPayload{
		RegisterUploadRequest: registerUploadRequest{
			Recipes: []string{feedshareRecipe},
			Owner:   authorURN,
			ServiceRelationships: []serviceRelationship{
				{RelationshipType: "OWNER", Identifier: ugcRelationshipID},
			},
		},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", "", fmt.Errorf("marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		p.apiBaseURL+"/v2/assets?action=registerUpload", bytes.NewReader(body))
	if err != nil {
		return "", "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return "", "", err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", "", fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", "", fmt.Errorf("registration returned status %d: %s", resp.StatusCode, string(respBody))
	}

	uploadURL = gjson.GetBytes(respBody, uploadURLPath).String()
	asset = gjson.GetBytes(respBody, assetPath).String()
	if uploadURL == "" || asset == "" {
		return "", "", fmt.Errorf("registration response missing uploadUrl or asset")
	}
	return uploadURL, asset, nil
}

func (p *Publisher) uploadBytes(ctx context.Context, uploadURL, accessToken string, data []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, uploadURL, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Content-Type", "application/octet-stream")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return fmt.Errorf("binary upload returned status %d", resp.StatusCode)
	}
	return nil
}

func (p *Publisher) submitPost(ctx context.Context, req models.PublishRequest, authorURN string, media []MediaEntry) models.PublishResult {
	category := mediaCategoryNone
	if len(media) > 0 {
		category = mediaCategoryImage
	}

	payload := ugcPostPayload{
		Author:         authorURN,
		LifecycleState: lifecyclePublished,
		SpecificContent: specificContent{
			ShareContent: shareContent{
				ShareCommentary:    textValue{Text: ComposePostText(req.Content)},
				ShareMediaCategory: category,
				Media:              media,
			},
		},
		Visibility: postVisibility{MemberNetworkVisibility: visibilityConnections},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return models.PublishResult{ImagesUploaded: len(media), Error: "marshal post payload: " + err.Error()}
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.apiBaseURL+"/v2/ugcPosts", bytes.NewReader(body))
	if err != nil {
		return models.PublishResult{ImagesUploaded: len(media), Error: "build post request: " + err.Error()}
	}
	httpReq.Header.Set("Authorization", "Bearer "+req.AccessToken)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := p.httpClient.Do(httpReq)
	if err != nil {
		log.Error().Err(err).Msg("Post submission failed")
		return models.PublishResult{ImagesUploaded: len(media), Error: err.Error()}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return models.PublishResult{ImagesUploaded: len(media), Error: "read post response: " + err.Error()}
	}

	if resp.StatusCode != http.StatusCreated {
		log.Error().
			Int("status", resp.StatusCode).
			Str("body", string(respBody)).
			Msg("Post rejected")
		return models.PublishResult{ImagesUploaded: len(media), Error: string(respBody)}
	}

	postID := gjson.GetBytes(respBody, "id").String()
	log.Info().
		Str("post_id", postID).
		Int("images_uploaded", len(media)).
		Msg("Post published")

	return models.PublishResult{
		Success:        true,
		PostID:         postID,
		ImagesUploaded: len(media),
	}
}

// ComposePostText joins the draft text with its hashtags. A hashtag-less
// draft is returned as-is, with no trailing separator.
func ComposePostText(content models.ContentDraft) string {
	if len(content.HashtagSuggestions) == 0 {
		return content.ContentDraft
	}
	return content.ContentDraft + " " + strings.Join(content.HashtagSuggestions, " ")
}

// normalizeAuthorURN accepts either a bare member id or a full person URN.
func normalizeAuthorURN(urn string) string {
	if strings.HasPrefix(urn, "urn:li:") {
		return urn
	}
	return personURNPrefix + urn
}

// extensionFor maps a Content-Type to an archive key suffix.
func extensionFor(contentType string) string {
	switch contentType {
	case "image/png":
		return ".png"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	default:
		return ".jpg"
	}
}
