package linkedin

// Fixed values the UGC post API expects.
const (
	lifecyclePublished    = "PUBLISHED"
	visibilityConnections = "CONNECTIONS"
	mediaCategoryImage    = "IMAGE"
	mediaCategoryNone     = "NONE"

	feedshareRecipe   = "urn:li:digitalmediaRecipe:feedshare-image"
	ugcRelationshipID = "urn:li:userGeneratedContent"
	personURNPrefix   = "urn:li:person:"
	memberSocialScope = "w_member_social"
	mediaStatusReady  = "READY"
)

// MediaEntry is one successfully uploaded asset attached to a post
type MediaEntry struct {
	Status string `json:"status"`
	Media  string `json:"media"`
}

// UserInfo is the OpenID userinfo response for the authorized member
type UserInfo struct {
	Sub        string `json:"sub"`
	Name       string `json:"name"`
	GivenName  string `json:"given_name"`
	FamilyName string `json:"family_name"`
	Email      string `json:"email"`
	Picture    string `json:"picture"`
}

type registerUploadPayload struct {
	RegisterUploadRequest registerUploadRequest `json:"registerUploadRequest"`
}

type registerUploadRequest struct {
	Recipes              []string              `json:"recipes"`
	Owner                string                `json:"owner"`
	ServiceRelationships []serviceRelationship `json:"serviceRelationships"`
}

type serviceRelationship struct {
	RelationshipType string `json:"relationshipType"`
	Identifier       string `json:"identifier"`
}

type ugcPostPayload struct {
	Author          string          `json:"author"`
	LifecycleState  string          `json:"lifecycleState"`
	SpecificContent specificContent `json:"specificContent"`
	Visibility      postVisibility  `json:"visibility"`
}

type specificContent struct {
	ShareContent shareContent `json:"com.linkedin.ugc.ShareContent"`
}

type shareContent struct {
	ShareCommentary    textValue    `json:"shareCommentary"`
	ShareMediaCategory string       `json:"shareMediaCategory"`
	Media              []MediaEntry `json:"media,omitempty"`
}

type textValue struct {
	Text string `json:"text"`
}

type postVisibility struct {
	MemberNetworkVisibility string `json:"com.linkedin.ugc.MemberNetworkVisibility"`
}
