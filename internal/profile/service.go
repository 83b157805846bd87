package profile

import (
	"context"
	"encoding/csv"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/influence-hq/influence/internal/database"
	"github.com/influence-hq/influence/internal/linkedin"
	"github.com/influence-hq/influence/internal/models"
	gocache "github.com/patrickmn/go-cache"
	"github.com/rs/zerolog/log"
)

// websiteSummaryLimit caps how much scraped website text is kept on a profile.
const websiteSummaryLimit = 200

// Service assembles client profiles from a CSV export, the LinkedIn
// userinfo endpoint, and best-effort website enrichment.
type Service struct {
	httpClient *http.Client
	linkedin   *linkedin.Client
	repo       *database.ProfileRepository
	cache      *gocache.Cache
	csvPath    string
}

// NewService creates a new profile service. linkedin may be nil when no
// OAuth app is configured; the CSV path is then the only source.
func NewService(li *linkedin.Client, repo *database.ProfileRepository, csvPath string, cacheTTL, scrapeTimeout time.Duration) *Service {
	if scrapeTimeout <= 0 {
		scrapeTimeout = 10 * time.Second
	}
	return &Service{
		httpClient: &http.Client{Timeout: scrapeTimeout},
		linkedin:   li,
		repo:       repo,
		cache:      gocache.New(cacheTTL, 2*cacheTTL),
		csvPath:    csvPath,
	}
}

// Refresh rebuilds the profile from its sources, enriches it, persists a
// snapshot and returns it. The CSV export is authoritative for the profile
// fields; userinfo only fills gaps when a token is supplied.
func (s *Service) Refresh(ctx context.Context, accessToken string) (*models.ClientProfile, error) {
	p, err := s.FromCSV(s.csvPath)
	if err != nil {
		log.Warn().Err(err).Str("path", s.csvPath).Msg("Profile CSV unavailable")
		p = &models.ClientProfile{}
	}

	if accessToken != "" && s.linkedin != nil {
		if info, err := s.userInfo(ctx, accessToken); err != nil {
			log.Warn().Err(err).Msg("LinkedIn userinfo lookup failed")
		} else if p.Name == "" {
			p.Name = info.Name
		}
	}

	if p.Name == "" {
		return nil, fmt.Errorf("no profile source available")
	}

	s.Enrich(ctx, p)

	p.ID = uuid.New()
	p.CreatedAt = time.Now().UTC()
	if err := s.repo.Save(ctx, p); err != nil {
		return nil, fmt.Errorf("save profile: %w", err)
	}

	log.Info().Str("name", p.Name).Str("industry", p.Industry).Msg("Client profile refreshed")
	return p, nil
}

// Latest returns the most recently stored profile.
func (s *Service) Latest(ctx context.Context) (*models.ClientProfile, error) {
	return s.repo.Latest(ctx)
}

// FromCSV reads the first data row of a LinkedIn profile export.
func (s *Service) FromCSV(path string) (*models.ClientProfile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // exports pad trailing columns inconsistently

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}
	row, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read csv row: %w", err)
	}

	col := make(map[string]int, len(header))
	for i, name := range header {
		col[name] = i
	}
	field := func(name string) string {
		i, ok := col[name]
		if !ok || i >= len(row) {
			return ""
		}
		return row[i]
	}

	p := &models.ClientProfile{
		Name:     joinName(field("First Name"), field("Last Name")),
		About:    field("Summary"),
		Industry: field("Industry"),
		Website:  field("Websites"),
	}
	if p.Name == "" {
		return nil, fmt.Errorf("csv row has no name")
	}
	return p, nil
}

// Enrich fetches the profile's website and stores a short text summary.
// Best effort: any failure leaves the profile unchanged.
func (s *Service) Enrich(ctx context.Context, p *models.ClientProfile) {
	if p.Website == "" {
		return
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.Website, nil)
	if err != nil {
		log.Warn().Err(err).Str("website", p.Website).Msg("Invalid website URL")
		return
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		log.Warn().Err(err).Str("website", p.Website).Msg("Website fetch failed")
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Warn().Int("status", resp.StatusCode).Str("website", p.Website).Msg("Website fetch failed")
		return
	}

	summary := ExtractText(resp.Body, websiteSummaryLimit)
	if summary == "" {
		return
	}
	p.WebsiteSummary = summary
	log.Debug().Str("website", p.Website).Str("snippet", summary).Msg("Website enrichment complete")
}

// userInfo looks up the member profile, caching per token so repeated
// generate calls don't re-fetch it.
func (s *Service) userInfo(ctx context.Context, accessToken string) (*linkedin.UserInfo, error) {
	if cached, ok := s.cache.Get(accessToken); ok {
		return cached.(*linkedin.UserInfo), nil
	}

	info, err := s.linkedin.UserInfo(ctx, accessToken)
	if err != nil {
		return nil, err
	}

	s.cache.Set(accessToken, info, gocache.DefaultExpiration)
	return info, nil
}

func joinName(first, last string) string {
	switch {
	case first == "":
		return last
	case last == "":
		return first
	default:
		return first + " " + last
	}
}
