package transcript

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"
)

const maxCaptionBytes = 2 * 1024 * 1024

// YouTubeAPIConfig configures the YouTube Data API client.
type YouTubeAPIConfig struct {
	// APIKey is sent as the "key" query parameter on every call.
	APIKey string
	// CredentialsFile is an optional service account JSON. captions.download needs
	// OAuth; with only an API key the list call works but download is refused.
	CredentialsFile string
	// HTTPClient is the base transport; it is wrapped by OAuth when credentials are set.
	HTTPClient *http.Client
	// Endpoint overrides the API base URL (used by tests).
	Endpoint string
}

// YouTubeAPI implements CaptionsAPI on top of google.golang.org/api/youtube/v3.
type YouTubeAPI struct {
	service *youtube.Service
	apiKey  string
}

// NewYouTubeAPI creates the captions client.
func NewYouTubeAPI(ctx context.Context, cfg YouTubeAPIConfig) (*YouTubeAPI, error) {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	if cfg.CredentialsFile != "" {
		data, err := os.ReadFile(cfg.CredentialsFile)
		if err != nil {
			return nil, fmt.Errorf("unable to read service account file: %w", err)
		}
		jwtConfig, err := google.JWTConfigFromJSON(data, youtube.YoutubeForceSslScope)
		if err != nil {
			return nil, fmt.Errorf("unable to parse service account: %w", err)
		}
		// Token requests reuse the base client so they share its timeout.
		tokenCtx := context.WithValue(ctx, oauth2.HTTPClient, httpClient)
		httpClient = jwtConfig.Client(tokenCtx)
	}

	opts := []option.ClientOption{option.WithHTTPClient(httpClient)}
	if cfg.Endpoint != "" {
		opts = append(opts, option.WithEndpoint(cfg.Endpoint))
	}

	service, err := youtube.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("unable to create YouTube service: %w", err)
	}
	return &YouTubeAPI{service: service, apiKey: cfg.APIKey}, nil
}

func (y *YouTubeAPI) callOptions() []googleapi.CallOption {
	if y.apiKey == "" {
		return nil
	}
	return []googleapi.CallOption{googleapi.QueryParameter("key", y.apiKey)}
}

// ListCaptions returns the video's caption tracks in the order the API lists them.
func (y *YouTubeAPI) ListCaptions(ctx context.Context, videoID string) ([]CaptionTrack, error) {
	resp, err := y.service.Captions.List([]string{"snippet"}, videoID).Context(ctx).Do(y.callOptions()...)
	if err != nil {
		return nil, describeAPIError(err)
	}

	tracks := make([]CaptionTrack, 0, len(resp.Items))
	for _, item := range resp.Items {
		if item == nil || item.Snippet == nil {
			continue
		}
		tracks = append(tracks, CaptionTrack{ID: item.Id, Language: item.Snippet.Language})
	}
	return tracks, nil
}

// DownloadCaption returns the raw caption payload in its original format.
func (y *YouTubeAPI) DownloadCaption(ctx context.Context, captionID string) ([]byte, error) {
	resp, err := y.service.Captions.Download(captionID).Context(ctx).Download(y.callOptions()...)
	if err != nil {
		return nil, describeAPIError(err)
	}
	defer resp.Body.Close()

	return io.ReadAll(io.LimitReader(resp.Body, maxCaptionBytes))
}

func describeAPIError(err error) error {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		msg := apiErr.Message
		if msg == "" {
			msg = http.StatusText(apiErr.Code)
		}
		return fmt.Errorf("youtube api %d: %s: %w", apiErr.Code, msg, err)
	}
	return err
}
