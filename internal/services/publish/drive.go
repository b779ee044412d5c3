package publish

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/oauth2/google"
	"golang.org/x/oauth2/jwt"

	"storyreel/internal/services"
)

const (
	defaultDriveUploadBaseURL = "https://www.googleapis.com/upload/drive/v3"
	defaultDriveAPIBaseURL    = "https://www.googleapis.com/drive/v3"
	driveScope                = "https://www.googleapis.com/auth/drive"
)

// DriveOptions configures the Google Drive publisher.
type DriveOptions struct {
	CredentialsFile string
	FolderID        string

	// UploadBaseURL and APIBaseURL override the Drive endpoints in tests.
	UploadBaseURL string
	APIBaseURL    string

	// HTTPClient bypasses service-account authentication when set.
	HTTPClient *http.Client
}

// DrivePublisher uploads artifacts to Google Drive with a service account
// and grants anyone-with-the-link read access.
type DrivePublisher struct {
	opts DriveOptions
	conf *jwt.Config
}

// NewDrivePublisher reads the service-account credentials and builds the
// publisher. The credentials file is only required when no HTTP client is
// injected.
func NewDrivePublisher(opts DriveOptions) (*DrivePublisher, error) {
	if opts.UploadBaseURL == "" {
		opts.UploadBaseURL = defaultDriveUploadBaseURL
	}
	if opts.APIBaseURL == "" {
		opts.APIBaseURL = defaultDriveAPIBaseURL
	}
	opts.UploadBaseURL = strings.TrimRight(opts.UploadBaseURL, "/")
	opts.APIBaseURL = strings.TrimRight(opts.APIBaseURL, "/")

	publisher := &DrivePublisher{opts: opts}
	if opts.HTTPClient == nil {
		data, err := os.ReadFile(opts.CredentialsFile)
		if err != nil {
			return nil, services.Wrap(services.ErrConfiguration, "publish", "read credentials", opts.CredentialsFile, err)
		}
		conf, err := google.JWTConfigFromJSON(data, driveScope)
		if err != nil {
			return nil, services.Wrap(services.ErrConfiguration, "publish", "parse credentials", opts.CredentialsFile, err)
		}
		publisher.conf = conf
	}
	return publisher, nil
}

// Publish uploads filePath and returns the shareable view link.
func (p *DrivePublisher) Publish(ctx context.Context, filePath string) (string, error) {
	client := p.opts.HTTPClient
	if client == nil {
		client = p.conf.Client(ctx)
	}

	fileID, err := p.upload(ctx, client, filePath)
	if err != nil {
		return "", err
	}
	if err := p.grantPublicRead(ctx, client, fileID); err != nil {
		return "", err
	}
	return fmt.Sprintf("https://drive.google.com/file/d/%s/view?usp=sharing", fileID), nil
}

func (p *DrivePublisher) upload(ctx context.Context, client *http.Client, filePath string) (string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return "", services.Wrap(services.ErrTransient, "publish", "open artifact", filePath, err)
	}
	defer file.Close()

	metadata := map[string]any{"name": filepath.Base(filePath)}
	if p.opts.FolderID != "" {
		metadata["parents"] = []string{p.opts.FolderID}
	}
	metadataJSON, err := json.Marshal(metadata)
	if err != nil {
		return "", services.Wrap(services.ErrTransient, "publish", "encode metadata", "", err)
	}

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	metaPart, err := writer.CreatePart(textproto.MIMEHeader{
		"Content-Type": []string{"application/json; charset=UTF-8"},
	})
	if err != nil {
		return "", services.Wrap(services.ErrTransient, "publish", "build request", "", err)
	}
	if _, err := metaPart.Write(metadataJSON); err != nil {
		return "", services.Wrap(services.ErrTransient, "publish", "build request", "", err)
	}

	mediaPart, err := writer.CreatePart(textproto.MIMEHeader{
		"Content-Type": []string{"video/mp4"},
	})
	if err != nil {
		return "", services.Wrap(services.ErrTransient, "publish", "build request", "", err)
	}
	if _, err := io.Copy(mediaPart, file); err != nil {
		return "", services.Wrap(services.ErrTransient, "publish", "read artifact", filePath, err)
	}
	if err := writer.Close(); err != nil {
		return "", services.Wrap(services.ErrTransient, "publish", "build request", "", err)
	}

	url := p.opts.UploadBaseURL + "/files?uploadType=multipart&fields=id"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &body)
	if err != nil {
		return "", services.Wrap(services.ErrTransient, "publish", "build request", url, err)
	}
	req.Header.Set("Content-Type", "multipart/related; boundary="+writer.Boundary())

	resp, err := client.Do(req)
	if err != nil {
		return "", services.Wrap(services.ErrTransient, "publish", "upload", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return "", services.Wrap(services.ErrTransient, "publish", "upload", fmt.Sprintf("drive returned %d: %s", resp.StatusCode, strings.TrimSpace(string(detail))), nil)
	}

	var uploaded struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&uploaded); err != nil {
		return "", services.Wrap(services.ErrTransient, "publish", "decode upload response", "", err)
	}
	if uploaded.ID == "" {
		return "", services.Wrap(services.ErrTransient, "publish", "upload", "drive response missing file id", nil)
	}
	return uploaded.ID, nil
}

func (p *DrivePublisher) grantPublicRead(ctx context.Context, client *http.Client, fileID string) error {
	payload, err := json.Marshal(map[string]string{"type": "anyone", "role": "reader"})
	if err != nil {
		return services.Wrap(services.ErrTransient, "publish", "encode permission", "", err)
	}

	url := fmt.Sprintf("%s/files/%s/permissions", p.opts.APIBaseURL, fileID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return services.Wrap(services.ErrTransient, "publish", "build request", url, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return services.Wrap(services.ErrTransient, "publish", "grant permission", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return services.Wrap(services.ErrTransient, "publish", "grant permission", fmt.Sprintf("drive returned %d: %s", resp.StatusCode, strings.TrimSpace(string(detail))), nil)
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}
