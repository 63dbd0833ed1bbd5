package ingest

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
)

// DriveClient pulls spreadsheet exports from a shared Google Drive folder so
// the nightly sync does not depend on someone uploading by hand.
type DriveClient struct {
	srv *drive.Service
}

// NewDriveClient authenticates with a service-account credentials file.
func NewDriveClient(ctx context.Context, credentialsFile string) (*DriveClient, error) {
	credentials, err := os.ReadFile(credentialsFile)
	if err != nil {
		return nil, fmt.Errorf("unable to read drive credentials: %w", err)
	}

	config, err := google.JWTConfigFromJSON(credentials, drive.DriveReadonlyScope)
	if err != nil {
		return nil, fmt.Errorf("unable to parse drive credentials: %w", err)
	}

	srv, err := drive.NewService(ctx, option.WithHTTPClient(config.Client(ctx)))
	if err != nil {
		return nil, fmt.Errorf("unable to build drive client: %w", err)
	}

	return &DriveClient{srv: srv}, nil
}

// DriveFile is one candidate export in the sync folder.
type DriveFile struct {
	ID           string
	Name         string
	MimeType     string
	ModifiedTime string
}

// FindFolderByPath resolves a /-separated folder path to a folder ID,
// starting at the drive root.
func (c *DriveClient) FindFolderByPath(path string) (string, error) {
	if path == "" {
		return "root", nil
	}

	currentID := "root"
	for _, folder := range strings.Split(path, "/") {
		if folder == "" {
			continue
		}

		result, err := c.srv.Files.List().
			Q(fmt.Sprintf("'%s' in parents and name='%s' and mimeType='application/vnd.google-apps.folder' and trashed=false",
				currentID, folder)).
			Fields("files(id, name)").
			Do()
		if err != nil {
			return "", fmt.Errorf("error finding folder %s: %w", folder, err)
		}
		if len(result.Files) == 0 {
			return "", fmt.Errorf("folder not found: %s", folder)
		}

		currentID = result.Files[0].Id
	}

	return currentID, nil
}

// ListSpreadsheets lists the xlsx and csv files directly inside a folder.
func (c *DriveClient) ListSpreadsheets(folderID string) ([]DriveFile, error) {
	if folderID == "" {
		folderID = "root"
	}

	result, err := c.srv.Files.List().
		Q(fmt.Sprintf("'%s' in parents and trashed=false", folderID)).
		Fields("files(id, name, mimeType, modifiedTime)").
		Do()
	if err != nil {
		return nil, fmt.Errorf("unable to list drive files: %w", err)
	}

	files := make([]DriveFile, 0, len(result.Files))
	for _, f := range result.Files {
		lower := strings.ToLower(f.Name)
		if !strings.HasSuffix(lower, ".xlsx") && !strings.HasSuffix(lower, ".csv") {
			continue
		}
		files = append(files, DriveFile{
			ID:           f.Id,
			Name:         f.Name,
			MimeType:     f.MimeType,
			ModifiedTime: f.ModifiedTime,
		})
	}

	return files, nil
}

// Download fetches a file's content.
func (c *DriveClient) Download(fileID string) ([]byte, error) {
	resp, err := c.srv.Files.Get(fileID).Download()
	if err != nil {
		return nil, fmt.Errorf("unable to download drive file: %w", err)
	}
	defer resp.Body.Close()

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, resp.Body); err != nil {
		return nil, fmt.Errorf("unable to read drive file: %w", err)
	}
	return buf.Bytes(), nil
}
