// Package assets wraps Supabase Storage as the image store. Assets are
// keyed per order as "<customer_id>/<name>.png" and handed out through
// time-limited signed URLs only.
package assets

import (
	"bytes"
	"context"
	"fmt"

	storage "github.com/supabase-community/storage-go"
)

// InitialUpload is the asset name of the customer's reference photo.
// Artist renditions are named "rendition_<n>".
const InitialUpload = "initial-upload"

// signedURLTTL is how long a resolved asset URL stays valid, in seconds.
const signedURLTTL = 3600

// RenditionAssetName returns the asset name for the rendition at the
// given ledger index.
func RenditionAssetName(index int) string {
	return fmt.Sprintf("rendition_%d", index)
}

type Client struct {
	client *storage.Client
	bucket string
}

func NewClient(supabaseURL, serviceKey, bucket string) (*Client, error) {
	// Ensure URL doesn't have trailing slash
	baseURL := supabaseURL
	if len(baseURL) > 0 && baseURL[len(baseURL)-1] == '/' {
		baseURL = baseURL[:len(baseURL)-1]
	}
	client := storage.NewClient(baseURL+"/storage/v1", serviceKey, nil)

	return &Client{
		client: client,
		bucket: bucket,
	}, nil
}

func objectPath(customerID, assetName string) string {
	return fmt.Sprintf("%s/%s.png", customerID, assetName)
}

// Upload stores an image under the order's prefix, replacing any
// existing asset with the same name (mugshot re-uploads overwrite).
func (c *Client) Upload(_ context.Context, customerID, assetName string, data []byte) error {
	contentType := "image/png"
	upsert := true
	_, err := c.client.UploadFile(c.bucket, objectPath(customerID, assetName), bytes.NewReader(data), storage.FileOptions{
		ContentType: &contentType,
		Upsert:      &upsert,
	})
	if err != nil {
		return fmt.Errorf("failed to upload asset %s: %w", assetName, err)
	}
	return nil
}

// SignedURL resolves an asset to a temporary signed URL.
func (c *Client) SignedURL(_ context.Context, customerID, assetName string) (string, error) {
	resp, err := c.client.CreateSignedUrl(c.bucket, objectPath(customerID, assetName), signedURLTTL)
	if err != nil {
		return "", fmt.Errorf("failed to sign url for asset %s: %w", assetName, err)
	}
	return resp.SignedURL, nil
}
