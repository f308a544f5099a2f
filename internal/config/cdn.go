package config

import (
	"fmt"
	"os"
)

// CDN holds the Bunny storage zone credentials for ebook distribution.
type CDN struct {
	StorageZone string
	APIKey      string
	Region      string
}

func NewCDN() (*CDN, error) {
	zone, err := requireEnv("BUNNY_STORAGE_ZONE")
	if err != nil {
		return nil, err
	}

	key, err := requireEnv("BUNNY_API_KEY")
	if err != nil {
		return nil, err
	}

	region, ok := os.LookupEnv("BUNNY_REGION")
	if !ok {
		region = "de"
	}

	return &CDN{StorageZone: zone, APIKey: key, Region: region}, nil
}

// StorageURL is the zone's storage API root.
func (c CDN) StorageURL() string {
	return fmt.Sprintf("https://%s.storage.bunnycdn.com/%s", c.Region, c.StorageZone)
}

// PullURL is the public root files are served from once uploaded.
func (c CDN) PullURL() string {
	return fmt.Sprintf("https://%s.b-cdn.net", c.StorageZone)
}
