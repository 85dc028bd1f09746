package config

import (
	"github.com/cloudinary/cloudinary-go/v2"
)

// ConnectCloudinary returns nil when CLOUDINARY_URL is unset.
func ConnectCloudinary(cfg *Config) (*cloudinary.Cloudinary, error) {
	if cfg.CloudinaryURL == "" {
		return nil, nil
	}
	return cloudinary.NewFromURL(cfg.CloudinaryURL)
}
