package models

import "time"

// WardrobeItem is one garment in a user's digital closet. Each item keeps
// both the original upload and the background-removed render; the processed
// path stays empty until background removal has succeeded, and clients fall
// back to the original when it is absent.
type WardrobeItem struct {
	ID                 uint      `gorm:"primaryKey;column:item_id" json:"item_id"`
	UserID             uint      `gorm:"not null;index" json:"user_id"`
	OriginalImagePath  string    `gorm:"not null" json:"original_image_path"`
	ProcessedImagePath string    `json:"processed_image_path,omitempty"`
	ThumbnailPath      string    `json:"thumbnail_path,omitempty"`
	Brand              string    `json:"brand"`
	ClothingType       string    `json:"clothing_type"`
	Size               string    `json:"size"`
	Color              string    `json:"color"`
	Season             string    `json:"season"`
	Description        string    `json:"description"`
	CreatedAt          time.Time `json:"created_at"`
}

// DisplayImagePath returns the path clients should render: the processed
// (background-removed) image when available, otherwise the original upload.
func (w *WardrobeItem) DisplayImagePath() string {
	if w.ProcessedImagePath != "" {
		return w.ProcessedImagePath
	}
	return w.OriginalImagePath
}
