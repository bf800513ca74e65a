package dto

// UploadResponse returns the canonical public path of a stored file.
type UploadResponse struct {
	FileURL string `json:"file_url"`
}
