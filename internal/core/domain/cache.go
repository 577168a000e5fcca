package domain

import "time"

// TranslationRecord is the bookkeeping entry for one slug's translation.
// It is valid only while SourceHash matches the hash of the current
// source content; any edit to the source invalidates it.
type TranslationRecord struct {
	// SourceHash is the hex SHA-256 of the source-language content the
	// translation was generated from.
	SourceHash string `json:"sourceHash"`

	// TranslatedAt is when the translation was generated.
	TranslatedAt time.Time `json:"translatedAt"`

	// TranslatedBy is the model that generated the translation.
	TranslatedBy string `json:"translatedBy"`
}

// ImageCacheKey builds the cache key for a rehosted image. The hash is
// computed over the raw downloaded bytes, so identical source images
// reuse the same entry even if transcoding parameters change.
func ImageCacheKey(slug, hash string) string {
	return slug + ":" + hash
}
