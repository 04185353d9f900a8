// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import "strings"

const defaultUsername = "User"

// Session is a verified provider session.
type Session struct {
	UserID   string
	Email    string
	Metadata UserMetadata
}

// UserMetadata is the subset of provider user_metadata copied from Discord.
type UserMetadata struct {
	ProviderID        string `json:"provider_id"`
	Sub               string `json:"sub"`
	FullName          string `json:"full_name"`
	PreferredUsername string `json:"preferred_username"`
	Name              string `json:"name"`
	AvatarURL         string `json:"avatar_url"`
	Picture           string `json:"picture"`
}

type extractor func(Session) (string, bool)

func nonEmpty(v string) (string, bool) {
	v = strings.TrimSpace(v)
	return v, v != ""
}

// Extractors are tried in order; the first non-empty value wins.
var (
	identityExtractors = []extractor{
		func(s Session) (string, bool) { return nonEmpty(s.Metadata.ProviderID) },
		func(s Session) (string, bool) { return nonEmpty(s.Metadata.Sub) },
		func(s Session) (string, bool) { return nonEmpty(s.UserID) },
	}
	nameExtractors = []extractor{
		func(s Session) (string, bool) { return nonEmpty(s.Metadata.FullName) },
		func(s Session) (string, bool) { return nonEmpty(s.Metadata.PreferredUsername) },
		func(s Session) (string, bool) { return nonEmpty(s.Metadata.Name) },
		func(s Session) (string, bool) {
			local, _, _ := strings.Cut(s.Email, "@")
			return nonEmpty(local)
		},
	}
	avatarExtractors = []extractor{
		func(s Session) (string, bool) { return nonEmpty(s.Metadata.AvatarURL) },
		func(s Session) (string, bool) { return nonEmpty(s.Metadata.Picture) },
	}
)

func firstMatch(s Session, extractors []extractor) (string, bool) {
	for _, extract := range extractors {
		if v, ok := extract(s); ok {
			return v, true
		}
	}
	return "", false
}

// ExternalID is the stable Discord identity of the session.
func (s Session) ExternalID() (string, bool) {
	return firstMatch(s, identityExtractors)
}

// DisplayName never returns an empty string.
func (s Session) DisplayName() string {
	if v, ok := firstMatch(s, nameExtractors); ok {
		return v
	}
	return defaultUsername
}

// Avatar returns nil when no avatar is known.
func (s Session) Avatar() *string {
	if v, ok := firstMatch(s, avatarExtractors); ok {
		return &v
	}
	return nil
}
