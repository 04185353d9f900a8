// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import (
	"time"
)

// SkipValue marks an explicit abstention in vote payloads.
const SkipValue = "skip"

// DefaultNomineeRole is assigned to nominees created without a role badge.
const DefaultNomineeRole = "NEW"

// Domain types

type User struct {
	ID        int64   `db:"id" json:"id"`
	DiscordID string  `db:"discord_id" json:"discordId"`
	Username  string  `db:"username" json:"username"`
	Avatar    *string `db:"avatar" json:"avatar"`
}

type Category struct {
	ID          int64     `db:"id" json:"id"`
	Title       string    `db:"title" json:"title"`
	Code        string    `db:"code" json:"code"`
	Description *string   `db:"description" json:"description"`
	Nominees    []Nominee `db:"-" json:"nominees"`
}

type Nominee struct {
	ID          int64   `db:"id" json:"id"`
	CategoryID  int64   `db:"category_id" json:"-"`
	Name        string  `db:"name" json:"name"`
	Description string  `db:"description" json:"desc"`
	Role        string  `db:"role" json:"role"`
	ImageURL    *string `db:"image_url" json:"imageUrl"`
}

// Ballot is one user's recorded choice for one category. NomineeID is nil
// exactly when IsSkip is true.
type Ballot struct {
	UserID     int64  `db:"user_id"`
	CategoryID int64  `db:"category_id"`
	NomineeID  *int64 `db:"nominee_id"`
	IsSkip     bool   `db:"is_skip"`
}

// Selection returns the ballot's choice in payload form.
func (b Ballot) Selection() Selection {
	if b.IsSkip || b.NomineeID == nil {
		return Selection{Skip: true}
	}
	return Selection{NomineeID: *b.NomineeID}
}

type BallotResult struct {
	CategoryID int64  `json:"categoryId"`
	Success    bool   `json:"success"`
	Error      string `json:"error,omitempty"`
}

// Tally types

type NomineeTally struct {
	ID          int64  `db:"id" json:"id"`
	Name        string `db:"name" json:"name"`
	Description string `db:"description" json:"description"`
	Role        string `db:"role" json:"role"`
	VoteCount   int64  `db:"vote_count" json:"vote_count"`
}

type TallyRow struct {
	CategoryID    int64  `db:"category_id" json:"category_id"`
	CategoryTitle string `db:"category_title" json:"category_title"`
	NomineeID     int64  `db:"nominee_id" json:"nominee_id"`
	NomineeName   string `db:"nominee_name" json:"nominee_name"`
	VoteCount     int64  `db:"vote_count" json:"vote_count"`
}

// Request types

type CategoryInput struct {
	Title       string  `json:"title" validate:"required,max=200"`
	Code        string  `json:"code" validate:"required,max=64"`
	Description *string `json:"description" validate:"omitempty,max=2000"`
}

type NomineeInput struct {
	Name        string  `json:"name" validate:"required,max=200"`
	Description string  `json:"desc" validate:"max=2000"`
	Role        string  `json:"role" validate:"max=64"`
	ImageURL    *string `json:"imageUrl" validate:"omitempty,max=2048"`
}

// category_id -> nominee id or "skip"
type SubmitVotesRequest struct {
	Votes map[string]Selection `json:"votes"`
}

// Response types

type AuthMeResponse struct {
	Authenticated bool  `json:"authenticated"`
	User          *User `json:"user,omitempty"`
}

type AuthURLResponse struct {
	URL string `json:"url"`
}

type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

type CategoriesResponse struct {
	Categories []Category `json:"categories"`
}

type CategoryMutationResponse struct {
	Success  bool      `json:"success"`
	Category *Category `json:"category,omitempty"`
}

type NomineeMutationResponse struct {
	Success bool     `json:"success"`
	Nominee *Nominee `json:"nominee,omitempty"`
}

type SuccessResponse struct {
	Success bool `json:"success"`
}

type MyVotesResponse struct {
	Votes map[int64]Selection `json:"votes"`
}

type SubmitVotesResponse struct {
	Success bool           `json:"success"`
	Results []BallotResult `json:"results"`
}

type CategoryStatsResponse struct {
	Stats []NomineeTally `json:"stats"`
}

type AllStatsResponse struct {
	Stats []TallyRow `json:"stats"`
}

// Error response

type ErrorResponse struct {
	Error string `json:"error"`
}
