// Package ormtest holds model fixtures shared by package tests.
package ormtest

import (
	"time"

	"github.com/google/uuid"

	"github.com/adopour/backend/internal/orm"
)

// GetTestProfile returns a confirmed, unprivileged profile.
func GetTestProfile() *orm.Profile {
	return &orm.Profile{
		ID:             uuid.MustParse("c1f8e4d9-8b9a-4b7c-8c6f-4e2b0e1d7a3e"),
		Email:          "testuser@example.com",
		Username:       "testuser",
		DisplayName:    "Test User",
		EmailConfirmed: true,
		CreatedAt:      time.Now().Add(-24 * time.Hour),
	}
}

// GetTestDeveloper returns a profile with developer rights.
func GetTestDeveloper() *orm.Profile {
	return &orm.Profile{
		ID:             uuid.MustParse("d2a7c1b0-1f2e-4c3d-9a8b-7c6d5e4f3a2b"),
		Email:          "dev@example.com",
		Username:       "developer",
		DisplayName:    "Developer",
		IsDeveloper:    true,
		EmailConfirmed: true,
		CreatedAt:      time.Now().Add(-48 * time.Hour),
	}
}

// GetTestCommunity returns a community created by creatorID.
func GetTestCommunity(creatorID uuid.UUID) *orm.Community {
	return &orm.Community{
		ID:          uuid.MustParse("a1b2c3d4-e5f6-7890-1234-567890abcdef"),
		Name:        "test-community",
		DisplayName: "Test Community",
		Description: "This is a test community.",
		CreatorID:   creatorID,
		MemberCount: 1,
		CreatedAt:   time.Now().Add(-12 * time.Hour),
	}
}

// GetTestPost returns a post by authorID, optionally inside a community.
func GetTestPost(authorID uuid.UUID, communityID *uuid.UUID) *orm.Post {
	return &orm.Post{
		ID:          uuid.MustParse("f1e2d3c4-b5a6-9876-5432-10fedcba9876"),
		AuthorID:    authorID,
		CommunityID: communityID,
		Content:     "This is the content of the test post.",
		CreatedAt:   time.Now().Add(-6 * time.Hour),
	}
}
