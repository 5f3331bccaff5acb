package testhelpers

import (
	"context"

	"raffler/domain/entities"
	"raffler/domain/interfaces"

	"github.com/stretchr/testify/mock"
)

// MockAnnouncementPoster is a mock implementation of AnnouncementPoster
type MockAnnouncementPoster struct {
	mock.Mock
}

func (m *MockAnnouncementPoster) PostAnnouncement(ctx context.Context, giveaway *entities.Giveaway) (int64, error) {
	args := m.Called(ctx, giveaway)
	return args.Get(0).(int64), args.Error(1)
}

// MockResultPoster is a mock implementation of ResultPoster
type MockResultPoster struct {
	mock.Mock
}

func (m *MockResultPoster) PostClosure(ctx context.Context, result *interfaces.ClosureResult) error {
	args := m.Called(ctx, result)
	return args.Error(0)
}

// MockMemberResolver is a mock implementation of MemberResolver
type MockMemberResolver struct {
	mock.Mock
}

func (m *MockMemberResolver) IsEligibleMember(guildID, userID int64) bool {
	args := m.Called(guildID, userID)
	return args.Bool(0)
}

// StaticMemberResolver resolves membership from a fixed set, for tests that
// do not care about call assertions.
type StaticMemberResolver struct {
	Members map[int64]bool // userID -> eligible
}

func (r *StaticMemberResolver) IsEligibleMember(guildID, userID int64) bool {
	return r.Members[userID]
}
