package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"raffler/domain/events"
	"raffler/domain/interfaces"
	"raffler/domain/testhelpers"
)

const (
	testGuildID   = int64(100)
	testChannelID = int64(200)
	testHostID    = int64(300)
	testMessageID = int64(5000)
)

type serviceFixture struct {
	service   interfaces.GiveawayService
	announcer *testhelpers.MockAnnouncementPoster
	results   *testhelpers.MockResultPoster
	members   *testhelpers.StaticMemberResolver
}

func newServiceFixture(t *testing.T) *serviceFixture {
	t.Helper()

	f := &serviceFixture{
		announcer: new(testhelpers.MockAnnouncementPoster),
		results:   new(testhelpers.MockResultPoster),
		members:   &testhelpers.StaticMemberResolver{Members: map[int64]bool{}},
	}
	f.service = NewGiveawayService(GiveawayConfig{
		JoinEmoji:       "🎉",
		MaxWinners:      50,
		PhraseMatchMode: "equals",
	}, f.announcer, f.results, f.members)

	t.Cleanup(f.service.Shutdown)
	return f
}

func defaultStartInput() interfaces.StartGiveawayInput {
	return interfaces.StartGiveawayInput{
		GuildID:        testGuildID,
		ChannelID:      testChannelID,
		HostID:         testHostID,
		Prize:          "Nitro",
		DurationText:   "1h",
		WinnerCount:    1,
		RequiredPhrase: "cats",
	}
}

// startGiveaway runs Start with a stubbed announcement post and returns the
// announcement message ID.
func (f *serviceFixture) startGiveaway(t *testing.T, input interfaces.StartGiveawayInput) int64 {
	t.Helper()

	f.announcer.On("PostAnnouncement", mock.Anything, mock.Anything).Return(testMessageID, nil).Once()

	giveaway, err := f.service.Start(context.Background(), input)
	require.NoError(t, err)
	require.Equal(t, testMessageID, giveaway.MessageID)
	return giveaway.MessageID
}

func (f *serviceFixture) addMember(userID int64) {
	f.members.Members[userID] = true
}

func (f *serviceFixture) react(messageID, userID int64) {
	f.service.HandleReaction(events.ReactionAdded{
		MessageID: messageID,
		UserID:    userID,
		Emoji:     "🎉",
	})
}

func (f *serviceFixture) say(userID int64, content string) {
	f.service.HandleMessage(events.MessageReceived{
		GuildID:   testGuildID,
		ChannelID: testChannelID,
		AuthorID:  userID,
		Content:   content,
	})
}

func TestGiveawayService_StartValidation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*interfaces.StartGiveawayInput)
		wantErr error
	}{
		{
			name:    "empty phrase",
			mutate:  func(in *interfaces.StartGiveawayInput) { in.RequiredPhrase = "  " },
			wantErr: ErrInvalidPhrase,
		},
		{
			name:    "zero winners",
			mutate:  func(in *interfaces.StartGiveawayInput) { in.WinnerCount = 0 },
			wantErr: ErrInvalidWinnerCount,
		},
		{
			name:    "winners above limit",
			mutate:  func(in *interfaces.StartGiveawayInput) { in.WinnerCount = 51 },
			wantErr: ErrInvalidWinnerCount,
		},
		{
			name:    "bad duration",
			mutate:  func(in *interfaces.StartGiveawayInput) { in.DurationText = "soon" },
			wantErr: ErrInvalidDuration,
		},
		{
			name:    "empty duration",
			mutate:  func(in *interfaces.StartGiveawayInput) { in.DurationText = "" },
			wantErr: ErrInvalidDuration,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			f := newServiceFixture(t)
			input := defaultStartInput()
			tt.mutate(&input)

			_, err := f.service.Start(context.Background(), input)
			assert.ErrorIs(t, err, tt.wantErr)

			// Validation must fail before any announcement is posted.
			f.announcer.AssertNotCalled(t, "PostAnnouncement", mock.Anything, mock.Anything)
		})
	}
}

func TestGiveawayService_StartPostsAnnouncement(t *testing.T) {
	t.Parallel()

	f := newServiceFixture(t)
	f.startGiveaway(t, defaultStartInput())

	f.announcer.AssertExpectations(t)
}

func TestGiveawayService_StartAnnouncementFailure(t *testing.T) {
	t.Parallel()

	f := newServiceFixture(t)
	f.announcer.On("PostAnnouncement", mock.Anything, mock.Anything).
		Return(int64(0), assert.AnError).Once()

	_, err := f.service.Start(context.Background(), defaultStartInput())
	require.Error(t, err)

	// Nothing was registered, so closing finds no giveaway.
	_, err = f.service.Close(context.Background(), testMessageID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGiveawayService_CloseSelectsFullyQualifiedUsers(t *testing.T) {
	t.Parallel()

	f := newServiceFixture(t)
	messageID := f.startGiveaway(t, defaultStartInput())
	f.results.On("PostClosure", mock.Anything, mock.Anything).Return(nil).Once()

	// A: reacted and said the phrase; wins.
	// B: reacted only. C: said only. D: both, but not a resolvable member.
	for _, id := range []int64{1, 2, 3} {
		f.addMember(id)
	}
	f.react(messageID, 1)
	f.say(1, "cats")
	f.react(messageID, 2)
	f.say(3, "cats")
	f.react(messageID, 4)
	f.say(4, "cats")

	result, err := f.service.Close(context.Background(), messageID)
	require.NoError(t, err)

	assert.Equal(t, []int64{1}, result.Winners)
	assert.True(t, result.Giveaway.Ended)
	f.results.AssertExpectations(t)
}

func TestGiveawayService_CloseIsIdempotent(t *testing.T) {
	t.Parallel()

	f := newServiceFixture(t)
	messageID := f.startGiveaway(t, defaultStartInput())
	f.results.On("PostClosure", mock.Anything, mock.Anything).Return(nil)

	_, err := f.service.Close(context.Background(), messageID)
	require.NoError(t, err)

	_, err = f.service.Close(context.Background(), messageID)
	assert.ErrorIs(t, err, ErrAlreadyClosed)

	f.results.AssertNumberOfCalls(t, "PostClosure", 1)
}

func TestGiveawayService_CloseUnknownGiveaway(t *testing.T) {
	t.Parallel()

	f := newServiceFixture(t)

	_, err := f.service.Close(context.Background(), 424242)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGiveawayService_CloseWithEmptyPool(t *testing.T) {
	t.Parallel()

	f := newServiceFixture(t)
	messageID := f.startGiveaway(t, defaultStartInput())
	f.results.On("PostClosure", mock.Anything, mock.Anything).Return(nil).Once()

	// Reactions without the phrase leave nobody fully qualified.
	f.addMember(1)
	f.react(messageID, 1)

	result, err := f.service.Close(context.Background(), messageID)
	require.NoError(t, err)

	assert.Empty(t, result.Winners)
	f.results.AssertExpectations(t)
}

func TestGiveawayService_CloseCapsWinnersAtPoolSize(t *testing.T) {
	t.Parallel()

	f := newServiceFixture(t)
	input := defaultStartInput()
	input.WinnerCount = 10
	messageID := f.startGiveaway(t, input)
	f.results.On("PostClosure", mock.Anything, mock.Anything).Return(nil).Once()

	for _, id := range []int64{1, 2, 3} {
		f.addMember(id)
		f.react(messageID, id)
		f.say(id, "cats")
	}

	result, err := f.service.Close(context.Background(), messageID)
	require.NoError(t, err)

	assert.Len(t, result.Winners, 3)
	assert.ElementsMatch(t, []int64{1, 2, 3}, result.Winners)
}

func TestGiveawayService_ClosureSurvivesPosterFailure(t *testing.T) {
	t.Parallel()

	f := newServiceFixture(t)
	messageID := f.startGiveaway(t, defaultStartInput())
	f.results.On("PostClosure", mock.Anything, mock.Anything).Return(assert.AnError).Once()

	result, err := f.service.Close(context.Background(), messageID)
	require.NoError(t, err)
	require.NotNil(t, result)

	// The closure stuck even though rendering failed.
	_, err = f.service.Close(context.Background(), messageID)
	assert.ErrorIs(t, err, ErrAlreadyClosed)
}

func TestGiveawayService_TrackingStopsAfterClose(t *testing.T) {
	t.Parallel()

	f := newServiceFixture(t)
	messageID := f.startGiveaway(t, defaultStartInput())
	f.results.On("PostClosure", mock.Anything, mock.Anything).Return(nil).Once()

	_, err := f.service.Close(context.Background(), messageID)
	require.NoError(t, err)

	// Late events must not resurrect eligibility for rerolls.
	f.addMember(1)
	f.react(messageID, 1)
	f.say(1, "cats")

	_, err = f.service.Reroll(context.Background(), messageID, 1)
	assert.ErrorIs(t, err, ErrNoEligible)
}

func TestGiveawayService_Reroll(t *testing.T) {
	t.Parallel()

	f := newServiceFixture(t)
	messageID := f.startGiveaway(t, defaultStartInput())
	f.results.On("PostClosure", mock.Anything, mock.Anything).Return(nil).Once()

	for _, id := range []int64{1, 2} {
		f.addMember(id)
		f.react(messageID, id)
		f.say(id, "cats")
	}

	_, err := f.service.Close(context.Background(), messageID)
	require.NoError(t, err)

	// Rerolls keep drawing from the retained pool without mutating it.
	for i := 0; i < 5; i++ {
		winners, err := f.service.Reroll(context.Background(), messageID, 1)
		require.NoError(t, err)
		require.Len(t, winners, 1)
		assert.Contains(t, []int64{1, 2}, winners[0])
	}

	winners, err := f.service.Reroll(context.Background(), messageID, 10)
	require.NoError(t, err)
	assert.ElementsMatch(t, []int64{1, 2}, winners)
}

func TestGiveawayService_RerollValidation(t *testing.T) {
	t.Parallel()

	f := newServiceFixture(t)

	_, err := f.service.Reroll(context.Background(), testMessageID, 0)
	assert.ErrorIs(t, err, ErrInvalidWinnerCount)

	_, err = f.service.Reroll(context.Background(), testMessageID, 1)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGiveawayService_RerollSeesMembershipChanges(t *testing.T) {
	t.Parallel()

	f := newServiceFixture(t)
	messageID := f.startGiveaway(t, defaultStartInput())
	f.results.On("PostClosure", mock.Anything, mock.Anything).Return(nil).Once()

	f.addMember(1)
	f.react(messageID, 1)
	f.say(1, "cats")

	_, err := f.service.Close(context.Background(), messageID)
	require.NoError(t, err)

	// The sole qualifier leaves the guild; the pool is re-evaluated live.
	delete(f.members.Members, 1)

	_, err = f.service.Reroll(context.Background(), messageID, 1)
	assert.ErrorIs(t, err, ErrNoEligible)
}

func TestGiveawayService_AutomaticClosureFires(t *testing.T) {
	t.Parallel()

	f := newServiceFixture(t)

	closed := make(chan *interfaces.ClosureResult, 1)
	f.results.On("PostClosure", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			closed <- args.Get(1).(*interfaces.ClosureResult)
		}).Return(nil).Once()

	input := defaultStartInput()
	input.DurationText = "0"
	messageID := f.startGiveaway(t, input)

	select {
	case result := <-closed:
		assert.Equal(t, messageID, result.Giveaway.MessageID)
		assert.True(t, result.Giveaway.Ended)
	case <-time.After(2 * time.Second):
		t.Fatal("automatic closure never fired")
	}

	// A manual end arriving after the timer loses cleanly.
	_, err := f.service.Close(context.Background(), messageID)
	assert.ErrorIs(t, err, ErrAlreadyClosed)
}

func TestGiveawayService_HandleMessageIgnoresBots(t *testing.T) {
	t.Parallel()

	f := newServiceFixture(t)
	messageID := f.startGiveaway(t, defaultStartInput())
	f.results.On("PostClosure", mock.Anything, mock.Anything).Return(nil).Once()

	f.addMember(1)
	f.react(messageID, 1)
	f.service.HandleMessage(events.MessageReceived{
		GuildID:  testGuildID,
		AuthorID: 1,
		IsBot:    true,
		Content:  "cats",
	})

	result, err := f.service.Close(context.Background(), messageID)
	require.NoError(t, err)
	assert.Empty(t, result.Winners)
}

func TestGiveawayService_HandleReactionIgnoresOtherEmoji(t *testing.T) {
	t.Parallel()

	f := newServiceFixture(t)
	messageID := f.startGiveaway(t, defaultStartInput())
	f.results.On("PostClosure", mock.Anything, mock.Anything).Return(nil).Once()

	f.addMember(1)
	f.say(1, "cats")
	f.service.HandleReaction(events.ReactionAdded{
		MessageID: messageID,
		UserID:    1,
		Emoji:     "🔥",
	})

	result, err := f.service.Close(context.Background(), messageID)
	require.NoError(t, err)
	assert.Empty(t, result.Winners)
}
