package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlayerViewHidesCorrectAnswersWhileActive(t *testing.T) {
	session, _ := newTestSession(t, singleQuestionQuiz())
	alice := mustJoin(t, session, "Alice")

	_, err := session.Start(ownerID)
	require.NoError(t, err)

	view, err := session.PlayerStatus(alice.ID)
	require.NoError(t, err)
	assert.True(t, view.AcceptingAnswers)
	assert.False(t, view.AnswerAvailable)
	assert.Empty(t, view.CorrectAnswerIDs)
	require.NotNil(t, view.Question)
	assert.Equal(t, "Capital of France?", view.Question.Text)
	assert.Len(t, view.Question.Options, 3)
}

func TestPlayerViewRevealsAnswerAfterDeadline(t *testing.T) {
	session, clock := newTestSession(t, singleQuestionQuiz())
	alice := mustJoin(t, session, "Alice")

	_, err := session.Start(ownerID)
	require.NoError(t, err)

	clock.Advance(31 * time.Second)

	view, err := session.PlayerStatus(alice.ID)
	require.NoError(t, err)
	assert.False(t, view.AcceptingAnswers)
	assert.True(t, view.AnswerAvailable)
	assert.Equal(t, []string{"a1"}, view.CorrectAnswerIDs)
}

func TestPlayerViewRevealsAnswerAfterLock(t *testing.T) {
	session, _ := newTestSession(t, singleQuestionQuiz())
	alice := mustJoin(t, session, "Alice")

	_, err := session.Start(ownerID)
	require.NoError(t, err)
	_, err = session.Lock(ownerID)
	require.NoError(t, err)

	view, err := session.PlayerStatus(alice.ID)
	require.NoError(t, err)
	assert.True(t, view.AnswerAvailable)
	assert.Equal(t, []string{"a1"}, view.CorrectAnswerIDs)
}

func TestPlayerViewIncludesOwnOutcome(t *testing.T) {
	session, _ := newTestSession(t, singleQuestionQuiz())
	alice := mustJoin(t, session, "Alice")

	_, err := session.Start(ownerID)
	require.NoError(t, err)

	_, err = session.Submit(alice.ID, 0, []string{"a1"})
	require.NoError(t, err)

	view, err := session.PlayerStatus(alice.ID)
	require.NoError(t, err)
	require.NotNil(t, view.YourAnswer)
	assert.True(t, view.YourAnswer.Correct)
	assert.Equal(t, 10, view.YourAnswer.PointsAwarded)
	assert.Equal(t, 10, view.Score)
}

func TestPlayerViewUnknownPlayer(t *testing.T) {
	session, _ := newTestSession(t, singleQuestionQuiz())

	_, err := session.PlayerStatus("ghost")
	assert.ErrorIs(t, err, ErrPlayerNotFound)
}

func TestAdminViewWithholdsFlagsWhileActive(t *testing.T) {
	session, _ := newTestSession(t, singleQuestionQuiz())
	mustJoin(t, session, "Alice")

	_, err := session.Start(ownerID)
	require.NoError(t, err)

	view, err := session.AdminStatus(ownerID)
	require.NoError(t, err)
	assert.Empty(t, view.CorrectAnswerIDs)
	assert.True(t, view.AcceptingAnswers)
	require.NotNil(t, view.DeadlineAt)

	_, err = session.Lock(ownerID)
	require.NoError(t, err)

	view, err = session.AdminStatus(ownerID)
	require.NoError(t, err)
	assert.Equal(t, []string{"a1"}, view.CorrectAnswerIDs)
}

func TestAdminViewRequiresOwner(t *testing.T) {
	session, _ := newTestSession(t, singleQuestionQuiz())

	_, err := session.AdminStatus("somebody-else")
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestAdminViewCountsSubmissions(t *testing.T) {
	session, _ := newTestSession(t, singleQuestionQuiz())
	alice := mustJoin(t, session, "Alice")
	bob := mustJoin(t, session, "Bob")

	_, err := session.Start(ownerID)
	require.NoError(t, err)

	view, err := session.AdminStatus(ownerID)
	require.NoError(t, err)
	assert.Equal(t, 0, view.SubmissionCount)

	_, err = session.Submit(alice.ID, 0, []string{"a1"})
	require.NoError(t, err)
	_, err = session.Submit(bob.ID, 0, []string{"a2"})
	require.NoError(t, err)

	view, err = session.AdminStatus(ownerID)
	require.NoError(t, err)
	assert.Equal(t, 2, view.SubmissionCount)
	assert.Len(t, view.Players, 2)
}

func TestViewsInLobbyHaveNoQuestion(t *testing.T) {
	session, _ := newTestSession(t, singleQuestionQuiz())
	alice := mustJoin(t, session, "Alice")

	admin, err := session.AdminStatus(ownerID)
	require.NoError(t, err)
	assert.Nil(t, admin.Question)
	assert.Equal(t, -1, admin.CurrentIndex)

	player, err := session.PlayerStatus(alice.ID)
	require.NoError(t, err)
	assert.Nil(t, player.Question)
	assert.False(t, player.AnswerAvailable)
}

func TestRepeatedStatusReadsAreStable(t *testing.T) {
	session, _ := newTestSession(t, singleQuestionQuiz())
	alice := mustJoin(t, session, "Alice")

	_, err := session.Start(ownerID)
	require.NoError(t, err)

	first, err := session.PlayerStatus(alice.ID)
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		again, err := session.PlayerStatus(alice.ID)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}
