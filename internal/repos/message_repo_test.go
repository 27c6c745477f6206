package repos

import (
	"testing"

	"spartanmarket/internal/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sendMsg(t *testing.T, r *MessageRepo, from, to, content string) *domain.Message {
	t.Helper()
	m := &domain.Message{
		ID:         uuid.NewString(),
		SenderID:   from,
		ReceiverID: to,
		Content:    content,
	}
	require.NoError(t, r.Create(m))
	return m
}

func TestInboxNewestFirstBothDirections(t *testing.T) {
	db := memdb(t)
	r := NewMessageRepo(db)
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	carol := seedUser(t, db, "carol")

	sendMsg(t, r, alice.ID, bob.ID, "one")
	sendMsg(t, r, bob.ID, alice.ID, "two")
	sendMsg(t, r, carol.ID, bob.ID, "not alice's")
	sendMsg(t, r, alice.ID, carol.ID, "three")

	ms, total, err := r.Inbox(alice.ID, 10, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	require.Len(t, ms, 3)
	assert.Equal(t, "three", ms[0].Content)
	assert.Equal(t, "two", ms[1].Content)
	assert.Equal(t, "one", ms[2].Content)
}

func TestConversationAscendingAndSymmetric(t *testing.T) {
	db := memdb(t)
	r := NewMessageRepo(db)
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	carol := seedUser(t, db, "carol")

	sendMsg(t, r, alice.ID, bob.ID, "hi")
	sendMsg(t, r, bob.ID, alice.ID, "hello")
	sendMsg(t, r, alice.ID, carol.ID, "unrelated")
	sendMsg(t, r, alice.ID, bob.ID, "still there?")

	ab, err := r.Conversation(alice.ID, bob.ID)
	require.NoError(t, err)
	require.Len(t, ab, 3)
	assert.Equal(t, "hi", ab[0].Content)
	assert.Equal(t, "hello", ab[1].Content)
	assert.Equal(t, "still there?", ab[2].Content)

	ba, err := r.Conversation(bob.ID, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, ab, ba)
}

func TestUnreadCountAndMarkRead(t *testing.T) {
	db := memdb(t)
	r := NewMessageRepo(db)
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")

	m1 := sendMsg(t, r, alice.ID, bob.ID, "first")
	sendMsg(t, r, alice.ID, bob.ID, "second")
	other := sendMsg(t, r, bob.ID, alice.ID, "reply")

	n, err := r.UnreadCount(bob.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)

	ok, err := r.MarkRead(m1.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	n, err = r.UnreadCount(bob.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n, "marking bob's message decrements bob's count by one")

	// marking a message addressed to alice leaves bob's count alone
	ok, err = r.MarkRead(other.ID)
	require.NoError(t, err)
	assert.True(t, ok)
	n, err = r.UnreadCount(bob.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	ok, err = r.MarkRead("missing")
	require.NoError(t, err)
	assert.False(t, ok)
}
