package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fitai/internal/models/db_models"
	"fitai/pkg/utils"
)

func newChatFixture(primary, fallback *fakeChatModel) (ChatServiceInterface, *fakeUserRepo, *fakeChatRepo, *db_models.User) {
	users := newFakeUserRepo()
	chats := &fakeChatRepo{}
	name := "Ana"
	goal := "lose_weight"
	user := &db_models.User{Name: &name, FitnessGoal: &goal, PreferredLanguage: "pt-BR"}
	_ = users.Insert(context.Background(), user)

	encryptor, _ := utils.NewEncryptor("0123456789abcdef0123456789abcdef")

	var fb ChatModel
	if fallback != nil {
		fb = fallback
	}
	svc := NewChatService(users, chats, primary, fb, encryptor, testLogger())
	return svc, users, chats, user
}

func TestChatPersistsBothSides(t *testing.T) {
	primary := &fakeChatModel{reply: "Drink water and train hard."}
	svc, _, chats, user := newChatFixture(primary, nil)

	reply, err := svc.SendMessage(context.Background(), user.ID, "How do I stay hydrated?", nil)
	require.NoError(t, err)
	assert.Equal(t, "assistant", reply.Role)
	assert.Equal(t, "Drink water and train hard.", reply.Content)

	history, err := svc.GetHistory(context.Background(), user.ID)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, "user", history[0].Role)
	assert.Equal(t, "How do I stay hydrated?", history[0].Message)
	assert.Equal(t, "assistant", history[1].Role)

	_ = chats
}

func TestChatPersonaCarriesProfileAndLanguage(t *testing.T) {
	primary := &fakeChatModel{reply: "ok"}
	svc, _, _, user := newChatFixture(primary, nil)

	_, err := svc.SendMessage(context.Background(), user.ID, "hi", nil)
	require.NoError(t, err)
	assert.Contains(t, primary.lastSystem, "Ana")
	assert.Contains(t, primary.lastSystem, "lose_weight")
	assert.Contains(t, primary.lastSystem, `"pt-BR"`)

	lang := "en"
	_, err = svc.SendMessage(context.Background(), user.ID, "hi again", &lang)
	require.NoError(t, err)
	assert.Contains(t, primary.lastSystem, `"en"`)
}

func TestChatHistoryWindowIsBounded(t *testing.T) {
	primary := &fakeChatModel{reply: "ok"}
	svc, _, _, user := newChatFixture(primary, nil)
	ctx := context.Background()

	for i := 0; i < 6; i++ {
		_, err := svc.SendMessage(ctx, user.ID, "message", nil)
		require.NoError(t, err)
	}

	assert.LessOrEqual(t, len(primary.lastHistory), chatHistoryWindow)
}

func TestChatFallsBackWhenPrimaryFails(t *testing.T) {
	primary := &fakeChatModel{failErr: errors.New("gemini unavailable")}
	fallback := &fakeChatModel{reply: "fallback says hi"}
	svc, _, _, user := newChatFixture(primary, fallback)

	reply, err := svc.SendMessage(context.Background(), user.ID, "hello", nil)
	require.NoError(t, err)
	assert.Equal(t, "fallback says hi", reply.Content)
	assert.Equal(t, 1, primary.calls)
	assert.Equal(t, 1, fallback.calls)
}

func TestChatFailsWhenAllModelsFail(t *testing.T) {
	primary := &fakeChatModel{failErr: errors.New("down")}
	fallback := &fakeChatModel{failErr: errors.New("also down")}
	svc, _, chats, user := newChatFixture(primary, fallback)

	_, err := svc.SendMessage(context.Background(), user.ID, "hello", nil)
	assert.ErrorIs(t, err, utils.ErrChatFailed)
	// Nothing is persisted on failure.
	assert.Empty(t, chats.messages)
}

func TestClearHistory(t *testing.T) {
	primary := &fakeChatModel{reply: "ok"}
	svc, _, chats, user := newChatFixture(primary, nil)
	ctx := context.Background()

	_, err := svc.SendMessage(ctx, user.ID, "hello", nil)
	require.NoError(t, err)
	require.NotEmpty(t, chats.messages)

	require.NoError(t, svc.ClearHistory(ctx, user.ID))
	assert.Empty(t, chats.messages)
}
