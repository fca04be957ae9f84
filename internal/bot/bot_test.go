package bot

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"twa-games-backend/internal/bot/session"
	adminservice "twa-games-backend/internal/features/admin/service"
	gamesqlite "twa-games-backend/internal/features/game/repository/sqlite"
	gameservice "twa-games-backend/internal/features/game/service"
	prosqlite "twa-games-backend/internal/features/prorequest/repository/sqlite"
	proservice "twa-games-backend/internal/features/prorequest/service"
	"twa-games-backend/internal/features/user/repository"
	usersqlite "twa-games-backend/internal/features/user/repository/sqlite"
	userservice "twa-games-backend/internal/features/user/service"
	"twa-games-backend/internal/platform/db"
	"twa-games-backend/internal/platform/telegram"
)

const adminID = int64(1)

type sentMessage struct {
	chatID int64
	text   string
	markup interface{}
}

type editedMessage struct {
	chatID    int64
	messageID int64
	text      string
	markup    *telegram.InlineKeyboardMarkup
}

type answeredCallback struct {
	callbackID string
	text       string
	showAlert  bool
}

// fakeSender is mutex-guarded because approval notifications arrive from a
// separate goroutine.
type fakeSender struct {
	mu       sync.Mutex
	sent     []sentMessage
	edited   []editedMessage
	answered []answeredCallback
}

func (f *fakeSender) SendMessage(_ context.Context, chatID int64, text string, markup interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, sentMessage{chatID: chatID, text: text, markup: markup})
	return nil
}

func (f *fakeSender) EditMessageText(_ context.Context, chatID, messageID int64, text string, markup *telegram.InlineKeyboardMarkup) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.edited = append(f.edited, editedMessage{chatID: chatID, messageID: messageID, text: text, markup: markup})
	return nil
}

func (f *fakeSender) AnswerCallbackQuery(_ context.Context, callbackID, text string, showAlert bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.answered = append(f.answered, answeredCallback{callbackID: callbackID, text: text, showAlert: showAlert})
	return nil
}

func (f *fakeSender) lastSent(t *testing.T) sentMessage {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	require.NotEmpty(t, f.sent)
	return f.sent[len(f.sent)-1]
}

func (f *fakeSender) lastEdited(t *testing.T) editedMessage {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	require.NotEmpty(t, f.edited)
	return f.edited[len(f.edited)-1]
}

func (f *fakeSender) lastAnswered(t *testing.T) answeredCallback {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	require.NotEmpty(t, f.answered)
	return f.answered[len(f.answered)-1]
}

func (f *fakeSender) editedCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.edited)
}

type fixture struct {
	bot      *Bot
	sender   *fakeSender
	users    userservice.UserService
	userRepo repository.UserRepository
	pro      proservice.ProRequestService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	sqlDB, err := db.Open(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	userRepo := usersqlite.NewSQLiteRepository(sqlDB)
	users := userservice.NewUserService(userRepo)
	games := gameservice.NewGameService(gamesqlite.NewSQLiteRepository(sqlDB))
	pro := proservice.NewProRequestService(prosqlite.NewSQLiteRepository(sqlDB))

	sender := &fakeSender{}
	admin := adminservice.NewAdminService([]int64{adminID}, users, games, pro, NewNotifier(sender))

	sessions := session.NewMemoryStore(time.Minute)
	t.Cleanup(sessions.Close)

	return &fixture{
		bot:      New(sender, nil, sessions, users, admin, "https://games.example", 30),
		sender:   sender,
		users:    users,
		userRepo: userRepo,
		pro:      pro,
	}
}

func textUpdate(userID int64, text string) telegram.Update {
	return telegram.Update{Message: &telegram.Message{
		From: &telegram.User{ID: userID, Username: "alice", FirstName: "Alice"},
		Chat: telegram.Chat{ID: userID},
		Text: text,
	}}
}

func contactUpdate(userID int64, phone string) telegram.Update {
	return telegram.Update{Message: &telegram.Message{
		From:    &telegram.User{ID: userID, Username: "alice", FirstName: "Alice"},
		Chat:    telegram.Chat{ID: userID},
		Contact: &telegram.Contact{PhoneNumber: phone, UserID: userID},
	}}
}

func callbackUpdate(userID int64, data string) telegram.Update {
	return telegram.Update{CallbackQuery: &telegram.CallbackQuery{
		ID:   "cb-1",
		From: telegram.User{ID: userID},
		Message: &telegram.Message{
			MessageID: 10,
			Chat:      telegram.Chat{ID: userID},
		},
		Data: data,
	}}
}

func TestRegistrationFlow(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	f.bot.HandleUpdate(ctx, textUpdate(42, "/start"))
	assert.Equal(t, chooseLanguageText, f.sender.lastSent(t).text)

	f.bot.HandleUpdate(ctx, textUpdate(42, labelEnglish))
	assert.Equal(t, askNameTexts["en"], f.sender.lastSent(t).text)

	f.bot.HandleUpdate(ctx, textUpdate(42, "Alice"))
	assert.Equal(t, askContactTexts["en"], f.sender.lastSent(t).text)

	f.bot.HandleUpdate(ctx, contactUpdate(42, "+15551234"))
	assert.Equal(t, registeredTexts["en"], f.sender.lastSent(t).text)

	user, err := f.userRepo.GetByID(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, "Alice", user.FullName)
	assert.Equal(t, "+15551234", user.Phone)
	assert.Equal(t, "en", user.Language)
	assert.False(t, user.IsPro)
}

func TestRegistration_UnknownLanguageDefaultsToUzbek(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	f.bot.HandleUpdate(ctx, textUpdate(42, "/start"))
	f.bot.HandleUpdate(ctx, textUpdate(42, "something else"))
	assert.Equal(t, askNameTexts["uz"], f.sender.lastSent(t).text)
}

func TestRegistration_NonContactInputRepromptsContactStep(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	f.bot.HandleUpdate(ctx, textUpdate(42, "/start"))
	f.bot.HandleUpdate(ctx, textUpdate(42, labelEnglish))
	f.bot.HandleUpdate(ctx, textUpdate(42, "Alice"))

	// Free text instead of a contact payload re-prompts the same step.
	f.bot.HandleUpdate(ctx, textUpdate(42, "+15551234"))
	assert.Equal(t, askContactTexts["en"], f.sender.lastSent(t).text)

	// No partial data was committed.
	_, err := f.userRepo.GetByID(ctx, 42)
	assert.ErrorIs(t, err, repository.ErrUserNotFound)

	f.bot.HandleUpdate(ctx, contactUpdate(42, "+15551234"))
	assert.Equal(t, registeredTexts["en"], f.sender.lastSent(t).text)
}

func TestStart_RegisteredUserSkipsFlow(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	require.NoError(t, f.users.Register(ctx, 42, "alice", "Alice", "+15551234", "ru"))

	f.bot.HandleUpdate(ctx, textUpdate(42, "/start"))
	last := f.sender.lastSent(t)
	assert.Equal(t, fmt.Sprintf(welcomeBackTexts["ru"], "Alice"), last.text)
	assert.IsType(t, &telegram.ReplyKeyboardMarkup{}, last.markup)
}

func TestSupportButton(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	require.NoError(t, f.users.Register(ctx, 42, "alice", "Alice", "+15551234", "en"))

	f.bot.HandleUpdate(ctx, textUpdate(42, supportButtonTexts["en"]))
	assert.Equal(t, supportTexts["en"], f.sender.lastSent(t).text)
}

func TestAdminPanel_DeniedForOutsiders(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	f.bot.HandleUpdate(ctx, textUpdate(666, "/admin"))
	assert.Equal(t, accessDeniedText, f.sender.lastSent(t).text)

	f.bot.HandleUpdate(ctx, callbackUpdate(666, "admin_users"))
	answer := f.sender.lastAnswered(t)
	assert.Equal(t, deniedAlertText, answer.text)
	assert.True(t, answer.showAlert)
	assert.Zero(t, f.sender.editedCount())
}

func TestAdminApproveCallback(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	require.NoError(t, f.users.Register(ctx, 42, "alice", "Alice", "+15551234", "en"))
	require.NoError(t, f.pro.Request(ctx, 42))

	f.bot.HandleUpdate(ctx, callbackUpdate(adminID, "admin_requests"))
	assert.Contains(t, f.sender.lastEdited(t).text, "Alice")

	f.bot.HandleUpdate(ctx, callbackUpdate(adminID, "approve_1"))

	user, err := f.users.GetUser(ctx, 42)
	require.NoError(t, err)
	assert.True(t, user.IsPro)

	// The pending list was re-rendered and is now empty.
	assert.Equal(t, noPendingText, f.sender.lastEdited(t).text)
}

func TestAdminStatsCallbacks(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	require.NoError(t, f.users.Register(ctx, 42, "alice", "Alice", "+15551234", "en"))

	f.bot.HandleUpdate(ctx, textUpdate(adminID, "/admin"))
	assert.Equal(t, adminPanelText, f.sender.lastSent(t).text)

	f.bot.HandleUpdate(ctx, callbackUpdate(adminID, "admin_users"))
	assert.Contains(t, f.sender.lastEdited(t).text, "Total Users: 1")

	f.bot.HandleUpdate(ctx, callbackUpdate(adminID, "admin_games"))
	assert.Contains(t, f.sender.lastEdited(t).text, "Total Games: 0")

	f.bot.HandleUpdate(ctx, callbackUpdate(adminID, "admin_back"))
	assert.Equal(t, adminPanelText, f.sender.lastEdited(t).text)
}
