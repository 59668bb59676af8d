package notifysvc

import (
	"fmt"
	"strings"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"

	"github.com/growthapp/garden/core"
	"github.com/growthapp/garden/core/user"
	emailsvc "github.com/growthapp/garden/services/email"
	"github.com/growthapp/garden/storage/database/inmem"
	"github.com/growthapp/garden/storage/repos"
	"github.com/growthapp/garden/tests"
)

func newUsers(t *testing.T) *user.Service {
	repo := repos.NewUserRepository(inmemdb.NewStore())
	testutil.CreateUser(t, repo, "1", "Alex Garden", "child@demo.com", "", user.RoleChild, "2", true)
	testutil.CreateUser(t, repo, "2", "Sarah Garden", "parent@demo.com", "", user.RoleParent, "", true)
	testutil.CreateUser(t, repo, "4", "Solo", "solo@demo.com", "", user.RoleChild, "", true)
	return user.NewService(repo)
}

func milestone(userID string) core.Notification {
	return core.Notification{UserID: userID, Title: "Level Up!", Message: "You reached level 2!", Kind: core.KindMilestone}
}

type recorder []core.Notification

func (r *recorder) Notify(n core.Notification) { *r = append(*r, n) }

func TestMulti(t *testing.T) {
	var a, b recorder
	Multi{&a, NewLogNotifier(testutil.NopLogger{}), &b}.Notify(milestone("1"))
	assert.Len(t, a, 1)
	assert.Len(t, b, 1)
}

func TestInbox(t *testing.T) {
	inbox := NewInbox(inmemdb.NewStore(), testutil.NopLogger{})
	now := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	inbox.nowFunc = func() time.Time { return now }

	inbox.Notify(core.Notification{Title: "nobody"})
	for i := 0; i < InboxSize+5; i++ {
		inbox.Notify(core.Notification{UserID: "1", Title: fmt.Sprintf("n%d", i), Kind: core.KindSuccess})
	}
	inbox.Notify(milestone("2"))

	list, err := inbox.List("1")
	if err != nil {
		t.Fatalf("List() unexpected error = %v", err)
	}
	if len(list) != InboxSize {
		t.Fatalf("List() len = %d, want %d", len(list), InboxSize)
	}
	if list[0].Title != fmt.Sprintf("n%d", InboxSize+4) || !list[0].CreatedAt.Equal(now) {
		t.Errorf("List()[0] = %+v, want the newest notification", list[0])
	}

	assert.NoError(t, inbox.Clear("1"))
	list, _ = inbox.List("1")
	assert.Empty(t, list)
	other, _ := inbox.List("2")
	assert.Len(t, other, 1)
	none, _ := inbox.List("3")
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestParentEmailNotifier(t *testing.T) {
	conf := &core.Config{AppName: "Growth Garden", FrontendBaseURL: "http://localhost:8080"}
	mailer := emailsvc.NewConsoleServiceMock(conf, testutil.NopLogger{})
	notifier := NewParentEmailNotifier(newUsers(t), mailer, testutil.NopLogger{})

	tests := []struct {
		name     string
		n        core.Notification
		wantSent bool
	}{
		{name: "child milestone", n: milestone("1"), wantSent: true},
		{name: "not a milestone", n: core.Notification{UserID: "1", Title: "Deposit recorded", Kind: core.KindSuccess}},
		{name: "no parent", n: milestone("4")},
		{name: "unknown user", n: milestone("9")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			emailsvc.ResetSentMessages()
			notifier.Notify(tt.n)
			sent := emailsvc.Sent()
			if !tt.wantSent {
				assert.Empty(t, sent)
				return
			}
			if len(sent) != 1 {
				t.Fatalf("sent %d emails, want 1", len(sent))
			}
			msg := sent[0]
			assert.Equal(t, "parent@demo.com", msg.To[0].Address)
			assert.Equal(t, "Alex Garden: Level Up!", msg.Subject)
			assert.True(t, strings.HasPrefix(msg.TextContent, "Hi Sarah Garden,"), msg.TextContent)
			assert.Contains(t, msg.TextContent, "You reached level 2!")
			assert.Contains(t, msg.HTMLContent, "<h3>Level Up!</h3>")
		})
	}
}

type fakeBot struct {
	sent []tgbotapi.Chattable
}

func (b *fakeBot) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	b.sent = append(b.sent, c)
	return tgbotapi.Message{}, nil
}

func TestTelegramNotifier(t *testing.T) {
	bot := new(fakeBot)
	notifier := newTelegramNotifier(bot, 42, newUsers(t), testutil.NopLogger{})

	notifier.Notify(core.Notification{UserID: "1", Title: "Deposit recorded", Kind: core.KindSuccess})
	notifier.Notify(milestone("1"))

	if len(bot.sent) != 1 {
		t.Fatalf("sent %d messages, want 1", len(bot.sent))
	}
	msg, ok := bot.sent[0].(tgbotapi.MessageConfig)
	if !ok {
		t.Fatalf("sent %T, want tgbotapi.MessageConfig", bot.sent[0])
	}
	assert.Equal(t, int64(42), msg.ChatID)
	assert.Equal(t, "🌱 Alex Garden: Level Up!\nYou reached level 2!", msg.Text)
}
