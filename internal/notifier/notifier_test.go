package notifier

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/smtp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"RoboAdvisor/internal/model"
)

func sampleAnalysis() *model.Analysis {
	return &model.Analysis{
		Symbol:        "MSFT",
		RequestedAt:   time.Date(2020, 4, 16, 18, 22, 36, 0, time.UTC),
		LastRefreshed: "2018-06-08",
		Latest:        model.DailyBar{Timestamp: time.Date(2018, 6, 8, 0, 0, 0, 0, time.UTC), Close: 745.21},
		Previous:      model.DailyBar{Timestamp: time.Date(2018, 6, 7, 0, 0, 0, 0, time.UTC), Close: 700},
		RecentHigh:    13673.23902,
		RecentLow:     580.53,
		ChangePct:     6.4586,
		Recommendation: model.Recommendation{
			Decision: model.DecisionBuy,
			Reason:   "There is a significant gap between the recent high and low which means that it is not a volatile stock at the moment. It would be a safe investment",
		},
	}
}

func TestToUSD(t *testing.T) {
	assert.Equal(t, "$ 13,673.24", ToUSD(13673.239020))
	assert.Equal(t, "$ 745.21", ToUSD(745.21))
	assert.Equal(t, "$ 1,000,000.00", ToUSD(1000000))
	assert.Equal(t, "$ 0.50", ToUSD(0.5))
}

func TestTimestamp(t *testing.T) {
	assert.Equal(t, "Request at: 2020-04-16 18:22:36", Timestamp(time.Date(2020, 4, 16, 18, 22, 36, 0, time.UTC)))
}

func TestShouldAlert(t *testing.T) {
	assert.True(t, ShouldAlert(5.01, DefaultThresholdPct))
	assert.True(t, ShouldAlert(-7, DefaultThresholdPct))
	assert.False(t, ShouldAlert(5, DefaultThresholdPct))
	assert.False(t, ShouldAlert(-5, DefaultThresholdPct))
	assert.False(t, ShouldAlert(0.3, DefaultThresholdPct))
}

func TestFormatAlert(t *testing.T) {
	a := sampleAnalysis()
	assert.Equal(t, "Price Movement Alert: MSFT +6.46%", FormatAlertSubject(a))

	body := FormatAlertHTML(a)
	assert.Contains(t, body, "<h2>MSFT is up 6.46% since the previous close</h2>")
	assert.Contains(t, body, "Latest close (2018-06-08): <b>$ 745.21</b>")
	assert.Contains(t, body, "Previous close (2018-06-07): <b>$ 700.00</b>")
	assert.Contains(t, body, "Recommendation: <b>BUY!</b>")
	assert.Contains(t, body, "Request at: 2020-04-16 18:22:36")

	a.ChangePct = -8
	a.Recommendation = model.Recommendation{Decision: model.DecisionDontBuy, Reason: "It's risky"}
	body = FormatAlertHTML(a)
	assert.Contains(t, body, "MSFT is down 8.00%")
	assert.Contains(t, body, "DON&#39;T BUY!")
	assert.Contains(t, body, "It&#39;s risky")
}

func TestFormatConsoleReport(t *testing.T) {
	out := FormatConsoleReport(sampleAnalysis())
	for _, want := range []string{
		"SELECTED SYMBOL: MSFT",
		"Request at: 2020-04-16 18:22:36",
		"2018-06-08",
		"$ 745.21",
		"$ 13,673.24",
		"$ 580.53",
		"+6.46%",
		"BUY!",
		"significant gap",
		"HAPPY INVESTING!",
	} {
		assert.Contains(t, out, want)
	}
}

func TestTelegramHTML(t *testing.T) {
	got := telegramHTML("<html><body>\n<h2>Title</h2>\n<p>one <b>bold</b><br>\ntwo</p>\n</body></html>")
	assert.Equal(t, "Title\n\none <b>bold</b>\n\ntwo", got)
}

func TestTelegramNotifier_Send(t *testing.T) {
	var (
		path    string
		payload map[string]string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		_ = json.NewDecoder(r.Body).Decode(&payload)
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	tn := NewTelegramNotifier("TOKEN", "")
	tn.BaseURL = srv.URL

	a := sampleAnalysis()
	require.NoError(t, tn.Send(context.Background(), "12345", FormatAlertSubject(a), FormatAlertHTML(a)))

	assert.Equal(t, "/botTOKEN/sendMessage", path)
	assert.Equal(t, "12345", payload["chat_id"])
	assert.Equal(t, "HTML", payload["parse_mode"])
	assert.True(t, strings.HasPrefix(payload["text"], "<b>Price Movement Alert: MSFT +6.46%</b>"))
	assert.NotContains(t, payload["text"], "<h2>")
	assert.NotContains(t, payload["text"], "<br>")
}

func TestTelegramNotifier_SendError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"ok":false,"description":"chat not found"}`))
	}))
	defer srv.Close()

	tn := NewTelegramNotifier("TOKEN", "")
	tn.BaseURL = srv.URL
	err := tn.Send(context.Background(), "0", "s", "b")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "chat not found")
}

func TestEmailNotifier_Send(t *testing.T) {
	var (
		gotAddr string
		gotFrom string
		gotTo   []string
		gotMsg  string
		gotAuth smtp.Auth
	)
	en := NewEmailNotifier(EmailConfig{SMTPHost: "smtp.example.com", SMTPPort: 587, Username: "bot@example.com", Password: "pw"})
	en.sendMail = func(addr string, a smtp.Auth, from string, to []string, msg []byte) error {
		gotAddr, gotAuth, gotFrom, gotTo, gotMsg = addr, a, from, to, string(msg)
		return nil
	}

	err := en.Send(context.Background(), "a@example.com, b@example.com", "Subject line", "<p>hi</p>")
	require.NoError(t, err)

	assert.Equal(t, "smtp.example.com:587", gotAddr)
	assert.NotNil(t, gotAuth)
	assert.Equal(t, "bot@example.com", gotFrom)
	assert.Equal(t, []string{"a@example.com", "b@example.com"}, gotTo)
	assert.Contains(t, gotMsg, "Subject: Subject line\r\n")
	assert.Contains(t, gotMsg, "To: a@example.com, b@example.com\r\n")
	assert.Contains(t, gotMsg, "Content-Type: text/html; charset=UTF-8\r\n")
	assert.True(t, strings.HasSuffix(gotMsg, "\r\n\r\n<p>hi</p>"))
}

func TestEmailNotifier_Errors(t *testing.T) {
	en := NewEmailNotifier(EmailConfig{SMTPHost: "smtp.example.com", SMTPPort: 25})
	en.sendMail = func(string, smtp.Auth, string, []string, []byte) error { return errors.New("relay refused") }

	assert.Error(t, en.Send(context.Background(), " ", "s", "b"))

	err := en.Send(context.Background(), "a@example.com", "s", "b")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "relay refused")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, en.Send(ctx, "a@example.com", "s", "b"), context.Canceled)
}
