package session_test

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/megatechsolutions/superadmin/core"
	"github.com/megatechsolutions/superadmin/core/session"
	emailsvc "github.com/megatechsolutions/superadmin/services/email"
)

var codeRegex = regexp.MustCompile(`\d{6}`)

func setupTwoFactor(ttl time.Duration) *session.TwoFactor {
	conf := new(core.Config)
	conf.AppName = "Super Admin Portal"
	conf.SecretKey = "test-secret-key"
	conf.Auth.TwoFactorCodeTTL = ttl
	return session.NewTwoFactor(session.DemoDirectory(), emailsvc.NewConsoleServiceMock(conf), conf)
}

// challenge starts a round and returns the signed token plus the code that
// was delivered by email.
func challenge(t *testing.T, tf *session.TwoFactor, userID string) (token, code string) {
	sentBefore := len(emailsvc.SentMessages)

	token, err := tf.Challenge(userID)
	if err != nil {
		t.Fatalf("Challenge() failed, %v", err)
	}
	if len(emailsvc.SentMessages) != sentBefore+1 {
		t.Fatalf("Challenge() sent %d messages, want 1", len(emailsvc.SentMessages)-sentBefore)
	}

	msg := emailsvc.SentMessages[len(emailsvc.SentMessages)-1]
	assert.Equal(t, "Your verification code", msg.Subject)
	code = codeRegex.FindString(msg.Body)
	if code == "" {
		t.Fatalf("no verification code in email body %q", msg.Body)
	}
	return token, code
}

func Test_TwoFactor_Verify(t *testing.T) {
	t.Run("valid token and code", func(t *testing.T) {
		tf := setupTwoFactor(10 * time.Minute)
		token, code := challenge(t, tf, "SA002")

		assert.NoError(t, tf.Verify("SA002", token, code))
	})

	t.Run("codes are single use", func(t *testing.T) {
		tf := setupTwoFactor(10 * time.Minute)
		token, code := challenge(t, tf, "SA002")

		assert.NoError(t, tf.Verify("SA002", token, code))
		assert.Equal(t, session.ErrCodeMismatch, tf.Verify("SA002", token, code))
	})

	t.Run("wrong code", func(t *testing.T) {
		tf := setupTwoFactor(10 * time.Minute)
		token, code := challenge(t, tf, "SA002")

		wrong := "000000"
		if wrong == code {
			wrong = "000001"
		}
		assert.Equal(t, session.ErrCodeMismatch, tf.Verify("SA002", token, wrong))
	})

	t.Run("expired token", func(t *testing.T) {
		tf := setupTwoFactor(-time.Minute)
		token, code := challenge(t, tf, "SA002")

		assert.Equal(t, session.ErrInvalidToken, tf.Verify("SA002", token, code))
	})

	t.Run("token issued for another account", func(t *testing.T) {
		tf := setupTwoFactor(10 * time.Minute)
		token, code := challenge(t, tf, "SA002")

		assert.Equal(t, session.ErrInvalidToken, tf.Verify("SA001", token, code))
	})

	t.Run("tampered token", func(t *testing.T) {
		tf := setupTwoFactor(10 * time.Minute)
		_, code := challenge(t, tf, "SA002")

		conf := new(core.Config)
		conf.SecretKey = "another-secret"
		conf.Auth.TwoFactorCodeTTL = 10 * time.Minute
		other := session.NewTwoFactor(session.DemoDirectory(), emailsvc.NewConsoleServiceMock(conf), conf)
		forged, err := other.Challenge("SA002")
		if err != nil {
			t.Fatalf("Challenge() failed, %v", err)
		}

		assert.Equal(t, session.ErrInvalidToken, tf.Verify("SA002", forged, code))
	})

	t.Run("missing inputs fail closed", func(t *testing.T) {
		tf := setupTwoFactor(10 * time.Minute)
		token, code := challenge(t, tf, "SA002")

		assert.Equal(t, session.ErrInvalidToken, tf.Verify("", token, code))
		assert.Equal(t, session.ErrInvalidToken, tf.Verify("SA002", "", code))
		assert.Equal(t, session.ErrInvalidToken, tf.Verify("SA002", "not-a-token", code))
	})
}

func Test_TwoFactor_Challenge_unknownAccount(t *testing.T) {
	tf := setupTwoFactor(10 * time.Minute)

	_, err := tf.Challenge("SA999")
	assert.Equal(t, session.ErrNotFound, err)
}
