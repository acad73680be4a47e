package session

import (
	"crypto/rand"
	"crypto/subtle"
	"fmt"
	"math/big"
	"net/mail"
	"sync"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/pkg/errors"

	"github.com/megatechsolutions/superadmin/core"
)

var (
	ErrInvalidToken = errors.New("invalid or expired verification token")
	ErrCodeMismatch = errors.New("verification code does not match")
)

// TwoFactor issues and verifies the second login step: a short-lived signed
// token carried through the verification URL, plus a 6-digit code delivered
// by email. Codes are single-use and expire with the token.
type TwoFactor struct {
	dir     Directory
	mailSvc core.EmailService
	secret  []byte
	appName string
	ttl     time.Duration

	mu    sync.Mutex
	codes map[string]string // account ID -> pending code
}

func NewTwoFactor(dir Directory, mailSvc core.EmailService, conf *core.Config) *TwoFactor {
	return &TwoFactor{
		dir:     dir,
		mailSvc: mailSvc,
		secret:  []byte(conf.SecretKey),
		appName: conf.AppName,
		ttl:     conf.Auth.TwoFactorCodeTTL,
		codes:   make(map[string]string),
	}
}

// Challenge starts a verification round for the account: generates a code,
// emails it, and returns the signed token the verification route expects.
func (tf *TwoFactor) Challenge(userID string) (string, error) {
	cred, err := tf.dir.LookupID(userID)
	if err != nil {
		return "", err
	}

	code, err := generateCode()
	if err != nil {
		return "", errors.Wrap(err, "generating verification code")
	}
	tf.mu.Lock()
	tf.codes[cred.ID] = code
	tf.mu.Unlock()

	tf.mailSvc.SendMessages(&core.EmailMessage{
		To:      []mail.Address{{Name: cred.Name, Address: cred.Email}},
		Subject: "Your verification code",
		Body: fmt.Sprintf(
			"Your verification code is %s. It expires in %d minutes.",
			code, int(tf.ttl.Minutes()),
		),
	})

	now := NowFunc()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &jwt.StandardClaims{
		Issuer:    tf.appName,
		Subject:   cred.ID,
		IssuedAt:  now.Unix(),
		ExpiresAt: now.Add(tf.ttl).Unix(),
	})
	ss, err := token.SignedString(tf.secret)
	return ss, errors.Wrap(err, "signing verification token")
}

// Verify checks the verification route's inputs. Missing or invalid values
// fail closed; the caller redirects back to login.
func (tf *TwoFactor) Verify(userID, tokenStr, code string) error {
	if userID == "" || tokenStr == "" {
		return ErrInvalidToken
	}

	claims := new(jwt.StandardClaims)
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return tf.secret, nil
	})
	if err != nil || !token.Valid || claims.Subject != userID {
		return ErrInvalidToken
	}

	tf.mu.Lock()
	pending, ok := tf.codes[userID]
	tf.mu.Unlock()
	if !ok || subtle.ConstantTimeCompare([]byte(pending), []byte(code)) == 0 {
		return ErrCodeMismatch
	}

	// single use
	tf.mu.Lock()
	delete(tf.codes, userID)
	tf.mu.Unlock()
	return nil
}

func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
