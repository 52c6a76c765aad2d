package auth

import (
	"strings"
	"time"

	"github.com/pquerna/otp/totp"
)

// Operator guards the local form with a single passcode and an optional
// TOTP second factor. Sessions and download links are HS256 tokens.
type Operator struct {
	PasscodeHash string
	TOTPSecret   string
	Secret       string
	SessionTTL   time.Duration
	LinkTTL      time.Duration
	Now          func() time.Time
}

type Session struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

func (o *Operator) Enabled() bool {
	return o != nil && strings.TrimSpace(o.PasscodeHash) != ""
}

func (o *Operator) Login(passcode, code string) (Session, error) {
	if !o.Enabled() || o.Secret == "" {
		return Session{}, ErrNotConfigured
	}
	if err := CheckPassword(o.PasscodeHash, passcode); err != nil {
		return Session{}, ErrInvalidCredentials
	}
	if secret := strings.TrimSpace(o.TOTPSecret); secret != "" {
		code = strings.TrimSpace(code)
		if code == "" {
			return Session{}, ErrOTPRequired
		}
		if !totp.Validate(code, secret) {
			return Session{}, ErrOTPInvalid
		}
	}

	now := o.now()
	token, err := GenerateToken(o.Secret, Claims{Purpose: PurposeSession}, now, o.SessionTTL)
	if err != nil {
		return Session{}, err
	}
	return Session{Token: token, ExpiresAt: now.Add(o.SessionTTL)}, nil
}

func (o *Operator) VerifySession(token string) error {
	claims, err := ParseToken(o.Secret, token, o.now())
	if err != nil {
		return err
	}
	if claims.Purpose != PurposeSession {
		return ErrWrongPurpose
	}
	return nil
}

// DownloadToken signs a short-lived link for one generated file.
func (o *Operator) DownloadToken(fileName string) (string, error) {
	return GenerateToken(o.Secret, Claims{Purpose: PurposeDownload, FileName: fileName}, o.now(), o.LinkTTL)
}

func (o *Operator) VerifyDownload(token, fileName string) error {
	claims, err := ParseToken(o.Secret, token, o.now())
	if err != nil {
		return err
	}
	if claims.Purpose != PurposeDownload || claims.FileName != fileName {
		return ErrWrongPurpose
	}
	return nil
}

func (o *Operator) now() time.Time {
	if o.Now != nil {
		return o.Now()
	}
	return time.Now()
}
