// Package cipher encrypts individual personally-identifying string fields.
//
// The wire format is three hex segments joined by ':':
//
//	nonce : ciphertext : auth tag
//
// Values without that structure are treated as legacy plaintext and passed
// through unchanged, so historical rows keep working without a hard cutover.
package cipher

import (
	"crypto/aes"
	stdcipher "crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"

	"github.com/rs/zerolog/log"
)

const tagSize = 16

var ErrNoKey = errors.New("cipher: key is empty")

type Cipher struct {
	aead stdcipher.AEAD
}

// New derives a 256-bit AES-GCM key from the configured key string.
// An empty key is a startup error; callers must not fall back to plaintext.
func New(key string) (*Cipher, error) {
	if strings.TrimSpace(key) == "" {
		return nil, ErrNoKey
	}

	sum := sha256.Sum256([]byte(key))
	block, err := aes.NewCipher(sum[:])
	if err != nil {
		return nil, err
	}
	aead, err := stdcipher.NewGCM(block)
	if err != nil {
		return nil, err
	}
	return &Cipher{aead: aead}, nil
}

// Encrypt returns the delimited ciphertext for plain, or "" when plain is
// empty or encryption fails. Callers treat "" as "do not persist".
func (c *Cipher) Encrypt(plain string) string {
	if plain == "" {
		return ""
	}

	nonce := make([]byte, c.aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		log.Warn().Err(err).Msg("cipher: nonce generation failed")
		return ""
	}

	sealed := c.aead.Seal(nil, nonce, []byte(plain), nil)
	ct := sealed[:len(sealed)-tagSize]
	tag := sealed[len(sealed)-tagSize:]

	return hex.EncodeToString(nonce) + ":" + hex.EncodeToString(ct) + ":" + hex.EncodeToString(tag)
}

// Decrypt reverses Encrypt. Input that does not carry the two-delimiter
// structure is returned unchanged (legacy plaintext); malformed or tampered
// ciphertext is logged and returned as-is rather than surfacing an error.
func (c *Cipher) Decrypt(value string) string {
	if value == "" {
		return ""
	}

	parts := strings.Split(value, ":")
	if len(parts) != 3 {
		return value
	}

	nonce, err := hex.DecodeString(parts[0])
	if err != nil || len(nonce) != c.aead.NonceSize() {
		return value
	}
	ct, err := hex.DecodeString(parts[1])
	if err != nil {
		return value
	}
	tag, err := hex.DecodeString(parts[2])
	if err != nil || len(tag) != tagSize {
		return value
	}

	plain, err := c.aead.Open(nil, nonce, append(ct, tag...), nil)
	if err != nil {
		log.Warn().Msg("cipher: decryption failed, returning value as-is")
		return value
	}
	return string(plain)
}
