// Package apikey protects the admin routes with a single api key stored as an argon2id hash.
//
// The key is read from the X-API-Key header or an "Authorization: Bearer" header. Once a key
// matched the hash it is remembered so later requests skip the argon2id computation.
package apikey

import (
	"crypto/subtle"
	"strings"
	"sync"

	"github.com/alexedwards/argon2id"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/orkank/AppConfig/internal/web/handler"
)

// Header is the request header carrying the api key.
const Header = "X-API-Key"

type verifier struct {
	hash string

	mu    sync.RWMutex
	known string
}

// New returns a middleware accepting only requests carrying the key hashed in hash.
// An empty hash rejects every request.
func New(hash string) fiber.Handler {
	v := &verifier{hash: hash}

	return func(c *fiber.Ctx) error {
		if v.hash == "" {
			return handler.JSONError(c, fiber.StatusForbidden, "admin api is not configured")
		}

		key := requestKey(c)
		if key == "" || !v.verify(key) {
			return handler.JSONError(c, fiber.StatusUnauthorized, "invalid api key")
		}

		return c.Next()
	}
}

// Hash returns the argon2id hash of key for the admin configuration.
func Hash(key string) (string, error) {
	return argon2id.CreateHash(key, argon2id.DefaultParams)
}

func (v *verifier) verify(key string) bool {
	v.mu.RLock()
	known := v.known
	v.mu.RUnlock()

	if known != "" {
		return subtle.ConstantTimeCompare([]byte(known), []byte(key)) == 1
	}

	match, err := argon2id.ComparePasswordAndHash(key, v.hash)
	if err != nil {
		log.Error().Err(err).Msg("admin api key hash is invalid")
		return false
	}

	if match {
		v.mu.Lock()
		v.known = key
		v.mu.Unlock()
	}

	return match
}

func requestKey(c *fiber.Ctx) string {
	if key := c.Get(Header); key != "" {
		return key
	}

	const bearer = "Bearer "

	if auth := c.Get(fiber.HeaderAuthorization); strings.HasPrefix(auth, bearer) {
		return strings.TrimSpace(auth[len(bearer):])
	}

	return ""
}
