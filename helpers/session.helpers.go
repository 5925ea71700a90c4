package helpers

import (
	"AMALGAM_server/config"
	"AMALGAM_server/global"
	"AMALGAM_server/social"
	Errors "errors"
	"time"

	"github.com/aidarkhanov/nanoid/v2"
	"github.com/go-redis/redis/v8"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt"
)

// SessionCookie is the cookie carrying the signed session ID
const SessionCookie = "session"

// sessionIDAlphabet restricts session IDs to unambiguous characters
const sessionIDAlphabet = "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

// GenerateSessionToken signs a session ID into a cookie token. The cookie only
// ever carries this identity token; account state is re-loaded from storage on
// every request.
func GenerateSessionToken(sessionID string) (string, error) {
	claims := jwt.MapClaims{}
	claims["sid"] = sessionID
	claims["exp"] = time.Now().Add(global.SessionDuration).Unix()
	jt := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return jt.SignedString([]byte(config.Config.SessionSecret))
}

// ParseSessionToken parses a cookie token back into its session ID
func ParseSessionToken(token string) (string, error) {
	parsed, err := jwt.Parse(token, func(token *jwt.Token) (interface{}, error) {
		return []byte(config.Config.SessionSecret), nil
	})
	if err != nil {
		return "", err
	}
	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok || !parsed.Valid {
		return "", Errors.New("invalid session token")
	}
	sessionID, ok := claims["sid"].(string)
	if !ok || sessionID == "" {
		return "", Errors.New("invalid session claim")
	}
	return sessionID, nil
}

// CreateSession stores a new session record in redis and sets the signed
// session cookie on the response
func CreateSession(c *fiber.Ctx, email string) error {

	sessionID, err := nanoid.GenerateString(sessionIDAlphabet, 21)
	if err != nil {
		return err
	}

	record := map[string]interface{}{
		"email": email,
		"ip":    c.IP(),
	}

	_, err = global.RedisClient.Pipelined(global.Context, func(pipe redis.Pipeliner) error {
		if err := pipe.HSet(global.Context, "sessions:"+sessionID, record).Err(); err != nil {
			return err
		}
		return pipe.Expire(global.Context, "sessions:"+sessionID, global.SessionDuration).Err()
	})
	if err != nil {
		return err
	}

	token, err := GenerateSessionToken(sessionID)
	if err != nil {
		return err
	}

	c.Cookie(&fiber.Cookie{
		Name:     SessionCookie,
		Value:    token,
		Expires:  time.Now().Add(global.SessionDuration),
		HTTPOnly: true,
		SameSite: "Lax",
	})
	return nil
}

// SessionEmail resolves the caller's authenticated email from the session
// cookie, refreshing the session TTL. A missing, unparsable or expired session
// is social.ErrNotAuthenticated.
func SessionEmail(c *fiber.Ctx) (string, error) {

	token := c.Cookies(SessionCookie)
	if token == "" {
		return "", social.ErrNotAuthenticated
	}

	sessionID, err := ParseSessionToken(token)
	if err != nil {
		return "", social.ErrNotAuthenticated
	}

	email, err := global.RedisClient.HGet(global.Context, "sessions:"+sessionID, "email").Result()
	if err != nil {
		if err == redis.Nil {
			return "", social.ErrNotAuthenticated
		}
		return "", err
	}

	if err = global.RedisClient.Expire(global.Context, "sessions:"+sessionID, global.SessionDuration).Err(); err != nil {
		return "", err
	}
	return email, nil
}

// DestroySession deletes the redis session record and expires the cookie
func DestroySession(c *fiber.Ctx) error {

	token := c.Cookies(SessionCookie)
	if token != "" {
		if sessionID, err := ParseSessionToken(token); err == nil {
			if err = global.RedisClient.Del(global.Context, "sessions:"+sessionID).Err(); err != nil {
				return err
			}
		}
	}

	c.Cookie(&fiber.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		SameSite: "Lax",
	})
	return nil
}
