// internal/app/system/auth/token.go
package auth

import (
	"context"
	"fmt"
	"time"

	userstore "github.com/dalemusser/pollhub/internal/app/store/users"
	"github.com/dalemusser/pollhub/internal/domain/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// DefaultTokenTTL is how long issued tokens stay valid unless configured
// otherwise.
const DefaultTokenTTL = 7 * 24 * time.Hour

// TokenAuth issues and resolves HS256 bearer tokens. Resolution re-fetches
// the user from the users collection on every request, so deleted accounts
// stop resolving as soon as the record is gone, not when the token expires.
type TokenAuth struct {
	users  *userstore.Store
	secret []byte
	ttl    time.Duration
	log    *zap.Logger
}

// NewTokenAuth constructs a TokenAuth over the given database.
// A zero ttl falls back to DefaultTokenTTL.
func NewTokenAuth(db *mongo.Database, secret string, ttl time.Duration, log *zap.Logger) *TokenAuth {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &TokenAuth{
		users:  userstore.New(db),
		secret: []byte(secret),
		ttl:    ttl,
		log:    log,
	}
}

// Issue mints a signed token for the given user.
func (t *TokenAuth) Issue(u models.User) (string, error) {
	now := time.Now().UTC()
	claims := jwt.MapClaims{
		"sub":      u.ID.Hex(),
		"username": u.Username,
		"email":    u.Email,
		"jti":      uuid.NewString(),
		"iat":      now.Unix(),
		"exp":      now.Add(t.ttl).Unix(),
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(t.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Resolve implements Resolver. Invalid, expired, or mis-signed tokens and
// tokens whose user no longer exists all resolve to anonymous (nil, nil);
// only store failures return an error.
func (t *TokenAuth) Resolve(ctx context.Context, token string) (*Identity, error) {
	parsed, err := jwt.Parse(token, func(tok *jwt.Token) (any, error) {
		return t.secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil || !parsed.Valid {
		return nil, nil
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, nil
	}
	sub, _ := claims["sub"].(string)
	uid, err := primitive.ObjectIDFromHex(sub)
	if err != nil {
		return nil, nil
	}

	u, err := t.users.GetByID(ctx, uid)
	if err == mongo.ErrNoDocuments {
		t.log.Debug("token for unknown user", zap.String("user_id", sub))
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &Identity{ID: u.ID, Username: u.Username, Email: u.Email}, nil
}
