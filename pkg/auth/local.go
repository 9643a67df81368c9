package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"agroalert.dev/dashboard-service/pkg/common"
	"agroalert.dev/dashboard-service/pkg/models"
)

const issuer = "agroalert-dashboard"

type Claims struct {
	OfficerID string `json:"officer_id"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	Region    string `json:"region"`
	jwt.RegisteredClaims
}

// LocalProvider authenticates officers stored in the local database and
// issues HS256 tokens. Signed-out tokens are remembered until they expire.
type LocalProvider struct {
	*Broadcaster

	db     *gorm.DB
	secret []byte
	ttl    time.Duration
	now    func() time.Time

	mu      sync.Mutex
	revoked map[string]time.Time
}

func NewLocalProvider(db *gorm.DB, secret string, ttl time.Duration) *LocalProvider {
	return &LocalProvider{
		Broadcaster: NewBroadcaster(),
		db:          db,
		secret:      []byte(secret),
		ttl:         ttl,
		now:         time.Now,
		revoked:     make(map[string]time.Time),
	}
}

func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// CreateOfficer registers an officer account in the local database.
func (p *LocalProvider) CreateOfficer(ctx context.Context, officer *models.ExtensionOfficer, password string) error {
	hash, err := HashPassword(password)
	if err != nil {
		return err
	}
	officer.Email = strings.ToLower(strings.TrimSpace(officer.Email))
	officer.PasswordHash = hash
	if err := p.db.WithContext(ctx).Create(officer).Error; err != nil {
		return fmt.Errorf("create officer %s: %w", officer.Email, err)
	}
	return nil
}

func (p *LocalProvider) SignIn(ctx context.Context, email, password string) (*Session, error) {
	logger := common.GetLoggerWith(common.LoggerNameAuth, zap.String(common.LoggerFieldCategory, common.LoggerCategorySession))

	var officer models.ExtensionOfficer
	err := p.db.WithContext(ctx).First(&officer, "email = ?", strings.ToLower(strings.TrimSpace(email))).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		logger.Info("Sign-in for unknown officer", zap.String("email", email))
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("look up officer: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(officer.PasswordHash), []byte(password)); err != nil {
		logger.Info("Sign-in with wrong password", zap.String("officer_id", officer.ID))
		return nil, ErrInvalidCredentials
	}

	issued := p.now()
	expires := issued.Add(p.ttl)
	claims := Claims{
		OfficerID: officer.ID,
		Email:     officer.Email,
		Name:      officer.Name,
		Region:    officer.Region,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   officer.ID,
			Issuer:    issuer,
			IssuedAt:  jwt.NewNumericDate(issued),
			NotBefore: jwt.NewNumericDate(issued),
			ExpiresAt: jwt.NewNumericDate(expires),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(p.secret)
	if err != nil {
		return nil, fmt.Errorf("sign session token: %w", err)
	}

	session := &Session{
		Token:     token,
		OfficerID: officer.ID,
		Email:     officer.Email,
		Name:      officer.Name,
		Region:    officer.Region,
		ExpiresAt: expires,
	}
	logger.Info("Officer signed in", zap.String("officer_id", officer.ID))
	p.started(session)
	return session, nil
}

// parse verifies the signature, then checks issuer and expiry against p.now.
func (p *LocalProvider) parse(token string) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return p.secret, nil
	}, jwt.WithoutClaimsValidation())
	if err != nil || !parsed.Valid {
		return nil, ErrNoSession
	}
	if !claims.VerifyIssuer(issuer, true) || !claims.VerifyExpiresAt(p.now(), true) {
		return nil, ErrNoSession
	}
	return claims, nil
}

func (p *LocalProvider) GetSession(_ context.Context, token string) (*Session, error) {
	if token == "" {
		return nil, ErrNoSession
	}
	if p.isRevoked(token) {
		return nil, ErrNoSession
	}
	claims, err := p.parse(token)
	if err != nil {
		return nil, err
	}
	return &Session{
		Token:     token,
		OfficerID: claims.OfficerID,
		Email:     claims.Email,
		Name:      claims.Name,
		Region:    claims.Region,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

func (p *LocalProvider) SignOut(ctx context.Context, token string) error {
	session, err := p.GetSession(ctx, token)
	if err != nil {
		return err
	}

	p.mu.Lock()
	p.revoked[token] = session.ExpiresAt
	for t, exp := range p.revoked {
		if exp.Before(p.now()) {
			delete(p.revoked, t)
		}
	}
	p.mu.Unlock()

	common.GetLoggerWith(common.LoggerNameAuth, zap.String(common.LoggerFieldCategory, common.LoggerCategorySession)).
		Info("Officer signed out", zap.String("officer_id", session.OfficerID))
	p.ended(token, session.OfficerID)
	return nil
}

func (p *LocalProvider) isRevoked(token string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	_, revoked := p.revoked[token]
	return revoked
}
