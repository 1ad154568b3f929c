package redis

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/brodiemcgee/eros-admin/backend/internal/domain/enums"
	"github.com/brodiemcgee/eros-admin/backend/internal/domain/model"
	authsvc "github.com/brodiemcgee/eros-admin/backend/internal/services/auth"
)

const (
	sessionPrefix       = "admin_sessions:"
	adminSessionsPrefix = "admin_session_index:"
)

type SessionRepo struct {
	client *goredis.Client
}

func NewSessionRepo(client *goredis.Client) *SessionRepo {
	return &SessionRepo{client: client}
}

func (r *SessionRepo) Create(ctx context.Context, session model.AdminSession) error {
	if r.client == nil {
		return fmt.Errorf("redis client is nil")
	}
	if strings.TrimSpace(session.ID) == "" || strings.TrimSpace(session.AdminID) == "" {
		return authsvc.ErrInvalidInput
	}

	ttl := ttlFor(session.ExpiresAt)
	fields := map[string]interface{}{
		"admin_id":   session.AdminID,
		"email":      session.Email,
		"role":       string(session.Role),
		"user_agent": session.UserAgent,
		"ip":         session.IP,
		"expires_at": session.ExpiresAt.Unix(),
		"created_at": session.CreatedAt.Unix(),
	}

	pipe := r.client.TxPipeline()
	pipe.HSet(ctx, sessionKey(session.ID), fields)
	pipe.Expire(ctx, sessionKey(session.ID), ttl)
	pipe.SAdd(ctx, adminSessionsKey(session.AdminID), session.ID)
	pipe.Expire(ctx, adminSessionsKey(session.AdminID), ttl)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("create redis session: %w", err)
	}

	return nil
}

func (r *SessionRepo) Get(ctx context.Context, sid string) (model.AdminSession, error) {
	if r.client == nil {
		return model.AdminSession{}, fmt.Errorf("redis client is nil")
	}
	if strings.TrimSpace(sid) == "" {
		return model.AdminSession{}, authsvc.ErrSessionNotFound
	}

	values, err := r.client.HGetAll(ctx, sessionKey(sid)).Result()
	if err != nil {
		return model.AdminSession{}, fmt.Errorf("get session hash: %w", err)
	}
	if len(values) == 0 {
		return model.AdminSession{}, authsvc.ErrSessionNotFound
	}

	session, err := parseSession(values)
	if err != nil {
		return model.AdminSession{}, err
	}
	session.ID = sid
	return session, nil
}

func (r *SessionRepo) Delete(ctx context.Context, sid string) error {
	if r.client == nil {
		return fmt.Errorf("redis client is nil")
	}
	if strings.TrimSpace(sid) == "" {
		return nil
	}

	adminID, err := r.client.HGet(ctx, sessionKey(sid), "admin_id").Result()
	if err != nil && err != goredis.Nil {
		return fmt.Errorf("load session for delete: %w", err)
	}

	pipe := r.client.TxPipeline()
	pipe.Del(ctx, sessionKey(sid))
	if adminID != "" {
		pipe.SRem(ctx, adminSessionsKey(adminID), sid)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}

	return nil
}

func parseSession(values map[string]string) (model.AdminSession, error) {
	adminID := strings.TrimSpace(values["admin_id"])
	if adminID == "" {
		return model.AdminSession{}, authsvc.ErrUnauthorized
	}

	expiresUnix, err := strconv.ParseInt(values["expires_at"], 10, 64)
	if err != nil {
		return model.AdminSession{}, authsvc.ErrUnauthorized
	}
	createdUnix, _ := strconv.ParseInt(values["created_at"], 10, 64)

	return model.AdminSession{
		AdminID:   adminID,
		Email:     values["email"],
		Role:      enums.ParseAdminRole(values["role"]),
		UserAgent: values["user_agent"],
		IP:        values["ip"],
		ExpiresAt: time.Unix(expiresUnix, 0).UTC(),
		CreatedAt: time.Unix(createdUnix, 0).UTC(),
	}, nil
}

func ttlFor(expiresAt time.Time) time.Duration {
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return time.Second
	}
	return ttl
}

func sessionKey(sid string) string {
	return sessionPrefix + sid
}

func adminSessionsKey(adminID string) string {
	return adminSessionsPrefix + adminID
}
