package api

import (
	stderrors "errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"

	"github.com/kbukum/redisext/errors"
	"github.com/kbukum/redisext/logger"
	"github.com/kbukum/redisext/redis"
	"github.com/kbukum/redisext/server"
)

const keyParam = "key"

// Item is a stored value. TTL is empty for keys without expiry.
type Item struct {
	Key   string `json:"key"`
	Value string `json:"value"`
	TTL   string `json:"ttl,omitempty"`
}

// PutRequest is the body of PUT /kv/*key.
type PutRequest struct {
	Value string `json:"value" binding:"required"`
	TTL   string `json:"ttl"`
}

// Handler serves the key-value routes.
type Handler struct {
	client redis.Client
	log    *logger.Logger
}

// NewHandler returns a handler over client. Passing the *redis.Extension
// keeps the routes working across re-attachment.
func NewHandler(client redis.Client, log *logger.Logger) *Handler {
	if log == nil {
		log = logger.WithComponent("api")
	}
	return &Handler{client: client, log: log}
}

// Register mounts the routes on r. Keys are matched to the end of the
// path, so they may contain slashes.
func (h *Handler) Register(r gin.IRouter) {
	kv := r.Group("/kv")
	kv.GET("", h.List)
	kv.GET("/*"+keyParam, h.Get)
	kv.PUT("/*"+keyParam, h.Put)
	kv.DELETE("/*"+keyParam, h.Delete)
}

func keyOf(c *gin.Context) string {
	return strings.TrimPrefix(c.Param(keyParam), "/")
}

func requireKey(c *gin.Context) (string, bool) {
	key := keyOf(c)
	if key == "" {
		server.RespondWithError(c, errors.MissingField(keyParam))
		return "", false
	}
	return key, true
}

// List returns keys matching the pattern query parameter, "*" by default.
func (h *Handler) List(c *gin.Context) {
	pattern := c.DefaultQuery("pattern", "*")
	keys, err := h.client.Keys(c.Request.Context(), pattern).Result()
	if err != nil {
		h.fail(c, "", err)
		return
	}
	server.RespondOK(c, keys)
}

// Get returns one item. /kv/ with no key lists like List.
func (h *Handler) Get(c *gin.Context) {
	ctx := c.Request.Context()
	key := keyOf(c)
	if key == "" {
		h.List(c)
		return
	}

	value, err := h.client.Get(ctx, key).Result()
	if err != nil {
		h.fail(c, key, err)
		return
	}
	item := Item{Key: key, Value: value}
	if ttl, err := h.client.TTL(ctx, key).Result(); err == nil && ttl > 0 {
		item.TTL = ttl.String()
	}
	server.RespondOK(c, item)
}

func (h *Handler) Put(c *gin.Context) {
	key, ok := requireKey(c)
	if !ok {
		return
	}

	var req PutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		server.RespondWithError(c, errors.InvalidInput("value", "body must be JSON with a value").WithCause(err))
		return
	}
	var ttl time.Duration
	if req.TTL != "" {
		d, err := time.ParseDuration(req.TTL)
		if err != nil || d < 0 {
			server.RespondWithError(c, errors.InvalidFormat("ttl", "duration such as 30s"))
			return
		}
		ttl = d
	}

	if err := h.client.Set(c.Request.Context(), key, req.Value, ttl).Err(); err != nil {
		h.fail(c, key, err)
		return
	}
	h.log.WithContext(c.Request.Context()).Debug("Item stored", logger.Fields("key", key, "ttl", ttl.String()))
	item := Item{Key: key, Value: req.Value}
	if ttl > 0 {
		item.TTL = ttl.String()
	}
	server.RespondOK(c, item)
}

func (h *Handler) Delete(c *gin.Context) {
	key, ok := requireKey(c)
	if !ok {
		return
	}
	if err := h.client.Del(c.Request.Context(), key).Err(); err != nil {
		h.fail(c, key, err)
		return
	}
	server.RespondNoContent(c)
}

// fail maps a client error onto the HTTP error envelope.
func (h *Handler) fail(c *gin.Context, key string, err error) {
	if stderrors.Is(err, goredis.Nil) {
		server.RespondWithError(c, errors.NotFound("key", key))
		return
	}
	if _, ok := errors.AsAppError(err); ok {
		server.RespondWithError(c, err)
		return
	}
	h.log.WithContext(c.Request.Context()).Warn("Redis command failed", logger.Fields("key", key, "error", err.Error()))
	server.RespondWithError(c, errors.ConnectionFailed("redis").WithCause(err))
}

// Route collapses /kv/<key> paths to "/kv/*key" for metric labels.
func Route(r *http.Request) string {
	if strings.HasPrefix(r.URL.Path, "/kv/") {
		return "/kv/*" + keyParam
	}
	return r.URL.Path
}
