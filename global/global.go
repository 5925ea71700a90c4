package global

import (
	"context"
	"log"
	"time"

	"AMALGAM_server/social"

	"github.com/go-playground/validator/v10"
	"github.com/go-redis/redis/v8"
	"github.com/gocql/gocql"
)

// InternalLogger for errors that should never happen in normal circumstances
var InternalLogger *log.Logger

// MonitorLogger for expected/monitorable failures
var MonitorLogger *log.Logger

// Session for global cassandra cql session
var Session *gocql.Session

// RedisClient for global redis queries
var RedisClient *redis.Client

// SessionDuration determines how long an idle login session lives
var SessionDuration time.Duration = time.Hour * 24

// Store is the global persistence collaborator
var Store social.Store

// Social runs the relationship state machine and conversation lifecycle
var Social *social.Service

// Context is the default context
var Context = context.Background()

// Validator validates incoming bodys of data
var Validator = validator.New()
