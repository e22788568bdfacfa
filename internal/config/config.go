package config

// Header constants.
const (
	HEADER_KEY_X_USER_ID = "X-User-Id"
)

// Environment variable keys.
const (
	ENV_KEY_APP_ENV   = "APP_ENV"
	ENV_KEY_PORT      = "PORT"
	ENV_KEY_LOG_LEVEL = "LOG_LEVEL"

	ENV_KEY_DB_DATABASE             = "DB_DATABASE"
	ENV_KEY_DB_PASSWORD             = "DB_PASSWORD"
	ENV_KEY_DB_USER                 = "DB_USER"
	ENV_KEY_DB_PORT                 = "DB_PORT"
	ENV_KEY_DB_HOST                 = "DB_HOST"
	ENV_KEY_DB_MAX_OPEN_CONNECTIONS = "DB_MAX_OPEN_CONNECTIONS"

	ENV_KEY_REDIS_HOST     = "REDIS_HOST"
	ENV_KEY_REDIS_PORT     = "REDIS_PORT"
	ENV_KEY_REDIS_PASSWORD = "REDIS_PASSWORD"

	ENV_KEY_MINIO_BUCKET      = "MINIO_BUCKET"
	ENV_KEY_MINIO_PUBLIC_PATH = "MINIO_PUBLIC_PATH"
	ENV_KEY_MINIO_ENDPOINT    = "MINIO_ENDPOINT"
	ENV_KEY_MINIO_ACCESS_KEY  = "MINIO_ACCESS_KEY"
	ENV_KEY_MINIO_SECRET_KEY  = "MINIO_SECRET_KEY"

	ENV_KEY_SMTP_HOST       = "SMTP_HOST"
	ENV_KEY_SMTP_USERNAME   = "SMTP_USERNAME"
	ENV_KEY_SMTP_PASSWORD   = "SMTP_PASSWORD"
	ENV_KEY_SMTP_PORT       = "SMTP_PORT"
	ENV_KEY_BOOKING_MAILBOX = "BOOKING_MAILBOX"

	ENV_KEY_ACCESS_TOKEN_SECRET   = "ACCESS_TOKEN_SECRET"
	ENV_KEY_REFRESH_TOKEN_SECRET  = "REFRESH_TOKEN_SECRET"
	ENV_KEY_ACCESS_TOKEN_EXPIRES  = "ACCESS_TOKEN_EXPIRES"
	ENV_KEY_REFRESH_TOKEN_EXPIRES = "REFRESH_TOKEN_EXPIRES"

	ENV_KEY_APIFY_TOKEN    = "APIFY_TOKEN"
	ENV_KEY_APIFY_ACTOR_ID = "APIFY_ACTOR_ID"

	ENV_KEY_PUBLIC_SITE_URL = "PUBLIC_SITE_URL"

	ENV_KEY_WORKER_CONCURRENCY = "WORKER_CONCURRENCY"
)

type ContextKey uint

const (
	_ ContextKey = iota
	CTX_KEY_USER_ID
	CTX_KEY_USER_ROLE
)
