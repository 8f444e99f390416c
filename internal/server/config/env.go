package config

import (
	"errors"
	"io/fs"
	"strings"
	"time"

	"github.com/dmitrijs2005/uptask/internal/flagx"
	"github.com/joho/godotenv"
)

// lookupFunc has the signature of os.LookupEnv.
type lookupFunc func(key string) (string, bool)

// loadDotEnv reads the file named by -env (variables.env by default) into the
// process environment. Variables that are already set win. A missing file is
// not an error, a malformed one panics.
func loadDotEnv(args []string) {
	err := godotenv.Load(flagx.EnvFileFlag(args))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		panic(err)
	}
}

// parseEnv overlays values found through lookup.
//
// Recognised variables:
//
//	PORT            HTTP port; becomes ":<PORT>" unless it already contains a colon
//	GRPC_ADDRESS    gRPC health bind address
//	DATABASE_DSN    PostgreSQL DSN or "memory"
//	SECRET_KEY      JWT HMAC secret
//	TOKEN_TTL       access token lifetime as a Go duration ("4h")
//	LOG_LEVEL       debug, info, warn or error
//	S3_ROOT_USER, S3_ROOT_PASSWORD, S3_BUCKET, S3_REGION, S3_BASE_ENDPOINT
//
// An unparsable TOKEN_TTL panics.
func parseEnv(config *Config, lookup lookupFunc) {
	get := func(key string) string {
		v, _ := lookup(key)
		return strings.TrimSpace(v)
	}

	if port := get("PORT"); port != "" {
		if !strings.Contains(port, ":") {
			port = ":" + port
		}
		config.EndpointAddrHTTP = port
	}
	setString(&config.EndpointAddrGRPC, get("GRPC_ADDRESS"))
	setString(&config.DatabaseDSN, get("DATABASE_DSN"))
	setString(&config.SecretKey, get("SECRET_KEY"))
	if ttl := get("TOKEN_TTL"); ttl != "" {
		d, err := time.ParseDuration(ttl)
		if err != nil {
			panic(err)
		}
		config.AccessTokenValidityDuration = d
	}
	setString(&config.LogLevel, get("LOG_LEVEL"))
	setString(&config.S3RootUser, get("S3_ROOT_USER"))
	setString(&config.S3RootPassword, get("S3_ROOT_PASSWORD"))
	setString(&config.S3Bucket, get("S3_BUCKET"))
	setString(&config.S3Region, get("S3_REGION"))
	setString(&config.S3BaseEndpoint, get("S3_BASE_ENDPOINT"))
}
