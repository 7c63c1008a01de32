package app

import (
	"strings"
	"time"

	"github.com/brightgive/donorcrm-backend/internal/pkg/logger"
	"github.com/brightgive/donorcrm-backend/internal/utils"
)

type Config struct {
	JWTSecretKey        string
	AccessTokenTTL      time.Duration
	PayrocSigningSecret string
	AllowedOrigins      []string
}

func LoadConfig(log *logger.Logger) Config {
	jwtSecretKey := utils.GetEnv("JWT_SECRET_KEY", "defaultsecret", log)
	accessTokenTTLSeconds := utils.GetEnvAsInt("ACCESS_TOKEN_TTL", 3600, log)
	payrocSecret := utils.GetEnv("PAYROC_SIGNING_SECRET", "", log)

	var origins []string
	if raw := utils.GetEnv("CORS_ALLOWED_ORIGINS", "", log); raw != "" {
		for _, o := range strings.Split(raw, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
	}

	return Config{
		JWTSecretKey:        jwtSecretKey,
		AccessTokenTTL:      time.Duration(accessTokenTTLSeconds) * time.Second,
		PayrocSigningSecret: payrocSecret,
		AllowedOrigins:      origins,
	}
}
