package config

import (
	"github.com/caarlos0/env/v10"
	"github.com/sirupsen/logrus"
)

type Config struct {
	HTTPPort string `env:"HTTP_PORT" envDefault:"8080"`

	DBType     string `env:"DBType" envDefault:"sqlite"`
	DSNURL     string `env:"DSN_URL" envDefault:""`
	DBUser     string `env:"DBUser" envDefault:""`
	DBPassword string `env:"DBPassword" envDefault:""`
	DBAddr     string `env:"DBAddr" envDefault:""`
	DBName     string `env:"DBName" envDefault:"admin"`
	DBPath     string `env:"DBPath" envDefault:"datas/adminbase.db"`
	DBPort     string `env:"DBPort" envDefault:"3306"`

	// Redis 缓存配置
	RedisAddr     string `env:"REDIS_ADDR" envDefault:"127.0.0.1:6379"`
	RedisPassword string `env:"REDIS_PASSWORD" envDefault:""`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`

	JWTSecret               string `env:"JWT_SECRET" envDefault:"dev-secret-change-me"`
	JWTIssuer               string `env:"JWT_ISSUER" envDefault:"adminbase"`
	JWTAccessExpiryMinutes  int    `env:"JWT_ACCESS_EXPIRY_MINUTES" envDefault:"60"`
	JWTRefreshExpiryMinutes int    `env:"JWT_REFRESH_EXPIRY_MINUTES" envDefault:"10080"`
}

func ParseConfig() (Config, error) {
	var Conf Config
	err := env.Parse(&Conf)
	if err != nil {
		logrus.WithError(err).Error("env.Parse error")
		return Config{}, err
	}
	logrus.Debugf("%#v\n", Conf)
	return Conf, nil
}
