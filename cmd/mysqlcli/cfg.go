package main

import (
	"time"

	"github.com/meoying/dbdriver/internal/protocol/mysql"
)

type Config struct {
	Addr     string `yaml:"addr"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`

	// SSLMode none/preferred/required/verify-ca/verify-full
	SSLMode string `yaml:"sslMode"`
	// RootCA PEM 编码的 CA 证书路径，verify-ca/verify-full 用
	RootCA string `yaml:"rootCA"`

	Compress        bool `yaml:"compress"`
	MultiStatements bool `yaml:"multiStatements"`

	ConnectTimeout time.Duration `yaml:"connectTimeout"`
	ReadTimeout    time.Duration `yaml:"readTimeout"`
}

func (c Config) sslMode() mysql.SSLMode {
	if c.SSLMode == "" {
		return mysql.SSLModePreferred
	}
	return mysql.SSLMode(c.SSLMode)
}
