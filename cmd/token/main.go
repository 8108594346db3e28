package main

import (
	"flag"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/traffic-stats-sync/internal/config"
	"github.com/vfg2006/traffic-stats-sync/internal/usecases/authenticating"
	"github.com/vfg2006/traffic-stats-sync/pkg/log"
	"github.com/vfg2006/traffic-stats-sync/pkg/middleware"
)

// Emite um token de operador assinado com AUTH_SECRET
func main() {
	subject := flag.String("subject", "", "identificação do operador (e-mail)")
	role := flag.Int("role", middleware.RoleAdmin, "perfil: 1 administrador, 2 supervisor")
	ttl := flag.Duration("ttl", 24*time.Hour, "validade do token")
	flag.Parse()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}
	log.Configure(cfg.App.LogLevel)

	token, err := authenticating.NewService(cfg.Auth).IssueToken(*subject, *role, *ttl)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao emitir token")
	}

	fmt.Println(token)
}
