package logger

import (
	"strings"

	"go.uber.org/zap"
)

// L est le logger global de l'application, initialisé dans main.
var L *zap.SugaredLogger = zap.NewNop().Sugar()

// Init construit le logger selon le mode (APP_ENV) : production → JSON,
// sinon console de développement.
func Init(mode string) error {
	var cfg zap.Config
	switch strings.ToLower(mode) {
	case "prod", "production", "release":
		cfg = zap.NewProductionConfig()
	default:
		cfg = zap.NewDevelopmentConfig()
	}
	zl, err := cfg.Build()
	if err != nil {
		return err
	}
	L = zl.Sugar()
	return nil
}

// Sync vide les buffers du logger ; à différer dans main.
func Sync() {
	_ = L.Sync()
}
