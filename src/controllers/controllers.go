package controllers

import (
	"Backend-Dhriti-AI/src/services/builder"
	"Backend-Dhriti-AI/src/services/player"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Session managers are built once in main and injected here; controllers
// stay plain functions the way the route tables expect them.
var (
	builderManager *builder.Manager
	playerManager  *player.Manager
	playerService  *player.Service
)

func InitSessionManagers(b *builder.Manager, p *player.Manager, ps *player.Service) {
	builderManager = b
	playerManager = p
	playerService = ps
}
