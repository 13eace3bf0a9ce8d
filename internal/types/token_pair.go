// types/token_pair.go
package types

import (
	"github.com/princeprakhar/gold-marketplace/internal/models"
	"github.com/princeprakhar/gold-marketplace/internal/utils"
)

type AuthResponse struct {
	Token utils.TokenPair `json:"token"`
	User  models.User     `json:"user"`
}
